// Package preview is a terminal editor that shows rendered markup next to
// the text being edited.
package preview

import "strings"

// Editor is a line-based text buffer with a cursor. Columns count runes.
type Editor struct {
	lines [][]rune
	row   int
	col   int
	dirty bool
}

// NewEditor loads text into a buffer with the cursor at the start.
func NewEditor(text string) *Editor {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return &Editor{lines: lines}
}

// Text returns the buffer joined with "\n".
func (e *Editor) Text() string {
	return strings.Join(e.Lines(), "\n")
}

// Lines returns a copy of every line.
func (e *Editor) Lines() []string {
	out := make([]string, len(e.lines))
	for i, l := range e.lines {
		out[i] = string(l)
	}
	return out
}

// Line returns line i, or "" when out of range.
func (e *Editor) Line(i int) string {
	if i < 0 || i >= len(e.lines) {
		return ""
	}
	return string(e.lines[i])
}

func (e *Editor) LineCount() int { return len(e.lines) }

// Cursor reports the cursor row and rune column.
func (e *Editor) Cursor() (row, col int) {
	return e.row, e.col
}

// Dirty reports whether the buffer changed since load or the last MarkSaved.
func (e *Editor) Dirty() bool { return e.dirty }

func (e *Editor) MarkSaved() { e.dirty = false }

// Insert puts r before the cursor.
func (e *Editor) Insert(r rune) {
	line := e.lines[e.row]
	line = append(line, 0)
	copy(line[e.col+1:], line[e.col:])
	line[e.col] = r
	e.lines[e.row] = line
	e.col++
	e.dirty = true
}

// InsertString inserts s, splitting lines at "\n".
func (e *Editor) InsertString(s string) {
	for _, r := range strings.ReplaceAll(s, "\r\n", "\n") {
		if r == '\n' {
			e.Newline()
			continue
		}
		e.Insert(r)
	}
}

// Newline splits the current line at the cursor.
func (e *Editor) Newline() {
	line := e.lines[e.row]
	head := append([]rune(nil), line[:e.col]...)
	tail := append([]rune(nil), line[e.col:]...)

	e.lines[e.row] = head
	e.lines = append(e.lines, nil)
	copy(e.lines[e.row+2:], e.lines[e.row+1:])
	e.lines[e.row+1] = tail

	e.row++
	e.col = 0
	e.dirty = true
}

// Backspace deletes the rune before the cursor, joining with the previous
// line at column zero.
func (e *Editor) Backspace() {
	if e.col > 0 {
		line := e.lines[e.row]
		e.lines[e.row] = append(line[:e.col-1], line[e.col:]...)
		e.col--
		e.dirty = true
		return
	}
	if e.row == 0 {
		return
	}
	prev := e.lines[e.row-1]
	e.col = len(prev)
	e.lines[e.row-1] = append(prev, e.lines[e.row]...)
	e.lines = append(e.lines[:e.row], e.lines[e.row+1:]...)
	e.row--
	e.dirty = true
}

// Delete removes the rune under the cursor, joining the next line at the end
// of a line.
func (e *Editor) Delete() {
	line := e.lines[e.row]
	if e.col < len(line) {
		e.lines[e.row] = append(line[:e.col], line[e.col+1:]...)
		e.dirty = true
		return
	}
	if e.row == len(e.lines)-1 {
		return
	}
	e.lines[e.row] = append(line, e.lines[e.row+1]...)
	e.lines = append(e.lines[:e.row+1], e.lines[e.row+2:]...)
	e.dirty = true
}

func (e *Editor) Left() {
	switch {
	case e.col > 0:
		e.col--
	case e.row > 0:
		e.row--
		e.col = len(e.lines[e.row])
	}
}

func (e *Editor) Right() {
	switch {
	case e.col < len(e.lines[e.row]):
		e.col++
	case e.row < len(e.lines)-1:
		e.row++
		e.col = 0
	}
}

func (e *Editor) Up() {
	if e.row == 0 {
		e.col = 0
		return
	}
	e.row--
	e.clampCol()
}

func (e *Editor) Down() {
	if e.row == len(e.lines)-1 {
		e.col = len(e.lines[e.row])
		return
	}
	e.row++
	e.clampCol()
}

func (e *Editor) Home() { e.col = 0 }

func (e *Editor) End() { e.col = len(e.lines[e.row]) }

func (e *Editor) clampCol() {
	if n := len(e.lines[e.row]); e.col > n {
		e.col = n
	}
}
