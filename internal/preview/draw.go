package preview

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/plugtrack/internal/textutil"
)

// minPaneWidth is the narrowest editor pane; below it the preview is hidden.
const minPaneWidth = 20

type layout struct {
	editorWidth  int
	previewStart int
	previewWidth int
	bodyHeight   int
}

func computeLayout(w, h int) layout {
	l := layout{bodyHeight: h - 1}
	if l.bodyHeight < 0 {
		l.bodyHeight = 0
	}
	if w < minPaneWidth*2+1 {
		l.editorWidth = w
		return l
	}
	l.editorWidth = (w - 1) / 2
	l.previewStart = l.editorWidth + 1
	l.previewWidth = w - l.previewStart
	return l
}

// Draw paints the whole screen.
func (s *Session) Draw() {
	s.screen.Clear()
	w, h := s.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	l := computeLayout(w, h)

	s.drawEditor(l)
	if l.previewWidth > 0 {
		sepStyle := tcell.StyleDefault.Foreground(s.theme.Separator)
		for y := 0; y < l.bodyHeight; y++ {
			s.screen.SetContent(l.editorWidth, y, '│', nil, sepStyle)
		}
		s.drawPreview(l)
	}
	s.drawStatus(w, h-1)
	s.screen.Show()
}

// displayLine prepares an editor line for the cell grid.
func (s *Session) displayLine(line string) string {
	return textutil.ExpandTabs(textutil.SanitizeTerminalText(line), s.opts.TabWidth)
}

func (s *Session) drawEditor(l layout) {
	row, col := s.editor.Cursor()
	if l.bodyHeight > 0 {
		if row < s.top {
			s.top = row
		}
		if row >= s.top+l.bodyHeight {
			s.top = row - l.bodyHeight + 1
		}
	}

	cursorLine := s.editor.Line(row)
	prefix := string([]rune(cursorLine)[:col])
	cursorX := textutil.DisplayWidth(s.displayLine(prefix))
	if cursorX < s.left {
		s.left = cursorX
	}
	if l.editorWidth > 0 && cursorX >= s.left+l.editorWidth {
		s.left = cursorX - l.editorWidth + 1
	}

	style := tcell.StyleDefault.Foreground(s.theme.EditorFg)
	for y := 0; y < l.bodyHeight; y++ {
		i := s.top + y
		if i >= s.editor.LineCount() {
			break
		}
		drawCells(s.screen, 0, y, l.editorWidth, s.left, s.displayLine(s.editor.Line(i)), style)
	}
	if l.bodyHeight > 0 {
		s.screen.ShowCursor(cursorX-s.left, row-s.top)
	}
}

func (s *Session) drawPreview(l layout) {
	y := 0
	for _, block := range s.rendered {
		style := tcell.StyleDefault.Foreground(s.theme.PreviewFg)
		switch {
		case strings.HasPrefix(block, "<h"):
			style = tcell.StyleDefault.Foreground(s.theme.HeadingFg).Bold(true)
		case strings.HasPrefix(block, "<ul>"):
			style = tcell.StyleDefault.Foreground(s.theme.ListFg)
		}
		for _, row := range textutil.Wrap(textutil.SanitizeTerminalText(block), l.previewWidth) {
			if y >= l.bodyHeight {
				return
			}
			drawCells(s.screen, l.previewStart, y, l.previewWidth, 0, row, style)
			y++
		}
	}
}

func (s *Session) drawStatus(w, y int) {
	style := tcell.StyleDefault.Background(s.theme.StatusBg).Foreground(s.theme.StatusFg)
	if s.editor.Dirty() {
		style = style.Foreground(s.theme.DirtyFg)
	}
	for x := 0; x < w; x++ {
		s.screen.SetContent(x, y, ' ', nil, style)
	}
	drawCells(s.screen, 0, y, w, 0, textutil.Truncate(s.StatusText(), w), style)
}

// drawCells writes text starting at column x, skipping the first skip cells
// of text and clipping at width.
func drawCells(screen tcell.Screen, x, y, width, skip int, text string, style tcell.Style) {
	col := 0
	for _, ru := range text {
		rw := textutil.RuneWidth(ru)
		if col < skip {
			col += rw
			continue
		}
		pos := col - skip
		if pos+rw > width {
			return
		}
		screen.SetContent(x+pos, y, ru, nil, style)
		col += rw
	}
}
