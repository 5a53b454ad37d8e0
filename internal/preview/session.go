package preview

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/plugtrack/internal/markup"
	"github.com/kk-code-lab/plugtrack/internal/textutil"
)

// Options configure a Session.
type Options struct {
	Title    string
	Renderer markup.Renderer
	TabWidth int
	// Save receives the buffer on Ctrl-S. Nil disables saving.
	Save func(text string) error
}

// Session draws an Editor and its rendered output on a tcell screen and
// feeds it key events.
type Session struct {
	screen tcell.Screen
	editor *Editor
	opts   Options
	theme  ColorTheme

	// scroll offsets of the editor pane
	top  int
	left int

	rendered []string
	stats    markup.BlockStats
	message  string
}

func NewSession(screen tcell.Screen, editor *Editor, opts Options) *Session {
	if opts.TabWidth <= 0 {
		opts.TabWidth = textutil.DefaultTabWidth
	}
	s := &Session{screen: screen, editor: editor, opts: opts, theme: GetColorTheme()}
	s.refresh()
	return s
}

// Editor returns the buffer being edited.
func (s *Session) Editor() *Editor { return s.editor }

// Rendered returns the current rendered output, one block per line.
func (s *Session) Rendered() []string { return s.rendered }

// Message returns the last status message.
func (s *Session) Message() string { return s.message }

// Run draws and processes events until the user quits.
func (s *Session) Run() {
	s.Draw()
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		if !s.HandleEvent(ev) {
			return
		}
		s.Draw()
	}
}

// HandleEvent applies ev and reports whether the session should continue.
func (s *Session) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
	case *tcell.EventKey:
		return s.handleKey(ev)
	}
	return true
}

func (s *Session) handleKey(ev *tcell.EventKey) bool {
	e := s.editor
	edited := false
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyCtrlS:
		s.save()
		return true
	case tcell.KeyEnter:
		e.Newline()
		edited = true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.Backspace()
		edited = true
	case tcell.KeyDelete:
		e.Delete()
		edited = true
	case tcell.KeyTab:
		e.Insert('\t')
		edited = true
	case tcell.KeyLeft:
		e.Left()
	case tcell.KeyRight:
		e.Right()
	case tcell.KeyUp:
		e.Up()
	case tcell.KeyDown:
		e.Down()
	case tcell.KeyHome:
		e.Home()
	case tcell.KeyEnd:
		e.End()
	case tcell.KeyRune:
		e.Insert(ev.Rune())
		edited = true
	}
	if edited {
		s.message = ""
		s.refresh()
	}
	return true
}

func (s *Session) save() {
	if s.opts.Save == nil {
		s.message = "saving is not available"
		return
	}
	if err := s.opts.Save(s.editor.Text()); err != nil {
		s.message = fmt.Sprintf("save failed: %v", err)
		return
	}
	s.editor.MarkSaved()
	s.message = "saved"
}

func (s *Session) refresh() {
	text := s.editor.Text()
	html := s.opts.Renderer.Render(text)
	if html == "" {
		s.rendered = nil
	} else {
		s.rendered = strings.Split(html, "\n")
	}
	s.stats = markup.Stats(text)
}

// StatusText is the text of the bottom line.
func (s *Session) StatusText() string {
	title := s.opts.Title
	if title == "" {
		title = "[scratch]"
	}
	if s.editor.Dirty() {
		title += " *"
	}
	row, col := s.editor.Cursor()
	status := fmt.Sprintf(" %s  %d:%d  %s", title, row+1, col+1, formatStats(s.stats))
	if s.message != "" {
		status += "  " + s.message
	}
	return status + "  ^S save  Esc quit"
}

func formatStats(st markup.BlockStats) string {
	return fmt.Sprintf("%s, %s (%s), %s",
		plural(st.Headings, "heading"),
		plural(st.Lists, "list"),
		plural(st.ListItems, "item"),
		plural(st.Paragraphs, "paragraph"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
