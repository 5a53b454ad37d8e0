package preview

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/plugtrack/internal/markup"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(scr.Fini)
	scr.SetSize(w, h)
	return scr
}

func screenRow(scr tcell.SimulationScreen, y int) string {
	cells, w, _ := scr.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return b.String()
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeText(s *Session, text string) {
	for _, r := range text {
		if r == '\n' {
			s.HandleEvent(key(tcell.KeyEnter))
			continue
		}
		s.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestSessionRendersAsYouType(t *testing.T) {
	scr := newSimScreen(t, 80, 10)
	s := NewSession(scr, NewEditor(""), Options{Title: "notes.md"})

	typeText(s, "# Hi\n- one")
	want := []string{"<h1>Hi</h1>", "<ul><li>one</li></ul>"}
	got := s.Rendered()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %q, got %q", want, got)
	}

	s.Draw()
	if row := screenRow(scr, 0); !strings.HasPrefix(row, "# Hi") || !strings.Contains(row, "<h1>Hi</h1>") {
		t.Fatalf("unexpected first row %q", row)
	}
	status := screenRow(scr, 9)
	if !strings.Contains(status, "notes.md *") || !strings.Contains(status, "1 heading") {
		t.Fatalf("unexpected status row %q", status)
	}
}

func TestSessionBackspaceUpdatesPreview(t *testing.T) {
	scr := newSimScreen(t, 80, 10)
	s := NewSession(scr, NewEditor("**a**"), Options{})
	s.HandleEvent(key(tcell.KeyEnd))
	s.HandleEvent(key(tcell.KeyBackspace2))
	if got := s.Rendered(); len(got) != 1 || got[0] != "<p>*<em>a</em></p>" {
		t.Fatalf("unexpected render %q", got)
	}
}

func TestSessionSave(t *testing.T) {
	scr := newSimScreen(t, 80, 10)
	var saved string
	s := NewSession(scr, NewEditor("x"), Options{Save: func(text string) error {
		saved = text
		return nil
	}})
	s.HandleEvent(key(tcell.KeyEnd))
	typeText(s, "y")
	if !s.HandleEvent(key(tcell.KeyCtrlS)) {
		t.Fatalf("save should not end the session")
	}
	if saved != "xy" {
		t.Fatalf("expected saved text %q, got %q", "xy", saved)
	}
	if s.Editor().Dirty() {
		t.Fatalf("expected clean buffer after save")
	}
	if s.Message() != "saved" {
		t.Fatalf("expected saved message, got %q", s.Message())
	}
}

func TestSessionSaveFailureKeepsDirty(t *testing.T) {
	scr := newSimScreen(t, 80, 10)
	s := NewSession(scr, NewEditor(""), Options{Save: func(string) error {
		return errors.New("disk full")
	}})
	typeText(s, "a")
	s.HandleEvent(key(tcell.KeyCtrlS))
	if !s.Editor().Dirty() {
		t.Fatalf("expected dirty buffer after failed save")
	}
	if !strings.Contains(s.Message(), "disk full") {
		t.Fatalf("expected failure message, got %q", s.Message())
	}
}

func TestSessionQuitKeys(t *testing.T) {
	scr := newSimScreen(t, 80, 10)
	s := NewSession(scr, NewEditor(""), Options{})
	if s.HandleEvent(key(tcell.KeyEscape)) {
		t.Fatalf("expected Esc to end the session")
	}
	if s.HandleEvent(key(tcell.KeyCtrlC)) {
		t.Fatalf("expected Ctrl-C to end the session")
	}
}

func TestSessionRunQuitsOnInjectedEscape(t *testing.T) {
	scr := newSimScreen(t, 80, 10)
	s := NewSession(scr, NewEditor("text"), Options{})
	scr.InjectKey(tcell.KeyRune, '!', tcell.ModNone)
	scr.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	s.Run()
	if got := s.Editor().Text(); got != "!text" {
		t.Fatalf("expected %q, got %q", "!text", got)
	}
}

func TestSessionScrollsToCursor(t *testing.T) {
	scr := newSimScreen(t, 60, 4)
	s := NewSession(scr, NewEditor("1\n2\n3\n4\n5\n6"), Options{})
	for i := 0; i < 5; i++ {
		s.HandleEvent(key(tcell.KeyDown))
	}
	s.Draw()
	if row := screenRow(scr, 2); !strings.HasPrefix(row, "6") {
		t.Fatalf("expected last line at bottom of editor pane, got %q", row)
	}
}

func TestSessionNarrowScreenHidesPreview(t *testing.T) {
	scr := newSimScreen(t, 30, 5)
	s := NewSession(scr, NewEditor("# Head"), Options{})
	s.Draw()
	if row := screenRow(scr, 0); strings.Contains(row, "<h1>") {
		t.Fatalf("expected preview hidden on narrow screen, got %q", row)
	}
}

func TestSessionUsesConfiguredRenderer(t *testing.T) {
	scr := newSimScreen(t, 80, 5)
	s := NewSession(scr, NewEditor("[x](javascript:y)"), Options{Renderer: markup.Renderer{Links: markup.SafeLinks}})
	if got := s.Rendered(); len(got) != 1 || got[0] != "<p>[x](javascript:y)</p>" {
		t.Fatalf("unexpected render %q", got)
	}
}

func TestFormatStats(t *testing.T) {
	got := formatStats(markup.BlockStats{Headings: 1, Lists: 2, ListItems: 3, Paragraphs: 0})
	want := "1 heading, 2 lists (3 items), 0 paragraphs"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
