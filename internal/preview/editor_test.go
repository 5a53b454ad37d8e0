package preview

import "testing"

func TestEditorInsertAndNewline(t *testing.T) {
	e := NewEditor("")
	e.InsertString("# Title\nbody")
	if got := e.Text(); got != "# Title\nbody" {
		t.Fatalf("expected %q, got %q", "# Title\nbody", got)
	}
	if row, col := e.Cursor(); row != 1 || col != 4 {
		t.Fatalf("expected cursor 1:4, got %d:%d", row, col)
	}
	if !e.Dirty() {
		t.Fatalf("expected dirty buffer after insert")
	}
}

func TestEditorNewlineSplitsLine(t *testing.T) {
	e := NewEditor("hello world")
	for i := 0; i < 5; i++ {
		e.Right()
	}
	e.Newline()
	if got := e.Lines(); len(got) != 2 || got[0] != "hello" || got[1] != " world" {
		t.Fatalf("unexpected lines %q", got)
	}
}

func TestEditorBackspaceJoinsLines(t *testing.T) {
	e := NewEditor("ab\ncd")
	e.Down()
	e.Home()
	e.Backspace()
	if got := e.Text(); got != "abcd" {
		t.Fatalf("expected %q, got %q", "abcd", got)
	}
	if row, col := e.Cursor(); row != 0 || col != 2 {
		t.Fatalf("expected cursor 0:2, got %d:%d", row, col)
	}

	e.Backspace()
	if got := e.Text(); got != "acd" {
		t.Fatalf("expected %q, got %q", "acd", got)
	}
}

func TestEditorBackspaceAtStartIsNoop(t *testing.T) {
	e := NewEditor("x")
	e.Backspace()
	if e.Text() != "x" || e.Dirty() {
		t.Fatalf("expected unchanged clean buffer, got %q dirty=%v", e.Text(), e.Dirty())
	}
}

func TestEditorDelete(t *testing.T) {
	e := NewEditor("ab\ncd")
	e.End()
	e.Delete()
	if got := e.Text(); got != "abcd" {
		t.Fatalf("expected %q, got %q", "abcd", got)
	}
	e.Home()
	e.Delete()
	if got := e.Text(); got != "bcd" {
		t.Fatalf("expected %q, got %q", "bcd", got)
	}
}

func TestEditorCursorMovement(t *testing.T) {
	e := NewEditor("long line\nab\nxyz")
	e.End()
	e.Down()
	if row, col := e.Cursor(); row != 1 || col != 2 {
		t.Fatalf("expected cursor clamped to 1:2, got %d:%d", row, col)
	}
	e.Right()
	if row, col := e.Cursor(); row != 2 || col != 0 {
		t.Fatalf("expected wrap to 2:0, got %d:%d", row, col)
	}
	e.Left()
	if row, col := e.Cursor(); row != 1 || col != 2 {
		t.Fatalf("expected wrap back to 1:2, got %d:%d", row, col)
	}
	e.Up()
	e.Up()
	if row, col := e.Cursor(); row != 0 || col != 0 {
		t.Fatalf("expected 0:0 after moving past top, got %d:%d", row, col)
	}
}

func TestEditorNormalizesCRLF(t *testing.T) {
	e := NewEditor("a\r\nb")
	if e.LineCount() != 2 || e.Line(1) != "b" {
		t.Fatalf("unexpected lines %q", e.Lines())
	}
}

func TestEditorMultibyte(t *testing.T) {
	e := NewEditor("héllo")
	e.Right()
	e.Right()
	e.Backspace()
	if got := e.Text(); got != "hllo" {
		t.Fatalf("expected %q, got %q", "hllo", got)
	}
}
