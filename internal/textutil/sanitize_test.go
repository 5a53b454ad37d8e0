package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeTerminalTextLeavesSafeInput(t *testing.T) {
	input := "<p>plain &amp; safe</p>\twith tab"
	if got := SanitizeTerminalText(input); got != input {
		t.Fatalf("expected %q to remain untouched, got %q", input, got)
	}
}

func TestSanitizeTerminalTextReplacesControlSequences(t *testing.T) {
	input := "bad\x1b[31m\npath"
	got := SanitizeTerminalText(input)
	if got != "bad?[31m path" {
		t.Fatalf("expected sanitized string \"bad?[31m path\", got %q", got)
	}
}

func TestSanitizeTerminalTextLabelsFormattingRunes(t *testing.T) {
	input := "a" + string(rune(0x202E)) + "b" + string(rune(0x200B)) + "c"
	got := SanitizeTerminalText(input)
	if strings.ContainsRune(got, 0x202E) || strings.ContainsRune(got, 0x200B) {
		t.Fatalf("sanitize left formatting runes in output: %q", got)
	}
	if !strings.Contains(got, "⟪RLO⟫") || !strings.Contains(got, "⟪ZWSP⟫") {
		t.Fatalf("expected formatting runes to be labeled, got %q", got)
	}
}

func TestHasFormattingRunes(t *testing.T) {
	if HasFormattingRunes("https://example.com/") {
		t.Fatalf("expected plain text to have no formatting runes")
	}
	if !HasFormattingRunes("https://example.com/" + string(rune(0x2067))) {
		t.Fatalf("expected formatting runes to be detected")
	}
}
