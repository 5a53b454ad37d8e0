package textutil

import "strings"

// formattingRuneLabels maps invisible bidi and zero-width runes to visible
// placeholders.
var formattingRuneLabels = map[rune]string{
	0x00AD: "⟪SHY⟫",
	0x061C: "⟪ALM⟫",
	0x180E: "⟪MVS⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText rewrites text so it can be drawn in a terminal cell
// grid: control characters become '?', line breaks become spaces and
// formatting runes are labelled. Tabs are kept for ExpandTabs.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if needsSanitizing(r) {
			return sanitize(text)
		}
	}
	return text
}

func needsSanitizing(r rune) bool {
	if r == '\t' {
		return false
	}
	if IsFormattingRune(r) {
		return true
	}
	return r < 0x20 || r == 0x7f
}

func sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case IsFormattingRune(r):
			b.WriteString(formattingRuneLabels[r])
		case r == '\t':
			b.WriteRune(r)
		case r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasFormattingRunes reports whether text contains bidi or zero-width formatting runes.
func HasFormattingRunes(text string) bool {
	for _, r := range text {
		if IsFormattingRune(r) {
			return true
		}
	}
	return false
}

// IsFormattingRune reports whether r is an invisible formatting rune.
func IsFormattingRune(r rune) bool {
	_, ok := formattingRuneLabels[r]
	return ok
}
