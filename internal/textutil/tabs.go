package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// ExpandTabs replaces tabs with spaces up to the next tab stop.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += RuneWidth(ru)
	}
	return builder.String()
}

// RuneWidth is the cell width of ru, never less than one.
func RuneWidth(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w < 1 {
		return 1
	}
	return w
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += RuneWidth(ru)
	}
	return width
}

// ColumnOffset returns the display column of the given rune index in text.
func ColumnOffset(text string, runeIndex int) int {
	col := 0
	i := 0
	for _, ru := range text {
		if i >= runeIndex {
			break
		}
		col += RuneWidth(ru)
		i++
	}
	return col
}
