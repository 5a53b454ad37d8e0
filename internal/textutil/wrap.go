package textutil

import "strings"

// Truncate cuts text to at most width cells, ending with an ellipsis when
// something was removed.
func Truncate(text string, width int) string {
	if width <= 0 || text == "" {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	const ellipsis = "…"
	if width == 1 {
		return ellipsis
	}
	var b strings.Builder
	used := 0
	for _, ru := range text {
		w := RuneWidth(ru)
		if used+w > width-1 {
			break
		}
		b.WriteRune(ru)
		used += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

// Wrap hard-wraps text into rows of at most width cells. Words are kept
// together when they fit on a row; longer words are split.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	if text == "" {
		return []string{""}
	}

	var rows []string
	var row strings.Builder
	rowWidth := 0
	flush := func() {
		rows = append(rows, row.String())
		row.Reset()
		rowWidth = 0
	}

	for _, word := range strings.SplitAfter(text, " ") {
		wordWidth := DisplayWidth(word)
		if rowWidth > 0 && rowWidth+wordWidth > width {
			trimmed := strings.TrimRight(word, " ")
			if rowWidth+DisplayWidth(trimmed) > width {
				flush()
			}
		}
		for _, ru := range word {
			w := RuneWidth(ru)
			if rowWidth+w > width {
				if ru == ' ' {
					continue
				}
				flush()
			}
			row.WriteRune(ru)
			rowWidth += w
		}
	}
	if row.Len() > 0 || len(rows) == 0 {
		flush()
	}
	return rows
}
