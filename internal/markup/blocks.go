package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxHeadingLevel = 3

// Segment splits input into blocks in source order. Each line is trimmed and
// classified as blank, heading, list item or plain text; contiguous list items
// and plain lines accumulate until a line of another kind ends them.
func Segment(input string) []Block {
	if input == "" {
		return nil
	}
	var s segmenter
	for _, raw := range splitLines(input) {
		s.line(strings.TrimSpace(raw))
	}
	s.flushParagraph()
	s.flushList()
	return s.blocks
}

// segmenter holds the pending buffers for one Segment call. At most one of
// paragraph and items is non-empty at any time.
type segmenter struct {
	blocks    []Block
	paragraph []string
	items     []string
}

func (s *segmenter) line(line string) {
	if line == "" {
		s.flushParagraph()
		s.flushList()
		return
	}

	if level, text, ok := parseHeading(line); ok {
		s.flushParagraph()
		s.flushList()
		s.blocks = append(s.blocks, Heading{Level: level, Text: text})
		return
	}

	if item, ok := parseListItem(line); ok {
		s.flushParagraph()
		s.items = append(s.items, item)
		return
	}

	s.flushList()
	s.paragraph = append(s.paragraph, line)
}

func (s *segmenter) flushParagraph() {
	if len(s.paragraph) == 0 {
		return
	}
	if joinParagraphLines(s.paragraph) != "" {
		s.blocks = append(s.blocks, Paragraph{Lines: s.paragraph})
	}
	s.paragraph = nil
}

func (s *segmenter) flushList() {
	if len(s.items) == 0 {
		return
	}
	s.blocks = append(s.blocks, List{Items: s.items})
	s.items = nil
}

func splitLines(input string) []string {
	return strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
}

// parseHeading matches one to three '#' followed by whitespace. Four or more
// '#' is not a heading.
func parseHeading(trimmed string) (int, string, bool) {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel {
		return 0, "", false
	}
	rest, ok := cutLeadingSpace(trimmed[level:])
	if !ok {
		return 0, "", false
	}
	return level, rest, true
}

// parseListItem matches '-' or '*' followed by whitespace. A bare marker has
// no trailing whitespace once trimmed, so it stays plain text.
func parseListItem(trimmed string) (string, bool) {
	if trimmed == "" || !isBullet(trimmed[0]) {
		return "", false
	}
	return cutLeadingSpace(trimmed[1:])
}

// cutLeadingSpace requires at least one leading whitespace rune and returns
// the remainder with all leading whitespace removed.
func cutLeadingSpace(s string) (string, bool) {
	r, _ := utf8.DecodeRuneInString(s)
	if s == "" || !unicode.IsSpace(r) {
		return "", false
	}
	return strings.TrimLeftFunc(s, unicode.IsSpace), true
}

func joinParagraphLines(lines []string) string {
	return strings.TrimSpace(strings.Join(lines, " "))
}

func isBullet(ch byte) bool {
	return ch == '-' || ch == '*'
}
