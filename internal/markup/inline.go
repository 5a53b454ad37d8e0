package markup

import "strings"

// RenderInline escapes text and applies the inline substitutions. The stage
// order is part of the contract:
//
//  1. escape & < > " '
//  2. `code`
//  3. **strong**
//  4. *em*
//  5. [label](target)
//
// Every stage runs on the output of the previous one as a single
// left-to-right pass over non-overlapping matches. Later stages see tags
// emitted by earlier ones; earlier stages never run again. Bold runs before
// italic so the italic pass never sees the outer asterisks of a bold span.
func (r Renderer) RenderInline(text string) string {
	html := Escape(text)
	html = replaceCodeSpans(html)
	html = replaceStrong(html)
	html = replaceEmphasis(html)
	html = r.replaceLinks(html)
	return html
}

// RenderInline renders text with the zero Renderer.
func RenderInline(text string) string {
	return Renderer{}.RenderInline(text)
}

func replaceCodeSpans(s string) string {
	return replaceDelimited(s, "`", '`', "code")
}

func replaceStrong(s string) string {
	return replaceDelimited(s, "**", '*', "strong")
}

func replaceEmphasis(s string) string {
	return replaceDelimited(s, "*", '*', "em")
}

// replaceDelimited wraps delim-enclosed runs in tag. The content must be
// non-empty and must not contain stop; the first stop after the opener
// decides the match. An opener without a valid closer is kept as text and
// scanning resumes one byte later.
func replaceDelimited(s, delim string, stop byte, tag string) string {
	if !strings.Contains(s, delim) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	i := 0
	for i < len(s) {
		if !strings.HasPrefix(s[i:], delim) {
			b.WriteByte(s[i])
			i++
			continue
		}
		start := i + len(delim)
		end := findClosingDelimiter(s, start, delim, stop)
		if end == -1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		b.WriteString("<" + tag + ">")
		b.WriteString(s[start:end])
		b.WriteString("</" + tag + ">")
		i = end + len(delim)
	}
	return b.String()
}

// findClosingDelimiter returns the index of the closing delim for content
// starting at start, or -1.
func findClosingDelimiter(s string, start int, delim string, stop byte) int {
	offset := strings.IndexByte(s[start:], stop)
	if offset <= 0 {
		return -1
	}
	end := start + offset
	if !strings.HasPrefix(s[end:], delim) {
		return -1
	}
	return end
}

func (r Renderer) replaceLinks(s string) string {
	if !strings.Contains(s, "](") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 48)
	i := 0
	for i < len(s) {
		if s[i] != '[' {
			b.WriteByte(s[i])
			i++
			continue
		}
		label, target, consumed, ok := parseLink(s[i:])
		if !ok || !r.allowLink(target) {
			b.WriteByte(s[i])
			i++
			continue
		}
		b.WriteString(`<a href="`)
		b.WriteString(target)
		b.WriteString(`" target="_blank" rel="noopener">`)
		b.WriteString(label)
		b.WriteString("</a>")
		i += consumed
	}
	return b.String()
}

// parseLink matches [label](target) at the start of s. The label runs to the
// first ']' and the target to the first ')'; both must be non-empty.
func parseLink(s string) (label, target string, consumed int, ok bool) {
	closeBracket := strings.IndexByte(s[1:], ']')
	if closeBracket <= 0 {
		return "", "", 0, false
	}
	closeBracket++
	if closeBracket+1 >= len(s) || s[closeBracket+1] != '(' {
		return "", "", 0, false
	}
	targetStart := closeBracket + 2
	closeParen := strings.IndexByte(s[targetStart:], ')')
	if closeParen <= 0 {
		return "", "", 0, false
	}
	closeParen += targetStart
	return s[1:closeBracket], s[targetStart:closeParen], closeParen + 1, true
}
