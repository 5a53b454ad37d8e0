// Package markup renders a small, safe markup dialect to HTML.
//
// The dialect has three block kinds and four inline kinds:
//
//	# Heading (levels 1-3)
//	- list item (or "* item")
//	paragraph text with **bold**, *italic*, `code` and [links](https://example.com)
//
// All user text is escaped before any tag is wrapped around it, so the output
// only ever contains tags from a fixed set: h1-h3, ul, li, p, code, strong, em
// and a. Anything that does not match a pattern is kept as escaped text.
//
// Rendering is pure and keeps no state between calls. A Renderer is safe for
// concurrent use.
package markup

import (
	"io"
	"strconv"
	"strings"
)

// Renderer converts markup to HTML. The zero value accepts every link target.
type Renderer struct {
	// Links filters link targets. Nil allows all.
	Links LinkPolicy
}

// Render renders input with the zero Renderer.
func Render(input string) string {
	return Renderer{}.Render(input)
}

// Render returns the HTML for input. Empty input yields an empty string.
func (r Renderer) Render(input string) string {
	if input == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(input) + len(input)/4)
	r.build(&b, Segment(input))
	return b.String()
}

// RenderTo writes the HTML for input to w, one block at a time.
func (r Renderer) RenderTo(w io.Writer, input string) error {
	if input == "" {
		return nil
	}
	return r.write(w, Segment(input))
}

// RenderBlocks serializes already segmented blocks.
func (r Renderer) RenderBlocks(blocks []Block) string {
	var b strings.Builder
	r.build(&b, blocks)
	return b.String()
}

// build writes blocks into b. Writes to a strings.Builder cannot fail.
func (r Renderer) build(b *strings.Builder, blocks []Block) {
	_ = r.write(b, blocks)
}

func (r Renderer) write(w io.Writer, blocks []Block) error {
	for i, block := range blocks {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, r.renderBlock(block)); err != nil {
			return err
		}
	}
	return nil
}

func (r Renderer) renderBlock(block Block) string {
	switch b := block.(type) {
	case Heading:
		tag := "h" + strconv.Itoa(clampLevel(b.Level))
		return "<" + tag + ">" + r.RenderInline(b.Text) + "</" + tag + ">"
	case List:
		var sb strings.Builder
		sb.WriteString("<ul>")
		for _, item := range b.Items {
			sb.WriteString("<li>")
			sb.WriteString(r.RenderInline(item))
			sb.WriteString("</li>")
		}
		sb.WriteString("</ul>")
		return sb.String()
	case Paragraph:
		return "<p>" + r.RenderInline(b.Text()) + "</p>"
	default:
		return ""
	}
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > maxHeadingLevel {
		return maxHeadingLevel
	}
	return level
}

// BlockStats counts blocks by kind.
type BlockStats struct {
	Headings   int
	Lists      int
	ListItems  int
	Paragraphs int
}

// Stats segments input and counts the resulting blocks.
func Stats(input string) BlockStats {
	var st BlockStats
	for _, block := range Segment(input) {
		switch b := block.(type) {
		case Heading:
			st.Headings++
		case List:
			st.Lists++
			st.ListItems += len(b.Items)
		case Paragraph:
			st.Paragraphs++
		}
	}
	return st
}

// Total reports the number of blocks.
func (s BlockStats) Total() int {
	return s.Headings + s.Lists + s.Paragraphs
}
