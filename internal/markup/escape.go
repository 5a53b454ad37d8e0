package markup

import "strings"

// entities are the references Escape emits. An '&' that already starts one of
// them is copied through, so escaping rendered output is a no-op for entities.
var entities = [...]string{"&amp;", "&lt;", "&gt;", "&quot;", "&#39;"}

// Escape replaces the five markup-significant characters with entity
// references in a single left-to-right pass.
func Escape(text string) string {
	if !strings.ContainsAny(text, `&<>"'`) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '&':
			if n := entityAt(text[i:]); n > 0 {
				b.WriteString(text[i : i+n])
				i += n - 1
				continue
			}
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#39;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func entityAt(s string) int {
	for _, e := range entities {
		if strings.HasPrefix(s, e) {
			return len(e)
		}
	}
	return 0
}
