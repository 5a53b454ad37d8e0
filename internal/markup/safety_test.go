package markup

import (
	"math/rand"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

var allowedTags = map[string]struct{}{
	"h1": {}, "h2": {}, "h3": {},
	"ul": {}, "li": {}, "p": {},
	"code": {}, "strong": {}, "em": {}, "a": {},
}

var anchorAttrs = map[string]struct{}{"href": {}, "target": {}, "rel": {}}

// assertSafeHTML tokenizes out and fails when a tag outside the fixed set
// appears or when literal text carries an unescaped significant character.
func assertSafeHTML(t testing.TB, input, out string) {
	t.Helper()
	z := html.NewTokenizer(strings.NewReader(out))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return
		case html.TextToken:
			checkText(t, input, string(z.Raw()))
		case html.StartTagToken, html.EndTagToken:
			tok := z.Token()
			if _, ok := allowedTags[tok.Data]; !ok {
				t.Fatalf("input %q produced disallowed tag %q in %q", input, tok.Data, out)
			}
			for _, attr := range tok.Attr {
				if tok.Data != "a" {
					t.Fatalf("input %q produced attribute %q on <%s>", input, attr.Key, tok.Data)
				}
				if _, ok := anchorAttrs[attr.Key]; !ok {
					t.Fatalf("input %q produced anchor attribute %q in %q", input, attr.Key, out)
				}
			}
		default:
			t.Fatalf("input %q produced unexpected %v token in %q", input, tt, out)
		}
	}
}

func checkText(t testing.TB, input, raw string) {
	t.Helper()
	if strings.ContainsAny(raw, `<>"'`) {
		t.Fatalf("input %q left a significant character in text %q", input, raw)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] == '&' && entityAt(raw[i:]) == 0 {
			t.Fatalf("input %q left a bare '&' in text %q", input, raw)
		}
	}
}

var hostileInputs = []string{
	`<script>alert(1)</script>`,
	`<img src=x onerror=alert(1)>`,
	`"><svg onload=alert(1)>`,
	`[x](" onmouseover="alert(1))`,
	`[<b>x</b>](javascript:alert(1))`,
	"`</code><script>`",
	`**<i>**`,
	`*<em>*`,
	`# <h1>`,
	`- <li>`,
	`&lt;script&gt; &amp;lt; &#60; &#x3c;`,
	`a & b && c &; &#; &#39`,
	"<!-- comment -->",
	"<!DOCTYPE html>",
	`[a](b)](c)`,
	"' OR '1'='1",
}

func TestRenderNeverEmitsUnsafeMarkup(t *testing.T) {
	for _, input := range hostileInputs {
		assertSafeHTML(t, input, Render(input))
		assertSafeHTML(t, input, Renderer{Links: SafeLinks}.Render(input))
	}
}

func TestRenderRandomInputsAreSafe(t *testing.T) {
	const alphabet = "&<>\"'`*[]()#- \nab/:"
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		n := rng.Intn(48)
		buf := make([]byte, n)
		for j := range buf {
			buf[j] = alphabet[rng.Intn(len(alphabet))]
		}
		input := string(buf)
		out := Render(input)
		assertSafeHTML(t, input, out)
		if again := Render(input); again != out {
			t.Fatalf("render of %q is not deterministic", input)
		}
		if twice := Render(out); strings.Contains(twice, "&amp;amp;") {
			t.Fatalf("re-render of %q double-escaped: %q", input, twice)
		}
	}
}

func FuzzRender(f *testing.F) {
	for _, seed := range hostileInputs {
		f.Add(seed)
	}
	f.Add("# Title\n- One\n- Two\n\n**Bold** and *italic* with `code` [Site](https://example.com)")
	f.Fuzz(func(t *testing.T, input string) {
		assertSafeHTML(t, input, Render(input))
	})
}
