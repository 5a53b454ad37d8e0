package markup

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`<script>alert("x") & 'y'</script>`, "&lt;script&gt;alert(&quot;x&quot;) &amp; &#39;y&#39;&lt;/script&gt;"},
		{"&amp;", "&amp;"},
		{"&lt;&gt;&quot;&#39;", "&lt;&gt;&quot;&#39;"},
		{"&amp", "&amp;amp"},
		{"&nbsp;", "&amp;nbsp;"},
		{"&&", "&amp;&amp;"},
		{"Zażółć & gęślą", "Zażółć &amp; gęślą"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Fatalf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeIsIdempotent(t *testing.T) {
	in := `a < b && "c" > 'd'`
	once := Escape(in)
	if twice := Escape(once); twice != once {
		t.Fatalf("Escape not idempotent:\n once: %q\ntwice: %q", once, twice)
	}
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"code", "use `go test`", "use <code>go test</code>"},
		{"code content stays escaped once", "`<b>&</b>`", "<code>&lt;b&gt;&amp;&lt;/b&gt;</code>"},
		{"unterminated code", "`code", "`code"},
		{"empty code", "``", "``"},
		{"empty code then span", "``x`", "`<code>x</code>"},
		{"strong", "**Bold**", "<strong>Bold</strong>"},
		{"emphasis", "*it*", "<em>it</em>"},
		{"strong before emphasis", "**bold** and *it*", "<strong>bold</strong> and <em>it</em>"},
		{"only asterisks", "****", "****"},
		{"asterisk inside strong falls back to emphasis", "**a*b**", "*<em>a</em>b**"},
		{"unterminated strong", "**open", "**open"},
		{"later stages see code output", "`a*b*c`", "<code>a<em>b</em>c</code>"},
		{"link", "[Site](https://example.com)", `<a href="https://example.com" target="_blank" rel="noopener">Site</a>`},
		{"link label keeps strong", "[**x**](http://a)", `<a href="http://a" target="_blank" rel="noopener"><strong>x</strong></a>`},
		{"link label may hold bracket", "[[a](b)", `<a href="b" target="_blank" rel="noopener">[a</a>`},
		{"empty label", "[](x)", "[](x)"},
		{"empty target", "[x]()", "[x]()"},
		{"space before target", "[label] (x)", "[label] (x)"},
		{"unclosed target", "[label](no close", "[label](no close"},
		{"two links", "[a](1) and [b](2)", `<a href="1" target="_blank" rel="noopener">a</a> and <a href="2" target="_blank" rel="noopener">b</a>`},
		{
			"attribute breakout stays inside href",
			`[x](http://a" onclick="alert(1))`,
			`<a href="http://a&quot; onclick=&quot;alert(1" target="_blank" rel="noopener">x</a>)`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderInline(tt.in); got != tt.want {
				t.Fatalf("RenderInline(%q)\n got: %q\nwant: %q", tt.in, got, tt.want)
			}
		})
	}
}
