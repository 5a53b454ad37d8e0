package markup

import (
	"strings"
	"unicode"

	"github.com/kk-code-lab/plugtrack/internal/textutil"
)

// LinkPolicy decides whether a link target may become an anchor. It receives
// the target with the renderer's own entity references decoded. A rejected
// link is left as literal text.
type LinkPolicy func(target string) bool

var unsafeSchemes = []string{"javascript:", "vbscript:", "data:", "file:"}

var entityDecoder = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// SafeLinks rejects script-capable schemes, protocol-relative targets and
// targets carrying bidi or zero-width formatting runes.
func SafeLinks(target string) bool {
	_, ok := sanitizeLinkDestination(target)
	return ok
}

func sanitizeLinkDestination(target string) (string, bool) {
	dest := strings.TrimSpace(target)
	if dest == "" {
		return "", false
	}
	if textutil.HasFormattingRunes(dest) {
		return "", false
	}
	if strings.HasPrefix(dest, "//") || strings.HasPrefix(dest, `\\`) {
		return "", false
	}
	// Browsers ignore ASCII whitespace and control characters inside a
	// scheme, so "java\tscript:" must be caught too.
	scheme := strings.Map(func(r rune) rune {
		if r <= 0x20 || r == 0x7f || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, dest)
	for _, unsafe := range unsafeSchemes {
		if strings.HasPrefix(scheme, unsafe) {
			return "", false
		}
	}
	return dest, true
}

func (r Renderer) allowLink(escapedTarget string) bool {
	if r.Links == nil {
		return true
	}
	return r.Links(entityDecoder.Replace(escapedTarget))
}
