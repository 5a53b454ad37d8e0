// Package source reads user-authored text for rendering and import,
// decoding the Unicode encodings editors commonly write.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultLimit is the size cap used for request bodies, imports and files
// opened in the editor. A limit of zero or less reads everything.
const DefaultLimit int64 = 4 << 20

const (
	sniffSize = 4096
	// maxControlPercent is the share of C0 control bytes above which
	// content is considered binary.
	maxControlPercent = 10
)

var (
	// ErrBinary is returned when content does not look like text.
	ErrBinary = errors.New("content is not text")
	// ErrTooLarge is returned when content exceeds the read limit. Nothing
	// is returned alongside it, so callers never see a cut-off document.
	ErrTooLarge = errors.New("content exceeds size limit")
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadFile reads path as UTF-8 text. It fails with ErrTooLarge when the file
// holds more than limit bytes.
func ReadFile(path string, limit int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	text, err := ReadAll(f, limit)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// ReadAll reads r to the end as UTF-8 text. It fails with ErrTooLarge when r
// yields more than limit bytes.
func ReadAll(r io.Reader, limit int64) (string, error) {
	content, err := readLimited(r, limit)
	if err != nil {
		return "", err
	}
	if !IsText(content) {
		return "", ErrBinary
	}
	return Normalize(content), nil
}

// readLimited reads one byte past limit so an oversize input is reported
// instead of silently cut.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	content, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > limit {
		return nil, fmt.Errorf("%w of %d bytes", ErrTooLarge, limit)
	}
	return content, nil
}

// IsText sniffs the head of content. Anything with a Unicode BOM is text;
// otherwise NUL bytes or a high share of control bytes mark it binary.
// Invalid UTF-8 is still text and is escaped later like any other input.
func IsText(content []byte) bool {
	sample := content
	if len(sample) > sniffSize {
		sample = sample[:sniffSize]
	}
	if hasBOM(sample) {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}

	control := 0
	for _, b := range sample {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			control++
		}
	}
	return control*100 <= len(sample)*maxControlPercent
}

func hasBOM(sample []byte) bool {
	return bytes.HasPrefix(sample, bomUTF8) ||
		bytes.HasPrefix(sample, bomUTF16LE) ||
		bytes.HasPrefix(sample, bomUTF16BE)
}

// Normalize converts BOM-marked UTF-8 and UTF-16 content into a UTF-8 string.
// Content without a BOM is returned as is, and so is content whose UTF-16
// payload cannot be decoded.
func Normalize(content []byte) string {
	if !hasBOM(content) {
		return string(content)
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
