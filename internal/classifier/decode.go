package classifier

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	xunicode "golang.org/x/text/encoding/unicode"

	"github.com/vvka-141/sloc/pkg/sloc"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// resolveEncoding maps an IANA name to a decoder. UTF-8 and the empty
// name return nil: content is validated as UTF-8 directly.
func resolveEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, sloc.ErrInvalidConfig)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, sloc.ErrInvalidConfig)
	}
	return enc, nil
}

// decode turns raw file bytes into UTF-8 text.
// A byte order mark takes precedence over the declared encoding.
func decode(content []byte, declared encoding.Encoding) (string, error) {
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		content = content[len(bomUTF8):]
	case bytes.HasPrefix(content, bomUTF16LE), bytes.HasPrefix(content, bomUTF16BE):
		decoded, err := xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewDecoder().Bytes(content)
		if err != nil {
			return "", fmt.Errorf("invalid UTF-16: %w", sloc.ErrUnreadableInput)
		}
		content = decoded
	case declared != nil:
		decoded, err := declared.NewDecoder().Bytes(content)
		if err != nil {
			return "", fmt.Errorf("cannot decode content: %v: %w", err, sloc.ErrUnreadableInput)
		}
		content = decoded
	}

	sniff := content
	if len(sniff) > sloc.BinarySniffLength {
		sniff = sniff[:sloc.BinarySniffLength]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		return "", fmt.Errorf("binary content: %w", sloc.ErrUnreadableInput)
	}

	if !utf8.Valid(content) {
		return "", fmt.Errorf("invalid UTF-8: %w", sloc.ErrUnreadableInput)
	}

	return string(content), nil
}

// forEachLine calls fn for every physical line of text without its
// terminator. A trailing newline does not start an extra line.
func forEachLine(text string, fn func(line string)) {
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			fn(strings.TrimSuffix(text, "\r"))
			return
		}
		fn(strings.TrimSuffix(text[:i], "\r"))
		text = text[i+1:]
	}
}
