package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// Calculator is an interface for computing content checksums.
// This abstraction allows for different checksum strategies and algorithms.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum that ignores differences which
	// cannot change a line classification: a UTF-8 byte order mark and
	// CRLF versus LF line endings.
	CalculateNormalized(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
// Using value semantics (pass by value) eliminates heap allocations.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
// Returns by value to avoid heap allocation (SHA256 is a zero-size type).
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
// The hash is streamed so normalization does not copy the content.
func (c SHA256) CalculateNormalized(content []byte) string {
	h := sha256.New()
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	for len(content) > 0 {
		i := bytes.Index(content, []byte("\r\n"))
		if i < 0 {
			h.Write(content)
			break
		}
		h.Write(content[:i])
		h.Write([]byte{'\n'})
		content = content[i+2:]
	}

	return hex.EncodeToString(h.Sum(nil))
}
