// Package checksum provides content hashing with normalization support.
//
// Two checksums are offered:
//
//   - Raw checksum: Hash of the exact file content (detects all changes)
//   - Normalized checksum: Hash after dropping a UTF-8 byte order mark and
//     folding CRLF line endings to LF
//
// The normalized checksum identifies content whose line classification is
// necessarily identical, and keys the classification cache.
//
// # Example Usage
//
//	calculator := checksum.New()
//	rawChecksum := calculator.CalculateRaw(fileContent)
//	normalizedChecksum := calculator.CalculateNormalized(fileContent)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
