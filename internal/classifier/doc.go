// Package classifier counts the blank, comment and code lines of a file.
//
// A Classifier decodes file content to UTF-8, splits it into physical
// lines and threads a linescan.LexState through a linescan.LineScanner
// built for the file's grammar. Unknown languages fall back to the
// plain-text grammar, in which every non-blank line is code.
//
// # Decoding
//
// Content is decoded in this order:
//
//  1. A UTF-8 byte order mark is dropped
//  2. A UTF-16 byte order mark selects UTF-16 decoding
//  3. Otherwise the encoding declared with WithEncoding is used, if any
//
// Content containing NUL bytes in its first sloc.BinarySniffLength bytes,
// or that is not valid UTF-8 after decoding, is rejected with an error
// wrapping sloc.ErrUnreadableInput.
//
// # Caching
//
// Cached wraps any sloc.Classifier with an LRU cache keyed by the language
// and a normalized content checksum, so vendored copies and generated
// duplicates are scanned once.
//
// # Thread Safety
//
// Classifier and Cached are safe for concurrent use by multiple goroutines.
package classifier
