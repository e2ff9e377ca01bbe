// Package linescan classifies single physical lines as code, comment or
// blank.
//
// A LineScanner is parameterized by a grammar and carries no mutable state:
// the lexical mode that crosses a line boundary (inside a block comment,
// inside a string) is passed in and returned as a LexState value, so the
// caller threads it from one line to the next.
//
// # Scanning Rules
//
// Each line is scanned once, left to right, without lookback. In normal
// mode every position is tested for, in order:
//  1. a literal token (a character literal holding a quote)
//  2. a raw-string opener, then a dollar quote where enabled
//  3. a quote
//  4. a comment opener: block or line, the longer one winning and the
//     block opener on a tie
//
// Within one category the first declared marker wins. A line-comment
// marker ends the scan. Strings count as code.
//
// # Thread Safety
//
// LineScanner is safe for concurrent use by multiple goroutines.
package linescan
