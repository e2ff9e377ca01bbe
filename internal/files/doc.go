// Package files groups the file discovery sub-packages.
//
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: walks a path and selects files by extension and ignore globs
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/sloc/internal/files/scanner"
//	    "github.com/vvka-141/sloc/internal/grammar"
//	)
//
//	s, err := scanner.NewScanner(grammar.Default(), scanner.Options{
//	    IgnorePaths: []string{"vendor/**"},
//	})
//	entries, err := s.Scan("./src")
package files
