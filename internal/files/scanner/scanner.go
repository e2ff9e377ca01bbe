package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/sloc/internal/files/filesystem"
	"github.com/vvka-141/sloc/internal/grammar"
	"github.com/vvka-141/sloc/pkg/sloc"
)

// vcsDirectories are never descended into.
var vcsDirectories = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// Options controls which files a Scanner selects.
type Options struct {
	// IncludeExtensions adds extensions to the default set. Extensions
	// unknown to the grammar table are counted as plain text.
	IncludeExtensions []string

	// IgnoreExtensions removes extensions from the selected set.
	IgnoreExtensions []string

	// IgnoreDefault drops the grammar table's extensions, leaving only
	// IncludeExtensions. It requires at least one include.
	IgnoreDefault bool

	// IgnorePaths are doublestar globs matched against slash-separated
	// paths relative to the scanned root. A pattern matching a directory
	// excludes everything below it.
	IgnorePaths []string
}

// Scanner discovers the files to count below a path.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	table       *grammar.Table
	fsProvider  filesystem.FileSystemProvider
	include     map[string]bool
	ignore      map[string]bool
	ignoreAll   bool
	ignorePaths []string
}

// NewScanner creates a file scanner over the OS filesystem.
// A nil table uses grammar.Default().
func NewScanner(table *grammar.Table, opts Options) (*Scanner, error) {
	return NewScannerWithFS(table, filesystem.NewOSFileSystem(), opts)
}

// NewScannerWithFS creates a file scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(table *grammar.Table, fsProvider filesystem.FileSystemProvider, opts Options) (*Scanner, error) {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if table == nil {
		table = grammar.Default()
	}

	include := NormalizeExtensions(opts.IncludeExtensions)
	if opts.IgnoreDefault && len(include) == 0 {
		return nil, fmt.Errorf("ignore-default was set but no file extensions were specified: %w", sloc.ErrInvalidConfig)
	}

	var ignorePaths []string
	for _, pattern := range opts.IgnorePaths {
		pattern = strings.Trim(filepath.ToSlash(strings.TrimSpace(pattern)), "/")
		pattern = strings.TrimPrefix(pattern, "./")
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, sloc.ErrInvalidConfig)
		}
		ignorePaths = append(ignorePaths, pattern)
	}

	return &Scanner{
		table:       table,
		fsProvider:  fsProvider,
		include:     toSet(include),
		ignore:      toSet(NormalizeExtensions(opts.IgnoreExtensions)),
		ignoreAll:   opts.IgnoreDefault,
		ignorePaths: ignorePaths,
	}, nil
}

// Scan walks root, which may be a file or a directory, and returns the
// selected files in lexical order. The error wraps sloc.ErrPathNotFound
// when root does not exist.
func (s *Scanner) Scan(root string) ([]sloc.FileEntry, error) {
	info, err := s.fsProvider.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", root, sloc.ErrPathNotFound)
		}
		return nil, fmt.Errorf("failed to access %s: %w", root, err)
	}

	if !info.IsDir() {
		entry, ok := s.selectFile(root, info.Name(), info.Size())
		if !ok {
			return nil, nil
		}
		return []sloc.FileEntry{entry}, nil
	}

	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}

	var entries []sloc.FileEntry
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		relPath := file.RelativePath()
		if file.Info().IsDir() {
			if relPath == "." {
				return nil
			}
			if vcsDirectories[file.Info().Name()] || s.ignoredPath(relPath) {
				return filesystem.SkipDir
			}
			return nil
		}

		if !file.Info().Mode().IsRegular() || s.ignoredPath(relPath) {
			return nil
		}

		entry, ok := s.selectFile(file.Path(), relPath, file.Info().Size())
		if ok {
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// selectFile applies the extension filters and detects the language.
func (s *Scanner) selectFile(filePath, relPath string, size int64) (sloc.FileEntry, bool) {
	ext := strings.ToLower(path.Ext(relPath))
	if s.ignore[ext] {
		return sloc.FileEntry{}, false
	}

	language, known := s.table.Detect(relPath)
	switch {
	case s.include[ext]:
		if !known {
			language = strings.TrimPrefix(ext, ".")
		}
	case s.ignoreAll || !known:
		return sloc.FileEntry{}, false
	}

	return sloc.FileEntry{
		Path:         filePath,
		RelativePath: relPath,
		Language:     language,
		SizeBytes:    size,
	}, true
}

// ignoredPath reports whether relPath matches an ignore pattern.
func (s *Scanner) ignoredPath(relPath string) bool {
	for _, pattern := range s.ignorePaths {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, path.Base(relPath)); ok && !strings.Contains(pattern, "/") {
			return true
		}
	}
	return false
}

// NormalizeExtensions lowercases extensions, trims spaces and gives each a
// single leading dot. Empty entries are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimLeft(strings.TrimSpace(ext), "."))
		if ext == "" {
			continue
		}
		out = append(out, "."+ext)
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// Verify Scanner implements the interface at compile time
var _ sloc.FileScanner = (*Scanner)(nil)
