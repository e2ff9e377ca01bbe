package sloc

// FileScanner discovers the files to count below a path.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileScanner interface {
	// Scan walks path (a file or a directory) and returns the files that
	// pass the configured filters, in lexical order of their paths.
	Scan(path string) ([]FileEntry, error)
}

// FileEntry is one file selected for counting.
type FileEntry struct {
	// Path is the path used to read the file.
	Path string

	// RelativePath is Path relative to the scanned root, with forward slashes.
	RelativePath string

	// Language is the detected language id. It may name a language that
	// has no grammar (an extra extension); classification then falls back
	// to plain text.
	Language string

	// SizeBytes is the file size reported by the filesystem.
	SizeBytes int64
}
