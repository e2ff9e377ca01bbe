package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// SkipDir may be returned by a Walk callback for a directory entry to skip
// that directory's contents. It is the same value as fs.SkipDir.
var SkipDir = fs.SkipDir

// File represents an individual file with its metadata and content accessor
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the slash-separated path relative to the walked directory
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree in lexical order, calling fn for
	// each file and directory, starting with the directory itself.
	// Returning SkipDir for a directory skips its contents; any other
	// error stops the walk and is returned.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is a factory for creating Directory instances
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path. The error wraps
	// fs.ErrNotExist when nothing exists at path.
	Stat(path string) (FileInfo, error)
}
