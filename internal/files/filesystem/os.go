package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// osFile implements File interface for OS filesystem
type osFile struct {
	absPath string
	relPath string
	info    fs.FileInfo
}

func (f *osFile) Path() string         { return f.absPath }
func (f *osFile) RelativePath() string { return f.relPath }
func (f *osFile) Info() FileInfo       { return f.info }

func (f *osFile) ReadContent() ([]byte, error) {
	return os.ReadFile(f.absPath)
}

// osDirectory implements Directory interface for OS filesystem
type osDirectory struct {
	absPath string
}

func (d *osDirectory) Path() string { return d.absPath }

func (d *osDirectory) Walk(fn func(File, error) error) error {
	return filepath.WalkDir(d.absPath, func(path string, entry fs.DirEntry, walkErr error) error {
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", path, r)
				}
			}()

			if walkErr != nil {
				callbackErr = fn(nil, fmt.Errorf("%s: %w", path, walkErr))
				return
			}

			info, err := entry.Info()
			if err != nil {
				callbackErr = fn(nil, fmt.Errorf("failed to stat %s: %w", path, err))
				return
			}

			relPath, err := filepath.Rel(d.absPath, path)
			if err != nil {
				callbackErr = fn(nil, fmt.Errorf("failed to get relative path: %w", err))
				return
			}

			callbackErr = fn(&osFile{
				absPath: path,
				relPath: filepath.ToSlash(relPath),
				info:    info,
			}, nil)
		}()

		// SkipDir on a file would skip its remaining siblings.
		if errors.Is(callbackErr, fs.SkipDir) && (entry == nil || !entry.IsDir()) {
			return nil
		}
		return callbackErr
	})
}

// OSFileSystem implements FileSystemProvider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Open(path string) (Directory, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	return &osDirectory{absPath: absPath}, nil
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

// Verify OSFileSystem implements the interface at compile time
var _ FileSystemProvider = (*OSFileSystem)(nil)
