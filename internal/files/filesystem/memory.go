package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryEntry is a file or directory stored in a MemoryFileSystem.
type memoryEntry struct {
	absPath string
	content []byte
	info    *memoryFileInfo
	readErr error
}

// memoryFile is the view of an entry handed to Walk callbacks.
type memoryFile struct {
	entry   *memoryEntry
	relPath string
}

func (f *memoryFile) Path() string         { return f.entry.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.entry.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	if f.entry.readErr != nil {
		return nil, f.entry.readErr
	}
	return f.entry.content, nil
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.entriesUnder(d.absPath)

	var skipped []string
	for _, entry := range entries {
		if hasAnyPrefix(entry.absPath, skipped) {
			continue
		}

		relPath := "."
		if entry.absPath != d.absPath {
			relPath = strings.TrimPrefix(entry.absPath, strings.TrimSuffix(d.absPath, "/")+"/")
		}

		// Recover from panics in callback to prevent crashing the entire walk
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			callbackErr = fn(&memoryFile{entry: entry, relPath: relPath}, nil)
		}()

		if errors.Is(callbackErr, fs.SkipDir) {
			if entry.info.isDir {
				if entry.absPath == d.absPath {
					return nil
				}
				skipped = append(skipped, entry.absPath+"/")
			}
			continue
		}
		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes regardless of platform.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	root    string
}

// NewMemoryFileSystem creates a new in-memory filesystem whose relative
// paths resolve against root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.ensureDirectory(root)

	return mfs
}

// AddFile adds a text file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, []byte(content), time.Now())
}

// AddFileBytes adds a file with arbitrary, possibly binary, content
func (mfs *MemoryFileSystem) AddFileBytes(filePath string, content []byte) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content []byte, modTime time.Time) {
	absPath := mfs.resolve(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.entries[absPath] = &memoryEntry{
		absPath: absPath,
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}
	mfs.ensureDirectory(path.Dir(absPath))
}

// AddUnreadableFile adds a file whose ReadContent and ReadFile fail with err.
func (mfs *MemoryFileSystem) AddUnreadableFile(filePath string, err error) {
	absPath := mfs.resolve(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.entries[absPath] = &memoryEntry{
		absPath: absPath,
		readErr: err,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectory(path.Dir(absPath))
}

// ensureDirectory creates directory entries for dir and all its parents.
// Callers hold the write lock or own mfs exclusively.
func (mfs *MemoryFileSystem) ensureDirectory(dir string) {
	for {
		if _, exists := mfs.entries[dir]; exists {
			return
		}
		mfs.entries[dir] = &memoryEntry{
			absPath: dir,
			info: &memoryFileInfo{
				name:    path.Base(dir),
				mode:    0755 | fs.ModeDir,
				modTime: time.Now(),
				isDir:   true,
			},
		}
		parent := path.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// resolve maps a path to its absolute, cleaned, slash-separated form.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// entriesUnder returns basePath and everything below it, sorted by path.
func (mfs *MemoryFileSystem) entriesUnder(basePath string) []*memoryEntry {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	prefix := strings.TrimSuffix(basePath, "/") + "/"
	var entries []*memoryEntry
	for p, entry := range mfs.entries {
		if p == basePath || strings.HasPrefix(p, prefix) {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})
	return entries
}

func (mfs *MemoryFileSystem) lookup(p string) (*memoryEntry, string, bool) {
	absPath := mfs.resolve(p)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, ok := mfs.entries[absPath]
	return entry, absPath, ok
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	entry, absPath, exists := mfs.lookup(openPath)
	if !exists {
		return nil, fmt.Errorf("failed to access path: %s: %w", openPath, fs.ErrNotExist)
	}
	if !entry.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}

	return &memoryDirectory{
		absPath: absPath,
		fs:      mfs,
	}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	entry, _, exists := mfs.lookup(filePath)
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if entry.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	if entry.readErr != nil {
		return nil, entry.readErr
	}

	return entry.content, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	entry, _, exists := mfs.lookup(statPath)
	if !exists {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}

	return entry.info, nil
}

// Verify MemoryFileSystem implements the interface at compile time
var _ FileSystemProvider = (*MemoryFileSystem)(nil)
