package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sloc/internal/classifier"
	"github.com/vvka-141/sloc/internal/files/filesystem"
	"github.com/vvka-141/sloc/internal/files/scanner"
	"github.com/vvka-141/sloc/pkg/sloc"
)

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}

type mockScanner struct {
	entries []sloc.FileEntry
	err     error
}

func (m *mockScanner) Scan(_ string) ([]sloc.FileEntry, error) {
	return m.entries, m.err
}

// slowClassifier sleeps longer for earlier files so completion order is
// the reverse of input order.
type slowClassifier struct {
	calls atomic.Int32
}

func (s *slowClassifier) Classify(content []byte, languageID string) (sloc.FileSummary, error) {
	s.calls.Add(1)
	time.Sleep(time.Duration(10-len(content)) * time.Millisecond)
	summary := sloc.FileSummary{Language: languageID}
	for range content {
		summary.Add(sloc.Code)
	}
	return summary, nil
}

type failingClassifier struct{ err error }

func (f *failingClassifier) Classify(_ []byte, _ string) (sloc.FileSummary, error) {
	return sloc.FileSummary{}, f.err
}

func newRealCounter(t *testing.T, mfs *filesystem.MemoryFileSystem, workers int) *Counter {
	t.Helper()
	s, err := scanner.NewScannerWithFS(nil, mfs, scanner.Options{})
	require.NoError(t, err)
	c, err := classifier.New(nil)
	require.NoError(t, err)
	return NewCounter(s, mfs, c, &mockLogger{}, workers)
}

func TestNewCounter_NilArgs(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/")
	c, _ := classifier.New(nil)
	s := &mockScanner{}

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil scanner", func() { NewCounter(nil, mfs, c, &mockLogger{}, 1) }},
		{"nil filesystem", func() { NewCounter(s, nil, c, &mockLogger{}, 1) }},
		{"nil classifier", func() { NewCounter(s, mfs, nil, &mockLogger{}, 1) }},
		{"nil logger", func() { NewCounter(s, mfs, c, nil, 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestNewCounter_DefaultWorkers(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/")
	c, _ := classifier.New(nil)
	counter := NewCounter(&mockScanner{}, mfs, c, &mockLogger{}, 0)
	assert.Greater(t, counter.workers, 0)
}

func TestCountPath_EndToEnd(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/project")
	mfs.AddFile("main.go", "package main\n\n// entry\nfunc main() {}\n")
	mfs.AddFile("lib/util.py", "# helper\ndef f():\n    return 1\n")
	mfs.AddFile("lib/other.go", "/* doc */\npackage lib\n")
	mfs.AddFileBytes("lib/blob.c", []byte("int\x00x;"))
	mfs.AddFile("README", "ignored")

	result, err := newRealCounter(t, mfs, 4).CountPath(context.Background(), "/project")
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, "lib/other.go", result.Files[0].Path)
	assert.Equal(t, "lib/util.py", result.Files[1].Path)
	assert.Equal(t, "main.go", result.Files[2].Path)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "lib/blob.c", result.Skipped[0].Path)
	assert.Contains(t, result.Skipped[0].Reason, "binary")

	assert.Equal(t, sloc.Totals{Files: 3, Lines: 9, Blank: 1, Comment: 3, Code: 5}, result.Totals)
	assert.Equal(t, sloc.Totals{Files: 2, Lines: 6, Blank: 1, Comment: 2, Code: 3}, result.ByLanguage["go"])
	assert.Equal(t, sloc.Totals{Files: 1, Lines: 3, Comment: 1, Code: 2}, result.ByLanguage["python"])
}

func TestCount_PreservesInputOrder(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/p")
	var entries []sloc.FileEntry
	for i := 1; i <= 8; i++ {
		name := string(rune('a'+i)) + ".txt"
		content := make([]byte, i)
		for j := range content {
			content[j] = 'x'
		}
		mfs.AddFileBytes(name, content)
		entries = append(entries, sloc.FileEntry{Path: "/p/" + name, RelativePath: name, Language: "text"})
	}

	cls := &slowClassifier{}
	counter := NewCounter(&mockScanner{}, mfs, cls, &mockLogger{}, 8)

	result, err := counter.Count(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, result.Files, 8)
	for i, f := range result.Files {
		assert.Equal(t, entries[i].RelativePath, f.Path)
		assert.Equal(t, i+1, f.Summary.Lines)
	}
	assert.Equal(t, int32(8), cls.calls.Load())
}

func TestCount_SkipsReadErrors(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/p")
	mfs.AddUnreadableFile("locked.go", errors.New("permission denied"))
	mfs.AddFile("ok.go", "package ok\n")

	result, err := newRealCounter(t, mfs, 2).CountPath(context.Background(), "/p")
	require.NoError(t, err)

	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "locked.go", result.Skipped[0].Path)
	assert.Contains(t, result.Skipped[0].Reason, "permission denied")
	require.Len(t, result.Files, 1)
	assert.Equal(t, 1, result.Totals.Code)
}

func TestCount_AbortsOnUnexpectedClassifierError(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/p")
	mfs.AddFile("a.go", "x")
	boom := errors.New("boom")

	counter := NewCounter(&mockScanner{}, mfs, &failingClassifier{err: boom}, &mockLogger{}, 1)
	_, err := counter.Count(context.Background(), []sloc.FileEntry{{Path: "/p/a.go", RelativePath: "a.go", Language: "go"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestCount_Cancelled(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/p")
	mfs.AddFile("a.go", "package a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRealCounter(t, mfs, 1).CountPath(ctx, "/p")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, sloc.ExitCancelled, sloc.ExitCodeForError(err))
}

func TestCountPath_ScanError(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/p")

	_, err := newRealCounter(t, mfs, 1).CountPath(context.Background(), "/missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sloc.ErrPathNotFound))
}

func TestCount_Empty(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/p")

	result, err := newRealCounter(t, mfs, 1).Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, sloc.Totals{}, result.Totals)
}

func TestCount_WithCachedClassifier(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/p")
	for _, name := range []string{"a.go", "b.go", "vendor/c.go"} {
		mfs.AddFile(name, "package x\n// same\n")
	}

	s, err := scanner.NewScannerWithFS(nil, mfs, scanner.Options{})
	require.NoError(t, err)
	base, err := classifier.New(nil)
	require.NoError(t, err)
	cached, err := classifier.NewCached(base, 16)
	require.NoError(t, err)

	result, err := NewCounter(s, mfs, cached, &mockLogger{}, 1).CountPath(context.Background(), "/p")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Totals.Files)
	assert.Equal(t, 3, result.Totals.Comment)
	hits, misses := cached.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}
