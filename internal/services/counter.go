package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/sloc/internal/files/filesystem"
	"github.com/vvka-141/sloc/pkg/sloc"
)

// Counter classifies batches of files with a bounded worker pool.
// Thread-Safety: safe for concurrent Count() calls as long as the injected
// dependencies are.
type Counter struct {
	scanner    sloc.FileScanner
	fsProvider filesystem.FileSystemProvider
	classifier sloc.Classifier
	logger     sloc.Logger
	workers    int
}

// NewCounter creates a Counter with all dependencies injected.
// Panics on nil dependencies. A workers value of zero or less uses
// runtime.NumCPU().
func NewCounter(
	scanner sloc.FileScanner,
	fsProvider filesystem.FileSystemProvider,
	classifier sloc.Classifier,
	logger sloc.Logger,
	workers int,
) *Counter {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Counter{
		scanner:    scanner,
		fsProvider: fsProvider,
		classifier: classifier,
		logger:     logger,
		workers:    workers,
	}
}

// CountPath scans root and counts every selected file.
func (c *Counter) CountPath(ctx context.Context, root string) (sloc.CountResult, error) {
	c.logger.Verbose("Scanning %s", root)

	entries, err := c.scanner.Scan(root)
	if err != nil {
		return sloc.CountResult{}, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	c.logger.Verbose("Selected %d files", len(entries))
	return c.Count(ctx, entries)
}

// fileOutcome is the result for one entry, stored by index to keep order.
type fileOutcome struct {
	summary sloc.FileSummary
	skipped string
}

// Count classifies entries and aggregates the results, preserving entry
// order. Files that cannot be read or decoded are recorded as skipped and
// do not fail the batch. Cancellation is observed between files; a
// cancelled batch returns ctx.Err().
func (c *Counter) Count(ctx context.Context, entries []sloc.FileEntry) (sloc.CountResult, error) {
	outcomes := make([]fileOutcome, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, entry := range entries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, err := c.countFile(entry)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sloc.CountResult{}, ctxErr
		}
		return sloc.CountResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return sloc.CountResult{}, err
	}

	result := sloc.CountResult{
		Files:      make([]sloc.FileResult, 0, len(entries)),
		Skipped:    []sloc.SkippedFile{},
		ByLanguage: make(map[string]sloc.Totals),
	}
	for i, outcome := range outcomes {
		path := entries[i].RelativePath
		if outcome.skipped != "" {
			result.Skipped = append(result.Skipped, sloc.SkippedFile{Path: path, Reason: outcome.skipped})
			continue
		}
		result.Files = append(result.Files, sloc.FileResult{Path: path, Summary: outcome.summary})
		result.Totals.Add(outcome.summary)

		lang := result.ByLanguage[outcome.summary.Language]
		lang.Add(outcome.summary)
		result.ByLanguage[outcome.summary.Language] = lang
	}

	c.logger.Verbose("Counted %d files, skipped %d", len(result.Files), len(result.Skipped))
	return result, nil
}

// countFile reads and classifies one file. Only errors that should abort
// the batch are returned; unreadable files become skipped outcomes.
func (c *Counter) countFile(entry sloc.FileEntry) (fileOutcome, error) {
	content, err := c.fsProvider.ReadFile(entry.Path)
	if err != nil {
		c.logger.Verbose("Skipping %s: %v", entry.RelativePath, err)
		return fileOutcome{skipped: err.Error()}, nil
	}

	summary, err := c.classifier.Classify(content, entry.Language)
	if err != nil {
		if errors.Is(err, sloc.ErrUnreadableInput) {
			c.logger.Verbose("Skipping %s: %v", entry.RelativePath, err)
			return fileOutcome{skipped: err.Error()}, nil
		}
		return fileOutcome{}, fmt.Errorf("failed to classify %s: %w", entry.RelativePath, err)
	}

	if summary.Unterminated {
		c.logger.Verbose("%s ends inside a comment or string", entry.RelativePath)
	}
	return fileOutcome{summary: summary}, nil
}
