package classifier

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vvka-141/sloc/internal/checksum"
	"github.com/vvka-141/sloc/pkg/sloc"
)

// Cached memoizes another Classifier by content. Files with identical
// content (after BOM and line-ending normalization) and the same language
// are classified once. Errors are never cached.
type Cached struct {
	inner  sloc.Classifier
	cache  *lru.Cache[string, sloc.FileSummary]
	hasher checksum.Calculator
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCached wraps inner with an LRU cache holding up to size summaries.
// A size of zero or less uses sloc.DefaultCacheSize.
func NewCached(inner sloc.Classifier, size int) (*Cached, error) {
	if inner == nil {
		return nil, fmt.Errorf("cached classifier requires an inner classifier")
	}
	if size <= 0 {
		size = sloc.DefaultCacheSize
	}
	cache, err := lru.New[string, sloc.FileSummary](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create classification cache: %w", err)
	}
	return &Cached{
		inner:  inner,
		cache:  cache,
		hasher: checksum.New(),
	}, nil
}

// Classify returns the cached summary for content, classifying on a miss.
func (c *Cached) Classify(content []byte, languageID string) (sloc.FileSummary, error) {
	key := languageID + ":" + c.hasher.CalculateNormalized(content)
	if summary, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return summary, nil
	}
	c.misses.Add(1)

	summary, err := c.inner.Classify(content, languageID)
	if err != nil {
		return sloc.FileSummary{}, err
	}
	c.cache.Add(key, summary)
	return summary, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *Cached) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached summaries.
func (c *Cached) Len() int {
	return c.cache.Len()
}

var _ sloc.Classifier = (*Cached)(nil)
