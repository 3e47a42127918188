package http

import (
	"context"
	"sync"

	"github.com/aquawatch/bloom-risk-engine/internal/domain"
	"github.com/aquawatch/bloom-risk-engine/internal/observability"
)

// BundleCache is a thread-safe LRU of the most recent assessment bundle
// per site, backing the read-side /assess endpoint.
type BundleCache struct {
	maxEntries int
	metrics    *observability.Metrics
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.AssessmentBundle
	prev  *entry
	next  *entry
}

// NewBundleCache creates a cache holding at most maxEntries sites.
func NewBundleCache(maxEntries int, metrics *observability.Metrics) *BundleCache {
	return &BundleCache{
		maxEntries: maxEntries,
		metrics:    metrics,
		entries:    make(map[string]*entry),
	}
}

// Get returns the latest bundle for a site, if one has been scored.
func (c *BundleCache) Get(siteID string) (domain.AssessmentBundle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[siteID]
	if !ok {
		c.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return domain.AssessmentBundle{}, false
	}
	c.moveToFront(e)
	c.metrics.CacheLookups.WithLabelValues("hit").Inc()
	return e.value, true
}

// Put stores the latest bundle for a site, evicting the least recently
// used site when full.
func (c *BundleCache) Put(bundle domain.AssessmentBundle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[bundle.SiteID]; ok {
		e.value = bundle
		c.moveToFront(e)
		return
	}

	e := &entry{key: bundle.SiteID, value: bundle}
	c.entries[bundle.SiteID] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *BundleCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *BundleCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *BundleCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *BundleCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}

// BatchLoader matches the pipeline's loader stage so the recording
// decorator can wrap any sink.
type BatchLoader interface {
	LoadBatch(ctx context.Context, bundles []domain.AssessmentBundle) error
}

// RecordingLoader tees loaded bundles into the cache after the primary
// sink accepts them, so the HTTP surface always reflects what was
// actually published.
type RecordingLoader struct {
	next  BatchLoader
	cache *BundleCache
}

// NewRecordingLoader decorates a loader with cache recording.
func NewRecordingLoader(next BatchLoader, cache *BundleCache) *RecordingLoader {
	return &RecordingLoader{next: next, cache: cache}
}

func (l *RecordingLoader) LoadBatch(ctx context.Context, bundles []domain.AssessmentBundle) error {
	if err := l.next.LoadBatch(ctx, bundles); err != nil {
		return err
	}
	for _, b := range bundles {
		l.cache.Put(b)
	}
	return nil
}
