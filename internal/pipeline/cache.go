package pipeline

import (
	"sync"
	"time"

	"github.com/gunout/Stock-Tracker-Pro-Allemagne/internal/model"
)

// FreshnessWindow is the maximum age at which a cached dataset may still be
// served as a fallback.
const FreshnessWindow = time.Hour

// Entry is the most recent successfully retrieved dataset for one symbol.
type Entry struct {
	Series      []model.OHLCV
	Meta        model.Metadata
	RetrievedAt time.Time
}

// Fresh reports whether the entry is still within the freshness window.
func (e Entry) Fresh(now time.Time) bool {
	return now.Sub(e.RetrievedAt) < FreshnessWindow
}

// Cache holds one entry per symbol, last-write-wins, and is safe for
// concurrent use: the pipeline mutates it outside the session mutex, so it
// carries its own lock. Stale entries are ignored rather than evicted;
// growth is bounded by the size of a user-curated watchlist.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Put stores the dataset for a symbol, overwriting any prior entry.
func (c *Cache) Put(symbol string, series []model.OHLCV, meta model.Metadata, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[symbol] = Entry{Series: series, Meta: meta, RetrievedAt: at}
}

// Get returns the entry for a symbol, fresh or not.
func (c *Cache) Get(symbol string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[symbol]
	return e, ok
}

// Clear drops all entries. Used when a session leaves demonstration mode.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}
