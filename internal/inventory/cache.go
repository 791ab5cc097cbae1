package inventory

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/lootvault/lootvault/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// Default catalog cache sizing. Boxes are few and read-heavy; items are
// looked up per inventory row.
const (
	DefaultBoxCacheSize  = 64
	DefaultItemCacheSize = 2048
	DefaultCacheTTL      = 5 * time.Minute
)

// cachedBoxEntry wraps a box and its item pool with version metadata
// for cache invalidation.
type cachedBoxEntry struct {
	Version  string
	Box      *domain.Box
	Items    []domain.Item
	CachedAt time.Time
}

// catalogCache provides in-memory LRU caches over the item catalog
// with time-based expiration. Admin catalog edits are rare enough that
// a short TTL keeps reads fresh without touching the database per draw.
type catalogCache struct {
	boxes *expirable.LRU[int, *cachedBoxEntry]
	items *expirable.LRU[int, *domain.Item]
}

func newCatalogCache(boxSize, itemSize int, ttl time.Duration) *catalogCache {
	return &catalogCache{
		boxes: expirable.NewLRU[int, *cachedBoxEntry](boxSize, nil, ttl),
		items: expirable.NewLRU[int, *domain.Item](itemSize, nil, ttl),
	}
}

// GetBox retrieves a box and its pool from the cache.
func (c *catalogCache) GetBox(boxID int) (*domain.Box, []domain.Item, bool) {
	entry, found := c.boxes.Get(boxID)
	if !found {
		return nil, nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.boxes.Remove(boxID)
		return nil, nil, false
	}
	return entry.Box, entry.Items, true
}

// SetBox stores a box and its pool in the cache.
func (c *catalogCache) SetBox(box *domain.Box, items []domain.Item) {
	c.boxes.Add(box.ID, &cachedBoxEntry{
		Version:  CacheSchemaVersion,
		Box:      box,
		Items:    items,
		CachedAt: time.Now(),
	})
}

// GetItem retrieves a single catalog item from the cache.
func (c *catalogCache) GetItem(itemID int) (*domain.Item, bool) {
	return c.items.Get(itemID)
}

// SetItem stores a single catalog item in the cache.
func (c *catalogCache) SetItem(item *domain.Item) {
	c.items.Add(item.ID, item)
}

// InvalidateBox drops a box from the cache after an admin edit.
func (c *catalogCache) InvalidateBox(boxID int) {
	c.boxes.Remove(boxID)
}

// InvalidateItem drops an item from the cache after an admin edit.
func (c *catalogCache) InvalidateItem(itemID int) {
	c.items.Remove(itemID)
}
