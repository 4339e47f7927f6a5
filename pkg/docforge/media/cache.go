package media

import (
	"container/list"
	"os"
	"sync"
	"time"
)

// CacheConfig contains configuration options for the asset cache
type CacheConfig struct {
	// MaxSize is the maximum number of assets to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached assets. 0 means no expiration.
	TTL time.Duration
}

// AssetCache keeps recently used images in memory so that a logo placed
// in many documents is read once. It is safe for concurrent use.
type AssetCache struct {
	mu     sync.Mutex
	cache  map[string]*cacheEntry
	lru    *list.List
	config CacheConfig
}

type cacheEntry struct {
	key     string
	asset   *Asset
	modTime time.Time
	expiry  time.Time
	element *list.Element
}

// NewAssetCache creates a cache with the given configuration.
func NewAssetCache(config CacheConfig) *AssetCache {
	return &AssetCache{
		cache:  make(map[string]*cacheEntry),
		lru:    list.New(),
		config: config,
	}
}

// Load returns the asset for path, reading the file when it is not cached,
// when the entry expired or when the file changed on disk.
func (c *AssetCache) Load(path string) (*Asset, error) {
	if c == nil || c.config.MaxSize == 0 {
		return Load(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		c.Remove(path)
		return nil, &AssetError{Path: path, Err: err}
	}

	c.mu.Lock()
	entry, exists := c.cache[path]
	if exists {
		expired := c.config.TTL > 0 && time.Now().After(entry.expiry)
		if !expired && entry.modTime.Equal(info.ModTime()) {
			c.lru.MoveToFront(entry.element)
			c.mu.Unlock()
			return entry.asset, nil
		}
		c.removeLocked(entry)
	}
	c.mu.Unlock()

	asset, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.cache[path]; ok {
		c.removeLocked(existing)
	}
	// Check if we need to evict
	for c.lru.Len() >= c.config.MaxSize {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		c.removeLocked(oldest.Value.(*cacheEntry))
	}

	entry = &cacheEntry{key: path, asset: asset, modTime: info.ModTime()}
	if c.config.TTL > 0 {
		entry.expiry = time.Now().Add(c.config.TTL)
	}
	entry.element = c.lru.PushFront(entry)
	c.cache[path] = entry
	return asset, nil
}

// Remove drops one entry.
func (c *AssetCache) Remove(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.cache[path]; ok {
		c.removeLocked(entry)
	}
}

func (c *AssetCache) removeLocked(entry *cacheEntry) {
	delete(c.cache, entry.key)
	c.lru.Remove(entry.element)
}

// Clear removes all entries.
func (c *AssetCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*cacheEntry)
	c.lru = list.New()
}

// Size returns the current number of cached assets
func (c *AssetCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}
