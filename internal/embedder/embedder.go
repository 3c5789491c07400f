package embedder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ingestkit/codeingest/pkg/types"
)

// Common errors
var (
	ErrProviderFailed      = errors.New("embedding provider failed")
	ErrUnsupportedProvider = errors.New("unsupported embedding provider")
)

// Embedder converts batches of texts into fixed-dimension vectors. Every
// implementation returns one unit-norm vector per input text, in input
// order, and is an all-or-nothing operation: no partial batch is ever
// returned alongside an error.
type Embedder interface {
	// EmbedBatch generates one vector per text, preserving order
	EmbedBatch(ctx context.Context, texts []string) ([]types.Vector, error)

	// Dimension returns the vector dimension this embedder produces
	Dimension() int

	// Provider returns the provider name
	Provider() string

	// Close releases any resources held by the embedder
	Close() error
}

// Cache provides in-memory LRU caching of vectors keyed by content hash
type Cache struct {
	cache *lru.Cache[string, types.Vector]
}

// DefaultCacheSize is the fallback cache capacity
const DefaultCacheSize = 10000

// NewCache creates a vector cache with LRU eviction
func NewCache(maxLen int) *Cache {
	if maxLen <= 0 {
		maxLen = DefaultCacheSize
	}
	cache, err := lru.New[string, types.Vector](maxLen)
	if err != nil {
		// Only possible with a non-positive size, which is handled above
		cache, _ = lru.New[string, types.Vector](DefaultCacheSize)
	}
	return &Cache{cache: cache}
}

// Get retrieves a copy of a cached vector. A copy is returned so caller
// mutations cannot pollute the cache.
func (c *Cache) Get(key string) (types.Vector, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// Set stores a vector; the cache keeps its own copy
func (c *Cache) Set(key string, v types.Vector) {
	c.cache.Add(key, v.Clone())
}

// Len returns the current cache size
func (c *Cache) Len() int {
	return c.cache.Len()
}

// Purge empties the cache
func (c *Cache) Purge() {
	c.cache.Purge()
}

// CacheKey computes the cache key for a text at a given dimension. The
// dimension is part of the key because the same text embeds differently
// at different dimensions.
func CacheKey(text string, dim int) string {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(dim)))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
