package lrucache

import (
	"github.com/Grrwahrr/tari/domain/consensus/model/externalapi"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// LRUCache is a least-recently-used cache for block headers
// indexed by height. It is safe for concurrent use.
type LRUCache struct {
	cache *lru.Cache
}

// New creates a new LRUCache holding at most capacity headers
func New(capacity int) (*LRUCache, error) {
	cache, err := lru.New(capacity)
	if err != nil {
		return nil, errors.Wrapf(err, "failed creating a header cache of size %d", capacity)
	}
	return &LRUCache{cache: cache}, nil
}

// Add adds an entry to the LRUCache
func (c *LRUCache) Add(height uint64, header *externalapi.DomainBlockHeader) {
	c.cache.Add(height, header)
}

// Get returns the entry for the given height, or (nil, false) otherwise
func (c *LRUCache) Get(height uint64) (*externalapi.DomainBlockHeader, bool) {
	value, ok := c.cache.Get(height)
	if !ok {
		return nil, false
	}
	return value.(*externalapi.DomainBlockHeader), true
}

// Has returns whether the LRUCache contains the given height
func (c *LRUCache) Has(height uint64) bool {
	return c.cache.Contains(height)
}

// Remove removes the entry for the the given height. Does nothing if
// the entry does not exist
func (c *LRUCache) Remove(height uint64) {
	c.cache.Remove(height)
}

// Len returns the number of cached headers
func (c *LRUCache) Len() int {
	return c.cache.Len()
}

// Clear clears the cache
func (c *LRUCache) Clear() {
	c.cache.Purge()
}
