// Copyright 2024 - 2026, the Inkwell contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package pagecache provides a thread-safe, fixed-capacity least-recently-used
cache for rendered pages, keyed by request path. When created with compression
enabled, page bodies are stored zstd-compressed and transparently decompressed
by [Cache.Get].

Site content is immutable after startup, so cached pages never go stale
within a process lifetime; capacity eviction is the only removal path.
*/
package pagecache

import (
	"container/list"
	"errors"

	"sync"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// Cache is a fixed-capacity, least-recently-used cache of rendered page
// bodies that is safe for concurrent use. Instances must be constructed
// with [New]; the zero value is not ready for use.
type Cache struct {
	size      int                      // Maximum capacity of the cache (number of pages)
	evictList *list.List               // A doubly-linked list to manage the eviction order
	items     map[string]*list.Element // Maps request paths to their corresponding linked-list elements
	lock      sync.RWMutex             // For thread-safe operations
	compress  bool                     // Whether transparent compression is enabled
	zstdEnc   *zstd.Encoder            // Reusable zstd encoder for block operations
	zstdDec   *zstd.Decoder            // Reusable zstd decoder for block operations
}

// cacheEntry holds one rendered page.
type cacheEntry struct {
	path       string
	body       []byte
	compressed bool
}

// New creates a page cache with the specified maximum number of pages.
//
// If compress is true, bodies are stored zstd-compressed whenever that
// reduces their size and are transparently decompressed by [Cache.Get].
//
// It returns an error if size is not a positive integer.
func New(size int, compress bool) (*Cache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Cache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		compress:  compress,
	}

	if compress {
		// Create reusable encoder/decoder for block (stateless) operations.
		// A nil writer/reader lets us use EncodeAll/DecodeAll without streams.
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}

		c.zstdEnc = enc
		c.zstdDec = dec
	}

	return c, nil
}

// Add stores the rendered body for path.
//
// If the path exists, it becomes the most recently used. If the cache is at
// capacity, the least recently used page is evicted. Add reports whether an
// eviction occurred.
func (c *Cache) Add(path string, body []byte) bool {
	// Prepare (and possibly compress) the body before acquiring the lock.
	stored, compressed := c.prepareBody(body)

	c.lock.Lock()
	defer c.lock.Unlock()

	// If the page is already cached, move it to the front as "most recently
	// used" and replace its body.
	if ent, ok := c.items[path]; ok {
		c.evictList.MoveToFront(ent)

		if cacheEnt, ok := ent.Value.(*cacheEntry); ok {
			cacheEnt.body = stored
			cacheEnt.compressed = compressed
		}

		return false
	}

	// Otherwise, create a new entry and place it at the front.
	c.items[path] = c.evictList.PushFront(&cacheEntry{
		path:       path,
		body:       stored,
		compressed: compressed,
	})

	// If we've exceeded our capacity, remove the oldest page from the back of the list.
	evicted := c.evictList.Len() > c.size
	if evicted {
		c.removeOldest()
	}

	return evicted
}

// Get retrieves the body cached for path and marks it as most recently used.
//
// The second result reports whether the page was found. The returned slice
// is a copy; callers may not mutate cached data through it.
func (c *Cache) Get(path string) ([]byte, bool) {
	// Lock for write since we will move the element to the front.
	c.lock.Lock()

	ent, ok := c.items[path]
	if !ok {
		c.lock.Unlock()

		return nil, false
	}

	c.evictList.MoveToFront(ent)

	cacheEnt, ok := ent.Value.(*cacheEntry)
	if !ok {
		c.lock.Unlock()

		return nil, false
	}

	// Copy fields needed for decompression and release the lock early.
	stored := cacheEnt.body
	compressed := cacheEnt.compressed

	c.lock.Unlock()

	return c.restoreBody(stored, compressed)
}

// Remove deletes the page cached for path.
//
// Remove reports whether the page was present and removed.
func (c *Cache) Remove(path string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	if ent, ok := c.items[path]; ok {
		c.removeElement(ent)

		return true
	}

	return false
}

// Len returns the current number of cached pages.
func (c *Cache) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.evictList.Len()
}

// removeOldest removes the oldest page from both the linked list and the map.
func (c *Cache) removeOldest() {
	ent := c.evictList.Back()
	if ent != nil {
		c.removeElement(ent)
	}
}

// removeElement removes a specific list element from the eviction list and
// deletes it from the map.
func (c *Cache) removeElement(e *list.Element) {
	c.evictList.Remove(e)

	if kv, ok := e.Value.(*cacheEntry); ok {
		delete(c.items, kv.path)
	}
}

// prepareBody compresses body when that is enabled and effective. The
// returned slice never aliases the caller's; uncompressed bodies are copied
// so later writes by the caller cannot corrupt the cache.
//
// This performs the heavy work of compression and is safe to call without
// holding the lock, as the zstd Encoder supports concurrent EncodeAll calls.
func (c *Cache) prepareBody(body []byte) (stored []byte, compressed bool) {
	// Fast path for nil or empty bodies, which are safe to store directly.
	if len(body) == 0 {
		return body, false
	}

	if c.compress {
		compressedBytes := c.zstdEnc.EncodeAll(body, nil)
		if len(compressedBytes) < len(body) {
			return compressedBytes, true
		}
	}

	copied := make([]byte, len(body))
	copy(copied, body)

	return copied, false
}

// restoreBody undoes prepareBody, always returning a fresh copy.
func (c *Cache) restoreBody(stored []byte, compressed bool) ([]byte, bool) {
	if compressed {
		decompressed, err := c.zstdDec.DecodeAll(stored, nil)
		if err != nil {
			// A corrupt entry behaves like a miss; the page is re-rendered.
			return nil, false
		}

		return decompressed, true
	}

	copied := make([]byte, len(stored))
	copy(copied, stored)

	return copied, true
}
