// Package cache implements the optional parse-memoisation layer of
// SPEC_FULL.md §4.11: an LRU keyed on a digest of the input text plus the
// catalogue's fingerprint, so two parses of the same text under different
// catalogues never collide.
package cache

import (
	"container/list"
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/aledsdavies/polishc/prefix"
)

// Key derives a cache key from input and a catalogue fingerprint
// (catalogue.Catalogue.Fingerprint). Two Parse calls with identical input
// but different catalogues never share an entry.
func Key(input, catalogueFingerprint string) string {
	h := blake2b.Sum256([]byte(catalogueFingerprint + "\x00" + input))
	return hex.EncodeToString(h[:])
}

type result struct {
	stream prefix.Stream
	err    error
}

type entry struct {
	key   string
	value result
}

// Cache is a fixed-capacity LRU of key to (Stream, error) pairs. Safe for
// concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

// New builds a Cache holding at most capacity entries. A non-positive
// capacity disables eviction bookkeeping and simply never stores anything,
// so New(0) is a valid, always-miss cache.
func New(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Get returns the cached (stream, err) for key and true, or the zero
// value and false on a miss.
func (c *Cache) Get(key string) (prefix.Stream, error, bool) {
	if c == nil {
		return nil, nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, nil, false
	}
	c.ll.MoveToFront(el)
	r := el.Value.(*entry).value
	return r.stream, r.err, true
}

// Put inserts or refreshes the entry for key, evicting the least recently
// used entry if the cache is at capacity.
func (c *Cache) Put(key string, stream prefix.Stream, err error) {
	if c == nil || c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry).value = result{stream: stream, err: err}
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&entry{key: key, value: result{stream: stream, err: err}})
	c.items[key] = el
	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).key)
		}
	}
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
