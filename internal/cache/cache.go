// Package cache provides a fixed-capacity, recency-ordered task cache.
//
// Entries live in an arena of nodes addressed by index. A map resolves keys to
// arena slots and a doubly-linked list threaded through the slots keeps recency
// order, so touch and eviction are both O(1). Evicted keys are remembered in a
// bounded ghost list that an adaptive policy can consult later.
package cache

import (
	"sync"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// nilIndex marks the absence of a link.
const nilIndex = -1

// node is one arena slot.
type node struct {
	key   string
	value domain.Task
	prev  int
	next  int
}

// Stats reports cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Len       int
	Capacity  int
}

// Cache maps task IDs to task snapshots with LRU eviction.
// It is a read-through accelerator and never the source of truth.
// Fields are ordered to minimize memory padding.
type Cache struct {
	index  map[string]int
	ghosts map[string]struct{}
	nodes  []node
	free   []int
	ghostQ []string
	stats  Stats
	epoch  uint64 // advanced by every Delete
	limit  int
	head   int // most recently used
	tail   int // least recently used
	mu     sync.Mutex
}

// New creates a cache holding at most limit entries.
func New(limit int) (*Cache, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidCapacity
	}
	return &Cache{
		index:  make(map[string]int, limit),
		ghosts: make(map[string]struct{}),
		nodes:  make([]node, 0, limit),
		limit:  limit,
		head:   nilIndex,
		tail:   nilIndex,
	}, nil
}

// Get returns the cached task and marks it most recently used.
// The boolean is false when the key is absent.
func (c *Cache) Get(key string) (domain.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[key]
	if !ok {
		c.stats.Misses++
		return domain.Task{}, false
	}
	c.stats.Hits++
	c.moveToFront(i)
	return c.nodes[i].value.Clone(), true
}

// Set stores value under key and marks it most recently used.
// Updating an existing key never evicts; inserting a new key at capacity
// evicts exactly the least recently used entry first.
func (c *Cache) Set(key string, value domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

// Epoch returns a counter that every Delete advances.
func (c *Cache) Epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// SetIfEpoch stores value like Set, but only when no Delete happened since
// epoch was read. It reports whether the value was stored.
func (c *Cache) SetIfEpoch(key string, value domain.Task, epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return false
	}
	c.setLocked(key, value)
	return true
}

func (c *Cache) setLocked(key string, value domain.Task) {
	value = value.Clone()
	if i, ok := c.index[key]; ok {
		c.nodes[i].value = value
		c.moveToFront(i)
		return
	}

	if len(c.index) >= c.limit {
		c.evict()
	}

	i := c.alloc(key, value)
	c.index[key] = i
	c.pushFront(i)
	delete(c.ghosts, key)
}

// Delete removes key from the cache and advances the epoch.
// It reports whether the key was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++

	i, ok := c.index[key]
	if !ok {
		return false
	}
	c.unlink(i)
	c.release(i)
	delete(c.index, key)
	return true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

// Keys returns the cached keys from most to least recently used.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.index))
	for i := c.head; i != nilIndex; i = c.nodes[i].next {
		keys = append(keys, c.nodes[i].key)
	}
	return keys
}

// Evicted reports whether key was recently evicted and not re-inserted since.
func (c *Cache) Evicted(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.ghosts[key]
	return ok
}

// Stats returns a copy of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Len = len(c.index)
	s.Capacity = c.limit
	return s
}

// evict drops the tail entry and records it as a ghost.
func (c *Cache) evict() {
	i := c.tail
	if i == nilIndex {
		return
	}
	key := c.nodes[i].key
	c.unlink(i)
	c.release(i)
	delete(c.index, key)
	c.stats.Evictions++
	c.remember(key)
}

// remember adds key to the ghost list, keeping at most limit ghosts.
func (c *Cache) remember(key string) {
	if _, ok := c.ghosts[key]; ok {
		return
	}
	c.ghosts[key] = struct{}{}
	c.ghostQ = append(c.ghostQ, key)
	for len(c.ghostQ) > c.limit {
		oldest := c.ghostQ[0]
		c.ghostQ = c.ghostQ[1:]
		delete(c.ghosts, oldest)
	}
}

func (c *Cache) alloc(key string, value domain.Task) int {
	n := node{key: key, value: value, prev: nilIndex, next: nilIndex}
	if last := len(c.free) - 1; last >= 0 {
		i := c.free[last]
		c.free = c.free[:last]
		c.nodes[i] = n
		return i
	}
	c.nodes = append(c.nodes, n)
	return len(c.nodes) - 1
}

func (c *Cache) release(i int) {
	c.nodes[i] = node{prev: nilIndex, next: nilIndex}
	c.free = append(c.free, i)
}

func (c *Cache) pushFront(i int) {
	c.nodes[i].prev = nilIndex
	c.nodes[i].next = c.head
	if c.head != nilIndex {
		c.nodes[c.head].prev = i
	}
	c.head = i
	if c.tail == nilIndex {
		c.tail = i
	}
}

func (c *Cache) unlink(i int) {
	n := c.nodes[i]
	if n.prev != nilIndex {
		c.nodes[n.prev].next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nilIndex {
		c.nodes[n.next].prev = n.prev
	} else {
		c.tail = n.prev
	}
	c.nodes[i].prev = nilIndex
	c.nodes[i].next = nilIndex
}

func (c *Cache) moveToFront(i int) {
	if c.head == i {
		return
	}
	c.unlink(i)
	c.pushFront(i)
}
