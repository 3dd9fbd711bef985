package cache

import (
	"github.com/cachetools/lru/internal/index"
	"github.com/cachetools/lru/internal/util"
	"github.com/cachetools/lru/limit"
)

const errNoCapacity = "lru: cache does not have sufficient capacity"

// Cache is an LRU cache with a pluggable admission and eviction policy.
//
// It is a single index lookup per operation: the hash table stores the
// intrusive recency-list nodes directly, so every entry owns exactly one
// copy of its key and hit paths touch one table probe plus two pointer
// splices.
//
// A Cache is not safe for concurrent mutation; guard it with a mutex when
// shared. Peek, Contains, Len and Stats are safe alongside each other but
// not alongside writers.
type Cache[K comparable, V any] struct {
	idx     index.Table[K, *node[K, V]]
	list    list[K, V]
	limiter limit.Limiter[K, V]
	metrics Metrics

	hits    util.PaddedAtomicUint64
	misses  util.PaddedAtomicUint64
	evicts  util.PaddedAtomicUint64
	rejects util.PaddedAtomicUint64
}

// New returns a cache holding at most capacity entries, evicting the least
// recently used entry on overflow. A capacity of zero rejects every insert.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return NewWithLimiter[K, V](limit.NewCount[K, V](capacity))
}

// NewUnbounded returns a cache that never evicts.
func NewUnbounded[K comparable, V any]() *Cache[K, V] {
	return NewWithLimiter[K, V](limit.NewUnlimited[K, V]())
}

// NewWithLimiter returns a cache governed by l.
func NewWithLimiter[K comparable, V any](l limit.Limiter[K, V]) *Cache[K, V] {
	return NewWithOptions(Options[K, V]{Limiter: l})
}

// NewWithOptions returns a cache configured by opts. Zero fields get
// defaults: an unlimited limiter, the built-in seeded hasher, no metrics.
func NewWithOptions[K comparable, V any](opts Options[K, V]) *Cache[K, V] {
	l := opts.Limiter
	if l == nil {
		l = limit.NewUnlimited[K, V]()
	}
	h := opts.Hash
	if h == nil {
		h = util.Hasher[K](opts.Seed)
	}
	m := opts.Metrics
	if m == nil {
		m = NoopMetrics{}
	}
	hint := 0
	if sized, ok := l.(interface{ Limit() int }); ok {
		hint = sized.Limit()
	}
	c := &Cache[K, V]{
		limiter: l,
		metrics: m,
	}
	c.idx = index.New(func(n *node[K, V]) K { return n.key }, h, hint)
	return c
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return c.idx.Len() }

// Cap returns the limiter's entry limit. It panics if the limiter has no
// notion of an entry count (cost-limited or unlimited caches).
func (c *Cache[K, V]) Cap() int {
	sized, ok := c.limiter.(interface{ Limit() int })
	if !ok {
		panic("lru: limiter does not support resizing")
	}
	return sized.Limit()
}

// Limiter returns the cache's limiter, for inspection. Mutating it directly
// bypasses eviction; use UpdateLimiter for that.
func (c *Cache[K, V]) Limiter() limit.Limiter[K, V] { return c.limiter }

// Entry looks up k and returns a view of the slot, occupied or vacant. One
// lookup serves an arbitrary read-modify-write against that key.
func (c *Cache[K, V]) Entry(k K) Entry[K, V] {
	if n, ok := c.idx.Get(k); ok {
		return Entry[K, V]{occ: &OccupiedEntry[K, V]{c: c, node: n, key: &k}}
	}
	return Entry[K, V]{vac: &VacantEntry[K, V]{c: c, key: k}}
}

// EntryLRU returns an occupied view of the least recently used entry, or
// ok=false when the cache is empty.
func (c *Cache[K, V]) EntryLRU() (*OccupiedEntry[K, V], bool) {
	n := c.list.back()
	if n == nil {
		return nil, false
	}
	return &OccupiedEntry[K, V]{c: c, node: n}, true
}

// Put inserts or updates k, promoting it to MRU. If k was resident the
// previous value is returned with ok=true. Evicted entries are discarded;
// use Push to recover them. Panics only on a rejected update of a resident
// key; a rejected fresh insert returns the offered value with ok=true, so a
// zero-capacity cache degenerates to a pass-through.
func (c *Cache[K, V]) Put(k K, v V) (V, bool) {
	e := c.Entry(k)
	if occ, ok := e.Occupied(); ok {
		return occ.Insert(v), true
	}
	vac, _ := e.Vacant()
	if occ, ok := vac.TryInsertEntry(v); ok {
		occ.Finish()
		var zero V
		return zero, false
	}
	return v, true
}

// Push inserts or updates k and returns the single pair it displaced: the
// previous pair under k on update, or the evicted LRU pair on an insert that
// overflowed. ok=false means nothing was displaced. When a cost-limited
// insert evicts several entries, the first is returned and the rest are
// discarded. A rejected insert returns the offered pair itself.
func (c *Cache[K, V]) Push(k K, v V) (K, V, bool) {
	e := c.Entry(k)
	if occ, ok := e.Occupied(); ok {
		oldK, oldV := occ.ReplaceEntry(v)
		return oldK, oldV, true
	}
	vac, _ := e.Vacant()
	occ, ok := vac.TryInsertEntry(v)
	if !ok {
		return k, v, true
	}
	if ek, ev, evicted := occ.TakeEvicted(); evicted {
		occ.Finish()
		return ek, ev, true
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// Get returns the value under k, promoting the entry to MRU.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	if p, ok := c.GetMut(k); ok {
		return *p, true
	}
	var zero V
	return zero, false
}

// GetMut returns a pointer to the value under k, promoting the entry to
// MRU. The pointer is valid until the entry is removed or its value
// replaced.
func (c *Cache[K, V]) GetMut(k K) (*V, bool) {
	occ, ok := c.Entry(k).Occupied()
	if !ok {
		c.noteMiss()
		return nil, false
	}
	c.noteHit()
	return occ.Get(), true
}

// GetOrInsert returns a pointer to the value under k, inserting mk() on a
// miss. The entry ends up MRU either way. Panics if a miss is rejected by
// the limiter; use TryGetOrInsert for zero-capacity safety.
func (c *Cache[K, V]) GetOrInsert(k K, mk func() V) *V {
	p, ok := c.TryGetOrInsert(k, mk)
	if !ok {
		panic(errNoCapacity)
	}
	return p
}

// TryGetOrInsert is GetOrInsert returning ok=false instead of panicking
// when the limiter rejects the insertion.
func (c *Cache[K, V]) TryGetOrInsert(k K, mk func() V) (*V, bool) {
	e := c.Entry(k)
	if occ, ok := e.Occupied(); ok {
		c.noteHit()
		return occ.Get(), true
	}
	c.noteMiss()
	vac, _ := e.Vacant()
	return vac.TryInsert(mk())
}

// Peek returns the value under k without touching the recency order or the
// hit/miss counters.
func (c *Cache[K, V]) Peek(k K) (V, bool) {
	if n, ok := c.idx.Get(k); ok {
		return n.val, true
	}
	var zero V
	return zero, false
}

// PeekMut returns a pointer to the value under k without touching the
// recency order.
func (c *Cache[K, V]) PeekMut(k K) (*V, bool) {
	if n, ok := c.idx.Get(k); ok {
		return &n.val, true
	}
	return nil, false
}

// PeekLRU returns the least recently used pair without promoting it.
func (c *Cache[K, V]) PeekLRU() (K, V, bool) {
	if n := c.list.back(); n != nil {
		return n.key, n.val, true
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// Contains reports whether k is resident, without touching the recency
// order or the hit/miss counters.
func (c *Cache[K, V]) Contains(k K) bool {
	_, ok := c.idx.Get(k)
	return ok
}

// Pop removes k and returns its value.
func (c *Cache[K, V]) Pop(k K) (V, bool) {
	if occ, ok := c.Entry(k).Occupied(); ok {
		return occ.Remove(), true
	}
	var zero V
	return zero, false
}

// PopEntry removes k and returns the owned key and value.
func (c *Cache[K, V]) PopEntry(k K) (K, V, bool) {
	if occ, ok := c.Entry(k).Occupied(); ok {
		rk, rv := occ.RemoveEntry()
		return rk, rv, true
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// PopLRU removes and returns the least recently used pair.
func (c *Cache[K, V]) PopLRU() (K, V, bool) {
	occ, ok := c.EntryLRU()
	if !ok {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	k, v := occ.RemoveEntry()
	return k, v, true
}

// Promote marks k most recently used, if resident.
func (c *Cache[K, V]) Promote(k K) {
	if n, ok := c.idx.Get(k); ok {
		c.list.promote(n)
	}
}

// Demote marks k least recently used, if resident.
func (c *Cache[K, V]) Demote(k K) {
	if n, ok := c.idx.Get(k); ok {
		c.list.demote(n)
	}
}

// Resize changes the entry limit, evicting LRU entries if the cache is now
// over it. Panics if the limiter has no entry limit.
func (c *Cache[K, V]) Resize(capacity int) {
	sized, ok := c.limiter.(interface {
		Limit() int
		SetLimit(int)
	})
	if !ok {
		panic("lru: limiter does not support resizing")
	}
	if sized.Limit() == capacity {
		return
	}
	sized.SetLimit(capacity)
	c.evictOversized(EvictResize)
	c.idx.ShrinkToFit()
}

// UpdateLimiter applies f to the limiter, then evicts until the limiter no
// longer reports the cache oversized. This is the safe way to tighten a
// limit in place.
func (c *Cache[K, V]) UpdateLimiter(f func(limit.Limiter[K, V])) {
	f(c.limiter)
	c.evictOversized(EvictResize)
}

func (c *Cache[K, V]) evictOversized(reason EvictReason) {
	for c.limiter.IsOversized(c) {
		occ, ok := c.EntryLRU()
		if !ok {
			return
		}
		c.noteEvict(reason)
		occ.RemoveEntry()
	}
}

// Clear removes every entry, notifying the limiter of each removal in LRU
// order, and releases the index storage.
func (c *Cache[K, V]) Clear() {
	for {
		if _, _, ok := c.PopLRU(); !ok {
			break
		}
	}
	c.list.reset()
	c.idx.Clear()
	c.metrics.Size(0)
}

// ShrinkToFit reduces the index storage to the current entry count.
func (c *Cache[K, V]) ShrinkToFit() { c.idx.ShrinkToFit() }

func (c *Cache[K, V]) noteHit() {
	c.hits.Add(1)
	c.metrics.Hit()
}

func (c *Cache[K, V]) noteMiss() {
	c.misses.Add(1)
	c.metrics.Miss()
}

func (c *Cache[K, V]) noteEvict(reason EvictReason) {
	c.evicts.Add(1)
	c.metrics.Evict(reason)
}

func (c *Cache[K, V]) noteReject() {
	c.rejects.Add(1)
	c.metrics.Reject()
}
