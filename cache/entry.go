package cache

import "github.com/cachetools/lru/limit"

// Entry is a view into a single slot of the cache, either occupied or
// vacant. It is produced by Cache.Entry from exactly one index lookup and is
// valid for one logical operation: it must not outlive the next mutation of
// the cache through any other path.
type Entry[K comparable, V any] struct {
	occ *OccupiedEntry[K, V]
	vac *VacantEntry[K, V]
}

// Occupied returns the occupied view, if the key was resident.
func (e Entry[K, V]) Occupied() (*OccupiedEntry[K, V], bool) {
	return e.occ, e.occ != nil
}

// Vacant returns the vacant view, if the key was absent.
func (e Entry[K, V]) Vacant() (*VacantEntry[K, V], bool) {
	return e.vac, e.vac != nil
}

// Key returns the entry's key: the resident key for an occupied entry, the
// lookup key for a vacant one.
func (e Entry[K, V]) Key() K {
	if e.occ != nil {
		return e.occ.Key()
	}
	return e.vac.Key()
}

// Insert sets the entry's value, evicting as needed, and returns the
// occupied view. Panics if the limiter rejects; use TryInsert to handle
// rejection.
func (e Entry[K, V]) Insert(v V) *OccupiedEntry[K, V] {
	occ, ok := e.TryInsert(v)
	if !ok {
		panic(errNoCapacity)
	}
	return occ
}

// TryInsert sets the entry's value and returns the occupied view, or
// ok=false if the limiter rejected the insert/update, leaving the cache
// unchanged.
func (e Entry[K, V]) TryInsert(v V) (*OccupiedEntry[K, V], bool) {
	if e.occ != nil {
		if _, ok := e.occ.TryInsert(v); !ok {
			return nil, false
		}
		return e.occ, true
	}
	return e.vac.TryInsertEntry(v)
}

// OrInsert stores v if the entry is vacant and returns a pointer to the
// resident value, promoting it to MRU. Panics if the limiter rejects the
// insertion (zero-capacity cache).
func (e Entry[K, V]) OrInsert(v V) *V {
	return e.OrInsertWithKey(func(K) V { return v })
}

// OrInsertWith is OrInsert with a lazily computed default.
func (e Entry[K, V]) OrInsertWith(f func() V) *V {
	return e.OrInsertWithKey(func(K) V { return f() })
}

// OrInsertWithKey is OrInsertWith, passing the entry's key to the default
// function so callers can derive values without recomputing or copying the
// key.
func (e Entry[K, V]) OrInsertWithKey(f func(K) V) *V {
	if e.occ != nil {
		return e.occ.Get()
	}
	occ, ok := e.vac.TryInsertEntry(f(e.vac.key))
	if !ok {
		panic(errNoCapacity)
	}
	occ.Finish()
	return occ.Peek()
}

// OrDefault is OrInsert with the zero value of V.
func (e Entry[K, V]) OrDefault() *V {
	var zero V
	return e.OrInsert(zero)
}

// AndModify applies f to the value if the entry is occupied (promoting it),
// then returns the entry for chaining with OrInsert.
func (e Entry[K, V]) AndModify(f func(*V)) Entry[K, V] {
	if e.occ != nil {
		f(e.occ.Get())
	}
	return e
}

// OccupiedEntry is a view of a resident entry. It composes the index, the
// recency list, and the limiter into single atomic operations.
//
// At most one of two extras rides along with the view: the retained lookup
// key (for ReplaceKey), or the eviction state produced by the insertion that
// created the view (for TakeEvicted). A view produced by plain lookup
// carries the key; a view produced by insertion carries evictions.
type OccupiedEntry[K comparable, V any] struct {
	c    *Cache[K, V]
	node *node[K, V]

	key        *K   // retained lookup key; nil once consumed or invalidated
	fromInsert bool // TakeEvicted may drain; false for lookup views
	hasPending bool // one already-captured evicted pair below
	pendingK   K
	pendingV   V
}

// Key returns the resident key.
func (e *OccupiedEntry[K, V]) Key() K { return e.node.key }

// Peek returns a pointer to the value without touching the recency order.
func (e *OccupiedEntry[K, V]) Peek() *V { return &e.node.val }

// Get promotes the entry to MRU and returns a pointer to the value.
func (e *OccupiedEntry[K, V]) Get() *V {
	e.Promote()
	return &e.node.val
}

// Promote marks the entry most recently used.
func (e *OccupiedEntry[K, V]) Promote() { e.c.list.promote(e.node) }

// Demote marks the entry least recently used, making it the next eviction
// candidate.
func (e *OccupiedEntry[K, V]) Demote() { e.c.list.demote(e.node) }

// Next moves the view to the next (less recently used) entry. Returns false
// at the LRU end, leaving the view unchanged. A successful step invalidates
// the retained key and any pending evictions.
func (e *OccupiedEntry[K, V]) Next() bool {
	return e.step(e.node.next)
}

// Prev moves the view to the previous (more recently used) entry. Returns
// false at the MRU end, leaving the view unchanged.
func (e *OccupiedEntry[K, V]) Prev() bool {
	return e.step(e.node.prev)
}

func (e *OccupiedEntry[K, V]) step(n *node[K, V]) bool {
	if n == e.c.list.sigil {
		return false
	}
	e.node = n
	e.invalidate()
	return true
}

// invalidate drops the view's extras: the retained key and any pending
// evictions no longer describe the node the view now points at.
func (e *OccupiedEntry[K, V]) invalidate() {
	var zeroK K
	var zeroV V
	e.key = nil
	e.fromInsert = false
	e.hasPending = false
	e.pendingK, e.pendingV = zeroK, zeroV
}

// Insert replaces the entry's value, promotes it, and returns the old value.
// Panics if the limiter rejects the update.
func (e *OccupiedEntry[K, V]) Insert(v V) V {
	old, ok := e.TryInsert(v)
	if !ok {
		panic(errNoCapacity)
	}
	return old
}

// TryInsert replaces the entry's value after consulting the limiter,
// promotes the entry, and returns the old value. On rejection it returns the
// offered value unchanged with ok=false and the cache is untouched.
func (e *OccupiedEntry[K, V]) TryInsert(v V) (V, bool) {
	c := e.c
	if c.limiter.OnUpdate(c, e.node.key, &e.node.val, nil, &v) == limit.Reject {
		c.noteReject()
		return v, false
	}
	old := e.node.val
	e.node.val = v
	e.Promote()
	return old, true
}

// ReplaceKey swaps the resident key for the equal-but-distinct key this view
// was created with, returning the displaced resident key. Useful to drop a
// duplicate key allocation once the resident one is confirmed equal. Panics
// if the limiter rejects or the lookup key was already consumed.
func (e *OccupiedEntry[K, V]) ReplaceKey() K {
	k, ok := e.TryReplaceKey()
	if !ok {
		panic(errNoCapacity)
	}
	return k
}

// TryReplaceKey is ReplaceKey returning the not-installed fresh key with
// ok=false when the limiter rejects the update. Panics if the lookup key was
// already consumed by insertion.
func (e *OccupiedEntry[K, V]) TryReplaceKey() (K, bool) {
	k := e.takeRetainedKey()
	c := e.c
	if c.limiter.OnUpdate(c, e.node.key, &e.node.val, &k, nil) == limit.Reject {
		c.noteReject()
		return k, false
	}
	old := e.node.key
	e.node.key = k
	return old, true
}

// ReplaceEntry replaces both the key (with the retained lookup key) and the
// value, promotes the entry, and returns the old pair. Panics if the limiter
// rejects.
func (e *OccupiedEntry[K, V]) ReplaceEntry(v V) (K, V) {
	k, old, ok := e.TryReplaceEntry(v)
	if !ok {
		panic(errNoCapacity)
	}
	return k, old
}

// TryReplaceEntry is ReplaceEntry returning the rejected pair with ok=false
// when the limiter rejects the update.
func (e *OccupiedEntry[K, V]) TryReplaceEntry(v V) (K, V, bool) {
	k := e.takeRetainedKey()
	c := e.c
	if c.limiter.OnUpdate(c, e.node.key, &e.node.val, &k, &v) == limit.Reject {
		c.noteReject()
		return k, v, false
	}
	oldK := e.node.key
	oldV := e.node.val
	e.node.key = k
	e.node.val = v
	e.Promote()
	return oldK, oldV, true
}

// takeRetainedKey consumes the lookup key this view was created with. The
// key is equal to the resident key by construction (the lookup found this
// entry), so installing it never perturbs the index.
func (e *OccupiedEntry[K, V]) takeRetainedKey() K {
	if e.key == nil {
		panic("lru: entry key was already consumed by insertion")
	}
	k := *e.key
	e.key = nil
	return k
}

// Remove deletes the entry and returns its value. The view must not be used
// afterwards.
func (e *OccupiedEntry[K, V]) Remove() V {
	_, v := e.RemoveEntry()
	return v
}

// RemoveEntry deletes the entry and returns the owned key and value. The
// view must not be used afterwards.
func (e *OccupiedEntry[K, V]) RemoveEntry() (K, V) {
	c := e.c
	n := e.node
	c.idx.Delete(n.key)
	c.list.detach(n)
	c.limiter.OnRemove(c, n.key, &n.val)
	e.invalidate()
	k, v := n.key, n.val
	// Unlink and zero the node so the cache retains no references to the
	// removed pair.
	var zeroK K
	var zeroV V
	n.key, n.val = zeroK, zeroV
	n.prev, n.next = nil, nil
	c.metrics.Size(c.Len())
	return k, v
}

// TakeEvicted drains the evictions caused by the insertion that produced
// this view, one pair per call. The first call returns the pair displaced by
// node reuse, if any; subsequent calls keep evicting the current LRU entry
// while the limiter still reports the cache oversized — skipping this view's
// own node — which is how a single cost-limited insertion can cascade into
// evicting several prior entries. Once the cache is no longer oversized (or
// no candidate remains) it returns ok=false and stays exhausted.
//
// Views produced by plain lookup never carry evictions.
func (e *OccupiedEntry[K, V]) TakeEvicted() (K, V, bool) {
	var zeroK K
	var zeroV V
	if !e.fromInsert {
		return zeroK, zeroV, false
	}
	if e.hasPending {
		k, v := e.pendingK, e.pendingV
		e.hasPending = false
		e.pendingK, e.pendingV = zeroK, zeroV
		return k, v, true
	}
	c := e.c
	if c.limiter.IsOversized(c) {
		if other, ok := c.EntryLRU(); ok {
			if other.node != e.node || other.Prev() {
				c.noteEvict(EvictCapacity)
				k, v := other.RemoveEntry()
				return k, v, true
			}
			// The only remaining candidate is this view's own node; a view
			// never evicts itself.
		}
	}
	e.fromInsert = false
	return zeroK, zeroV, false
}

// Finish drains and discards any evictions still pending from this view's
// insertion. Go has no destructors, so callers that ignore TakeEvicted must
// call Finish (the top-level cache operations do); otherwise a cost-limited
// cache may be left oversized until the next mutation.
func (e *OccupiedEntry[K, V]) Finish() {
	for {
		if _, _, ok := e.TakeEvicted(); !ok {
			return
		}
	}
}

// VacantEntry is a view of an absent key. It retains the lookup key; node
// allocation is deferred until an insertion is actually accepted, so a miss
// costs nothing beyond the lookup.
type VacantEntry[K comparable, V any] struct {
	c   *Cache[K, V]
	key K
}

// Key returns the key an insertion through this view would use.
func (e *VacantEntry[K, V]) Key() K { return e.key }

// Insert stores v under the entry's key, drains any resulting evictions, and
// returns a pointer to the resident value. Panics if the limiter rejects.
func (e *VacantEntry[K, V]) Insert(v V) *V {
	p, ok := e.TryInsert(v)
	if !ok {
		panic(errNoCapacity)
	}
	return p
}

// TryInsert stores v, drains any resulting evictions, and returns a pointer
// to the resident value, or ok=false if the limiter rejected the insertion
// (the cache is untouched and the caller keeps its key and value).
func (e *VacantEntry[K, V]) TryInsert(v V) (*V, bool) {
	occ, ok := e.TryInsertEntry(v)
	if !ok {
		return nil, false
	}
	occ.Finish()
	return occ.Peek(), true
}

// InsertEntry stores v and returns the occupied view carrying any pending
// evictions; the caller is responsible for draining them. Panics if the
// limiter rejects.
func (e *VacantEntry[K, V]) InsertEntry(v V) *OccupiedEntry[K, V] {
	occ, ok := e.TryInsertEntry(v)
	if !ok {
		panic(errNoCapacity)
	}
	return occ
}

// TryInsertEntry stores v and returns the occupied view carrying any pending
// evictions, or ok=false on rejection. This is the single insertion path:
// every other insert-style call funnels here.
func (e *VacantEntry[K, V]) TryInsertEntry(v V) (*OccupiedEntry[K, V], bool) {
	c := e.c
	occ := &OccupiedEntry[K, V]{c: c, fromInsert: true}

	switch behavior := c.limiter.OnAdd(c, e.key, &v); {
	case behavior == limit.Reject:
		c.noteReject()
		return nil, false

	case behavior == limit.Evict && c.Len() > 0:
		// Reuse the LRU victim's node in place: unindex it, capture its
		// pair as evicted, overwrite, and move the same node to MRU. This
		// avoids a free+allocate pair on the steady-state path.
		victim := c.list.back()
		c.idx.Delete(victim.key)
		c.list.detach(victim)
		c.limiter.OnRemove(c, victim.key, &victim.val)
		occ.hasPending = true
		occ.pendingK, occ.pendingV = victim.key, victim.val
		victim.key, victim.val = e.key, v
		occ.node = victim
		c.noteEvict(EvictCapacity)

	default:
		// Accept, or Evict against an empty cache, which degenerates to
		// Accept.
		occ.node = &node[K, V]{key: e.key, val: v}
	}

	c.list.attach(occ.node)
	c.idx.Put(occ.node)
	c.metrics.Size(c.Len())
	return occ, true
}
