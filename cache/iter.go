package cache

import "iter"

// Iter is a double-ended cursor over the cache in recency order, MRU first.
// It is bounded by the length captured at creation, so the two ends meet in
// the middle rather than crossing. The cache must not be mutated while an
// Iter is in use.
type Iter[K comparable, V any] struct {
	remaining int
	front     *node[K, V]
	back      *node[K, V]
}

// Iter returns a cursor positioned before the most recently used entry.
func (c *Cache[K, V]) Iter() Iter[K, V] {
	root := c.list.root()
	return Iter[K, V]{
		remaining: c.Len(),
		front:     root.next,
		back:      root.prev,
	}
}

// Next yields the next entry from the MRU end. The value pointer stays valid
// until the entry is removed or its value replaced.
func (it *Iter[K, V]) Next() (K, *V, bool) {
	if it.remaining == 0 {
		var zero K
		return zero, nil, false
	}
	n := it.front
	it.front = n.next
	it.remaining--
	return n.key, &n.val, true
}

// NextBack yields the next entry from the LRU end.
func (it *Iter[K, V]) NextBack() (K, *V, bool) {
	if it.remaining == 0 {
		var zero K
		return zero, nil, false
	}
	n := it.back
	it.back = n.prev
	it.remaining--
	return n.key, &n.val, true
}

// All ranges over the cache from MRU to LRU. The cache must not be mutated
// during the range.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := c.Iter()
		for k, v, ok := it.Next(); ok; k, v, ok = it.Next() {
			if !yield(k, *v) {
				return
			}
		}
	}
}

// Backward ranges over the cache from LRU to MRU.
func (c *Cache[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := c.Iter()
		for k, v, ok := it.NextBack(); ok; k, v, ok = it.NextBack() {
			if !yield(k, *v) {
				return
			}
		}
	}
}
