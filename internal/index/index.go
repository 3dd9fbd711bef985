// Package index implements an open-addressing hash set over arbitrary
// elements, keyed by a projection of the element. It exists so the cache can
// index nodes through the key they own without duplicating key storage, and
// so callers can plug in their own hash function and seed.
package index

import "github.com/cachetools/lru/internal/util"

const (
	minCapacity = 8
	// Grow when used slots exceed 7/8 of the table.
	loadNum = 7
	loadDen = 8
)

type slot[E any] struct {
	elem E
	hash uint64
	live bool
}

// Table is a linear-probing hash set with power-of-two sizing, stored
// per-slot hashes, and backward-shift deletion (no tombstones). Every
// element's key is derived via keyOf, so exactly one copy of each key lives
// in the element itself.
//
// The zero Table is not usable; construct with New.
type Table[K comparable, E any] struct {
	keyOf func(E) K
	hash  func(K) uint64
	slots []slot[E]
	mask  uint64
	used  int
}

// New constructs a table. capacity is a hint for the expected number of
// elements; the backing array is allocated lazily on first insert.
func New[K comparable, E any](keyOf func(E) K, hash func(K) uint64, capacity int) Table[K, E] {
	t := Table[K, E]{keyOf: keyOf, hash: hash}
	if capacity > 0 {
		t.rehash(slotsFor(capacity))
	}
	return t
}

// slotsFor returns the power-of-two slot count that keeps n elements under
// the load factor.
func slotsFor(n int) int {
	want := util.NextPow2(uint64(n*loadDen+loadNum-1) / loadNum)
	if want < minCapacity {
		want = minCapacity
	}
	return int(want)
}

// Len returns the number of live elements.
func (t *Table[K, E]) Len() int { return t.used }

// Get returns the element whose key equals k.
func (t *Table[K, E]) Get(k K) (E, bool) {
	var zero E
	if t.used == 0 {
		return zero, false
	}
	h := t.hash(k)
	for i := h & t.mask; ; i = (i + 1) & t.mask {
		s := &t.slots[i]
		if !s.live {
			return zero, false
		}
		if s.hash == h && t.keyOf(s.elem) == k {
			return s.elem, true
		}
	}
}

// Put inserts e, replacing any element with an equal key. It returns the
// replaced element, if any.
func (t *Table[K, E]) Put(e E) (E, bool) {
	var zero E
	if t.slots == nil || (t.used+1)*loadDen > len(t.slots)*loadNum {
		t.grow()
	}
	k := t.keyOf(e)
	h := t.hash(k)
	for i := h & t.mask; ; i = (i + 1) & t.mask {
		s := &t.slots[i]
		if !s.live {
			s.elem, s.hash, s.live = e, h, true
			t.used++
			return zero, false
		}
		if s.hash == h && t.keyOf(s.elem) == k {
			prev := s.elem
			s.elem = e
			return prev, true
		}
	}
}

// Delete removes and returns the element whose key equals k. Deletion uses
// backward shifting so probe chains stay dense and lookups need no tombstone
// handling.
func (t *Table[K, E]) Delete(k K) (E, bool) {
	var zero E
	if t.used == 0 {
		return zero, false
	}
	h := t.hash(k)
	i := h & t.mask
	for {
		s := &t.slots[i]
		if !s.live {
			return zero, false
		}
		if s.hash == h && t.keyOf(s.elem) == k {
			break
		}
		i = (i + 1) & t.mask
	}
	removed := t.slots[i].elem
	t.shiftBack(i)
	t.used--
	return removed, true
}

// shiftBack empties slot i, moving later entries of the probe chain backward
// when their ideal position allows it (Knuth's deletion for linear probing).
func (t *Table[K, E]) shiftBack(i uint64) {
	j := i
	for {
		j = (j + 1) & t.mask
		s := &t.slots[j]
		if !s.live {
			break
		}
		ideal := s.hash & t.mask
		// If ideal lies cyclically in (i, j], the entry is already as close
		// to home as it can get and must not move.
		if cyclicBetween(ideal, i, j) {
			continue
		}
		t.slots[i] = *s
		i = j
	}
	t.slots[i] = slot[E]{}
}

// cyclicBetween reports whether x lies in the half-open cyclic range (lo, hi].
func cyclicBetween(x, lo, hi uint64) bool {
	if lo <= hi {
		return lo < x && x <= hi
	}
	return lo < x || x <= hi
}

// Clear drops all elements and releases the backing array.
func (t *Table[K, E]) Clear() {
	t.slots = nil
	t.mask = 0
	t.used = 0
}

// ShrinkToFit reallocates the table at the smallest size that holds the
// current elements under the load factor. It never drops elements.
func (t *Table[K, E]) ShrinkToFit() {
	if t.used == 0 {
		t.Clear()
		return
	}
	want := slotsFor(t.used)
	if want < len(t.slots) {
		t.rehash(want)
	}
}

func (t *Table[K, E]) grow() {
	if t.slots == nil {
		t.rehash(minCapacity)
		return
	}
	t.rehash(len(t.slots) * 2)
}

func (t *Table[K, E]) rehash(n int) {
	old := t.slots
	t.slots = make([]slot[E], n)
	t.mask = uint64(n - 1)
	for idx := range old {
		s := &old[idx]
		if !s.live {
			continue
		}
		for i := s.hash & t.mask; ; i = (i + 1) & t.mask {
			d := &t.slots[i]
			if !d.live {
				*d = *s
				break
			}
		}
	}
}
