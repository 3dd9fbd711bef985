package cache

import "testing"

// TestIterOrder checks that iteration runs from MRU to LRU and reflects
// promotions.
func TestIterOrder(t *testing.T) {
	t.Parallel()

	c := New[int, int](4)
	for i := 1; i <= 3; i++ {
		c.Put(i, i*10)
	}
	c.Get(1) // order is now 1, 3, 2

	var keys []int
	for k, v := range c.All() {
		if v != k*10 {
			t.Fatalf("value for %d = %d, want %d", k, v, k*10)
		}
		keys = append(keys, k)
	}
	if len(keys) != 3 || keys[0] != 1 || keys[1] != 3 || keys[2] != 2 {
		t.Fatalf("forward order = %v, want [1 3 2]", keys)
	}

	keys = keys[:0]
	for k := range c.Backward() {
		keys = append(keys, k)
	}
	if len(keys) != 3 || keys[0] != 2 || keys[1] != 3 || keys[2] != 1 {
		t.Fatalf("backward order = %v, want [2 3 1]", keys)
	}
}

// TestIterDoubleEnded pulls from both ends of one cursor and checks the
// ends meet in the middle instead of crossing.
func TestIterDoubleEnded(t *testing.T) {
	t.Parallel()

	c := New[int, int](8)
	for i := 1; i <= 5; i++ {
		c.Put(i, i)
	}

	it := c.Iter()
	seen := make(map[int]bool)
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		if seen[k] {
			t.Fatalf("key %d yielded twice", k)
		}
		seen[k] = true

		k, _, ok = it.NextBack()
		if !ok {
			break
		}
		if seen[k] {
			t.Fatalf("key %d yielded twice", k)
		}
		seen[k] = true
	}
	if len(seen) != 5 {
		t.Fatalf("double-ended walk yielded %d keys, want 5", len(seen))
	}
	if _, _, ok := it.Next(); ok {
		t.Fatalf("exhausted cursor yielded from the front")
	}
	if _, _, ok := it.NextBack(); ok {
		t.Fatalf("exhausted cursor yielded from the back")
	}
}

// TestIterEmpty checks that cursors and range functions over an empty cache
// terminate immediately.
func TestIterEmpty(t *testing.T) {
	t.Parallel()

	c := New[int, int](4)
	it := c.Iter()
	if _, _, ok := it.Next(); ok {
		t.Fatalf("cursor over empty cache yielded")
	}
	for range c.All() {
		t.Fatalf("All over empty cache yielded")
	}
}

// TestIterMutate mutates values through the cursor's pointers and checks
// the changes land in the cache without touching recency.
func TestIterMutate(t *testing.T) {
	t.Parallel()

	c := New[int, int](4)
	c.Put(1, 1)
	c.Put(2, 2)

	it := c.Iter()
	for k, v, ok := it.Next(); ok; k, v, ok = it.Next() {
		*v = k * 100
	}
	if v, _ := c.Peek(1); v != 100 {
		t.Fatalf("Peek(1) = %d, want 100", v)
	}
	if k, _, _ := c.PeekLRU(); k != 1 {
		t.Fatalf("iteration changed recency: LRU = %d, want 1", k)
	}
}

// TestIterEarlyBreak stops a range mid-way and checks the cache is still
// consistent afterwards.
func TestIterEarlyBreak(t *testing.T) {
	t.Parallel()

	c := New[int, int](8)
	for i := 0; i < 8; i++ {
		c.Put(i, i)
	}
	n := 0
	for range c.All() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 || c.Len() != 8 {
		t.Fatalf("early break: yielded %d, len %d", n, c.Len())
	}
}
