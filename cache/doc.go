// Package cache implements a generic LRU cache with a pluggable limit
// policy.
//
// The cache is a hash index over the nodes of an intrusive, circular
// recency list. Each entry's key is stored once, in the node, and the index
// keys off that node directly; a hit is one table probe and two pointer
// splices. The list's sentinel is allocated lazily, so an empty cache holds
// no nodes at all.
//
// Admission and eviction are delegated to a limit.Limiter. The package
// ships three: limit.Unlimited (never evicts), limit.Count (bounded entry
// count, classic LRU), and limit.Cost (bounded total cost under
// caller-supplied key and value cost functions, where one insertion may
// evict several entries). Custom limiters implement the same four hooks.
//
// Basic use:
//
//	c := cache.New[string, int](128)
//	c.Put("a", 1)
//	if v, ok := c.Get("a"); ok {
//		fmt.Println(v)
//	}
//
// The Entry API exposes the slot behind a key so that a lookup, a decision,
// and a mutation happen against one probe:
//
//	e := c.Entry("a")
//	if occ, ok := e.Occupied(); ok {
//		*occ.Get()++
//	} else if vac, ok := e.Vacant(); ok {
//		vac.Insert(1)
//	}
//
// Insertions through the entry API return views that carry the evictions
// they caused. Callers either drain them with TakeEvicted or discard them
// with Finish; the top-level Put, Push and GetOrInsert do the draining
// themselves.
//
// A Cache is not synchronized. Wrap it in a mutex to share it between
// goroutines; read-only calls (Peek, Contains, Len, Stats) are safe
// alongside each other.
package cache
