package cache

// Stats is a snapshot of the cache's internal counters. Counters are kept
// with atomics, so Stats may be read while other goroutines read the cache;
// it still must not race with writers.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Rejections uint64
}

// Stats returns a snapshot of the counters accumulated since construction.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Evictions:  c.evicts.Load(),
		Rejections: c.rejects.Load(),
	}
}
