package cache

import "github.com/cachetools/lru/limit"

// Options configures a cache built with NewWithOptions. The zero value is
// valid and yields an unbounded cache with the default hasher and no
// metrics.
type Options[K comparable, V any] struct {
	// Limiter governs admission and eviction. Nil means unlimited.
	Limiter limit.Limiter[K, V]

	// Hash overrides the key hash function. Nil selects the built-in
	// hasher: xxhash for string keys, runtime maphash otherwise, both
	// finalized with a 64-bit mixer.
	Hash func(K) uint64

	// Seed perturbs the built-in hasher. Ignored when Hash is set. Zero is
	// a valid seed; the runtime maphash contributes per-process entropy
	// regardless.
	Seed uint64

	// Metrics receives cache events. Nil means none.
	Metrics Metrics
}
