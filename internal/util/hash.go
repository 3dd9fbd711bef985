// Package util contains internal helpers (hashing, sizing, padding).
package util

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher builds a seeded hash function for keys of type K. Strings take the
// xxhash fast path; every other comparable type goes through
// maphash.Comparable with a per-hasher random seed. The caller-supplied seed
// is folded into the result, so two caches with different seeds probe their
// tables in different orders even for identical keys.
func Hasher[K comparable](seed uint64) func(K) uint64 {
	ms := maphash.MakeSeed()
	return func(k K) uint64 {
		var h uint64
		if s, ok := any(k).(string); ok {
			h = xxhash.Sum64String(s)
		} else {
			h = maphash.Comparable(ms, k)
		}
		return Mix64(h ^ seed)
	}
}

// Mix64 is the splitmix64 finalizer. It spreads entropy across all bits so
// that power-of-two masking of the result stays well distributed.
func Mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
