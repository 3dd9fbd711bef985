package cache

// node holds one key/value pair together with its links into the recency
// list. A node is simultaneously a list element and the element stored in the
// hash index, so one allocation covers both memberships. Nodes are owned
// exclusively by the cache and never escape an entry view.
type node[K comparable, V any] struct {
	key K
	val V

	// Intrusive circular links: following next walks toward the LRU end.
	prev *node[K, V]
	next *node[K, V]
}

// newSigil allocates the list anchor. The sigil's key/value stay zero and
// are never read; it is not indexed and never yielded by iteration.
func newSigil[K comparable, V any]() *node[K, V] {
	n := &node[K, V]{}
	n.prev = n
	n.next = n
	return n
}
