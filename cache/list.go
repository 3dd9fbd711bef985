package cache

// list is the intrusive circular recency list: sigil.next is the MRU entry,
// sigil.prev the LRU entry. The sigil is allocated lazily on the first
// insertion, so an empty cache costs a couple of words. All operations are
// O(1) pointer splices.
type list[K comparable, V any] struct {
	sigil *node[K, V]
}

// root returns the sigil, allocating it on first use.
func (l *list[K, V]) root() *node[K, V] {
	if l.sigil == nil {
		l.sigil = newSigil[K, V]()
	}
	return l.sigil
}

// attach inserts n right after the sigil, making it the MRU entry.
func (l *list[K, V]) attach(n *node[K, V]) {
	root := l.root()
	n.next = root.next
	n.prev = root
	root.next.prev = n
	root.next = n
}

// attachLast inserts n right before the sigil, making it the LRU entry.
func (l *list[K, V]) attachLast(n *node[K, V]) {
	root := l.root()
	n.next = root
	n.prev = root.prev
	root.prev.next = n
	root.prev = n
}

// detach splices n out by relinking its neighbours. n's own links are left
// dangling; callers either reattach or discard the node.
func (l *list[K, V]) detach(n *node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

// promote moves n to the MRU position.
func (l *list[K, V]) promote(n *node[K, V]) {
	l.detach(n)
	l.attach(n)
}

// demote moves n to the LRU position.
func (l *list[K, V]) demote(n *node[K, V]) {
	l.detach(n)
	l.attachLast(n)
}

// front returns the MRU node, or nil if the list is empty.
func (l *list[K, V]) front() *node[K, V] {
	if l.sigil == nil || l.sigil.next == l.sigil {
		return nil
	}
	return l.sigil.next
}

// back returns the LRU node, or nil if the list is empty.
func (l *list[K, V]) back() *node[K, V] {
	if l.sigil == nil || l.sigil.prev == l.sigil {
		return nil
	}
	return l.sigil.prev
}

// reset drops the sigil; the list returns to its never-used state.
func (l *list[K, V]) reset() {
	l.sigil = nil
}
