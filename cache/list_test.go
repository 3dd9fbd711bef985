package cache

import "testing"

// keysOf walks the list front to back, also checking the circular links are
// mutually consistent at every step.
func keysOf(t *testing.T, l *list[int, int]) []int {
	t.Helper()
	if l.sigil == nil {
		return nil
	}
	var keys []int
	for n := l.sigil.next; n != l.sigil; n = n.next {
		if n.next.prev != n || n.prev.next != n {
			t.Fatalf("broken links at key %d", n.key)
		}
		keys = append(keys, n.key)
	}
	return keys
}

// TestListLazySigil checks that an untouched list allocates nothing and
// that front/back handle both the nil and the self-linked sigil.
func TestListLazySigil(t *testing.T) {
	t.Parallel()

	var l list[int, int]
	if l.sigil != nil {
		t.Fatalf("zero list allocated a sigil")
	}
	if l.front() != nil || l.back() != nil {
		t.Fatalf("empty list has a front or back")
	}

	n := &node[int, int]{key: 1}
	l.attach(n)
	l.detach(n)
	if l.front() != nil || l.back() != nil {
		t.Fatalf("list not empty after detaching its only node")
	}
	if l.sigil == nil {
		t.Fatalf("sigil released too early; detach must not free it")
	}
}

// TestListAttachOrder checks attach places at the front and attachLast at
// the back.
func TestListAttachOrder(t *testing.T) {
	t.Parallel()

	var l list[int, int]
	l.attach(&node[int, int]{key: 1})
	l.attach(&node[int, int]{key: 2})
	l.attachLast(&node[int, int]{key: 3})

	got := keysOf(t, &l)
	if len(got) != 3 || got[0] != 2 || got[1] != 1 || got[2] != 3 {
		t.Fatalf("order = %v, want [2 1 3]", got)
	}
	if l.front().key != 2 || l.back().key != 3 {
		t.Fatalf("front/back = %d/%d, want 2/3", l.front().key, l.back().key)
	}
}

// TestListPromoteDemote moves nodes between the ends and verifies the
// resulting order.
func TestListPromoteDemote(t *testing.T) {
	t.Parallel()

	var l list[int, int]
	nodes := make([]*node[int, int], 4)
	for i := range nodes {
		nodes[i] = &node[int, int]{key: i}
		l.attach(nodes[i])
	}
	// Current order: 3 2 1 0.
	l.promote(nodes[0])
	l.demote(nodes[3])
	got := keysOf(t, &l)
	if len(got) != 4 || got[0] != 0 || got[1] != 2 || got[2] != 1 || got[3] != 3 {
		t.Fatalf("order = %v, want [0 2 1 3]", got)
	}

	// Promoting the front and demoting the back must be no-ops.
	l.promote(nodes[0])
	l.demote(nodes[3])
	again := keysOf(t, &l)
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("no-op reorder changed the list: %v", again)
		}
	}
}

// TestListReset drops the sigil and verifies the list is reusable.
func TestListReset(t *testing.T) {
	t.Parallel()

	var l list[int, int]
	l.attach(&node[int, int]{key: 1})
	l.reset()
	if l.sigil != nil {
		t.Fatalf("reset kept the sigil")
	}
	l.attach(&node[int, int]{key: 2})
	if got := keysOf(t, &l); len(got) != 1 || got[0] != 2 {
		t.Fatalf("list after reset = %v, want [2]", got)
	}
}
