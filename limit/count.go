package limit

// Count limits the number of resident entries.
type Count[K comparable, V any] struct {
	limit int
}

// NewCount returns a limiter that holds at most n entries. A zero n rejects
// every insertion.
func NewCount[K comparable, V any](n int) *Count[K, V] {
	return &Count[K, V]{limit: n}
}

// Limit returns the current entry capacity.
func (l *Count[K, V]) Limit() int { return l.limit }

// SetLimit changes the entry capacity. The cache enforces the new limit on
// the next mutation (or immediately via Cache.Resize/UpdateLimiter).
func (l *Count[K, V]) SetLimit(n int) { l.limit = n }

func (l *Count[K, V]) IsOversized(c View) bool { return c.Len() > l.limit }

func (l *Count[K, V]) OnAdd(c View, _ K, _ *V) Behavior {
	switch {
	case l.limit == 0:
		return Reject
	case c.Len() >= l.limit:
		return Evict
	default:
		return Accept
	}
}

// OnUpdate always accepts: updates don't change the entry count.
func (l *Count[K, V]) OnUpdate(View, K, *V, *K, *V) Behavior { return Accept }

func (l *Count[K, V]) OnRemove(View, K, *V) {}
