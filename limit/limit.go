// Package limit defines the pluggable admission/eviction policies used by
// the cache. A Limiter is consulted on every add, update, and removal, and
// decides whether the cache is over its budget. Three policies are provided:
// Unlimited, Count (entry-count capacity), and Cost (caller-supplied cost
// functions with an atomic running total). Custom policies implement the
// Limiter interface directly.
package limit

// Behavior tells the cache what to do with a new or updated entry.
type Behavior int

const (
	// Accept stores the entry without evicting anything.
	Accept Behavior = iota
	// Evict stores the entry, reusing the current LRU slot. Preferred over
	// Accept when the entry pushes the cache over budget, because it lets
	// the cache recycle the victim's node instead of allocating.
	// For updates Evict behaves exactly like Accept, since an update never
	// changes the number of resident entries.
	Evict
	// Reject refuses the entry. OnRemove is never called for a rejected
	// entry, so a rejecting OnAdd/OnUpdate must leave the limiter's state
	// untouched.
	Reject
)

// String returns the behavior name for logs and test failures.
func (b Behavior) String() string {
	switch b {
	case Accept:
		return "Accept"
	case Evict:
		return "Evict"
	case Reject:
		return "Reject"
	default:
		return "Behavior(?)"
	}
}

// View is the read-only slice of the cache a limiter may inspect while
// deciding. It is deliberately minimal: policies that track their own
// aggregates (like Cost) never need the cache at all.
type View interface {
	// Len returns the number of resident entries.
	Len() int
}

// Limiter constrains the size of a cache. Implementations may limit the
// number of entries, their total cost, or any other aggregate.
//
// Contract: OnRemove fires only for entries whose originating OnAdd or
// OnUpdate returned Accept or Evict. All calls happen under the cache's
// single-writer discipline, but IsOversized and any aggregate accessors may
// additionally be called from shared-reference readers, so aggregates that
// back them must be independently safe to read.
type Limiter[K comparable, V any] interface {
	// IsOversized reports whether the cache currently exceeds its budget.
	IsOversized(c View) bool

	// OnAdd is consulted before a new entry is stored. It updates any
	// aggregates and picks the Behavior for the entry.
	OnAdd(c View, key K, value *V) Behavior

	// OnUpdate is consulted before a resident entry's key or value is
	// replaced. A nil newKey or newValue means that dimension is unchanged.
	// A Reject must not partially commit any aggregate change.
	OnUpdate(c View, oldKey K, oldValue *V, newKey *K, newValue *V) Behavior

	// OnRemove is bookkeeping only: the entry identified by key/value has
	// left the cache and its contribution must be reversed.
	OnRemove(c View, key K, value *V)
}

// Unlimited never evicts and never rejects.
type Unlimited[K comparable, V any] struct{}

// NewUnlimited returns a limiter that accepts everything.
func NewUnlimited[K comparable, V any]() Unlimited[K, V] { return Unlimited[K, V]{} }

func (Unlimited[K, V]) IsOversized(View) bool { return false }

func (Unlimited[K, V]) OnAdd(View, K, *V) Behavior { return Accept }

func (Unlimited[K, V]) OnUpdate(View, K, *V, *K, *V) Behavior { return Accept }

func (Unlimited[K, V]) OnRemove(View, K, *V) {}
