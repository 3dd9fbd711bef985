package limit

import (
	"fmt"
	"math"
	"sync/atomic"
)

// MaxCostLimit is the highest limit a Cost limiter accepts. Capping the
// limit at half the uint64 range guarantees that adding any admissible
// entry cost to the running total can never overflow.
const MaxCostLimit = math.MaxUint64 / 2

// Cost limits the total "cost" of the cache under an arbitrary pair of cost
// functions, one per dimension (key and value). The running total is an
// atomic updated with compare-and-swap retry loops, so shared-reference
// readers of Current and IsOversized never observe a torn value even while
// a single writer mutates the cache under an external lock.
//
// It is a contract violation for the cost of a key or value to change while
// it is resident (just like mutating a map key). The limiter detects this on
// removal and panics rather than silently corrupting its aggregate.
type Cost[K comparable, V any] struct {
	limit   uint64
	current atomic.Uint64
	keyCost func(K) uint64
	valCost func(V) uint64
}

// NewCost returns a limiter that keeps the summed cost of resident entries
// at or below limit. Either cost function may be nil, in which case that
// dimension costs nothing. Panics if limit exceeds MaxCostLimit.
func NewCost[K comparable, V any](limit uint64, keyCost func(K) uint64, valueCost func(V) uint64) *Cost[K, V] {
	l := &Cost[K, V]{keyCost: keyCost, valCost: valueCost}
	l.SetLimit(limit)
	return l
}

// Limit returns the current cost limit.
func (l *Cost[K, V]) Limit() uint64 { return l.limit }

// SetLimit changes the cost limit. Panics if limit exceeds MaxCostLimit.
func (l *Cost[K, V]) SetLimit(limit uint64) {
	if limit > MaxCostLimit {
		panic(fmt.Sprintf("limit: cost limit %d exceeds maximum %d", limit, uint64(MaxCostLimit)))
	}
	l.limit = limit
}

// Current returns the running cost total. Safe to call concurrently with a
// mutating writer.
func (l *Cost[K, V]) Current() uint64 { return l.current.Load() }

// EntryCost returns the cost this limiter assigns to a key/value pair.
func (l *Cost[K, V]) EntryCost(key K, value V) uint64 {
	return l.costOfKey(key) + l.costOfValue(value)
}

func (l *Cost[K, V]) costOfKey(key K) uint64 {
	if l.keyCost == nil {
		return 0
	}
	return l.keyCost(key)
}

func (l *Cost[K, V]) costOfValue(value V) uint64 {
	if l.valCost == nil {
		return 0
	}
	return l.valCost(value)
}

func (l *Cost[K, V]) IsOversized(View) bool { return l.Current() > l.limit }

func (l *Cost[K, V]) OnAdd(_ View, key K, value *V) Behavior {
	cost := l.EntryCost(key, *value)
	// An entry whose own cost exceeds the limit can never fit, no matter
	// how much is evicted.
	if cost > l.limit {
		return Reject
	}
	return l.apply(func(cur uint64) uint64 { return addCost(cur, cost) })
}

func (l *Cost[K, V]) OnUpdate(_ View, oldKey K, oldValue *V, newKey *K, newValue *V) Behavior {
	var prev, next uint64
	if newKey != nil {
		prev += l.costOfKey(oldKey)
		next += l.costOfKey(*newKey)
	}
	if newValue != nil {
		prev += l.costOfValue(*oldValue)
		next += l.costOfValue(*newValue)
	}
	// Reject before committing anything if the updated entry could never
	// fit on its own.
	newEntry := l.EntryCost(oldKey, *oldValue) - prev + next
	if newEntry > l.limit {
		return Reject
	}
	return l.apply(func(cur uint64) uint64 { return addCost(subCost(cur, prev), next) })
}

func (l *Cost[K, V]) OnRemove(_ View, key K, value *V) {
	cost := l.EntryCost(key, *value)
	l.apply(func(cur uint64) uint64 { return subCost(cur, cost) })
}

// apply commits a total transition with a CAS retry loop and translates the
// new total into a Behavior. Concurrent readers of Current always see either
// the old or the new total, never an intermediate.
func (l *Cost[K, V]) apply(f func(uint64) uint64) Behavior {
	for {
		cur := l.current.Load()
		next := f(cur)
		if l.current.CompareAndSwap(cur, next) {
			if next > l.limit {
				return Evict
			}
			return Accept
		}
	}
}

func addCost(cur, cost uint64) uint64 {
	next := cur + cost
	if next < cur {
		panic("limit: cost total overflowed; this should be impossible under MaxCostLimit")
	}
	return next
}

func subCost(cur, cost uint64) uint64 {
	if cost > cur {
		panic("limit: key or value cost changed between insertion and removal")
	}
	return cur - cost
}
