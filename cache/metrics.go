package cache

// EvictReason labels why an entry was evicted.
type EvictReason int

const (
	// EvictCapacity means an insertion pushed the cache over its limit.
	EvictCapacity EvictReason = iota
	// EvictResize means Resize or UpdateLimiter tightened the limit.
	EvictResize
)

// String returns the reason label used by metric backends.
func (r EvictReason) String() string {
	switch r {
	case EvictCapacity:
		return "capacity"
	case EvictResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Metrics receives cache events. Implementations must be cheap; the cache
// calls them inline on hot paths. See metrics/prom for a Prometheus adapter.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Reject()
	Size(entries int)
}

// NoopMetrics discards all events. It is the default.
type NoopMetrics struct{}

func (NoopMetrics) Hit() {}

func (NoopMetrics) Miss() {}

func (NoopMetrics) Evict(EvictReason) {}

func (NoopMetrics) Reject() {}

func (NoopMetrics) Size(int) {}

var _ Metrics = NoopMetrics{}
