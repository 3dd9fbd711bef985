// Package prom exports cache metrics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cachetools/lru/cache"
)

// Opts configures the adapter's metric names.
type Opts struct {
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels
}

// Adapter implements cache.Metrics on top of Prometheus collectors.
// Evictions are partitioned by reason ("capacity", "resize").
type Adapter struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	evictions *prometheus.CounterVec
	rejects   prometheus.Counter
	size      prometheus.Gauge
}

// New builds an Adapter and registers its collectors with reg. It panics on
// duplicate registration, same as prometheus.MustRegister.
func New(reg prometheus.Registerer, opts Opts) *Adapter {
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "hits_total",
			Help:        "Lookups that found a resident entry.",
			ConstLabels: opts.ConstLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "misses_total",
			Help:        "Lookups that found no entry.",
			ConstLabels: opts.ConstLabels,
		}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "evictions_total",
			Help:        "Entries evicted, by reason.",
			ConstLabels: opts.ConstLabels,
		}, []string{"reason"}),
		rejects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "rejections_total",
			Help:        "Insertions and updates refused by the limiter.",
			ConstLabels: opts.ConstLabels,
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   opts.Namespace,
			Subsystem:   opts.Subsystem,
			Name:        "size_entries",
			Help:        "Resident entries.",
			ConstLabels: opts.ConstLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.evictions, a.rejects, a.size)
	return a
}

func (a *Adapter) Hit() { a.hits.Inc() }

func (a *Adapter) Miss() { a.misses.Inc() }

func (a *Adapter) Reject() { a.rejects.Inc() }

func (a *Adapter) Evict(reason cache.EvictReason) {
	a.evictions.WithLabelValues(reason.String()).Inc()
}

func (a *Adapter) Size(entries int) { a.size.Set(float64(entries)) }

var _ cache.Metrics = (*Adapter)(nil)
