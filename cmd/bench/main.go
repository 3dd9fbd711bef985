// Command bench drives a mutex-guarded cache with a zipf-distributed
// workload and serves Prometheus metrics and pprof while it runs.
//
// Example:
//
//	go run ./cmd/bench -entries 100000 -workers 8 -writes 0.1 -listen :9090
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/cachetools/lru/cache"
	"github.com/cachetools/lru/limit"
	"github.com/cachetools/lru/metrics/prom"
)

func main() {
	var (
		entries  = flag.Int("entries", 1<<17, "cache capacity in entries (0 = cost-limited instead)")
		costCap  = flag.Uint64("cost", 1<<24, "total cost limit when -entries is 0")
		keySpace = flag.Int("keyspace", 1<<20, "distinct keys in the workload")
		workers  = flag.Int("workers", 4, "concurrent workers")
		writes   = flag.Float64("writes", 0.1, "fraction of operations that are Put")
		dur      = flag.Duration("duration", 30*time.Second, "how long to run")
		zipfS    = flag.Float64("zipf-s", 1.1, "zipf skew parameter (s > 1)")
		listen   = flag.String("listen", ":9090", "address for /metrics and /debug/pprof")
	)
	flag.Parse()

	reg := prometheus.NewRegistry()
	adapter := prom.New(reg, prom.Opts{Namespace: "lru", Subsystem: "bench"})

	var limiter limit.Limiter[uint64, [16]byte]
	var costL *limit.Cost[uint64, [16]byte]
	if *entries > 0 {
		limiter = limit.NewCount[uint64, [16]byte](*entries)
	} else {
		costL = limit.NewCost[uint64, [16]byte](*costCap, nil, func([16]byte) uint64 { return 16 })
		limiter = costL
	}

	c := cache.NewWithOptions(cache.Options[uint64, [16]byte]{
		Limiter: limiter,
		Metrics: adapter,
	})
	var mu sync.Mutex

	if costL != nil {
		// Current is an atomic load, so the gauge reads it without the
		// cache mutex.
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "lru", Subsystem: "bench", Name: "cost_current",
			Help: "Total cost currently held by the limiter.",
		}, func() float64 { return float64(costL.Current()) }))
	}

	go func() {
		log.Printf("serving /metrics and /debug/pprof on %s", *listen)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		mux.Handle("/debug/", http.DefaultServeMux)
		log.Fatal(http.ListenAndServe(*listen, mux))
	}()

	deadline := time.Now().Add(*dur)
	var g errgroup.Group
	ops := make([]uint64, *workers)
	for w := 0; w < *workers; w++ {
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(int64(w) + 1))
			zipf := rand.NewZipf(rng, *zipfS, 1, uint64(*keySpace-1))
			var val [16]byte
			for time.Now().Before(deadline) {
				for i := 0; i < 1024; i++ {
					k := zipf.Uint64()
					if rng.Float64() < *writes {
						rng.Read(val[:])
						mu.Lock()
						c.Put(k, val)
						mu.Unlock()
					} else {
						mu.Lock()
						c.Get(k)
						mu.Unlock()
					}
					ops[w]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	var total uint64
	for _, n := range ops {
		total += n
	}
	st := c.Stats()
	fmt.Printf("ops: %d (%.0f/s)\n", total, float64(total)/dur.Seconds())
	fmt.Printf("len: %d  hits: %d  misses: %d  evictions: %d\n",
		c.Len(), st.Hits, st.Misses, st.Evictions)
	if st.Hits+st.Misses > 0 {
		fmt.Printf("hit ratio: %.2f%%\n", 100*float64(st.Hits)/float64(st.Hits+st.Misses))
	}
}
