package cache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var cacheOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_requests_total",
		Help: "Total number of cache lookups by result (hit/miss/error).",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(cacheOps)
}

// Instrumented wraps a Store and counts lookup outcomes in Prometheus.
// Person payloads and product-list pages dominate traffic, so the hit
// ratio here tracks the value of the cache layer directly.
type Instrumented struct {
	Next Store
}

// Instrument decorates s with hit/miss metrics.
func Instrument(s Store) *Instrumented {
	return &Instrumented{Next: s}
}

// Get records hit, miss, or error, then delegates.
func (i *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := i.Next.Get(ctx, key)
	switch {
	case err == nil:
		cacheOps.WithLabelValues("hit").Inc()
	case errors.Is(err, ErrMiss):
		cacheOps.WithLabelValues("miss").Inc()
	default:
		cacheOps.WithLabelValues("error").Inc()
	}
	return v, err
}

// Set delegates to the wrapped store.
func (i *Instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return i.Next.Set(ctx, key, value, ttl)
}

// Delete delegates to the wrapped store.
func (i *Instrumented) Delete(ctx context.Context, key string) error {
	return i.Next.Delete(ctx, key)
}

// Clear delegates to the wrapped store.
func (i *Instrumented) Clear(ctx context.Context) error {
	return i.Next.Clear(ctx)
}
