package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// ExternalCalls counts outbound provider calls by provider and outcome.
	ExternalCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "external_calls_total", Help: "Outbound routing/geocoding provider calls."},
		[]string{"provider", "status"},
	)

	// CacheHits and CacheMisses count lookups by cache kind and layer.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cache_hits_total", Help: "Cache hits by cache and layer."},
		[]string{"cache", "layer"},
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cache_misses_total", Help: "Cache misses by cache and layer."},
		[]string{"cache", "layer"},
	)

	// Plans counts planning requests by outcome.
	Plans = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "fuel_plans_total", Help: "Planning requests by outcome."},
		[]string{"status"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(ExternalCalls)
		Registry.MustRegister(CacheHits)
		Registry.MustRegister(CacheMisses)
		Registry.MustRegister(Plans)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
