package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		pricingResolutionsTotal,
		pricingCacheRequestsTotal,
		pricingFetchLatencyMs,
		pricingBreakerOpens,
	)
}

var (
	pricingResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_resolutions_total",
			Help: "Price resolutions by source (live/fallback) and outcome (ok/error).",
		},
		[]string{"source", "outcome"},
	)

	pricingCacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_cache_requests_total",
			Help: "Live-price cache hits and misses.",
		},
		[]string{"result"},
	)

	pricingFetchLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricing_fetch_latency_ms",
			Help:    "Live pricing fetch latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
	)

	pricingBreakerOpens = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pricing_breaker_opens_total",
			Help: "Times the live pricing circuit breaker tripped open.",
		},
	)
)

func IncPricingResolution(source, outcome string) {
	pricingResolutionsTotal.WithLabelValues(norm(source), norm(outcome)).Inc()
}

func IncPricingCache(result string) {
	pricingCacheRequestsTotal.WithLabelValues(norm(result)).Inc()
}

func ObservePricingFetchLatency(ms float64) { pricingFetchLatencyMs.Observe(ms) }

func IncPricingBreakerOpen() { pricingBreakerOpens.Inc() }
