package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		sessionsCreatedTotal,
		sessionsRedeemedTotal,
		redemptionFailuresTotal,
		sessionsSweptTotal,
		sessionsLive,
	)
}

var (
	sessionsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_sessions_created_total",
			Help: "Payment sessions created, labeled by product and price source.",
		},
		[]string{"product", "source"},
	)

	sessionsRedeemedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_sessions_redeemed_total",
			Help: "Sessions redeemed exactly once for premium content.",
		},
	)

	redemptionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_redemption_failures_total",
			Help: "Failed redemption attempts by reason (not_found/expired/already_completed/bad_signature).",
		},
		[]string{"reason"},
	)

	sessionsSweptTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_sessions_swept_total",
			Help: "Sessions moved by the sweeper, labeled expired or evicted.",
		},
		[]string{"outcome"},
	)

	sessionsLive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "payment_sessions_live",
			Help: "Sessions currently held in the store.",
		},
	)
)

func IncSessionCreated(product, source string) {
	sessionsCreatedTotal.WithLabelValues(norm(product), norm(source)).Inc()
}

func IncSessionRedeemed() { sessionsRedeemedTotal.Inc() }

func IncRedemptionFailure(reason string) {
	redemptionFailuresTotal.WithLabelValues(norm(reason)).Inc()
}

func AddSessionsSwept(outcome string, n int) {
	if n > 0 {
		sessionsSweptTotal.WithLabelValues(norm(outcome)).Add(float64(n))
	}
}

func SetSessionsLive(n int) { sessionsLive.Set(float64(n)) }
