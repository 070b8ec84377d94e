package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(paymentsRevenueTotal)
}

var paymentsRevenueTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "payments_revenue_total",
		Help: "The total monetary value of redeemed sessions, labeled by currency.",
	},
	[]string{"currency"},
)

func AddPaymentRevenue(currency string, amount int64) {
	paymentsRevenueTotal.WithLabelValues(norm(currency)).Add(float64(amount))
}
