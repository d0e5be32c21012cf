package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Calls to repository methods
	RepositoryCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repository_calls_total",
			Help: "Total number of repository method calls",
		},
		[]string{"method", "status"},
	)

	RepositoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "repository_duration_seconds",
			Help:    "Duration of repository method calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	PaymentVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verifications_total",
			Help: "Payment verifications by reconciled gateway status",
		},
		[]string{"status"},
	)

	WalletCredits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_credits_total",
			Help: "Wallet credits issued for completed purchases",
		},
	)

	OwnershipMismatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_ownership_mismatch_total",
			Help: "Requests whose caller identity differs from the transaction owner",
		},
		[]string{"operation"},
	)

	OutboxPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_published_total",
			Help: "Outbox events handed to Kafka",
		},
		[]string{"status"},
	)
)

var registerOnce sync.Once

func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RepositoryCalls,
			RepositoryDuration,
			PaymentVerifications,
			WalletCredits,
			OwnershipMismatches,
			OutboxPublished,
		)
	})
}
