package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ============================================
	// Card lookup metrics
	// ============================================
	CardLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redeem_card_lookups_total",
			Help: "Total number of card lookups by result",
		},
		[]string{"result"},
	)

	// ============================================
	// Secret verification metrics
	// ============================================
	SecretVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redeem_secret_verifications_total",
			Help: "Total number of secret verification attempts by result",
		},
		[]string{"result"},
	)

	// ============================================
	// Redemption metrics
	// ============================================
	RedemptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redeem_redemptions_total",
			Help: "Total number of redemption attempts by result",
		},
		[]string{"result"},
	)

	RedemptionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "redeem_redemption_duration_seconds",
		Help:    "End-to-end redemption duration (submit through confirmation)",
		Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
	})
)
