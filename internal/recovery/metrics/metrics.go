// Package metrics exposes the recovery flow's operational counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResetRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storegate_reset_requests_total",
		Help: "Reset requests by result (sent, suppressed, rate_limited, error).",
	}, []string{"result"})

	CodeVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storegate_code_verifications_total",
		Help: "One-time code verification attempts by result.",
	}, []string{"result"})

	ResetCompletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storegate_reset_completions_total",
		Help: "Password reset completions by result.",
	}, []string{"result"})

	SyncOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storegate_secondary_sync_total",
		Help: "Secondary-store sync attempts by change type and outcome status.",
	}, []string{"change", "status"})
)
