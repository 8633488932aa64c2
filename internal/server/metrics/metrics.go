// Package metrics exposes the server's Prometheus instrumentation. Counters
// are registered on the default registry and served by the API's /metrics
// endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SettlementsTotal counts successfully settled swaps.
	SettlementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_settlements_total",
		Help: "Number of completed swap settlements.",
	})

	// CreditsTransferredTotal counts credits moved from learners to teachers.
	CreditsTransferredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_credits_transferred_total",
		Help: "Total credits transferred by settlements.",
	})

	// SwapTransitionsTotal counts applied state transitions by action.
	SwapTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transitions_total",
		Help: "Number of applied swap state transitions.",
	}, []string{"action"})

	// SignupBonusesTotal counts signup bonuses granted during provisioning.
	SignupBonusesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_signup_bonuses_total",
		Help: "Number of signup bonuses granted.",
	})
)
