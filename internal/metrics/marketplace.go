// Package metrics exposes Prometheus counters for the resale marketplace.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Transition outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// MarketplaceMetrics groups the listing lifecycle counters.
type MarketplaceMetrics struct {
	transitions        *prometheus.CounterVec
	annotationFailures prometheus.Counter
	inconsistencies    *prometheus.CounterVec
	raceLosses         *prometheus.CounterVec
}

var (
	marketplaceOnce     sync.Once
	marketplaceRegistry *MarketplaceMetrics
)

// Marketplace returns the process-wide metrics, registering them on first use.
func Marketplace() *MarketplaceMetrics {
	marketplaceOnce.Do(func() {
		marketplaceRegistry = newMarketplaceMetrics()
		prometheus.MustRegister(
			marketplaceRegistry.transitions,
			marketplaceRegistry.annotationFailures,
			marketplaceRegistry.inconsistencies,
			marketplaceRegistry.raceLosses,
		)
	})
	return marketplaceRegistry
}

func newMarketplaceMetrics() *MarketplaceMetrics {
	return &MarketplaceMetrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campfire_listing_transitions_total",
			Help: "Listing lifecycle transitions by action and outcome.",
		}, []string{"action", "outcome"}),
		annotationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campfire_award_annotation_failures_total",
			Help: "Completed sales whose originating award could not be marked sold.",
		}),
		inconsistencies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campfire_listing_inconsistencies_total",
			Help: "Listing and holding state disagreements detected during a transition.",
		}, []string{"kind"}),
		raceLosses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campfire_listing_race_losses_total",
			Help: "Status-guarded updates that matched no row because a concurrent transition won.",
		}, []string{"action"}),
	}
}

func (m *MarketplaceMetrics) ObserveTransition(action, outcome string) {
	if m == nil {
		return
	}
	if action == "" {
		action = "unknown"
	}
	m.transitions.WithLabelValues(action, outcome).Inc()
}

func (m *MarketplaceMetrics) ObserveAnnotationFailure() {
	if m == nil {
		return
	}
	m.annotationFailures.Inc()
}

func (m *MarketplaceMetrics) ObserveInconsistency(kind string) {
	if m == nil {
		return
	}
	m.inconsistencies.WithLabelValues(kind).Inc()
}

func (m *MarketplaceMetrics) ObserveRaceLoss(action string) {
	if m == nil {
		return
	}
	m.raceLosses.WithLabelValues(action).Inc()
}
