package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for contact search.
type Metrics struct {
	Searches       *prometheus.CounterVec
	SearchDuration prometheus.Histogram
}

// New creates and registers the search metrics.
func New() *Metrics {
	return &Metrics{
		Searches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_registry_searches_total",
			Help: "Contact searches by matching tier and outcome",
		}, []string{"tier", "outcome"}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contact_registry_search_duration_seconds",
			Help:    "End-to-end contact search latency",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveSearch records one completed search.
func (m *Metrics) ObserveSearch(tier, outcome string, seconds float64) {
	m.Searches.WithLabelValues(tier, outcome).Inc()
	m.SearchDuration.Observe(seconds)
}
