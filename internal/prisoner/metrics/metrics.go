package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for prisoner reconciliation.
type Metrics struct {
	AttributeSyncs *prometheus.CounterVec
	Merges         prometheus.Counter
	Resets         prometheus.Counter
	EventsEmitted  *prometheus.CounterVec
}

// New creates and registers the reconciliation metrics.
func New() *Metrics {
	return &Metrics{
		AttributeSyncs: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_registry_attribute_syncs_total",
			Help: "Singleton attribute sync operations by kind and outcome",
		}, []string{"kind", "outcome"}),
		Merges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contact_registry_prisoner_merges_total",
			Help: "Completed prisoner merge operations",
		}),
		Resets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contact_registry_restriction_resets_total",
			Help: "Completed restriction reset operations",
		}),
		EventsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "contact_registry_domain_events_total",
			Help: "Domain events handed to the outbox by kind",
		}, []string{"kind"}),
	}
}
