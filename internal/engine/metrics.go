package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts interactions written to and pruned from the store.
// A nil *Metrics records nothing.
type Metrics struct {
	published *prometheus.CounterVec
	pruned    *prometheus.CounterVec
}

// NewMetrics creates the pact counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pact_interactions_published_total",
			Help: "Interactions written to the pact store, by consumer and provider.",
		}, []string{"consumer", "provider"}),
		pruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pact_interactions_pruned_total",
			Help: "Persisted interactions deleted because the consumer no longer declares them.",
		}, []string{"consumer", "provider"}),
	}

	for _, c := range []prometheus.Collector{m.published, m.pruned} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) notePublished(consumer, provider string) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(consumer, provider).Inc()
}

func (m *Metrics) notePruned(consumer, provider string, n int64) {
	if m == nil || n == 0 {
		return
	}
	m.pruned.WithLabelValues(consumer, provider).Add(float64(n))
}
