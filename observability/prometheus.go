package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// PromObserver counts events on a Prometheus registry, labeled by event type
// and severity text. It pairs well with MultiObserver so metrics accumulate
// alongside log emission.
type PromObserver struct {
	events *prometheus.CounterVec
}

// NewPromObserver creates a PromObserver and registers its collectors on reg.
func NewPromObserver(reg prometheus.Registerer) (*PromObserver, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scribe_events_total",
		Help: "Observability events by type and severity.",
	}, []string{"type", "level"})

	if err := reg.Register(events); err != nil {
		return nil, err
	}
	return &PromObserver{events: events}, nil
}

func (o *PromObserver) OnEvent(_ context.Context, event Event) {
	o.events.WithLabelValues(string(event.Type), event.Level.String()).Inc()
}
