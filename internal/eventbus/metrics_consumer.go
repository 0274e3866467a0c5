package eventbus

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/event"
)

// MetricsConsumer counts domain events by type.
type MetricsConsumer struct {
	events *prometheus.CounterVec
}

// NewMetricsConsumer registers the event counter on reg and returns the
// consumer.
func NewMetricsConsumer(reg prometheus.Registerer) *MetricsConsumer {
	c := &MetricsConsumer{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "events",
			Name:      "total",
			Help:      "Domain events published, by type.",
		}, []string{"event_type"}),
	}
	reg.MustRegister(c.events)
	return c
}

func (c *MetricsConsumer) HandleEvent(_ context.Context, evt event.DomainEvent) error {
	c.events.WithLabelValues(evt.EventType).Inc()
	return nil
}
