// Package metrics registers the Prometheus instruments exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

type Metrics struct {
	// WebhookEvents counts billing webhook deliveries by event type and
	// outcome (applied, ignored, rejected, failed).
	WebhookEvents *prometheus.CounterVec

	// BookingsCreated counts bookings placed against open slots.
	BookingsCreated prometheus.Counter

	// BookingTransitions counts booking status changes by target status.
	BookingTransitions *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		WebhookEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stagelink",
			Subsystem: "billing",
			Name:      "webhook_events_total",
			Help:      "Stripe webhook deliveries by event type and outcome.",
		}, []string{"event_type", "outcome"}),
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "stagelink",
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Bookings created.",
		}),
		BookingTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stagelink",
			Subsystem: "booking",
			Name:      "transitions_total",
			Help:      "Booking status transitions by target status.",
		}, []string{"status"}),
	}
}

var Module = fx.Module("metrics",
	fx.Provide(New),
)
