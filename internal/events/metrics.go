package events

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satscan",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of Publish calls",
		},
		[]string{"kind"},
	)

	eventsDelivered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satscan",
			Subsystem: "events",
			Name:      "delivered_total",
			Help:      "Total number of notifications handled by subscribers",
		},
		[]string{"kind"},
	)

	staleSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satscan",
			Subsystem: "events",
			Name:      "stale_skipped_total",
			Help:      "Notifications skipped because the subscriber was destroyed",
		},
		[]string{"kind"},
	)

	handlerPanics = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satscan",
			Subsystem: "events",
			Name:      "handler_panics_total",
			Help:      "Subscriber handlers that panicked and were recovered",
		},
		[]string{"kind"},
	)

	purgedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "satscan",
			Subsystem: "events",
			Name:      "purged_total",
			Help:      "Dead subscriptions removed by purges",
		},
	)

	subscribersGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "satscan",
			Subsystem: "events",
			Name:      "subscribers",
			Help:      "Registered subscriptions per kind (last writer wins across registries)",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(eventsPublished, eventsDelivered, staleSkipped, handlerPanics, purgedTotal, subscribersGauge)
}
