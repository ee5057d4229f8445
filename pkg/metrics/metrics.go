// Package metrics defines prometheus collectors of the auto-responder
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// WebhookItems counts processed comment events by outcome
	WebhookItems = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "autoreply_webhook_items_total",
		Help: "Processed comment events by outcome",
	}, []string{"outcome"})

	// Dispatches counts outbound platform calls by kind (reply, dm) and status
	Dispatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "autoreply_dispatch_total",
		Help: "Outbound reply and direct message calls",
	}, []string{"kind", "status"})

	// StoreFallbacks counts config store operations that lost the primary tier
	StoreFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "autoreply_store_fallback_total",
		Help: "Config store operations served without the primary backend",
	}, []string{"op"})

	// PlatformRequestSeconds tracks platform API latency by operation
	PlatformRequestSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "autoreply_platform_request_seconds",
		Help:    "Platform API request duration",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30},
	}, []string{"op", "status"})
)

// MustRegister registers all collectors
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(WebhookItems, Dispatches, StoreFallbacks, PlatformRequestSeconds)
}
