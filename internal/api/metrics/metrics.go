// Package metrics defines and registers all custom Prometheus metrics for
// the notes API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notes"

// ── Gateway metrics ──────────────────────────────────────────────────────────

// GatewayConnections tracks the number of currently connected gateway clients.
var GatewayConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "gateway_connections",
		Help:      "Number of currently connected realtime gateway clients.",
	},
)

// EventsBroadcastTotal counts events fanned out to gateway clients.
// Label:
//   - event: "note added" or "note deleted"
var EventsBroadcastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_broadcast_total",
		Help:      "Total number of events broadcast to gateway clients.",
	},
	[]string{"event"},
)

// EventsInboundTotal counts events received from gateway clients.
// Labels:
//   - event: the inbound event name, or "unknown"
//   - result: "ok", "rejected", or "invalid"
var EventsInboundTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_inbound_total",
		Help:      "Total number of events received over the gateway, by outcome.",
	},
	[]string{"event", "result"},
)

// ClientsDroppedTotal counts clients disconnected because their send buffer
// filled up during a broadcast.
var ClientsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_clients_dropped_total",
		Help:      "Total number of gateway clients dropped as slow consumers.",
	},
)
