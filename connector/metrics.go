package connector

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rohankumardubey/liveoak/metric"
)

// connectorMetrics holds Prometheus metrics for request correlation.
type connectorMetrics struct {
	outstanding prometheus.Gauge
	dispatched  *prometheus.CounterVec // by response type
	dropped     prometheus.Counter
}

func newConnectorMetrics(registry *metric.Registry, logger *slog.Logger) *connectorMetrics {
	m := &connectorMetrics{
		outstanding: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "liveoak",
			Subsystem: "connector",
			Name:      "outstanding_requests",
			Help:      "Requests submitted and not yet answered",
		}),
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "liveoak",
			Subsystem: "connector",
			Name:      "dispatched_total",
			Help:      "Responses dispatched to their completion handlers",
		}, []string{"type"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "liveoak",
			Subsystem: "connector",
			Name:      "dropped_responses_total",
			Help:      "Responses dropped for lack of an outstanding request",
		}),
	}

	component := "connector"
	register := func(name string, collector prometheus.Collector) {
		if err := registry.Register(component, name, collector); err != nil {
			logger.Warn("metric registration failed", "metric", name, "error", err)
		}
	}
	register("outstanding_requests", m.outstanding)
	register("dispatched_total", m.dispatched)
	register("dropped_responses_total", m.dropped)

	return m
}
