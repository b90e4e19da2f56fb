package pipeline

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rohankumardubey/liveoak/metric"
)

// pipelineMetrics holds Prometheus metrics for pipeline processing.
type pipelineMetrics struct {
	requests  *prometheus.CounterVec // by request type
	responses *prometheus.CounterVec // by response type
	inflight  prometheus.Gauge
	duration  *prometheus.HistogramVec // by request type
}

func newPipelineMetrics(registry *metric.Registry, logger *slog.Logger) *pipelineMetrics {
	m := &pipelineMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "liveoak",
			Subsystem: "pipeline",
			Name:      "requests_total",
			Help:      "Total requests accepted for forward processing",
		}, []string{"type"}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "liveoak",
			Subsystem: "pipeline",
			Name:      "responses_total",
			Help:      "Total responses emitted at the pipeline tail",
		}, []string{"type"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "liveoak",
			Subsystem: "pipeline",
			Name:      "inflight_requests",
			Help:      "Requests accepted but not yet answered",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "liveoak",
			Subsystem: "pipeline",
			Name:      "processing_duration_seconds",
			Help:      "Time from worker pickup to terminal response",
			Buckets:   []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}, []string{"type"}),
	}

	component := "pipeline"
	register := func(name string, collector prometheus.Collector) {
		if err := registry.Register(component, name, collector); err != nil {
			logger.Warn("metric registration failed", "metric", name, "error", err)
		}
	}
	register("requests_total", m.requests)
	register("responses_total", m.responses)
	register("inflight_requests", m.inflight)
	register("processing_duration_seconds", m.duration)

	return m
}
