// Package metric provides a shared Prometheus metrics registry for the
// connector and pipeline. Components register their collectors under a
// namespaced key so duplicate registrations are caught at construction time.
package metric

import (
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry wraps a prometheus.Registry with component-scoped bookkeeping.
type Registry struct {
	prom       *prometheus.Registry
	registered map[string]prometheus.Collector
	mu         sync.Mutex
}

// NewRegistry creates a registry with Go runtime and process collectors
// pre-installed.
func NewRegistry() *Registry {
	prom := prometheus.NewRegistry()
	prom.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{
		prom:       prom,
		registered: make(map[string]prometheus.Collector),
	}
}

// PrometheusRegistry returns the underlying Prometheus registry, for exposing
// via an HTTP handler or test gathering.
func (r *Registry) PrometheusRegistry() *prometheus.Registry { return r.prom }

// Register registers a collector under component.name. Registering the same
// key twice is an error.
func (r *Registry) Register(component, name string, collector prometheus.Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := component + "." + name
	if _, exists := r.registered[key]; exists {
		return fmt.Errorf("metric %s already registered", key)
	}

	if err := r.prom.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return fmt.Errorf("prometheus conflict for metric %s: %w", key, err)
		}
		return fmt.Errorf("register metric %s: %w", key, err)
	}

	r.registered[key] = collector
	return nil
}

// Unregister removes a previously registered collector. It reports whether
// the collector was found.
func (r *Registry) Unregister(component, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := component + "." + name
	collector, exists := r.registered[key]
	if !exists {
		return false
	}
	delete(r.registered, key)
	return r.prom.Unregister(collector)
}
