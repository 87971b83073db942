package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultNamespace prefixes every metric unless configured otherwise
	DefaultNamespace = "annocalc"
	// Subsystem for calculation metrics
	subsystem = "calculator"
)

// Registry is a Prometheus registry owned by one CLI invocation.
// A nil *Registry means metrics are disabled and every call is a no-op.
type Registry struct {
	registry  *prometheus.Registry
	namespace string
}

// NewRegistry creates an empty registry using namespace for all metrics
func NewRegistry(namespace string) *Registry {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Registry{
		registry:  prometheus.NewRegistry(),
		namespace: namespace,
	}
}

// IsEnabled returns true if metrics collection is enabled
func (r *Registry) IsEnabled() bool {
	return r != nil && r.registry != nil
}

// Namespace returns the metric namespace
func (r *Registry) Namespace() string {
	if r == nil {
		return DefaultNamespace
	}
	return r.namespace
}

// Gatherer exposes the underlying registry for tests and exporters
func (r *Registry) Gatherer() prometheus.Gatherer {
	if !r.IsEnabled() {
		return prometheus.Gatherers{}
	}
	return r.registry
}

// Register registers collectors with the registry
func (r *Registry) Register(collectors ...prometheus.Collector) error {
	if !r.IsEnabled() {
		return nil
	}
	for _, collector := range collectors {
		if err := r.registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// WriteTextfile writes the current metric values to path in the text
// exposition format read by node_exporter's textfile collector
func (r *Registry) WriteTextfile(path string) error {
	if !r.IsEnabled() || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
