package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// QueryMetricsCollector handles query execution metrics
type QueryMetricsCollector struct {
	queryDuration *prometheus.HistogramVec
	queriesTotal  *prometheus.CounterVec
}

// NewQueryMetricsCollector creates a new query metrics collector
func NewQueryMetricsCollector(namespace string) *QueryMetricsCollector {
	return &QueryMetricsCollector{
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "query_duration_seconds",
				Help:      "Query execution duration distribution",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"query", "status"},
		),

		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queries_total",
				Help:      "Total number of queries executed by type and status",
			},
			[]string{"query", "status"},
		),
	}
}

// Register registers all query metrics with the registry
func (c *QueryMetricsCollector) Register(registry *Registry) error {
	return registry.Register(c.queryDuration, c.queriesTotal)
}

// RecordQueryExecution records query execution metrics
func (c *QueryMetricsCollector) RecordQueryExecution(
	queryName string,
	duration float64,
	success bool,
) {
	status := "success"
	if !success {
		status = "error"
	}

	c.queryDuration.WithLabelValues(queryName, status).Observe(duration)
	c.queriesTotal.WithLabelValues(queryName, status).Inc()
}
