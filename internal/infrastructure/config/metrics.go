package config

// MetricsConfig holds Prometheus metrics configuration
type MetricsConfig struct {
	// Enable metrics collection
	Enabled bool `mapstructure:"enabled"`

	// Metric namespace prefix
	Namespace string `mapstructure:"namespace" validate:"required"`

	// Write collected metrics in text exposition format to this path after
	// each command (for node_exporter's textfile collector). Empty disables.
	TextfilePath string `mapstructure:"textfile_path"`
}
