package config

// MetricsConfig toggles and addresses the Prometheus exporter, grounded
// on the teacher's config/metrics.go.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path    string `mapstructure:"path"`
}
