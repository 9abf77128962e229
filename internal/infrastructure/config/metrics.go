package config

// MetricsConfig controls the daemon's Prometheus endpoint (HOMESTEAD_METRICS_*).
// The CLI never serves metrics; `homestead health` only checks the endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Unprivileged port for /metrics
	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Bind address; defaults to localhost so the world state is not exposed
	Host string `mapstructure:"host"`

	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`
}
