package config

import "time"

// SetDefaults fills in zero-valued fields, grounded on the teacher's
// defaults.go but scoped to this agent's Agent/API/Database/Metrics/Logging
// sections (no Routing or Daemon sections: there is no gRPC router or
// multi-container daemon in this agent).
func SetDefaults(cfg *Config) {
	if cfg.Agent.FactionSymbol == "" {
		cfg.Agent.FactionSymbol = "COSMIC"
	}
	if cfg.Agent.OperatingReserve == 0 {
		cfg.Agent.OperatingReserve = 5000
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "spacetrader"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "spacetrader_agent"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.spacetraders.io/v2"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.API.RateLimit.Requests == 0 {
		cfg.API.RateLimit.Requests = 2
	}
	if cfg.API.RateLimit.Burst == 0 {
		cfg.API.RateLimit.Burst = 10
	}
	if cfg.API.Retry.MaxAttempts == 0 {
		cfg.API.Retry.MaxAttempts = 3
	}
	if cfg.API.Retry.BackoffBase == 0 {
		cfg.API.Retry.BackoffBase = 1 * time.Second
	}
	if cfg.API.Circuit.FailureThreshold == 0 {
		cfg.API.Circuit.FailureThreshold = 5
	}
	if cfg.API.Circuit.OpenTimeout == 0 {
		cfg.API.Circuit.OpenTimeout = 30 * time.Second
	}

	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "0.0.0.0"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
