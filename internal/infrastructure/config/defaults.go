package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "homestead.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "homestead"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "homestead"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	if cfg.Logging.PersistLevel == "" {
		cfg.Logging.PersistLevel = "warn"
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9464
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// World defaults
	if cfg.World.CatalogPath == "" {
		cfg.World.CatalogPath = "configs/buildings.yaml"
	}
	if cfg.World.SafetyMargin == 0 {
		cfg.World.SafetyMargin = 0.1
	}
	if cfg.World.RotationSpeed == 0 {
		cfg.World.RotationSpeed = 90
	}
	if cfg.World.StartingItems == nil {
		cfg.World.StartingItems = map[string]int{"wood": 50, "stone": 20}
	}
	if cfg.World.StartingCurrency == nil {
		cfg.World.StartingCurrency = map[string]int{"gold": 200}
	}
	if cfg.World.PlayerName == "" {
		cfg.World.PlayerName = "settler"
	}
	if cfg.World.PlayerLevel == 0 {
		cfg.World.PlayerLevel = 1
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/homestead-daemon.pid"
	}
	if cfg.Daemon.SocketPath == "" {
		cfg.Daemon.SocketPath = "/tmp/homestead-daemon.sock"
	}
	if cfg.Daemon.TickRate == 0 {
		cfg.Daemon.TickRate = 10
	}
	if cfg.Daemon.TickStep == 0 {
		cfg.Daemon.TickStep = 0.1
	}
	if cfg.Daemon.AutosaveEvery == 0 {
		cfg.Daemon.AutosaveEvery = 30 * time.Second
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 10 * time.Second
	}
}
