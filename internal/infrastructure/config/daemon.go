package config

import "time"

// DaemonConfig holds the long-running world simulation settings
type DaemonConfig struct {
	// PID file location; its presence locks the world against CLI edits
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// Unix socket the CLI uses to edit the live world while the daemon runs
	SocketPath string `mapstructure:"socket_path" validate:"required"`

	// Ticks per wall-clock second
	TickRate float64 `mapstructure:"tick_rate" validate:"gt=0,lte=240"`

	// Simulated seconds advanced per tick
	TickStep float64 `mapstructure:"tick_step" validate:"gt=0"`

	// How often the world is saved to the database and snapshot file
	AutosaveEvery time.Duration `mapstructure:"autosave_every" validate:"required"`

	// zstd snapshot written on every autosave (empty disables it)
	SnapshotPath string `mapstructure:"snapshot_path"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
