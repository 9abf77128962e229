package cli

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/pidfile"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect Homestead configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (HOMESTEAD_* prefix, DATABASE_URL)
2. Config file (config.yaml)
3. Default values

Examples:
  homestead config show
  homestead --config ./dev.yaml config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			fmt.Println("Homestead Configuration")
			fmt.Println("=======================")

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nWorld:")
			fmt.Printf("  Catalog:          %s\n", cfg.World.CatalogPath)
			fmt.Printf("  Safety Margin:    %g\n", cfg.World.SafetyMargin)
			fmt.Printf("  Rotation Speed:   %g deg/s\n", cfg.World.RotationSpeed)
			fmt.Printf("  Player:           %s (level %d)\n", cfg.World.PlayerName, cfg.World.PlayerLevel)
			fmt.Printf("  Starting Items:   %s\n", formatAmounts(cfg.World.StartingItems))
			fmt.Printf("  Starting Wallet:  %s\n", formatAmounts(cfg.World.StartingCurrency))

			fmt.Println("\nDaemon:")
			fmt.Printf("  PID File:         %s\n", cfg.Daemon.PIDFile)
			fmt.Printf("  Socket:           %s\n", cfg.Daemon.SocketPath)
			if pid, running := pidfile.New(cfg.Daemon.PIDFile).Holder(); running {
				fmt.Printf("  Status:           running (pid %d)\n", pid)
			} else {
				fmt.Printf("  Status:           stopped\n")
			}
			fmt.Printf("  Tick Rate:        %g/s (step %gs)\n", cfg.Daemon.TickRate, cfg.Daemon.TickStep)
			fmt.Printf("  Autosave:         every %s\n", cfg.Daemon.AutosaveEvery)
			if cfg.Daemon.SnapshotPath != "" {
				fmt.Printf("  Snapshot:         %s\n", cfg.Daemon.SnapshotPath)
			}

			fmt.Println("\nMetrics:")
			if cfg.Metrics.Enabled {
				fmt.Printf("  Endpoint:         http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			} else {
				fmt.Printf("  Endpoint:         disabled\n")
			}

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)
			fmt.Printf("  Persisted From:   %s\n", cfg.Logging.PersistLevel)

			return nil
		},
	}

	return cmd
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}

func formatAmounts(m map[string]int) string {
	if len(m) == 0 {
		return "(none)"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%d", k, m[k])
	}
	return out
}
