package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/database"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/pidfile"
)

// NewHealthCommand creates the health command
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the database, catalog and daemon",
		Long:  `Verify that the database is reachable, the catalog loads, and report whether the daemon is running and serving metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("database check failed: %w", err)
			}
			defer database.Close(db)
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("database check failed: %w", err)
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return fmt.Errorf("database check failed: %w", err)
			}
			fmt.Printf("✓ Database reachable (%s)\n", cfg.Database.Type)

			c, err := catalogfile.LoadFile(cfg.World.CatalogPath)
			if err != nil {
				return fmt.Errorf("catalog check failed: %w", err)
			}
			fmt.Printf("✓ Catalog valid (%d definitions)\n", c.Len())

			pid, running := pidfile.New(cfg.Daemon.PIDFile).Holder()
			if !running {
				fmt.Println("- Daemon not running")
				return nil
			}
			fmt.Printf("✓ Daemon running (pid %d)\n", pid)

			if cfg.Metrics.Enabled {
				url := fmt.Sprintf("http://%s:%d%s", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
				if err != nil {
					return err
				}
				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					return fmt.Errorf("metrics endpoint unreachable: %w", err)
				}
				resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					return fmt.Errorf("metrics endpoint returned %s", resp.Status)
				}
				fmt.Printf("✓ Metrics served at %s\n", url)
			}

			return nil
		},
	}

	return cmd
}
