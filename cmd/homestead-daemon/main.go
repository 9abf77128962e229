package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/andrescamacho/homestead-go/internal/adapters/daemon"
	"github.com/andrescamacho/homestead-go/internal/adapters/grpc"
	"github.com/andrescamacho/homestead-go/internal/adapters/metrics"
	"github.com/andrescamacho/homestead-go/internal/adapters/snapshot"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/pidfile"
)

// gaugeInterval is how often building and balance gauges are refreshed
const gaugeInterval = 15 * time.Second

func main() {
	// Parse command-line flags
	forceFlag := flag.Bool("force", false, "Kill any existing daemon and start a new one")
	configFlag := flag.String("config", "", "Path to config file (default: search default paths)")
	flag.Parse()

	fmt.Println("Homestead Daemon v0.1.0")
	fmt.Println("=======================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configFlag)

	// The pid file doubles as the world lock the CLI checks before editing
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)

	err := pf.Acquire()
	if err != nil {
		if *forceFlag {
			fmt.Println("Force mode enabled - attempting to kill existing daemon...")
			if killErr := pf.KillExisting(); killErr != nil {
				log.Fatalf("Failed to kill existing daemon: %v", killErr)
			}
			fmt.Println("Existing daemon killed")

			if err := pf.Acquire(); err != nil {
				log.Fatalf("Failed to acquire PID file lock after killing existing daemon: %v", err)
			}
		} else {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing daemon", err)
		}
	}

	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	var middleware []mediator.Middleware
	var commandCollector *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		commandCollector = metrics.NewCommandMetricsCollector()
		if err := commandCollector.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
		middleware = append(middleware, metrics.PrometheusMiddleware(commandCollector))
	}

	fmt.Printf("Opening world from %s database...\n", cfg.Database.Type)
	app, ctx, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{Middleware: middleware})
	if err != nil {
		return err
	}
	defer app.Close()

	var population int
	_ = app.Host.View(func(w *world.World) error {
		population = len(w.Buildings())
		return nil
	})
	fmt.Printf("World loaded (%d buildings, catalog of %d definitions)\n", population, app.Catalog.Len())

	if cfg.Metrics.Enabled {
		worldCollector := metrics.NewWorldMetricsCollector(buildingInfo(app.Host))
		if err := worldCollector.Register(); err != nil {
			return fmt.Errorf("failed to register world metrics: %w", err)
		}
		worldCollector.Attach(app.Bus)
		worldCollector.Start(ctx, gaugeInterval)
		defer worldCollector.Stop()
		metrics.SetGlobalWorldCollector(worldCollector)

		ledgerCollector := metrics.NewLedgerMetricsCollector(app.Mediator, app.Logger)
		if err := ledgerCollector.Register(); err != nil {
			return fmt.Errorf("failed to register ledger metrics: %w", err)
		}
		ledgerCollector.Start(ctx, gaugeInterval)
		defer ledgerCollector.Stop()
		metrics.SetGlobalLedgerCollector(ledgerCollector)
		fmt.Println("Metrics collectors started")
	}

	var snapshots *snapshot.FileRepository
	if cfg.Daemon.SnapshotPath != "" {
		snapshots = snapshot.NewFileRepository(cfg.Daemon.SnapshotPath, app.Codec)
		fmt.Printf("Snapshots will be written to %s\n", cfg.Daemon.SnapshotPath)
	}

	control, err := grpc.NewDaemonServer(app.Mediator, app.Logger, cfg.Daemon.SocketPath)
	if err != nil {
		return err
	}

	server := daemon.NewServer(app.Host, snapshots, cfg.Daemon, cfg.Metrics).WithControl(control)

	fmt.Printf("\n✓ Simulating at %g ticks/s (%gs per tick)\n", cfg.Daemon.TickRate, cfg.Daemon.TickStep)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("daemon server error: %w", err)
	}

	fmt.Println("\nDaemon stopped")
	return nil
}

// buildingInfo feeds the population gauge from the hosted world
func buildingInfo(host *world.Host) func() []metrics.BuildingInfo {
	return func() []metrics.BuildingInfo {
		var infos []metrics.BuildingInfo
		_ = host.View(func(w *world.World) error {
			for _, b := range w.Buildings() {
				infos = append(infos, metrics.BuildingInfo{
					DefinitionID: b.Definition().ID,
					Status:       string(b.Status()),
					Tier:         b.Tier(),
				})
			}
			return nil
		})
		return infos
	}
}
