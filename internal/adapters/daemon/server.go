package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/homestead-go/internal/adapters/metrics"
	"github.com/andrescamacho/homestead-go/internal/adapters/snapshot"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

// Control is the RPC front end the CLI edits the live world through
type Control interface {
	Serve() error
	Stop(timeout time.Duration)
}

// Server advances the hosted world in real time and autosaves it. While it
// runs, world edits arrive through the attached Control only.
type Server struct {
	host      *world.Host
	snapshots *snapshot.FileRepository
	control   Control
	cfg       config.DaemonConfig
	metrics   config.MetricsConfig

	limiter       *rate.Limiter
	metricsServer *http.Server
	lastSave      time.Time

	// Shutdown coordination
	shutdownChan chan os.Signal
	done         chan struct{}
}

// NewServer creates a server. snapshots may be nil to skip the snapshot file.
func NewServer(host *world.Host, snapshots *snapshot.FileRepository, cfg config.DaemonConfig, metricsCfg config.MetricsConfig) *Server {
	server := &Server{
		host:         host,
		snapshots:    snapshots,
		cfg:          cfg,
		metrics:      metricsCfg,
		limiter:      rate.NewLimiter(rate.Limit(cfg.TickRate), 1),
		shutdownChan: make(chan os.Signal, 1),
		done:         make(chan struct{}),
	}

	// Setup signal handling
	signal.Notify(server.shutdownChan, os.Interrupt, syscall.SIGTERM)

	return server
}

// WithControl serves c for the lifetime of the tick loop
func (s *Server) WithControl(c Control) *Server {
	s.control = c
	return s
}

// Start runs the tick loop until a shutdown signal arrives or ctx is cancelled,
// then saves the world one last time
func (s *Server) Start(ctx context.Context) error {
	logger := logging.LoggerFromContext(ctx)

	if s.metrics.Enabled && metrics.IsEnabled() {
		if err := s.startMetricsServer(ctx); err != nil {
			return err
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.handleShutdown(runCtx, cancel)

	if s.control != nil {
		go func() {
			if err := s.control.Serve(); err != nil {
				logger.Log(logging.LevelError, "World control stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	logger.Log(logging.LevelInfo, "Simulation started", map[string]interface{}{
		"tick_rate": s.cfg.TickRate,
		"tick_step": s.cfg.TickStep,
	})

	s.lastSave = time.Now()
	var loopErr error
	for {
		if err := s.limiter.Wait(runCtx); err != nil {
			break
		}
		if err := s.tick(runCtx); err != nil {
			loopErr = err
			break
		}
		if time.Since(s.lastSave) >= s.cfg.AutosaveEvery {
			s.autosave(runCtx)
		}
	}

	// No edits may land after the final save
	if s.control != nil {
		s.control.Stop(s.cfg.ShutdownTimeout)
	}

	// Final save must not be cut short by the cancelled loop context
	saveCtx, cancelSave := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancelSave()
	s.autosave(saveCtx)
	s.stopMetricsServer(saveCtx)

	signal.Stop(s.shutdownChan)
	logger.Log(logging.LevelInfo, "Simulation stopped", nil)
	return loopErr
}

// Shutdown asks a running server to stop as if it had received SIGTERM
func (s *Server) Shutdown() {
	select {
	case s.shutdownChan <- syscall.SIGTERM:
	default:
	}
}

// Done is closed once the tick loop has been told to stop
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) handleShutdown(ctx context.Context, cancel context.CancelFunc) {
	select {
	case <-s.shutdownChan:
		fmt.Println("\nShutdown signal received, stopping daemon...")
	case <-ctx.Done():
	}
	cancel()
	close(s.done)
}

func (s *Server) tick(ctx context.Context) error {
	start := time.Now()
	err := s.host.Mutate(ctx, func(w *world.World) error {
		w.Tick(s.cfg.TickStep)
		return nil
	})
	if err != nil {
		return fmt.Errorf("tick failed: %w", err)
	}
	metrics.RecordTick(time.Since(start), s.cfg.TickStep)
	return nil
}

// autosave writes the database copy and, when configured, the snapshot file.
// Failures are logged and retried on the next interval.
func (s *Server) autosave(ctx context.Context) {
	logger := logging.LoggerFromContext(ctx)
	s.lastSave = time.Now()

	if err := s.host.Save(ctx); err != nil {
		logger.Log(logging.LevelError, "Autosave failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if s.snapshots == nil {
		return
	}

	var state *world.State
	_ = s.host.View(func(w *world.World) error {
		state = w.State()
		return nil
	})
	if err := s.snapshots.Save(ctx, state); err != nil {
		logger.Log(logging.LevelError, "Snapshot write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) startMetricsServer(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle(s.metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	addr := fmt.Sprintf("%s:%d", s.metrics.Host, s.metrics.Port)
	s.metricsServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger := logging.LoggerFromContext(ctx)
	go func() {
		if err := s.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log(logging.LevelError, "Metrics server failed", map[string]interface{}{"error": err.Error(), "addr": addr})
		}
	}()
	fmt.Printf("Metrics available at http://%s%s\n", addr, s.metrics.Path)
	return nil
}

func (s *Server) stopMetricsServer(ctx context.Context) {
	if s.metricsServer == nil {
		return
	}
	_ = s.metricsServer.Shutdown(ctx)
}
