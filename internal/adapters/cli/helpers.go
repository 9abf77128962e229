package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/adapters/grpc"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/pidfile"
)

// loadConfig loads the configuration named by --config, or the default search paths
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// sender is satisfied by the local mediator and by the daemon client
type sender interface {
	Send(ctx context.Context, request mediator.Request) (mediator.Response, error)
}

// liveWorld is where build and storage commands send their requests
type liveWorld struct {
	sender    sender
	ctx       context.Context
	daemonPID int // 0 when the world was opened from the database
	close     func() error
}

// openLiveWorld reaches the running daemon over its socket so edits land on the
// world it simulates. Without a daemon the persisted world is opened directly;
// with edit set it is saved after every change.
func openLiveWorld(cmd *cobra.Command, edit bool) (*liveWorld, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if pid, running := pidfile.New(cfg.Daemon.PIDFile).Holder(); running {
		client, err := grpc.NewDaemonClient(cfg.Daemon.SocketPath)
		if err != nil {
			return nil, err
		}
		return &liveWorld{sender: client, ctx: cmd.Context(), daemonPID: pid, close: client.Close}, nil
	}

	app, ctx, err := openApp(cmd, cfg, edit)
	if err != nil {
		return nil, err
	}
	return &liveWorld{sender: app.Mediator, ctx: ctx, close: app.Close}, nil
}

// ensureDaemonStopped refuses to touch the world while the daemon owns it
func ensureDaemonStopped(cfg *config.Config) error {
	if pid, running := pidfile.New(cfg.Daemon.PIDFile).Holder(); running {
		return fmt.Errorf("the world is owned by the running daemon (pid %d); stop it before changing the world", pid)
	}
	return nil
}

// openWorld loads the persisted world. Mutating commands save after every edit and
// are refused while the daemon is running; build and storage edits use
// openLiveWorld instead.
func openWorld(cmd *cobra.Command, mutating bool) (*bootstrap.App, context.Context, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if mutating {
		if err := ensureDaemonStopped(cfg); err != nil {
			return nil, nil, err
		}
	}
	return openApp(cmd, cfg, mutating)
}

func openApp(cmd *cobra.Command, cfg *config.Config, saveOnEdit bool) (*bootstrap.App, context.Context, error) {
	opts := bootstrap.Options{SaveOnEdit: saveOnEdit}
	if verbose {
		opts.LogLevel = "debug"
	}
	app, ctx, err := bootstrap.Open(cmd.Context(), cfg, opts)
	if err != nil {
		return nil, nil, err
	}
	return app, ctx, nil
}

// send dispatches a request and checks the response type
func send[R any](ctx context.Context, m sender, request mediator.Request) (R, error) {
	var zero R
	resp, err := m.Send(ctx, request)
	if err != nil {
		return zero, err
	}
	typed, ok := resp.(R)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T", resp)
	}
	return typed, nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// parseResources reads "wood=5,gold=20" style lists
func parseResources(spec string) (map[string]int, error) {
	out := make(map[string]int)
	if strings.TrimSpace(spec) == "" {
		return out, nil
	}
	for _, part := range strings.Split(spec, ",") {
		name, qty, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid resource %q, expected name=quantity", part)
		}
		n, err := strconv.Atoi(qty)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for %s: %w", name, err)
		}
		out[strings.TrimSpace(name)] += n
	}
	return out, nil
}

// parseDateRange parses YYYY-MM-DD bounds; the end date covers the whole day
func parseDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start date format: %w", err)
		}
		start = &parsed
	}
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end date format: %w", err)
		}
		endOfDay := parsed.Add(24*time.Hour - time.Nanosecond)
		end = &endOfDay
	}
	return start, end, nil
}

func formatMetadata(metadata map[string]interface{}) string {
	if len(metadata) == 0 {
		return ""
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, metadata[k])
	}
	return strings.Join(parts, " ")
}
