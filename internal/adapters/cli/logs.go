package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
)

// NewLogsCommand creates the logs command
func NewLogsCommand() *cobra.Command {
	var (
		limit int
		level string
		since time.Duration
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show persisted world log entries",
		Long: `Show world log entries written by the CLI and the daemon, newest first.

Only entries at or above logging.persist_level are stored, and repeats of the
same message within a minute are dropped.

Examples:
  homestead logs --limit 20
  homestead logs --level WARNING --since 1h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := openWorld(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()

			filter := persistence.WorldLogFilter{Limit: limit}
			if level != "" {
				upper := strings.ToUpper(level)
				filter.Level = &upper
			}
			if since > 0 {
				cutoff := time.Now().Add(-since)
				filter.Since = &cutoff
			}

			entries, err := app.WorldLogs.GetLogs(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to read logs: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("No log entries found")
				return nil
			}

			w := newTable()
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Level, e.Message, formatMetadata(e.Metadata))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries")
	cmd.Flags().StringVar(&level, "level", "", "Only this level (DEBUG, INFO, WARNING, ERROR)")
	cmd.Flags().DurationVar(&since, "since", 0, "Only entries newer than this (e.g. 30m, 2h)")

	return cmd
}
