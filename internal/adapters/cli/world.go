package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/adapters/snapshot"
	"github.com/andrescamacho/homestead-go/internal/application/building/commands"
	"github.com/andrescamacho/homestead-go/internal/application/building/queries"
	"github.com/andrescamacho/homestead-go/internal/application/world"
)

// NewWorldCommand creates the world command with subcommands
func NewWorldCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "world",
		Short: "Advance, inspect and transfer the world",
		Long: `Advance the simulation by hand, inspect it, or move it between databases
through compressed snapshot files.

Examples:
  homestead world status
  homestead world tick --seconds 60
  homestead world export backup.snap
  homestead world import backup.snap --replace`,
	}

	cmd.AddCommand(newWorldTickCommand())
	cmd.AddCommand(newWorldStatusCommand())
	cmd.AddCommand(newWorldExportCommand())
	cmd.AddCommand(newWorldImportCommand())

	return cmd
}

func newWorldTickCommand() *cobra.Command {
	var seconds, step float64

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Simulate a number of seconds",
		Long: `Simulate construction and production for the given number of seconds,
in fixed ticks of --step seconds plus one shorter remainder tick.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := openWorld(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()

			if step <= 0 {
				step = app.Config.Daemon.TickStep
			}
			resp, err := send[*commands.AdvanceWorldResponse](ctx, app.Mediator, &commands.AdvanceWorldCommand{
				Duration: seconds,
				Step:     step,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Advanced %gs in %d ticks (tick %d, %.1fs simulated)\n", seconds, resp.Ticks, resp.TickCount, resp.Elapsed)
			return nil
		},
	}

	cmd.Flags().Float64Var(&seconds, "seconds", 1, "Simulated seconds to advance")
	cmd.Flags().Float64Var(&step, "step", 0, "Seconds per tick (default daemon.tick_step)")

	return cmd
}

func newWorldStatusCommand() *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the world summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			live, err := openLiveWorld(cmd, false)
			if err != nil {
				return err
			}
			defer live.close()

			resp, err := send[*queries.GetWorldStatusResponse](live.ctx, live.sender, &queries.GetWorldStatusQuery{RecentEvents: recent})
			if err != nil {
				return err
			}

			fmt.Println("World Status")
			fmt.Println("============")
			if live.daemonPID != 0 {
				fmt.Printf("Daemon:     running (pid %d), live world\n", live.daemonPID)
			} else {
				fmt.Println("Daemon:     stopped")
			}
			fmt.Printf("Tick:       %d (%s simulated)\n", resp.TickCount, time.Duration(resp.Elapsed*float64(time.Second)).Round(time.Second))
			fmt.Printf("Mode:       %s\n", resp.Mode)
			fmt.Printf("Player:     level %d\n", resp.PlayerLevel)
			fmt.Printf("Buildings:  %d\n", resp.Buildings)

			statuses := make([]string, 0, len(resp.ByStatus))
			for s := range resp.ByStatus {
				statuses = append(statuses, s)
			}
			sort.Strings(statuses)
			for _, s := range statuses {
				fmt.Printf("  %-13s %d\n", s, resp.ByStatus[s])
			}

			if len(resp.RecentEvents) > 0 {
				fmt.Println("\nRecent events:")
				for _, e := range resp.RecentEvents {
					fmt.Printf("  %s\n", e)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&recent, "events", 10, "Number of recent events to show")

	return cmd
}

func newWorldExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the world to a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := openWorld(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()

			var state *world.State
			if err := app.Host.View(func(w *world.World) error {
				state = w.State()
				return nil
			}); err != nil {
				return err
			}

			snap := app.Codec.Capture(state)
			if err := snapshot.WriteFile(args[0], snap); err != nil {
				return err
			}
			fmt.Printf("✓ Exported %d buildings at tick %d to %s\n", len(snap.Buildings), snap.Header.Tick, args[0])
			return nil
		},
	}

	return cmd
}

func newWorldImportCommand() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the world with a snapshot file",
		Long: `Replace the persisted world with the content of a snapshot file.

Buildings whose definition is no longer in the catalog are skipped with a
warning; tiers above a definition's maximum are clamped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.ReadFile(args[0])
			if err != nil {
				return err
			}

			app, ctx, err := openWorld(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()

			if !replace && len(app.World.Buildings()) > 0 {
				return fmt.Errorf("the world already has %d buildings; pass --replace to overwrite it", len(app.World.Buildings()))
			}

			state, skipped := app.Codec.Rebuild(ctx, snap)
			for _, e := range skipped {
				fmt.Printf("  ! skipped: %v\n", e)
			}
			if err := persistence.NewGormWorldRepository(app.DB, app.Codec).Save(ctx, state); err != nil {
				return err
			}

			fmt.Printf("✓ Imported %d buildings at tick %d from %s\n", len(state.Buildings), state.Tick, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Overwrite a world that already has buildings")

	return cmd
}
