package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/building/commands"
	"github.com/andrescamacho/homestead-go/internal/application/building/dtos"
	"github.com/andrescamacho/homestead-go/internal/application/building/queries"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// NewBuildCommand creates the build command with subcommands
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Place, upgrade and demolish buildings",
		Long: `Place, upgrade and demolish buildings in the world.

Placement snaps the position to the definition's grid and the rotation to
whole snap-angle steps, validates against every placed building and obstacle,
and debits the full cost atomically. Construction then progresses as the
world ticks (see "homestead world tick" or run the daemon). While the daemon
runs, place, upgrade and demolish are applied to its live world.

Examples:
  homestead build place house_small --x 4 --z 2
  homestead build place wood_shed --x 10 --z 0 --rotate -1
  homestead build list --status CONSTRUCTING
  homestead build show house_small-a3f8e2b1
  homestead build upgrade house_small-a3f8e2b1
  homestead build demolish house_small-a3f8e2b1`,
	}

	cmd.AddCommand(newBuildPlaceCommand())
	cmd.AddCommand(newBuildUpgradeCommand())
	cmd.AddCommand(newBuildDemolishCommand())
	cmd.AddCommand(newBuildListCommand())
	cmd.AddCommand(newBuildShowCommand())

	return cmd
}

func newBuildPlaceCommand() *cobra.Command {
	var (
		x, y, z float64
		rotate  int
	)

	cmd := &cobra.Command{
		Use:   "place <definition-id>",
		Short: "Place a new building",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			live, err := openLiveWorld(cmd, true)
			if err != nil {
				return err
			}
			defer live.close()

			resp, err := send[*commands.PlaceBuildingResponse](live.ctx, live.sender, &commands.PlaceBuildingCommand{
				DefinitionID:  args[0],
				Position:      shared.Vec3{X: x, Y: y, Z: z},
				RotationSteps: rotate,
			})
			if err != nil {
				return err
			}

			b := resp.Building
			fmt.Printf("✓ Placed %s as %s at (%g, %g, %g), rotation %g\n",
				b.Name, b.ID, b.Position[0], b.Position[1], b.Position[2], b.Rotation)
			fmt.Printf("  Paid: %s\n", resp.Cost.String())
			fmt.Printf("  Status: %s\n", b.Status)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "X coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "Y coordinate (height)")
	cmd.Flags().Float64Var(&z, "z", 0, "Z coordinate")
	cmd.Flags().IntVar(&rotate, "rotate", 0, "Rotation in snap-angle steps, negative for counter-clockwise")

	return cmd
}

func newBuildUpgradeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade <building-id>",
		Short: "Start the upgrade to the next tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			live, err := openLiveWorld(cmd, true)
			if err != nil {
				return err
			}
			defer live.close()

			resp, err := send[*commands.UpgradeBuildingResponse](live.ctx, live.sender, &commands.UpgradeBuildingCommand{BuildingID: args[0]})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Upgrading %s to tier %d\n", resp.Building.ID, resp.Building.Tier)
			fmt.Printf("  Paid: %s\n", resp.Cost.String())
			return nil
		},
	}

	return cmd
}

func newBuildDemolishCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demolish <building-id>",
		Short: "Demolish a building and collect its refund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			live, err := openLiveWorld(cmd, true)
			if err != nil {
				return err
			}
			defer live.close()

			resp, err := send[*commands.DemolishBuildingResponse](live.ctx, live.sender, &commands.DemolishBuildingCommand{BuildingID: args[0]})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Demolished %s\n", resp.BuildingID)
			if resp.Refund.IsEmpty() {
				fmt.Println("  Refund: nothing")
			} else {
				fmt.Printf("  Refund: %s\n", resp.Refund.String())
			}
			return nil
		},
	}

	return cmd
}

func newBuildListCommand() *cobra.Command {
	var definitionID, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List placed buildings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := openWorld(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := send[*queries.ListBuildingsResponse](ctx, app.Mediator, &queries.ListBuildingsQuery{
				DefinitionID: definitionID,
				Status:       status,
			})
			if err != nil {
				return err
			}
			if len(resp.Buildings) == 0 {
				fmt.Println("No buildings placed")
				return nil
			}

			w := newTable()
			fmt.Fprintln(w, "ID\tNAME\tPOSITION\tROT\tTIER\tSTATUS\tSTORED")
			for _, b := range resp.Buildings {
				fmt.Fprintf(w, "%s\t%s\t(%g, %g, %g)\t%g\t%d/%d\t%s\t%d\n",
					b.ID, b.Name, b.Position[0], b.Position[1], b.Position[2], b.Rotation,
					b.Tier, b.MaxTier, formatStatus(b), storedTotal(b))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&definitionID, "definition", "", "Filter by definition id")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (CONSTRUCTING, ACTIVE)")

	return cmd
}

func newBuildShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <building-id>",
		Short: "Show a placed building",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, err := openWorld(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := send[*queries.GetBuildingResponse](ctx, app.Mediator, &queries.GetBuildingQuery{BuildingID: args[0]})
			if err != nil {
				return err
			}
			def, err := send[*queries.GetDefinitionResponse](ctx, app.Mediator, &queries.GetDefinitionQuery{ID: resp.Building.DefinitionID})
			if err != nil {
				return err
			}

			b := resp.Building
			fmt.Printf("%s (%s)\n", b.Name, b.ID)
			fmt.Printf("  Position:     (%g, %g, %g)\n", b.Position[0], b.Position[1], b.Position[2])
			fmt.Printf("  Rotation:     %g\n", b.Rotation)
			fmt.Printf("  Tier:         %d of %d\n", b.Tier, b.MaxTier)
			fmt.Printf("  Status:       %s\n", formatStatus(b))
			if b.SlotCapacity > 0 {
				fmt.Printf("  Storage:      %d slots\n", b.SlotCapacity)
				for _, s := range b.Storage {
					fmt.Printf("    [%d] %s x%d\n", s.Index, s.ItemID, s.Quantity)
				}
			}
			if b.NextTierCost != "" {
				fmt.Printf("  Next tier:    %s\n", b.NextTierCost)
				if b.UpgradeBlocker != "" {
					fmt.Printf("  Blocked by:   %s\n", b.UpgradeBlocker)
				}
			}
			if b.Demolishable {
				fmt.Printf("  Refund:       %s\n", b.Refund)
			} else {
				fmt.Println("  Refund:       not demolishable")
			}

			fmt.Println()
			fmt.Print(NewTreeFormatter(isTerminal()).Highlight(b.Tier).FormatUpgradePath(def.Definition))
			return nil
		},
	}

	return cmd
}

func formatStatus(b *dtos.BuildingDTO) string {
	if b.Status == "CONSTRUCTING" {
		return fmt.Sprintf("%s %.0f%%", b.Status, b.BuildProgress*100)
	}
	return b.Status
}

func storedTotal(b *dtos.BuildingDTO) int {
	total := 0
	for _, s := range b.Storage {
		total += s.Quantity
	}
	return total
}
