package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/application/building/commands"
)

// NewStorageCommand creates the storage command with subcommands
func NewStorageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Move items out of building storage",
		Long: `Move items from a building's storage slots into your inventory.

Production fills storage first; use "homestead build show" to see slot contents.

Examples:
  homestead storage take wood_shed-0c1d2e3f --item plank --quantity 5`,
	}

	cmd.AddCommand(newStorageTakeCommand())

	return cmd
}

func newStorageTakeCommand() *cobra.Command {
	var (
		itemID   string
		quantity int
	)

	cmd := &cobra.Command{
		Use:   "take <building-id>",
		Short: "Take items from a building's storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			live, err := openLiveWorld(cmd, true)
			if err != nil {
				return err
			}
			defer live.close()

			resp, err := send[*commands.TakeFromStorageResponse](live.ctx, live.sender, &commands.TakeFromStorageCommand{
				BuildingID: args[0],
				ItemID:     itemID,
				Quantity:   quantity,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Took %d %s (%d left in storage)\n", resp.Moved, itemID, resp.Remaining)
			if resp.Moved < quantity {
				fmt.Printf("  Only %d of %d requested were stored\n", resp.Moved, quantity)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "Item id [required]")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "Quantity to take")
	cmd.MarkFlagRequired("item")

	return cmd
}
