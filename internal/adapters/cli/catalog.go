package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/homestead-go/internal/application/building/queries"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse building definitions",
		Long: `Browse the building catalog loaded from world.catalog_path.

The catalog is read-only at runtime; edit the YAML file to change it.

Examples:
  homestead catalog list
  homestead catalog list --category storage
  homestead catalog show house_small`,
	}

	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogShowCommand())

	return cmd
}

func newCatalogListCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List building definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := newCatalogHandler()
			if err != nil {
				return err
			}
			resp, err := handler.Handle(cmd.Context(), &queries.ListDefinitionsQuery{Category: category})
			if err != nil {
				return err
			}
			defs := resp.(*queries.ListDefinitionsResponse).Definitions
			if len(defs) == 0 {
				fmt.Println("No building definitions found")
				return nil
			}

			w := newTable()
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSIZE\tCOST\tBUILD\tTIERS\tLEVEL")
			for _, d := range defs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%s\t%d\t%d\n",
					d.ID, d.Name, d.Category, d.Width, d.Depth, d.BaseCost, formatSeconds(d.BuildTime), d.MaxTier, d.MinLevel)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category (housing, storage, crafting, decoration, farming, utility, furniture)")

	return cmd
}

func newCatalogShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <definition-id>",
		Short: "Show a building definition and its upgrade path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := newCatalogHandler()
			if err != nil {
				return err
			}
			resp, err := handler.Handle(cmd.Context(), &queries.GetDefinitionQuery{ID: args[0]})
			if err != nil {
				return err
			}
			def := resp.(*queries.GetDefinitionResponse).Definition
			printDefinition(def)
			return nil
		},
	}

	return cmd
}

func newCatalogHandler() (*queries.CatalogQueryHandler, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	c, err := catalogfile.LoadFile(cfg.World.CatalogPath)
	if err != nil {
		return nil, err
	}
	return queries.NewCatalogQueryHandler(c), nil
}

func printDefinition(def *catalog.Definition) {
	if def.Description != "" {
		fmt.Println(def.Description)
		fmt.Println()
	}
	fmt.Printf("Footprint:     %dx%d cells, height %g (cell %g, snap %g deg)\n",
		def.Footprint.Width, def.Footprint.Depth, def.Footprint.Height, def.CellSize(), def.SnapAngle())

	r := def.Requirements
	fmt.Printf("Requirements:  level %d", r.MinLevel)
	if r.RequiredQuest != "" {
		fmt.Printf(", quest %s", r.RequiredQuest)
	}
	if r.MinDistanceFromOthers > 0 {
		fmt.Printf(", %g from other buildings", r.MinDistanceFromOthers)
	}
	if r.Indoor {
		fmt.Print(", indoor")
	}
	if r.Outdoor {
		fmt.Print(", outdoor")
	}
	if r.RequiresFlatGround {
		fmt.Print(", flat ground")
	}
	if r.RequiresWaterNearby {
		fmt.Print(", water nearby")
	}
	fmt.Println()

	f := def.Functionality
	if f.HasStorage() {
		fmt.Printf("Storage:       %d slots of %d\n", f.Storage.Slots, f.Storage.StackLimit)
	}
	if f.ProducesItems() {
		fmt.Printf("Production:    %d %s every %gs\n", f.Production.Quantity, f.Production.ItemID, f.Production.Interval)
	}
	if f.IsCraftingStation() {
		fmt.Printf("Crafting:      %s\n", f.CraftingStation)
	}
	if f.HasPlantPlots() {
		fmt.Printf("Plant plots:   %d\n", f.PlantPlots)
	}
	if f.CanRest() {
		fmt.Printf("Rest quality:  %g\n", f.RestQuality)
	}
	if def.Demolition.Demolishable {
		fmt.Printf("Demolition:    refunds %g%% by default\n", def.Demolition.RefundPercentage*100)
	} else {
		fmt.Println("Demolition:    not demolishable")
	}

	fmt.Println()
	fmt.Print(NewTreeFormatter(isTerminal()).FormatUpgradePath(def))
}

func isTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
