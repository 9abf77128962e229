package steps

import (
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

// theBuildingCatalog reads a table with the columns
// id | width | depth | items | currencies | build_time | refund
func (hc *homesteadContext) theBuildingCatalog(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("catalog table needs a header and at least one row")
	}
	header := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		header[cell.Value] = i
	}
	cell := func(row *messages.PickleTableRow, name string) string {
		i, ok := header[name]
		if !ok || i >= len(row.Cells) {
			return ""
		}
		return row.Cells[i].Value
	}

	for _, row := range table.Rows[1:] {
		id := cell(row, "id")
		width, err := strconv.Atoi(cell(row, "width"))
		if err != nil {
			return fmt.Errorf("%s: invalid width: %w", id, err)
		}
		depth, err := strconv.Atoi(cell(row, "depth"))
		if err != nil {
			return fmt.Errorf("%s: invalid depth: %w", id, err)
		}
		cost, err := parseCost(cell(row, "items"), cell(row, "currencies"), true)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		buildTime, err := strconv.ParseFloat(cell(row, "build_time"), 64)
		if err != nil {
			return fmt.Errorf("%s: invalid build_time: %w", id, err)
		}
		refund, err := strconv.ParseFloat(cell(row, "refund"), 64)
		if err != nil {
			return fmt.Errorf("%s: invalid refund: %w", id, err)
		}

		if _, exists := hc.defs[id]; !exists {
			hc.order = append(hc.order, id)
		}
		hc.defs[id] = &catalog.Definition{
			ID:         id,
			Name:       id,
			Category:   catalog.CategoryUtility,
			Footprint:  catalog.Footprint{Width: width, Depth: depth, Height: 1},
			Cost:       cost,
			BuildTime:  buildTime,
			Demolition: catalog.DemolitionPolicy{Demolishable: true, RefundPercentage: refund},
		}
	}
	return nil
}

func (hc *homesteadContext) canBeUpgradedFor(id, items string) error {
	def, err := hc.definition(id)
	if err != nil {
		return err
	}
	cost, err := parseCost(items, "", true)
	if err != nil {
		return err
	}
	def.Tiers = append(def.Tiers, catalog.Tier{
		Name:      fmt.Sprintf("%s tier %d", id, len(def.Tiers)+1),
		Cost:      cost,
		BuildTime: def.BuildTime,
	})
	return nil
}

func (hc *homesteadContext) storesAndProduces(id string, slots, stackLimit, quantity int, item string, interval float64) error {
	def, err := hc.definition(id)
	if err != nil {
		return err
	}
	def.Functionality.Storage = catalog.StorageSpec{Slots: slots, StackLimit: stackLimit}
	def.Functionality.Production = catalog.ProductionSpec{ItemID: item, Interval: interval, Quantity: quantity}
	return nil
}

func (hc *homesteadContext) requiresLevel(id string, level int) error {
	def, err := hc.definition(id)
	if err != nil {
		return err
	}
	def.Requirements.MinLevel = level
	return nil
}

func (hc *homesteadContext) theSettlerHas(items, currencies string) error {
	w, err := hc.ensureWorld()
	if err != nil {
		return err
	}
	names, amounts, err := parseLines(items)
	if err != nil {
		return err
	}
	for i := range names {
		w.Inventory().AddItem(names[i], amounts[i])
	}
	names, amounts, err = parseLines(currencies)
	if err != nil {
		return err
	}
	for i := range names {
		w.Inventory().AddCurrency(catalog.Currency(names[i]), amounts[i])
	}
	return nil
}

func (hc *homesteadContext) theInventoryShouldHold(quantity int, item string) error {
	if got := hc.w.Inventory().ItemCount(item); got != quantity {
		return fmt.Errorf("expected %d %s in the inventory, got %d", quantity, item, got)
	}
	return nil
}

func (hc *homesteadContext) thePurseShouldHold(amount int, kind string) error {
	if got := hc.w.Inventory().CurrencyBalance(catalog.Currency(kind)); got != amount {
		return fmt.Errorf("expected %d %s, got %d", amount, kind, got)
	}
	return nil
}

func registerCatalogSteps(sc *godog.ScenarioContext, hc *homesteadContext) {
	// Given steps
	sc.Step(`^the building catalog:$`, hc.theBuildingCatalog)
	sc.Step(`^"([^"]*)" can be upgraded for items "([^"]*)"$`, hc.canBeUpgradedFor)
	sc.Step(`^"([^"]*)" has (\d+) storage slots? of (\d+) and produces (\d+) "([^"]*)" every ([0-9.]+) seconds$`, hc.storesAndProduces)
	sc.Step(`^"([^"]*)" requires player level (\d+)$`, hc.requiresLevel)
	sc.Step(`^the settler has items "([^"]*)" and currencies "([^"]*)"$`, hc.theSettlerHas)

	// Then steps
	sc.Step(`^the inventory should hold (\d+) "([^"]*)"$`, hc.theInventoryShouldHold)
	sc.Step(`^the purse should hold (\d+) "([^"]*)"$`, hc.thePurseShouldHold)
}
