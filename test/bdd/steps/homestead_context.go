package steps

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/homestead-go/internal/application/events"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// buildingState is what a rejected operation must leave untouched
type buildingState struct {
	tier     int
	progress float64
	status   building.Status
	slots    []building.Slot
}

// homesteadContext holds one world per scenario; the catalog is collected by
// Given steps and the world is created on first use
type homesteadContext struct {
	defs  map[string]*catalog.Definition
	order []string

	w      *world.World
	events []building.Event

	last        *building.PlacedBuilding
	lastErr     error
	refund      ledger.Bill
	balances    ledger.Balances
	beforeState buildingState

	tmpDir   string
	restored *world.World
	loadErrs int
}

func (hc *homesteadContext) reset() {
	if hc.tmpDir != "" {
		os.RemoveAll(hc.tmpDir)
	}
	*hc = homesteadContext{defs: make(map[string]*catalog.Definition)}
}

func (hc *homesteadContext) buildCatalog(skip ...string) (*catalog.MemoryCatalog, error) {
	skipped := make(map[string]bool, len(skip))
	for _, id := range skip {
		skipped[id] = true
	}
	var defs []*catalog.Definition
	for _, id := range hc.order {
		if !skipped[id] {
			defs = append(defs, hc.defs[id])
		}
	}
	return catalog.NewMemoryCatalog(defs...)
}

func (hc *homesteadContext) newWorld(skip ...string) (*world.World, error) {
	c, err := hc.buildCatalog(skip...)
	if err != nil {
		return nil, err
	}
	bus := events.NewBus()
	bus.Subscribe(func(e building.Event) { hc.events = append(hc.events, e) })
	return world.New(world.Options{
		Catalog: c,
		Clock:   shared.NewMockClock(epoch),
		Bus:     bus,
	}), nil
}

func (hc *homesteadContext) ensureWorld() (*world.World, error) {
	if hc.w != nil {
		return hc.w, nil
	}
	w, err := hc.newWorld()
	if err != nil {
		return nil, err
	}
	hc.w = w
	return w, nil
}

func (hc *homesteadContext) definition(id string) (*catalog.Definition, error) {
	def, ok := hc.defs[id]
	if !ok {
		return nil, fmt.Errorf("definition %q was not declared", id)
	}
	if hc.w != nil {
		return nil, fmt.Errorf("definition %q changed after the world was created", id)
	}
	return def, nil
}

func (hc *homesteadContext) current() (*building.PlacedBuilding, error) {
	if hc.last == nil {
		return nil, fmt.Errorf("no building has been placed")
	}
	return hc.last, nil
}

func (hc *homesteadContext) remember() {
	hc.balances = hc.w.Inventory().Snapshot()
	if hc.last != nil {
		hc.beforeState = buildingState{
			tier:     hc.last.Tier(),
			progress: hc.last.BuildProgress(),
			status:   hc.last.Status(),
			slots:    hc.last.Slots(),
		}
	}
}

// parseLines reads "wood:10,stone:5" into ordered name/amount pairs; "-" means none
func parseLines(spec string) ([]string, []int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "-" {
		return nil, nil, nil
	}
	var names []string
	var amounts []int
	for _, part := range strings.Split(spec, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, nil, fmt.Errorf("expected name:amount, got %q", part)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid amount in %q: %w", part, err)
		}
		names = append(names, name)
		amounts = append(amounts, n)
	}
	return names, amounts, nil
}

func parseCost(items, currencies string, returned bool) (catalog.Cost, error) {
	var cost catalog.Cost
	names, amounts, err := parseLines(items)
	if err != nil {
		return cost, err
	}
	for i := range names {
		cost.Items = append(cost.Items, catalog.ItemCost{ItemID: names[i], Quantity: amounts[i], ReturnOnDemolish: returned})
	}
	names, amounts, err = parseLines(currencies)
	if err != nil {
		return cost, err
	}
	for i := range names {
		cost.Currencies = append(cost.Currencies, catalog.CurrencyCost{Kind: catalog.Currency(names[i]), Amount: amounts[i]})
	}
	return cost, nil
}

// InitializeHomesteadScenario registers every homestead step
func InitializeHomesteadScenario(sc *godog.ScenarioContext) {
	hc := &homesteadContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		hc.reset()
		return ctx, nil
	})
	sc.After(func(ctx context.Context, s *godog.Scenario, err error) (context.Context, error) {
		hc.reset()
		return ctx, nil
	})

	registerCatalogSteps(sc, hc)
	registerPlacementSteps(sc, hc)
	registerLifecycleSteps(sc, hc)
	registerPersistenceSteps(sc, hc)
}
