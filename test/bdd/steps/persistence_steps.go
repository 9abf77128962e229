package steps

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/homestead-go/internal/adapters/snapshot"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

// reload writes a snapshot file and restores it into a fresh
// world whose catalog lacks the given definitions
func (hc *homesteadContext) reload(without ...string) error {
	if hc.tmpDir == "" {
		dir, err := os.MkdirTemp("", "homestead-bdd-*")
		if err != nil {
			return err
		}
		hc.tmpDir = dir
	}
	path := filepath.Join(hc.tmpDir, "world.snap")

	codec := snapshot.NewCodec(hc.w.Catalog(), hc.w.Clock())
	if err := snapshot.WriteFile(path, codec.Capture(hc.w.State())); err != nil {
		return err
	}

	restored, err := hc.newWorld(without...)
	if err != nil {
		return err
	}
	snap, err := snapshot.ReadFile(path)
	if err != nil {
		return err
	}
	state, loadErrs := snapshot.NewCodec(restored.Catalog(), restored.Clock()).Rebuild(context.Background(), snap)
	if err := restored.Restore(state); err != nil {
		return err
	}
	hc.restored = restored
	hc.loadErrs = len(loadErrs)
	return nil
}

func (hc *homesteadContext) iSaveAndReloadTheWorld() error {
	return hc.reload()
}

// iSaveAndReloadThroughTheDatabase round trips the world through the shared test DB
func (hc *homesteadContext) iSaveAndReloadThroughTheDatabase() error {
	ctx := context.Background()
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	if err := helpers.NewTestRepositories(hc.w.Catalog(), hc.w.Clock()).World.Save(ctx, hc.w.State()); err != nil {
		return fmt.Errorf("failed to save world: %w", err)
	}

	restored, err := hc.newWorld()
	if err != nil {
		return err
	}
	state, err := helpers.NewTestRepositories(restored.Catalog(), restored.Clock()).World.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load world: %w", err)
	}
	if state == nil {
		return fmt.Errorf("no world was stored")
	}
	if err := restored.Restore(state); err != nil {
		return err
	}
	hc.restored = restored
	return nil
}

func (hc *homesteadContext) iReloadWithout(id string) error {
	return hc.reload(id)
}

func (hc *homesteadContext) theReloadedBuildingShouldMatch() error {
	b, err := hc.current()
	if err != nil {
		return err
	}
	got, err := hc.restored.Building(b.ID())
	if err != nil {
		return err
	}
	if got.Tier() != b.Tier() {
		return fmt.Errorf("tier: expected %d, got %d", b.Tier(), got.Tier())
	}
	if math.Abs(got.BuildProgress()-b.BuildProgress()) > 1e-9 {
		return fmt.Errorf("build progress: expected %g, got %g", b.BuildProgress(), got.BuildProgress())
	}
	if got.Status() != b.Status() {
		return fmt.Errorf("status: expected %s, got %s", b.Status(), got.Status())
	}
	if !reflect.DeepEqual(got.Slots(), b.Slots()) {
		return fmt.Errorf("storage: expected %+v, got %+v", b.Slots(), got.Slots())
	}
	if got.SlotCapacity() != b.SlotCapacity() || got.ProductionMultiplier() != b.ProductionMultiplier() {
		return fmt.Errorf("derived values differ: capacity %d/%d, multiplier %g/%g",
			b.SlotCapacity(), got.SlotCapacity(), b.ProductionMultiplier(), got.ProductionMultiplier())
	}
	return nil
}

func (hc *homesteadContext) theReloadedWorldShouldHaveBuildings(count int) error {
	if got := len(hc.restored.Buildings()); got != count {
		return fmt.Errorf("expected %d reloaded buildings, got %d", count, got)
	}
	return nil
}

func (hc *homesteadContext) loadErrorsShouldBeReported(count int) error {
	if hc.loadErrs != count {
		return fmt.Errorf("expected %d load errors, got %d", count, hc.loadErrs)
	}
	return nil
}

func (hc *homesteadContext) theReloadedInventoryShouldMatch() error {
	want, got := hc.w.Inventory().Snapshot(), hc.restored.Inventory().Snapshot()
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("expected inventory %+v, got %+v", want, got)
	}
	return nil
}

func registerPersistenceSteps(sc *godog.ScenarioContext, hc *homesteadContext) {
	// When steps
	sc.Step(`^I save and reload the world$`, hc.iSaveAndReloadTheWorld)
	sc.Step(`^I save and reload the world through the database$`, hc.iSaveAndReloadThroughTheDatabase)
	sc.Step(`^I reload the world without "([^"]*)" in the catalog$`, hc.iReloadWithout)

	// Then steps
	sc.Step(`^the reloaded building should match the original$`, hc.theReloadedBuildingShouldMatch)
	sc.Step(`^the reloaded world should have (\d+) buildings?$`, hc.theReloadedWorldShouldHaveBuildings)
	sc.Step(`^(\d+) load errors? should be reported$`, hc.loadErrorsShouldBeReported)
	sc.Step(`^the reloaded inventory should match the original$`, hc.theReloadedInventoryShouldMatch)
}
