package steps

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/homestead-go/internal/domain/placement"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// When steps

func (hc *homesteadContext) iPlaceAt(id string, x, z float64) error {
	w, err := hc.ensureWorld()
	if err != nil {
		return err
	}
	hc.remember()
	placed, err := w.Place(id, shared.Vec3{X: x, Z: z}, 0)
	hc.lastErr = err
	if err == nil {
		hc.last = placed
	}
	return nil
}

func (hc *homesteadContext) theSettlerReachesLevel(level int) error {
	w, err := hc.ensureWorld()
	if err != nil {
		return err
	}
	return w.Player().SetLevel(level)
}

// iStartPlacingAt opens a build-mode session without committing it
func (hc *homesteadContext) iStartPlacingAt(id string, x, z float64) error {
	w, err := hc.ensureWorld()
	if err != nil {
		return err
	}
	hc.remember()
	c := w.Controller()
	if err := c.BeginPlacement(id); err != nil {
		hc.lastErr = err
		return nil
	}
	c.SetCursor(shared.Vec3{X: x, Z: z})
	c.Update(0)
	return nil
}

func (hc *homesteadContext) iConfirmThePlacement() error {
	placed, err := hc.w.Controller().Commit()
	hc.lastErr = err
	if err == nil {
		hc.last = placed
	}
	return nil
}

func (hc *homesteadContext) iCancelBuildMode() error {
	hc.w.Controller().Cancel()
	return nil
}

// Then steps

func (hc *homesteadContext) thePlacementShouldSucceed() error {
	if hc.lastErr != nil {
		return fmt.Errorf("expected placement to succeed, got: %v", hc.lastErr)
	}
	return nil
}

func (hc *homesteadContext) itShouldFailWith(message string) error {
	if hc.lastErr == nil {
		return fmt.Errorf("expected failure %q, but the operation succeeded", message)
	}
	if !strings.Contains(hc.lastErr.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, hc.lastErr.Error())
	}
	return nil
}

func (hc *homesteadContext) thereShouldBeBuildings(count int) error {
	if got := len(hc.w.Buildings()); got != count {
		return fmt.Errorf("expected %d buildings, got %d", count, got)
	}
	return nil
}

func (hc *homesteadContext) theInventoryShouldBeUnchanged() error {
	if got := hc.w.Inventory().Snapshot(); !reflect.DeepEqual(got, hc.balances) {
		return fmt.Errorf("expected inventory %+v, got %+v", hc.balances, got)
	}
	return nil
}

func (hc *homesteadContext) buildModeShouldBe(mode string) error {
	got := hc.w.Controller().Mode()
	want := placement.ModeIdle
	if mode == "placing" {
		want = placement.ModePlacing
	}
	if got != want {
		return fmt.Errorf("expected build mode %v, got %v", want, got)
	}
	return nil
}

func registerPlacementSteps(sc *godog.ScenarioContext, hc *homesteadContext) {
	// When steps
	sc.Step(`^I place "([^"]*)" at \((-?[0-9.]+), (-?[0-9.]+)\)$`, hc.iPlaceAt)
	sc.Step(`^the settler reaches level (\d+)$`, hc.theSettlerReachesLevel)
	sc.Step(`^I start placing "([^"]*)" at \((-?[0-9.]+), (-?[0-9.]+)\)$`, hc.iStartPlacingAt)
	sc.Step(`^I confirm the placement$`, hc.iConfirmThePlacement)
	sc.Step(`^I cancel build mode$`, hc.iCancelBuildMode)

	// Then steps
	sc.Step(`^the placement should succeed$`, hc.thePlacementShouldSucceed)
	sc.Step(`^it should fail with "([^"]*)"$`, hc.itShouldFailWith)
	sc.Step(`^there should be (\d+) buildings?$`, hc.thereShouldBeBuildings)
	sc.Step(`^the inventory should be unchanged$`, hc.theInventoryShouldBeUnchanged)
	sc.Step(`^build mode should be (idle|placing)$`, hc.buildModeShouldBe)
}
