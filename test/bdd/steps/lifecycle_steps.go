package steps

import (
	"fmt"
	"math"
	"reflect"

	"github.com/cucumber/godog"
)

// tickStep is the simulated seconds per tick used when time passes
const tickStep = 0.5

// When steps

func (hc *homesteadContext) secondsPass(seconds float64) error {
	w, err := hc.ensureWorld()
	if err != nil {
		return err
	}
	_, err = w.Advance(seconds, tickStep)
	return err
}

func (hc *homesteadContext) iUpgradeTheBuilding() error {
	b, err := hc.current()
	if err != nil {
		return err
	}
	hc.remember()
	hc.lastErr = hc.w.Upgrade(b.ID())
	return nil
}

func (hc *homesteadContext) iDemolishTheBuilding() error {
	b, err := hc.current()
	if err != nil {
		return err
	}
	hc.remember()
	hc.refund, hc.lastErr = hc.w.Demolish(b.ID())
	return nil
}

func (hc *homesteadContext) iTakeFromTheBuilding(quantity int, item string) error {
	b, err := hc.current()
	if err != nil {
		return err
	}
	_, hc.lastErr = hc.w.TakeFromStorage(b.ID(), item, quantity)
	return nil
}

// Then steps

func (hc *homesteadContext) theBuildingShouldBe(status string) error {
	b, err := hc.current()
	if err != nil {
		return err
	}
	want := map[string]bool{
		"constructing": b.IsConstructing(),
		"active":       b.IsActive(),
		"demolished":   b.IsDemolished(),
	}
	if !want[status] {
		return fmt.Errorf("expected building to be %s, got %s", status, b.Status())
	}
	return nil
}

func (hc *homesteadContext) theBuildProgressShouldBe(progress float64) error {
	b, err := hc.current()
	if err != nil {
		return err
	}
	if math.Abs(b.BuildProgress()-progress) > 1e-9 {
		return fmt.Errorf("expected build progress %g, got %g", progress, b.BuildProgress())
	}
	return nil
}

func (hc *homesteadContext) theBuildingShouldBeAtTier(tier int) error {
	b, err := hc.current()
	if err != nil {
		return err
	}
	if b.Tier() != tier {
		return fmt.Errorf("expected tier %d, got %d", tier, b.Tier())
	}
	return nil
}

func (hc *homesteadContext) theBuildingShouldBeUnchanged() error {
	b, err := hc.current()
	if err != nil {
		return err
	}
	got := buildingState{tier: b.Tier(), progress: b.BuildProgress(), status: b.Status(), slots: b.Slots()}
	if !reflect.DeepEqual(got, hc.beforeState) {
		return fmt.Errorf("expected building state %+v, got %+v", hc.beforeState, got)
	}
	return nil
}

func (hc *homesteadContext) theRefundShouldInclude(quantity int, item string) error {
	if got := hc.refund.ItemQuantity(item); got != quantity {
		return fmt.Errorf("expected refund of %d %s, got %d (refund: %s)", quantity, item, got, hc.refund)
	}
	return nil
}

func (hc *homesteadContext) theBuildingShouldStore(quantity int, item string) error {
	b, err := hc.current()
	if err != nil {
		return err
	}
	if got := b.StoredQuantity(item); got != quantity {
		return fmt.Errorf("expected %d %s stored, got %d", quantity, item, got)
	}
	return nil
}

func (hc *homesteadContext) anEventShouldHaveBeenRaised(name string) error {
	for _, e := range hc.events {
		if e.EventName() == name {
			return nil
		}
	}
	return fmt.Errorf("expected a %s event, got %d events", name, len(hc.events))
}

func (hc *homesteadContext) noEventShouldHaveBeenRaised(name string) error {
	for _, e := range hc.events {
		if e.EventName() == name {
			return fmt.Errorf("unexpected %s event", name)
		}
	}
	return nil
}

func registerLifecycleSteps(sc *godog.ScenarioContext, hc *homesteadContext) {
	// When steps
	sc.Step(`^([0-9.]+) seconds pass$`, hc.secondsPass)
	sc.Step(`^I upgrade the building$`, hc.iUpgradeTheBuilding)
	sc.Step(`^I demolish the building$`, hc.iDemolishTheBuilding)
	sc.Step(`^I take (\d+) "([^"]*)" from the building$`, hc.iTakeFromTheBuilding)

	// Then steps
	sc.Step(`^the building should be (constructing|active|demolished)$`, hc.theBuildingShouldBe)
	sc.Step(`^the build progress should be ([0-9.]+)$`, hc.theBuildProgressShouldBe)
	sc.Step(`^the building should be at tier (\d+)$`, hc.theBuildingShouldBeAtTier)
	sc.Step(`^the building should be unchanged$`, hc.theBuildingShouldBeUnchanged)
	sc.Step(`^the refund should include (\d+) "([^"]*)"$`, hc.theRefundShouldInclude)
	sc.Step(`^the building should store (\d+) "([^"]*)"$`, hc.theBuildingShouldStore)
	sc.Step(`^a "([^"]*)" event should have been raised$`, hc.anEventShouldHaveBeenRaised)
	sc.Step(`^no "([^"]*)" event should have been raised$`, hc.noEventShouldHaveBeenRaised)
}
