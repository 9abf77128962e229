package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/homestead-go/internal/application/events"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
)

func TestBus_OrderedFilteredDispatch(t *testing.T) {
	// Arrange
	bus := events.NewBus()
	var seen []string
	bus.Subscribe(func(e building.Event) { seen = append(seen, "all:"+e.EventName()) })
	bus.Subscribe(func(e building.Event) { seen = append(seen, "notify:"+e.(building.Notification).Reason) }, building.EventNotification)

	// Act
	bus.Publish(building.BuildingPlaced{BuildingID: "house_small-1"})
	bus.Publish(building.Notification{Reason: "Blocked by obstacle"})

	// Assert
	assert.Equal(t, []string{
		"all:" + building.EventBuildingPlaced,
		"all:" + building.EventNotification,
		"notify:Blocked by obstacle",
	}, seen)
}

func TestBus_SubscriberMayPublish(t *testing.T) {
	bus := events.NewBus()
	history := events.NewHistory(10)
	bus.Subscribe(history.Record)
	bus.Subscribe(func(e building.Event) {
		bus.Publish(building.Notification{Reason: "follow-up"})
	}, building.EventStorageFull)

	bus.Publish(building.StorageFull{BuildingID: "mill-1"})

	assert.Len(t, history.Recent(0), 2)
}

func TestHistory_KeepsMostRecent(t *testing.T) {
	h := events.NewHistory(2)
	for _, r := range []string{"a", "b", "c"} {
		h.Record(building.Notification{Reason: r})
	}

	recent := h.Recent(5)

	assert.Equal(t, []building.Event{building.Notification{Reason: "b"}, building.Notification{Reason: "c"}}, recent)
	assert.Equal(t, []building.Event{building.Notification{Reason: "c"}}, h.Recent(1))
}
