package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/homestead-go/internal/application/events"
	"github.com/andrescamacho/homestead-go/internal/domain/building"
)

// BuildingInfo is the per-building data the gauges are computed from
type BuildingInfo struct {
	DefinitionID string
	Status       string
	Tier         int
}

// WorldMetricsCollector tracks the placed building population, lifecycle events
// and the simulation loop
type WorldMetricsCollector struct {
	getBuildings func() []BuildingInfo

	buildingsTotal   *prometheus.GaugeVec
	eventsTotal      *prometheus.CounterVec
	itemsProduced    *prometheus.CounterVec
	storageFullTotal *prometheus.CounterVec
	tickDuration     prometheus.Histogram
	simulatedSeconds prometheus.Counter

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewWorldMetricsCollector creates a collector. getBuildings is polled for the population gauge.
func NewWorldMetricsCollector(getBuildings func() []BuildingInfo) *WorldMetricsCollector {
	return &WorldMetricsCollector{
		getBuildings: getBuildings,

		buildingsTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "buildings_total",
				Help:      "Number of placed buildings by definition and status",
			},
			[]string{"definition", "status"},
		),

		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_total",
				Help:      "Total number of world events by name",
			},
			[]string{"event"},
		),

		itemsProduced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "items_produced_total",
				Help:      "Items produced by buildings",
			},
			[]string{"definition", "item"},
		),

		storageFullTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "storage_full_total",
				Help:      "Production cycles dropped because building storage was full",
			},
			[]string{"definition"},
		),

		tickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tick_duration_seconds",
				Help:      "Wall time spent in one simulation tick",
				Buckets:   []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
		),

		simulatedSeconds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "simulated_seconds_total",
				Help:      "Simulated time advanced by the tick loop",
			},
		),
	}
}

// Register registers all world metrics with the Prometheus registry
func (c *WorldMetricsCollector) Register() error {
	return register(
		c.buildingsTotal,
		c.eventsTotal,
		c.itemsProduced,
		c.storageFullTotal,
		c.tickDuration,
		c.simulatedSeconds,
	)
}

// Attach subscribes the collector to every event on the bus
func (c *WorldMetricsCollector) Attach(bus *events.Bus) {
	bus.Subscribe(c.observe)
}

func (c *WorldMetricsCollector) observe(event building.Event) {
	c.eventsTotal.WithLabelValues(event.EventName()).Inc()

	switch e := event.(type) {
	case building.ProductionOutput:
		c.itemsProduced.WithLabelValues(e.DefinitionID, e.ItemID).Add(float64(e.Quantity))
	case building.StorageFull:
		c.storageFullTotal.WithLabelValues(e.DefinitionID).Inc()
	}
}

// Start begins polling the building population
func (c *WorldMetricsCollector) Start(ctx context.Context, interval time.Duration) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.collectBuildingMetrics(interval)
}

// Stop gracefully stops polling
func (c *WorldMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *WorldMetricsCollector) collectBuildingMetrics(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.UpdateBuildingMetrics()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.UpdateBuildingMetrics()
		}
	}
}

// UpdateBuildingMetrics recomputes the population gauge
func (c *WorldMetricsCollector) UpdateBuildingMetrics() {
	if c.getBuildings == nil {
		return
	}

	counts := make(map[[2]string]int)
	for _, b := range c.getBuildings() {
		counts[[2]string{b.DefinitionID, b.Status}]++
	}

	// Reset so demolished definitions disappear
	c.buildingsTotal.Reset()
	for key, n := range counts {
		c.buildingsTotal.WithLabelValues(key[0], key[1]).Set(float64(n))
	}
}

// RecordTick records one simulation tick
func (c *WorldMetricsCollector) RecordTick(duration time.Duration, dt float64) {
	c.tickDuration.Observe(duration.Seconds())
	c.simulatedSeconds.Add(dt)
}
