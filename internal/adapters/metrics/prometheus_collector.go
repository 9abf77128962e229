package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

const (
	// Namespace for all metrics
	namespace = "homestead"
	// Subsystem for world metrics
	subsystem = "world"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalWorldCollector is set by SetGlobalWorldCollector when metrics are enabled
	globalWorldCollector WorldMetricsRecorder

	// globalLedgerCollector is set by SetGlobalLedgerCollector when metrics are enabled
	globalLedgerCollector LedgerMetricsRecorder
)

// WorldMetricsRecorder records simulation loop metrics
type WorldMetricsRecorder interface {
	RecordTick(duration time.Duration, dt float64)
}

// LedgerMetricsRecorder records journal entries as they are written
type LedgerMetricsRecorder interface {
	RecordTransaction(transactionType string, category string, entries []ledger.Entry)
}

// InitRegistry initializes the Prometheus registry.
// Should be called once at startup if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global registry, nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalWorldCollector sets the global world metrics collector
func SetGlobalWorldCollector(collector WorldMetricsRecorder) {
	globalWorldCollector = collector
}

// RecordTick records one simulation tick globally
func RecordTick(duration time.Duration, dt float64) {
	if globalWorldCollector != nil {
		globalWorldCollector.RecordTick(duration, dt)
	}
}

// SetGlobalLedgerCollector sets the global ledger metrics collector
func SetGlobalLedgerCollector(collector LedgerMetricsRecorder) {
	globalLedgerCollector = collector
}

// RecordTransaction records a journal entry globally
func RecordTransaction(transactionType string, category string, entries []ledger.Entry) {
	if globalLedgerCollector != nil {
		globalLedgerCollector.RecordTransaction(transactionType, category, entries)
	}
}

func register(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil // Metrics not enabled
	}
	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
