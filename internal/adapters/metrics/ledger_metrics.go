package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ledgerQueries "github.com/andrescamacho/homestead-go/internal/application/ledger/queries"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// LedgerMetricsCollector tracks inventory balances and journal activity
type LedgerMetricsCollector struct {
	mediator mediator.Mediator
	logger   logging.Logger

	balance           *prometheus.GaugeVec
	transactionsTotal *prometheus.CounterVec
	resourceVolume    *prometheus.CounterVec

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewLedgerMetricsCollector creates a new ledger metrics collector
func NewLedgerMetricsCollector(m mediator.Mediator, logger logging.Logger) *LedgerMetricsCollector {
	return &LedgerMetricsCollector{
		mediator: m,
		logger:   logger,

		balance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ledger_balance",
				Help:      "Current inventory balance by resource",
			},
			[]string{"kind", "resource"},
		),

		transactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total number of journal entries by type and category",
			},
			[]string{"type", "category"},
		),

		resourceVolume: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resource_volume_total",
				Help:      "Absolute quantity moved through the ledger by resource and direction",
			},
			[]string{"resource", "direction"},
		),
	}
}

// Register registers all ledger metrics with the Prometheus registry
func (c *LedgerMetricsCollector) Register() error {
	return register(c.balance, c.transactionsTotal, c.resourceVolume)
}

// Start begins polling balances
func (c *LedgerMetricsCollector) Start(ctx context.Context, interval time.Duration) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollBalances(interval)
}

// Stop gracefully stops polling
func (c *LedgerMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *LedgerMetricsCollector) pollBalances(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.UpdateBalances(c.ctx)
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.UpdateBalances(c.ctx)
		}
	}
}

// UpdateBalances fetches the inventory through the mediator and refreshes the gauges
func (c *LedgerMetricsCollector) UpdateBalances(ctx context.Context) {
	if c.mediator == nil {
		return
	}

	resp, err := c.mediator.Send(ctx, &ledgerQueries.GetBalancesQuery{})
	if err != nil {
		c.log(logging.LevelWarn, "Failed to fetch balances for metrics", map[string]interface{}{"error": err.Error()})
		return
	}
	balances, ok := resp.(*ledgerQueries.GetBalancesResponse)
	if !ok {
		c.log(logging.LevelWarn, "Unexpected response type for balances query", nil)
		return
	}

	c.balance.Reset()
	for _, b := range balances.Items {
		c.balance.WithLabelValues(string(ledger.ResourceKindItem), b.Resource).Set(float64(b.Quantity))
	}
	for _, b := range balances.Currencies {
		c.balance.WithLabelValues(string(ledger.ResourceKindCurrency), b.Resource).Set(float64(b.Quantity))
	}
}

// RecordTransaction records one journal entry
func (c *LedgerMetricsCollector) RecordTransaction(transactionType string, category string, entries []ledger.Entry) {
	c.transactionsTotal.WithLabelValues(transactionType, category).Inc()

	for _, e := range entries {
		direction := "in"
		amount := e.Delta
		if amount < 0 {
			direction = "out"
			amount = -amount
		}
		c.resourceVolume.WithLabelValues(e.Resource, direction).Add(float64(amount))
	}
}

func (c *LedgerMetricsCollector) log(level, message string, metadata map[string]interface{}) {
	if c.logger != nil {
		c.logger.Log(level, message, metadata)
	}
}
