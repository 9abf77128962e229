package helpers

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// MockTransactionRepository is an in-memory TransactionRepository honoring the query filters
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions []*ledger.Transaction
}

// NewMockTransactionRepository creates an empty repository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Create stores a transaction
func (m *MockTransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, tx)
	return nil
}

// FindByID looks up a transaction
func (m *MockTransactionRepository) FindByID(ctx context.Context, id ledger.TransactionID) (*ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, tx := range m.transactions {
		if tx.ID() == id {
			return tx, nil
		}
	}
	return nil, &ledger.ErrTransactionNotFound{ID: id.String()}
}

// Find filters, orders and pages the stored transactions
func (m *MockTransactionRepository) Find(ctx context.Context, opts ledger.QueryOptions) ([]*ledger.Transaction, error) {
	matched := m.filter(opts)

	if opts.OrderBy == "timestamp ASC" {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp().Before(matched[j].Timestamp()) })
	} else {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp().After(matched[j].Timestamp()) })
	}

	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// Count returns the number of transactions matching the filters
func (m *MockTransactionRepository) Count(ctx context.Context, opts ledger.QueryOptions) (int, error) {
	return len(m.filter(opts)), nil
}

// All returns every stored transaction in insertion order
func (m *MockTransactionRepository) All() []*ledger.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*ledger.Transaction(nil), m.transactions...)
}

func (m *MockTransactionRepository) filter(opts ledger.QueryOptions) []*ledger.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*ledger.Transaction
	for _, tx := range m.transactions {
		if opts.StartDate != nil && tx.Timestamp().Before(*opts.StartDate) {
			continue
		}
		if opts.EndDate != nil && tx.Timestamp().After(*opts.EndDate) {
			continue
		}
		if opts.Category != nil && tx.Category() != *opts.Category {
			continue
		}
		if opts.TransactionType != nil && tx.TransactionType() != *opts.TransactionType {
			continue
		}
		if opts.BuildingID != nil && tx.BuildingID() != *opts.BuildingID {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
