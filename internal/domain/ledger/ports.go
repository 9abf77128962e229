package ledger

import (
	"context"
	"time"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

// ResourceLedger is the inventory and wallet surface consumed by cost and refund logic.
// Calls are synchronous; Add* ignores non-positive amounts and Remove* never goes negative.
type ResourceLedger interface {
	HasItem(itemID string, quantity int) bool
	AddItem(itemID string, quantity int)
	RemoveItem(itemID string, quantity int) error
	ItemCount(itemID string) int

	HasCurrency(kind catalog.Currency, amount int) bool
	AddCurrency(kind catalog.Currency, amount int)
	RemoveCurrency(kind catalog.Currency, amount int) error
	CurrencyBalance(kind catalog.Currency) int
}

// AtomicLedger is a ledger that can check and debit a whole bill as one step
type AtomicLedger interface {
	ResourceLedger
	Debit(bill Bill) error
}

// TransactionRepository defines persistence operations for journal entries
type TransactionRepository interface {
	// Create persists a new transaction
	Create(ctx context.Context, transaction *Transaction) error

	// FindByID retrieves a transaction by its ID
	FindByID(ctx context.Context, id TransactionID) (*Transaction, error)

	// Find retrieves transactions with optional filtering
	Find(ctx context.Context, opts QueryOptions) ([]*Transaction, error)

	// Count returns the count of transactions matching the criteria
	Count(ctx context.Context, opts QueryOptions) (int, error)
}

// QueryOptions defines filtering and pagination options for transaction queries
type QueryOptions struct {
	StartDate *time.Time
	EndDate   *time.Time

	Category        *Category
	TransactionType *TransactionType
	BuildingID      *string

	Limit  int
	Offset int

	// "timestamp ASC" or "timestamp DESC" (default DESC)
	OrderBy string
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:   50,
		OrderBy: "timestamp DESC",
	}
}
