package ledger

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Shortfall describes one bill line the ledger cannot cover
type Shortfall struct {
	Resource string
	Have     int
	Need     int
}

func (s Shortfall) String() string {
	return fmt.Sprintf("%s (%d/%d)", s.Resource, s.Have, s.Need)
}

// InsufficientResourcesError is returned when a debit cannot be fully covered.
// The ledger is left untouched when this error is returned.
type InsufficientResourcesError struct {
	*shared.DomainError
	Shortfalls []Shortfall
}

func NewInsufficientResourcesError(shortfalls []Shortfall) *InsufficientResourcesError {
	parts := make([]string, len(shortfalls))
	for i, s := range shortfalls {
		parts[i] = s.String()
	}
	return &InsufficientResourcesError{
		DomainError: shared.NewDomainError("InsufficientResources: " + strings.Join(parts, ", ")),
		Shortfalls:  shortfalls,
	}
}

// ErrInvalidTransaction represents validation errors for transactions
type ErrInvalidTransaction struct {
	Field  string
	Reason string
}

func (e *ErrInvalidTransaction) Error() string {
	return fmt.Sprintf("invalid transaction: %s - %s", e.Field, e.Reason)
}

// ErrTransactionNotFound represents errors when a transaction cannot be found
type ErrTransactionNotFound struct {
	ID string
}

func (e *ErrTransactionNotFound) Error() string {
	return fmt.Sprintf("transaction not found: id=%s", e.ID)
}
