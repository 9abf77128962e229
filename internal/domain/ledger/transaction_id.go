package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// TransactionID identifies a journal entry
type TransactionID struct {
	value string
}

// NewTransactionID generates a random TransactionID
func NewTransactionID() TransactionID {
	return TransactionID{value: uuid.NewString()}
}

// ParseTransactionID validates a stored UUID string
func ParseTransactionID(id string) (TransactionID, error) {
	if id == "" {
		return TransactionID{}, fmt.Errorf("transaction_id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return TransactionID{}, fmt.Errorf("invalid transaction_id format: %w", err)
	}
	return TransactionID{value: id}, nil
}

func (t TransactionID) String() string {
	return t.value
}

func (t TransactionID) IsZero() bool {
	return t.value == ""
}
