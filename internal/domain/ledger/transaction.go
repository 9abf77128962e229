package ledger

import (
	"fmt"
	"time"
)

// ResourceKind distinguishes item entries from currency entries
type ResourceKind string

const (
	ResourceKindItem     ResourceKind = "ITEM"
	ResourceKindCurrency ResourceKind = "CURRENCY"
)

// Entry is one signed resource movement: positive credits the ledger, negative debits it
type Entry struct {
	Kind     ResourceKind
	Resource string
	Delta    int
}

// EntriesFromBill turns a bill into entries with the given sign (+1 credit, -1 debit)
func EntriesFromBill(bill Bill, sign int) []Entry {
	entries := make([]Entry, 0, len(bill.Items)+len(bill.Currencies))
	for _, l := range bill.Items {
		entries = append(entries, Entry{Kind: ResourceKindItem, Resource: l.Resource, Delta: sign * l.Quantity})
	}
	for _, l := range bill.Currencies {
		entries = append(entries, Entry{Kind: ResourceKindCurrency, Resource: l.Resource, Delta: sign * l.Quantity})
	}
	return entries
}

// Transaction is an immutable journal entry for one debit or credit of the world ledger
type Transaction struct {
	id              TransactionID
	timestamp       time.Time
	transactionType TransactionType
	category        Category
	buildingID      string
	definitionID    string
	entries         []Entry
	description     string
}

// NewTransaction creates a new journal entry with validation
func NewTransaction(
	timestamp time.Time,
	transactionType TransactionType,
	buildingID string,
	definitionID string,
	entries []Entry,
	description string,
) (*Transaction, error) {
	category, err := transactionType.ToCategory()
	if err != nil {
		return nil, &ErrInvalidTransaction{Field: "transaction_type", Reason: err.Error()}
	}

	t := &Transaction{
		id:              NewTransactionID(),
		timestamp:       timestamp,
		transactionType: transactionType,
		category:        category,
		buildingID:      buildingID,
		definitionID:    definitionID,
		entries:         append([]Entry(nil), entries...),
		description:     description,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReconstructTransaction rebuilds a transaction from persistence without validation
func ReconstructTransaction(
	id TransactionID,
	timestamp time.Time,
	transactionType TransactionType,
	category Category,
	buildingID string,
	definitionID string,
	entries []Entry,
	description string,
) *Transaction {
	return &Transaction{
		id:              id,
		timestamp:       timestamp,
		transactionType: transactionType,
		category:        category,
		buildingID:      buildingID,
		definitionID:    definitionID,
		entries:         entries,
		description:     description,
	}
}

// Validate checks that the transaction satisfies its invariants
func (t *Transaction) Validate() error {
	if t.timestamp.IsZero() {
		return &ErrInvalidTransaction{Field: "timestamp", Reason: "timestamp cannot be zero"}
	}
	if len(t.entries) == 0 {
		return &ErrInvalidTransaction{Field: "entries", Reason: "transaction must move at least one resource"}
	}
	for i, e := range t.entries {
		if e.Delta == 0 {
			return &ErrInvalidTransaction{Field: fmt.Sprintf("entries[%d]", i), Reason: "delta cannot be zero"}
		}
		if e.Kind != ResourceKindItem && e.Kind != ResourceKindCurrency {
			return &ErrInvalidTransaction{Field: fmt.Sprintf("entries[%d]", i), Reason: fmt.Sprintf("invalid kind %q", e.Kind)}
		}
	}
	return nil
}

func (t *Transaction) ID() TransactionID {
	return t.id
}

func (t *Transaction) Timestamp() time.Time {
	return t.timestamp
}

func (t *Transaction) TransactionType() TransactionType {
	return t.transactionType
}

func (t *Transaction) Category() Category {
	return t.category
}

func (t *Transaction) BuildingID() string {
	return t.buildingID
}

func (t *Transaction) DefinitionID() string {
	return t.definitionID
}

func (t *Transaction) Description() string {
	return t.description
}

// Entries returns a copy of the resource movements
func (t *Transaction) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// IsDebit returns true if every entry removes resources from the ledger
func (t *Transaction) IsDebit() bool {
	for _, e := range t.entries {
		if e.Delta > 0 {
			return false
		}
	}
	return true
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, type=%s, building=%s, entries=%d]",
		t.id, t.transactionType, t.buildingID, len(t.entries))
}
