package ledger

import "fmt"

// TransactionType represents the economic event behind a journal entry
type TransactionType string

const (
	// TransactionTypePlaceBuilding represents the debit of a building's base cost on commit
	TransactionTypePlaceBuilding TransactionType = "PLACE_BUILDING"

	// TransactionTypeUpgradeBuilding represents the debit of a tier cost on upgrade
	TransactionTypeUpgradeBuilding TransactionType = "UPGRADE_BUILDING"

	// TransactionTypeDemolishRefund represents the refund credited on demolish
	TransactionTypeDemolishRefund TransactionType = "DEMOLISH_REFUND"

	// TransactionTypeProductionOutput represents items produced straight into the inventory
	TransactionTypeProductionOutput TransactionType = "PRODUCTION_OUTPUT"

	// TransactionTypeStorageWithdrawal represents items moved from building storage to the inventory
	TransactionTypeStorageWithdrawal TransactionType = "STORAGE_WITHDRAWAL"

	// TransactionTypeGrant represents a manual adjustment (starting kit, admin grant)
	TransactionTypeGrant TransactionType = "GRANT"
)

// AllTransactionTypes returns all valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypePlaceBuilding,
		TransactionTypeUpgradeBuilding,
		TransactionTypeDemolishRefund,
		TransactionTypeProductionOutput,
		TransactionTypeStorageWithdrawal,
		TransactionTypeGrant,
	}
}

// String returns the string representation of the TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	_, ok := TypeToCategoryMap[t]
	return ok
}

// ToCategory maps the transaction type to its category
func (t TransactionType) ToCategory() (Category, error) {
	category, exists := TypeToCategoryMap[t]
	if !exists {
		return "", fmt.Errorf("unknown transaction type: %s", t)
	}
	return category, nil
}

// ParseTransactionType parses a string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}
