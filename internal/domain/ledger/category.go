package ledger

import "fmt"

// Category groups journal entries for reporting
type Category string

const (
	// CategoryConstruction covers placement and upgrade spending
	CategoryConstruction Category = "CONSTRUCTION"

	// CategoryRefund covers demolition refunds
	CategoryRefund Category = "REFUND"

	// CategoryProduction covers items produced by buildings
	CategoryProduction Category = "PRODUCTION"

	// CategoryAdjustment covers grants and manual corrections
	CategoryAdjustment Category = "ADJUSTMENT"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryConstruction,
		CategoryRefund,
		CategoryProduction,
		CategoryAdjustment,
	}
}

// TypeToCategoryMap maps transaction types to their categories
var TypeToCategoryMap = map[TransactionType]Category{
	TransactionTypePlaceBuilding:     CategoryConstruction,
	TransactionTypeUpgradeBuilding:   CategoryConstruction,
	TransactionTypeDemolishRefund:    CategoryRefund,
	TransactionTypeProductionOutput:  CategoryProduction,
	TransactionTypeStorageWithdrawal: CategoryProduction,
	TransactionTypeGrant:             CategoryAdjustment,
}

// String returns the string representation of the Category
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryConstruction, CategoryRefund, CategoryProduction, CategoryAdjustment:
		return true
	default:
		return false
	}
}

// IsSpending returns true if entries in the category debit the ledger
func (c Category) IsSpending() bool {
	return c == CategoryConstruction
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
