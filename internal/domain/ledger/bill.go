package ledger

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

// Line is one resource amount of a bill
type Line struct {
	Resource string
	Quantity int
}

// Bill is the flattened amount of items and currencies moved by one economic operation
type Bill struct {
	Items      []Line
	Currencies []Line
}

// BillFromCost converts a catalog cost into a bill, dropping non-positive lines
func BillFromCost(cost catalog.Cost) Bill {
	var b Bill
	for _, item := range cost.Items {
		b.AddItem(item.ItemID, item.Quantity)
	}
	for _, cur := range cost.Currencies {
		b.AddCurrency(cur.Kind, cur.Amount)
	}
	return b
}

// IsEmpty reports whether the bill moves nothing
func (b Bill) IsEmpty() bool {
	return len(b.Items) == 0 && len(b.Currencies) == 0
}

// AddItem adds quantity to the item line, merging with an existing line for the same item
func (b *Bill) AddItem(itemID string, quantity int) {
	b.Items = addLine(b.Items, itemID, quantity)
}

// AddCurrency adds amount to the currency line, merging with an existing line for the same kind
func (b *Bill) AddCurrency(kind catalog.Currency, amount int) {
	b.Currencies = addLine(b.Currencies, string(kind), amount)
}

// Add merges other into b
func (b *Bill) Add(other Bill) {
	for _, l := range other.Items {
		b.AddItem(l.Resource, l.Quantity)
	}
	for _, l := range other.Currencies {
		b.AddCurrency(catalog.Currency(l.Resource), l.Quantity)
	}
}

// ItemQuantity returns the amount of the given item in the bill
func (b Bill) ItemQuantity(itemID string) int {
	return lineQuantity(b.Items, itemID)
}

// CurrencyAmount returns the amount of the given currency in the bill
func (b Bill) CurrencyAmount(kind catalog.Currency) int {
	return lineQuantity(b.Currencies, string(kind))
}

func (b Bill) String() string {
	parts := make([]string, 0, len(b.Items)+len(b.Currencies))
	for _, l := range b.Items {
		parts = append(parts, fmt.Sprintf("%s:%d", l.Resource, l.Quantity))
	}
	for _, l := range b.Currencies {
		parts = append(parts, fmt.Sprintf("%s:%d", l.Resource, l.Quantity))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func addLine(lines []Line, resource string, quantity int) []Line {
	if quantity <= 0 {
		return lines
	}
	for i := range lines {
		if lines[i].Resource == resource {
			lines[i].Quantity += quantity
			return lines
		}
	}
	return append(lines, Line{Resource: resource, Quantity: quantity})
}

func lineQuantity(lines []Line, resource string) int {
	for _, l := range lines {
		if l.Resource == resource {
			return l.Quantity
		}
	}
	return 0
}
