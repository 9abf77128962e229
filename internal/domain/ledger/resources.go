package ledger

import "github.com/andrescamacho/homestead-go/internal/domain/catalog"

// ShortfallsFor lists every bill line the ledger cannot currently cover, in bill order
func ShortfallsFor(l ResourceLedger, bill Bill) []Shortfall {
	var out []Shortfall
	for _, line := range bill.Items {
		if !l.HasItem(line.Resource, line.Quantity) {
			out = append(out, Shortfall{Resource: line.Resource, Have: l.ItemCount(line.Resource), Need: line.Quantity})
		}
	}
	for _, line := range bill.Currencies {
		kind := catalog.Currency(line.Resource)
		if !l.HasCurrency(kind, line.Quantity) {
			out = append(out, Shortfall{Resource: line.Resource, Have: l.CurrencyBalance(kind), Need: line.Quantity})
		}
	}
	return out
}

// CanAfford reports whether every line of the bill is covered
func CanAfford(l ResourceLedger, bill Bill) bool {
	return len(ShortfallsFor(l, bill)) == 0
}

// ConsumeResources debits the whole bill or nothing.
//
// Atomic ledgers are debited through Debit. Otherwise every line is verified first and the
// debit runs only when all lines are satisfiable; a failing Remove* after verification rolls
// back the lines already taken.
func ConsumeResources(l ResourceLedger, bill Bill) error {
	if bill.IsEmpty() {
		return nil
	}
	if atomic, ok := l.(AtomicLedger); ok {
		return atomic.Debit(bill)
	}

	if shortfalls := ShortfallsFor(l, bill); len(shortfalls) > 0 {
		return NewInsufficientResourcesError(shortfalls)
	}

	var taken Bill
	for _, line := range bill.Items {
		if err := l.RemoveItem(line.Resource, line.Quantity); err != nil {
			CreditResources(l, taken)
			return err
		}
		taken.AddItem(line.Resource, line.Quantity)
	}
	for _, line := range bill.Currencies {
		kind := catalog.Currency(line.Resource)
		if err := l.RemoveCurrency(kind, line.Quantity); err != nil {
			CreditResources(l, taken)
			return err
		}
		taken.AddCurrency(kind, line.Quantity)
	}
	return nil
}

// CreditResources adds every line of the bill to the ledger
func CreditResources(l ResourceLedger, bill Bill) {
	for _, line := range bill.Items {
		l.AddItem(line.Resource, line.Quantity)
	}
	for _, line := range bill.Currencies {
		l.AddCurrency(catalog.Currency(line.Resource), line.Quantity)
	}
}
