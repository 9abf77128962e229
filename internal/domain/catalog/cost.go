package catalog

// Currency identifies a wallet balance such as gold or tokens
type Currency string

// ItemCost is one resource-item line of a building or tier cost
type ItemCost struct {
	ItemID           string
	Quantity         int
	ReturnOnDemolish bool
	// ReturnPercentage is the refund fraction for this line. Zero falls back to the
	// definition's demolition refund percentage.
	ReturnPercentage float64
}

// CurrencyCost is one currency line of a building or tier cost
type CurrencyCost struct {
	Kind   Currency
	Amount int
}

// Cost is an ordered set of item and currency lines
type Cost struct {
	Items      []ItemCost
	Currencies []CurrencyCost
}

// IsEmpty reports whether the cost has no positive line
func (c Cost) IsEmpty() bool {
	for _, item := range c.Items {
		if item.Quantity > 0 {
			return false
		}
	}
	for _, cur := range c.Currencies {
		if cur.Amount > 0 {
			return false
		}
	}
	return true
}

// Magnitude is the total item quantity plus total currency amount.
// Used to check that each upgrade tier costs at least as much as the one before it.
func (c Cost) Magnitude() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	for _, cur := range c.Currencies {
		total += cur.Amount
	}
	return total
}

// Tier is one upgrade step. Tier k in a definition is reached from tier k-1.
type Tier struct {
	Name                      string
	Cost                      Cost
	BuildTime                 float64
	ExtraStorageSlots         int
	ProductionSpeedMultiplier float64
	QualityBonus              float64
}
