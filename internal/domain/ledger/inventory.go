package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

// Balances is a point-in-time copy of an inventory
type Balances struct {
	Items      map[string]int `json:"items"`
	Currencies map[string]int `json:"currencies"`
}

// Inventory is the in-memory AtomicLedger owned by a world.
// All methods are safe for concurrent use; balances never go negative.
type Inventory struct {
	mu         sync.Mutex
	items      map[string]int
	currencies map[string]int
}

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{
		items:      make(map[string]int),
		currencies: make(map[string]int),
	}
}

func (inv *Inventory) HasItem(itemID string, quantity int) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.items[itemID] >= quantity
}

func (inv *Inventory) AddItem(itemID string, quantity int) {
	if quantity <= 0 {
		return
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.items[itemID] += quantity
}

func (inv *Inventory) RemoveItem(itemID string, quantity int) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return take(inv.items, itemID, quantity)
}

func (inv *Inventory) ItemCount(itemID string) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.items[itemID]
}

func (inv *Inventory) HasCurrency(kind catalog.Currency, amount int) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.currencies[string(kind)] >= amount
}

func (inv *Inventory) AddCurrency(kind catalog.Currency, amount int) {
	if amount <= 0 {
		return
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.currencies[string(kind)] += amount
}

func (inv *Inventory) RemoveCurrency(kind catalog.Currency, amount int) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return take(inv.currencies, string(kind), amount)
}

func (inv *Inventory) CurrencyBalance(kind catalog.Currency) int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.currencies[string(kind)]
}

// Debit checks and removes the whole bill under one lock
func (inv *Inventory) Debit(bill Bill) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	var shortfalls []Shortfall
	for _, line := range bill.Items {
		if have := inv.items[line.Resource]; have < line.Quantity {
			shortfalls = append(shortfalls, Shortfall{Resource: line.Resource, Have: have, Need: line.Quantity})
		}
	}
	for _, line := range bill.Currencies {
		if have := inv.currencies[line.Resource]; have < line.Quantity {
			shortfalls = append(shortfalls, Shortfall{Resource: line.Resource, Have: have, Need: line.Quantity})
		}
	}
	if len(shortfalls) > 0 {
		return NewInsufficientResourcesError(shortfalls)
	}

	for _, line := range bill.Items {
		inv.items[line.Resource] -= line.Quantity
	}
	for _, line := range bill.Currencies {
		inv.currencies[line.Resource] -= line.Quantity
	}
	return nil
}

// Snapshot copies the current balances, omitting zero entries
func (inv *Inventory) Snapshot() Balances {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return Balances{Items: copyPositive(inv.items), Currencies: copyPositive(inv.currencies)}
}

// Restore replaces every balance with the given snapshot
func (inv *Inventory) Restore(b Balances) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.items = copyPositive(b.Items)
	inv.currencies = copyPositive(b.Currencies)
}

// ItemIDs returns the held item ids in sorted order
func (inv *Inventory) ItemIDs() []string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return sortedKeys(inv.items)
}

// CurrencyKinds returns the held currency kinds in sorted order
func (inv *Inventory) CurrencyKinds() []catalog.Currency {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	keys := sortedKeys(inv.currencies)
	kinds := make([]catalog.Currency, len(keys))
	for i, k := range keys {
		kinds[i] = catalog.Currency(k)
	}
	return kinds
}

func take(balances map[string]int, key string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("cannot remove negative amount %d of %s", amount, key)
	}
	have := balances[key]
	if have < amount {
		return NewInsufficientResourcesError([]Shortfall{{Resource: key, Have: have, Need: amount}})
	}
	if have == amount {
		delete(balances, key)
		return nil
	}
	balances[key] = have - amount
	return nil
}

func copyPositive(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		if v > 0 {
			dst[k] = v
		}
	}
	return dst
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if v > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
