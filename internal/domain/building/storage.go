package building

import "github.com/andrescamacho/homestead-go/internal/domain/ledger"

// Slot is one storage cell; an empty slot has no item and zero quantity
type Slot struct {
	ItemID   string
	Quantity int
}

func (s Slot) IsEmpty() bool {
	return s.ItemID == "" || s.Quantity <= 0
}

// Slots returns a copy of the storage array
func (b *PlacedBuilding) Slots() []Slot {
	return append([]Slot(nil), b.storage...)
}

// StoredQuantity sums the quantity of an item over every slot
func (b *PlacedBuilding) StoredQuantity(itemID string) int {
	total := 0
	for _, s := range b.storage {
		if s.ItemID == itemID {
			total += s.Quantity
		}
	}
	return total
}

// AddToStorage puts the whole quantity into the first slot, in slot order, that is empty
// or already holds the item with room under the stack limit. It returns false and leaves
// every slot untouched when no slot qualifies.
func (b *PlacedBuilding) AddToStorage(itemID string, quantity int) bool {
	if itemID == "" || quantity <= 0 || b.lifecycle.IsDemolished() {
		return false
	}

	limit := b.definition.Functionality.Storage.StackLimit
	for i := range b.storage {
		slot := &b.storage[i]
		switch {
		case slot.IsEmpty():
			if limit > 0 && quantity > limit {
				continue
			}
			*slot = Slot{ItemID: itemID, Quantity: quantity}
			return true
		case slot.ItemID == itemID:
			if limit > 0 && slot.Quantity+quantity > limit {
				continue
			}
			slot.Quantity += quantity
			return true
		}
	}
	return false
}

// RemoveFromStorage drains matching slots in order until quantity is removed or the item
// runs out. Emptied slots are cleared. It returns the amount actually removed.
func (b *PlacedBuilding) RemoveFromStorage(itemID string, quantity int) int {
	removed := 0
	for i := range b.storage {
		if removed >= quantity {
			break
		}
		slot := &b.storage[i]
		if slot.IsEmpty() || slot.ItemID != itemID {
			continue
		}
		n := quantity - removed
		if slot.Quantity < n {
			n = slot.Quantity
		}
		slot.Quantity -= n
		removed += n
		if slot.Quantity == 0 {
			*slot = Slot{}
		}
	}
	return removed
}

// TakeFromStorage moves up to quantity of an item from storage into the ledger
func (b *PlacedBuilding) TakeFromStorage(itemID string, quantity int, l ledger.ResourceLedger, sink EventSink) int {
	removed := b.RemoveFromStorage(itemID, quantity)
	if removed == 0 {
		return 0
	}
	l.AddItem(itemID, removed)
	if sink != nil {
		sink.Publish(StorageWithdrawn{BuildingID: b.id, DefinitionID: b.definition.ID, ItemID: itemID, Quantity: removed})
	}
	return removed
}

// RestoreSlot refills storage from persisted data. The entry goes to index when that slot
// exists and is empty, otherwise to the first empty slot. It returns the slot used, or
// -1 when storage has no room left.
func (b *PlacedBuilding) RestoreSlot(index int, slot Slot) int {
	if slot.IsEmpty() {
		return -1
	}
	if index >= 0 && index < len(b.storage) && b.storage[index].IsEmpty() {
		b.storage[index] = slot
		return index
	}
	for i := range b.storage {
		if b.storage[i].IsEmpty() {
			b.storage[i] = slot
			return i
		}
	}
	return -1
}

// growStorage extends the slot array to n slots, keeping existing contents
func (b *PlacedBuilding) growStorage(n int) {
	if n <= len(b.storage) {
		return
	}
	grown := make([]Slot, n)
	copy(grown, b.storage)
	b.storage = grown
}
