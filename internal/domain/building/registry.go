package building

import "fmt"

// Registry is the live set of placed buildings in creation order.
// It is owned by the world loop and not safe for concurrent use.
type Registry struct {
	byID  map[string]*PlacedBuilding
	order []string
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*PlacedBuilding)}
}

// Add appends a building; ids must be unique
func (r *Registry) Add(b *PlacedBuilding) error {
	if _, exists := r.byID[b.ID()]; exists {
		return fmt.Errorf("building already registered: %s", b.ID())
	}
	r.byID[b.ID()] = b
	r.order = append(r.order, b.ID())
	return nil
}

// Remove drops a building, keeping the order of the others
func (r *Registry) Remove(id string) (*PlacedBuilding, bool) {
	b, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)
	for i, known := range r.order {
		if known == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return b, true
}

func (r *Registry) Get(id string) (*PlacedBuilding, bool) {
	b, ok := r.byID[id]
	return b, ok
}

// All returns the buildings in creation order
func (r *Registry) All() []*PlacedBuilding {
	out := make([]*PlacedBuilding, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}
