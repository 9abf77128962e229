package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Catalog resolves building definitions by id.
// Returned definitions are shared references and must not be mutated.
type Catalog interface {
	GetDefinition(id string) (*Definition, error)
	All() []*Definition
}

// UnknownDefinitionError is returned for ids that are not in the catalog
type UnknownDefinitionError struct {
	*shared.DomainError
	ID          string
	Suggestions []string
}

func NewUnknownDefinitionError(id string, suggestions []string) *UnknownDefinitionError {
	msg := fmt.Sprintf("unknown building definition: %s", id)
	if len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	}
	return &UnknownDefinitionError{
		DomainError: shared.NewDomainError(msg),
		ID:          id,
		Suggestions: suggestions,
	}
}

// MemoryCatalog is an in-memory Catalog preserving registration order
type MemoryCatalog struct {
	mu    sync.RWMutex
	byID  map[string]*Definition
	order []string
}

// NewMemoryCatalog creates a catalog and registers the given definitions
func NewMemoryCatalog(defs ...*Definition) (*MemoryCatalog, error) {
	c := &MemoryCatalog{byID: make(map[string]*Definition)}
	for _, def := range defs {
		if err := c.Register(def); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register validates and adds a definition
func (c *MemoryCatalog) Register(def *Definition) error {
	if def == nil {
		return fmt.Errorf("definition cannot be nil")
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("invalid definition: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[def.ID]; exists {
		return fmt.Errorf("definition already registered: %s", def.ID)
	}
	c.byID[def.ID] = def
	c.order = append(c.order, def.ID)
	return nil
}

// GetDefinition returns the definition with the given id
func (c *MemoryCatalog) GetDefinition(id string) (*Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if def, ok := c.byID[id]; ok {
		return def, nil
	}
	return nil, NewUnknownDefinitionError(id, c.suggestLocked(id))
}

// All returns every definition in registration order
func (c *MemoryCatalog) All() []*Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	defs := make([]*Definition, 0, len(c.order))
	for _, id := range c.order {
		defs = append(defs, c.byID[id])
	}
	return defs
}

// ByCategory returns the definitions of one category in registration order
func (c *MemoryCatalog) ByCategory(category Category) []*Definition {
	var defs []*Definition
	for _, def := range c.All() {
		if def.Category == category {
			defs = append(defs, def)
		}
	}
	return defs
}

// Len returns the number of registered definitions
func (c *MemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// suggestLocked returns up to three known ids close to the requested one.
// Must be called while holding mu.
func (c *MemoryCatalog) suggestLocked(id string) []string {
	type candidate struct {
		id   string
		dist int
	}

	needle := strings.ToLower(id)
	limit := suggestionLimit(len(needle))

	var cands []candidate
	for _, known := range c.order {
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(known))
		if dist <= limit {
			cands = append(cands, candidate{id: known, dist: dist})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].id < cands[j].id
		}
		return cands[i].dist < cands[j].dist
	})

	var out []string
	for i := 0; i < len(cands) && i < 3; i++ {
		out = append(out, cands[i].id)
	}
	return out
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
