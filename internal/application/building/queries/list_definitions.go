package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/application/building/dtos"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
)

// ListDefinitionsQuery lists the catalog, optionally one category
type ListDefinitionsQuery struct {
	Category string
}

// ListDefinitionsResponse represents the catalog entries in registration order
type ListDefinitionsResponse struct {
	Definitions []*dtos.DefinitionDTO
}

// GetDefinitionQuery fetches the full definition of one id
type GetDefinitionQuery struct {
	ID string
}

// GetDefinitionResponse carries the shared catalog definition, which must not be mutated
type GetDefinitionResponse struct {
	Definition *catalog.Definition
}

// CatalogQueryHandler handles ListDefinitions and GetDefinition
type CatalogQueryHandler struct {
	catalog catalog.Catalog
}

// NewCatalogQueryHandler creates a new CatalogQueryHandler
func NewCatalogQueryHandler(c catalog.Catalog) *CatalogQueryHandler {
	return &CatalogQueryHandler{catalog: c}
}

// Handle executes ListDefinitions or GetDefinition
func (h *CatalogQueryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch query := request.(type) {
	case *ListDefinitionsQuery:
		return h.list(query)
	case *GetDefinitionQuery:
		def, err := h.catalog.GetDefinition(query.ID)
		if err != nil {
			return nil, err
		}
		return &GetDefinitionResponse{Definition: def}, nil
	default:
		return nil, fmt.Errorf("invalid request type: expected *ListDefinitionsQuery or *GetDefinitionQuery")
	}
}

func (h *CatalogQueryHandler) list(query *ListDefinitionsQuery) (*ListDefinitionsResponse, error) {
	var category catalog.Category
	if query.Category != "" {
		parsed, err := catalog.ParseCategory(query.Category)
		if err != nil {
			return nil, err
		}
		category = parsed
	}

	resp := &ListDefinitionsResponse{}
	for _, def := range h.catalog.All() {
		if category != "" && def.Category != category {
			continue
		}
		resp.Definitions = append(resp.Definitions, dtos.ToDefinitionDTO(def))
	}
	return resp, nil
}
