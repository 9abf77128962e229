package queries

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
)

// GetResourceFlowQuery summarizes resource movement over a period
type GetResourceFlowQuery struct {
	StartDate time.Time
	EndDate   time.Time
	GroupBy   string // "category" (default) or "resource"
}

// GetResourceFlowResponse is the flow statement of the period
type GetResourceFlowResponse struct {
	Period string
	Flows  []*ResourceFlow
}

// ResourceFlow is the movement of one resource within one group
type ResourceFlow struct {
	Group        string // category, or resource kind when grouped by resource
	Resource     string
	Inflow       int
	Outflow      int
	Net          int
	Transactions int
}

// GetResourceFlowHandler handles the GetResourceFlow query
type GetResourceFlowHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetResourceFlowHandler creates a new GetResourceFlowHandler
func NewGetResourceFlowHandler(transactionRepo ledger.TransactionRepository) *GetResourceFlowHandler {
	return &GetResourceFlowHandler{transactionRepo: transactionRepo}
}

// Handle executes the GetResourceFlow query
func (h *GetResourceFlowHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetResourceFlowQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetResourceFlowQuery")
	}

	if query.GroupBy == "" {
		query.GroupBy = "category"
	}
	if query.GroupBy != "category" && query.GroupBy != "resource" {
		return nil, fmt.Errorf("unsupported grouping %q: use category or resource", query.GroupBy)
	}

	opts := ledger.QueryOptions{
		StartDate: &query.StartDate,
		EndDate:   &query.EndDate,
		OrderBy:   "timestamp ASC",
		Limit:     0, // No limit
	}
	transactions, err := h.transactionRepo.Find(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return &GetResourceFlowResponse{
		Period: fmt.Sprintf("%s to %s", query.StartDate.Format("2006-01-02"), query.EndDate.Format("2006-01-02")),
		Flows:  aggregateFlows(query.GroupBy, transactions),
	}, nil
}

func aggregateFlows(groupBy string, transactions []*ledger.Transaction) []*ResourceFlow {
	flows := make(map[[2]string]*ResourceFlow)

	for _, tx := range transactions {
		for _, e := range tx.Entries() {
			group := tx.Category().String()
			if groupBy == "resource" {
				group = string(e.Kind)
			}
			key := [2]string{group, e.Resource}

			flow, ok := flows[key]
			if !ok {
				flow = &ResourceFlow{Group: group, Resource: e.Resource}
				flows[key] = flow
			}
			flow.Transactions++
			if e.Delta > 0 {
				flow.Inflow += e.Delta
			} else {
				flow.Outflow += -e.Delta
			}
			flow.Net = flow.Inflow - flow.Outflow
		}
	}

	out := make([]*ResourceFlow, 0, len(flows))
	for _, f := range flows {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Resource < out[j].Resource
	})
	return out
}
