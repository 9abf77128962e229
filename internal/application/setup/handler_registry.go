package setup

import (
	buildingCommands "github.com/andrescamacho/homestead-go/internal/application/building/commands"
	buildingQueries "github.com/andrescamacho/homestead-go/internal/application/building/queries"
	"github.com/andrescamacho/homestead-go/internal/application/events"
	ledgerCommands "github.com/andrescamacho/homestead-go/internal/application/ledger/commands"
	ledgerQueries "github.com/andrescamacho/homestead-go/internal/application/ledger/queries"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	playerCommands "github.com/andrescamacho/homestead-go/internal/application/player/commands"
	playerQueries "github.com/andrescamacho/homestead-go/internal/application/player/queries"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/ledger"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	host            *world.Host
	catalog         catalog.Catalog
	transactionRepo ledger.TransactionRepository
	history         *events.History
	clock           shared.Clock
}

// NewHandlerRegistry creates a new handler registry. history may be nil.
func NewHandlerRegistry(
	host *world.Host,
	cat catalog.Catalog,
	transactionRepo ledger.TransactionRepository,
	history *events.History,
	clock shared.Clock,
) *HandlerRegistry {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &HandlerRegistry{
		host:            host,
		catalog:         cat,
		transactionRepo: transactionRepo,
		history:         history,
		clock:           clock,
	}
}

// RegisterLedgerHandlers registers the journal commands and ledger queries
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	recordHandler := ledgerCommands.NewRecordTransactionHandler(r.transactionRepo, r.clock)
	if err := mediator.RegisterHandler[*ledgerCommands.RecordTransactionCommand](m, recordHandler); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*ledgerCommands.GrantResourcesCommand](m, ledgerCommands.NewGrantResourcesHandler(r.host, recordHandler)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*ledgerQueries.GetTransactionsQuery](m, ledgerQueries.NewGetTransactionsHandler(r.transactionRepo)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*ledgerQueries.GetResourceFlowQuery](m, ledgerQueries.NewGetResourceFlowHandler(r.transactionRepo)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*ledgerQueries.GetBalancesQuery](m, ledgerQueries.NewGetBalancesHandler(r.host))
}

// RegisterBuildingHandlers registers world commands and the building and catalog queries
func (r *HandlerRegistry) RegisterBuildingHandlers(m mediator.Mediator) error {
	catalogHandler := buildingQueries.NewCatalogQueryHandler(r.catalog)

	registrations := []func() error{
		func() error {
			return mediator.RegisterHandler[*buildingCommands.PlaceBuildingCommand](m, buildingCommands.NewPlaceBuildingHandler(r.host))
		},
		func() error {
			return mediator.RegisterHandler[*buildingCommands.UpgradeBuildingCommand](m, buildingCommands.NewUpgradeBuildingHandler(r.host))
		},
		func() error {
			return mediator.RegisterHandler[*buildingCommands.DemolishBuildingCommand](m, buildingCommands.NewDemolishBuildingHandler(r.host))
		},
		func() error {
			return mediator.RegisterHandler[*buildingCommands.TakeFromStorageCommand](m, buildingCommands.NewTakeFromStorageHandler(r.host))
		},
		func() error {
			return mediator.RegisterHandler[*buildingCommands.AdvanceWorldCommand](m, buildingCommands.NewAdvanceWorldHandler(r.host))
		},
		func() error {
			return mediator.RegisterHandler[*buildingQueries.ListBuildingsQuery](m, buildingQueries.NewListBuildingsHandler(r.host))
		},
		func() error {
			return mediator.RegisterHandler[*buildingQueries.GetBuildingQuery](m, buildingQueries.NewGetBuildingHandler(r.host))
		},
		func() error {
			return mediator.RegisterHandler[*buildingQueries.GetWorldStatusQuery](m, buildingQueries.NewGetWorldStatusHandler(r.host, r.history))
		},
		func() error {
			return mediator.RegisterHandler[*buildingQueries.ListDefinitionsQuery](m, catalogHandler)
		},
		func() error {
			return mediator.RegisterHandler[*buildingQueries.GetDefinitionQuery](m, catalogHandler)
		},
	}
	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

// RegisterPlayerHandlers registers player progression handlers
func (r *HandlerRegistry) RegisterPlayerHandlers(m mediator.Mediator) error {
	progress := playerCommands.NewUpdateProgressHandler(r.host)
	if err := mediator.RegisterHandler[*playerCommands.SetLevelCommand](m, progress); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*playerCommands.CompleteQuestCommand](m, progress); err != nil {
		return err
	}
	return mediator.RegisterHandler[*playerQueries.GetPlayerQuery](m, playerQueries.NewGetPlayerHandler(r.host))
}

// CreateConfiguredMediator creates a mediator with every handler registered and the
// given middleware installed, first one outermost
func (r *HandlerRegistry) CreateConfiguredMediator(middleware ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middleware {
		m.Use(mw)
	}

	if err := r.RegisterLedgerHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterBuildingHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterPlayerHandlers(m); err != nil {
		return nil, err
	}
	return m, nil
}
