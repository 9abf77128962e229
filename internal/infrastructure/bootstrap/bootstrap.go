package bootstrap

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/adapters/catalogfile"
	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/adapters/snapshot"
	"github.com/andrescamacho/homestead-go/internal/application/events"
	ledgerCommands "github.com/andrescamacho/homestead-go/internal/application/ledger/commands"
	"github.com/andrescamacho/homestead-go/internal/application/logging"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/application/setup"
	"github.com/andrescamacho/homestead-go/internal/application/world"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/database"
	"github.com/andrescamacho/homestead-go/pkg/utils"
)

// recentEvents is how many world events the status query can show
const recentEvents = 50

// Options tune how a world is opened
type Options struct {
	// Persist after every successful command (one-shot CLI use)
	SaveOnEdit bool

	// Overrides cfg.Logging.Level when set
	LogLevel string

	// Nil means the real clock
	Clock shared.Clock

	// Extra mediator middleware, installed inside request logging
	Middleware []mediator.Middleware

	// Existing connection to use instead of opening cfg.Database
	DB *gorm.DB
}

// App is a loaded world with every adapter wired to it
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	Catalog      *catalog.MemoryCatalog
	Bus          *events.Bus
	History      *events.History
	World        *world.World
	Host         *world.Host
	Mediator     mediator.Mediator
	Codec        *snapshot.Codec
	Transactions *persistence.GormTransactionRepository
	WorldLogs    *persistence.GormWorldLogRepository
	Logger       logging.Logger

	closers []func() error
}

// Open connects the database, loads the catalog and the saved world, and seeds a
// brand new world from cfg.World. The returned context carries the app logger.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*App, context.Context, error) {
	app := &App{Config: cfg}
	if err := app.open(ctx, opts); err != nil {
		app.Close()
		return nil, ctx, err
	}
	ctx = logging.WithLogger(ctx, app.Logger)

	if err := app.Host.Load(ctx); err != nil {
		app.Close()
		return nil, ctx, err
	}
	if app.Host.Fresh() {
		if err := app.seed(ctx); err != nil {
			app.Close()
			return nil, ctx, err
		}
	}
	return app, ctx, nil
}

func (a *App) open(ctx context.Context, opts Options) error {
	cfg := a.Config
	clock := opts.Clock
	if clock == nil {
		clock = shared.NewRealClock()
	}

	out, closeOut, err := logging.OpenOutput(cfg.Logging.Output, cfg.Logging.FilePath)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, closeOut)

	a.DB = opts.DB
	if a.DB == nil {
		db, err := database.NewConnection(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.DB = db
		a.closers = append(a.closers, func() error { return database.Close(db) })
	}
	if err := database.AutoMigrate(a.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	a.WorldLogs = persistence.NewGormWorldLogRepository(a.DB, clock)
	a.Logger = logging.Tee{
		logging.NewWriterLogger(out, cfg.Logging.Format, level),
		persistence.NewRepositoryLogger(a.WorldLogs, cfg.Logging.PersistLevel),
	}

	a.Catalog, err = catalogfile.LoadFile(cfg.World.CatalogPath)
	if err != nil {
		return err
	}

	a.Bus = events.NewBus()
	a.History = events.NewHistory(recentEvents)
	a.Bus.Subscribe(a.History.Record)

	a.World = world.New(world.Options{
		Catalog:       a.Catalog,
		Clock:         clock,
		Bus:           a.Bus,
		SafetyMargin:  cfg.World.SafetyMargin,
		RotationSpeed: cfg.World.RotationSpeed,
		NewID:         utils.GenerateBuildingID,
	})
	a.Codec = snapshot.NewCodec(a.Catalog, clock)
	a.Host = world.NewHost(a.World, persistence.NewGormWorldRepository(a.DB, a.Codec), opts.SaveOnEdit)
	a.Transactions = persistence.NewGormTransactionRepository(a.DB)

	middleware := append([]mediator.Middleware{logging.RequestLoggingMiddleware()}, opts.Middleware...)
	registry := setup.NewHandlerRegistry(a.Host, a.Catalog, a.Transactions, a.History, clock)
	a.Mediator, err = registry.CreateConfiguredMediator(middleware...)
	if err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	ledgerCommands.NewJournal(logging.WithLogger(ctx, a.Logger), a.Mediator).Attach(a.Bus)
	return nil
}

func (a *App) seed(ctx context.Context) error {
	w := a.Config.World
	err := setup.SeedWorld(ctx, a.Mediator, a.Host, setup.WorldSeed{
		PlayerName:       w.PlayerName,
		PlayerLevel:      w.PlayerLevel,
		StartingItems:    w.StartingItems,
		StartingCurrency: w.StartingCurrency,
	})
	if err != nil {
		return err
	}
	return a.Host.Save(ctx)
}

// Close releases the database and log output. Safe to call more than once.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
