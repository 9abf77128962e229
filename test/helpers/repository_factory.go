package helpers

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/adapters/snapshot"
	"github.com/andrescamacho/homestead-go/internal/domain/catalog"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// TestRepositories holds real repository instances backed by the shared test DB
type TestRepositories struct {
	DB           *gorm.DB
	Players      *persistence.GormPlayerRepository
	World        *persistence.GormWorldRepository
	Transactions *persistence.GormTransactionRepository
	WorldLogs    *persistence.GormWorldLogRepository
}

// NewTestRepositories wires every repository to SharedTestDB. The world repository
// resolves building definitions against c; clock is usually a MockClock.
func NewTestRepositories(c catalog.Catalog, clock shared.Clock) *TestRepositories {
	db := SharedTestDB

	return &TestRepositories{
		DB:           db,
		Players:      persistence.NewGormPlayerRepository(db),
		World:        persistence.NewGormWorldRepository(db, snapshot.NewCodec(c, clock)),
		Transactions: persistence.NewGormTransactionRepository(db),
		WorldLogs:    persistence.NewGormWorldLogRepository(db, clock),
	}
}
