package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/infrastructure/database"
)

// NewTestDB opens a private in-memory sqlite database with the homestead schema
// (world, ledger, players, world log) migrated. It is closed when t finishes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "failed to open homestead test database")
	t.Cleanup(func() { database.Close(db) })
	return db
}
