package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

func TestWorldLogRepository_DeduplicatesWithinWindow(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := persistence.NewGormWorldLogRepository(helpers.NewTestDB(t), clock)
	ctx := context.Background()

	// Act
	require.NoError(t, repo.Log(ctx, "WARNING", "storage full: wood_shed-1", nil))
	clock.Advance(30 * time.Second)
	require.NoError(t, repo.Log(ctx, "WARNING", "storage full: wood_shed-1", nil))
	clock.Advance(31 * time.Second)
	require.NoError(t, repo.Log(ctx, "WARNING", "storage full: wood_shed-1", map[string]interface{}{"tick": 610}))

	// Assert
	logs, err := repo.GetLogs(ctx, persistence.WorldLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, float64(610), logs[0].Metadata["tick"])
	assert.Nil(t, logs[1].Metadata)
}

func TestWorldLogRepository_FilterByLevel(t *testing.T) {
	// Arrange
	repo := persistence.NewGormWorldLogRepository(helpers.NewTestDB(t), nil)
	logger := persistence.NewRepositoryLogger(repo, "INFO")
	logger.Log("DEBUG", "tick", nil)
	logger.Log("INFO", "World loaded", nil)
	logger.Log("ERROR", "autosave failed", nil)
	level := "ERROR"

	// Act
	all, err := repo.GetLogs(context.Background(), persistence.WorldLogFilter{})
	require.NoError(t, err)
	errorsOnly, err := repo.GetLogs(context.Background(), persistence.WorldLogFilter{Level: &level})
	require.NoError(t, err)

	// Assert
	assert.Len(t, all, 2)
	require.Len(t, errorsOnly, 1)
	assert.Equal(t, "autosave failed", errorsOnly[0].Message)
}
