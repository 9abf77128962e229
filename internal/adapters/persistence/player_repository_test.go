package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/domain/player"
	"github.com/andrescamacho/homestead-go/test/helpers"
)

func TestPlayerRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)

	p := player.NewPlayer(1, "Ada")
	require.NoError(t, p.SetLevel(4))
	require.NoError(t, p.CompleteQuest("barn_raising"))
	p.Metadata["biome"] = "meadow"

	// Act - Save
	err := repo.Save(context.Background(), p)

	// Assert
	require.NoError(t, err)

	// Act - FindByID
	found, err := repo.FindByID(context.Background(), 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.Name)
	assert.Equal(t, 4, found.CurrentLevel())
	assert.True(t, found.HasCompletedQuest("barn_raising"))
	assert.Equal(t, "meadow", found.Metadata["biome"])
}

func TestPlayerRepository_SaveOverwrites(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)
	p := player.NewPlayer(1, "Ada")
	require.NoError(t, repo.Save(context.Background(), p))

	// Act
	require.NoError(t, p.SetLevel(2))
	require.NoError(t, repo.Save(context.Background(), p))
	found, err := repo.FindByID(context.Background(), 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, found.Level)
}

func TestPlayerRepository_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db)

	// Act
	_, err := repo.FindByID(context.Background(), 999)

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "player not found")
}
