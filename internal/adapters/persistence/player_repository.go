package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/homestead-go/internal/domain/player"
	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// GormPlayerRepository implements PlayerRepository using GORM
type GormPlayerRepository struct {
	db *gorm.DB
}

// NewGormPlayerRepository creates a new GORM player repository
func NewGormPlayerRepository(db *gorm.DB) *GormPlayerRepository {
	return &GormPlayerRepository{db: db}
}

// FindByID retrieves a player by ID
func (r *GormPlayerRepository) FindByID(ctx context.Context, playerID int) (*player.Player, error) {
	var model PlayerModel
	result := r.db.WithContext(ctx).Where("id = ?", playerID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("player", strconv.Itoa(playerID))
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}

	return r.modelToPlayer(&model), nil
}

// Save upserts a player
func (r *GormPlayerRepository) Save(ctx context.Context, p *player.Player) error {
	return r.save(r.db.WithContext(ctx), p)
}

func (r *GormPlayerRepository) save(db *gorm.DB, p *player.Player) error {
	model, err := r.playerToModel(p)
	if err != nil {
		return fmt.Errorf("failed to convert player to model: %w", err)
	}

	var existing PlayerModel
	if err := db.Select("created_at").Where("id = ?", p.ID).First(&existing).Error; err == nil {
		model.CreatedAt = existing.CreatedAt
	}

	if result := db.Save(model); result.Error != nil {
		return fmt.Errorf("failed to save player: %w", result.Error)
	}
	return nil
}

// modelToPlayer converts database model to domain entity
func (r *GormPlayerRepository) modelToPlayer(model *PlayerModel) *player.Player {
	var metadata map[string]interface{}
	if model.Metadata != "" {
		if err := json.Unmarshal([]byte(model.Metadata), &metadata); err != nil {
			metadata = nil
		}
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	var quests []string
	if model.CompletedQuests != "" {
		if err := json.Unmarshal([]byte(model.CompletedQuests), &quests); err != nil {
			quests = nil
		}
	}

	return &player.Player{
		ID:              model.ID,
		Name:            model.Name,
		Level:           model.Level,
		CompletedQuests: quests,
		Metadata:        metadata,
	}
}

// playerToModel converts domain entity to database model
func (r *GormPlayerRepository) playerToModel(p *player.Player) (*PlayerModel, error) {
	metadataJSON := "{}"
	if p.Metadata != nil {
		bytes, err := json.Marshal(p.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataJSON = string(bytes)
	}

	questsJSON := "[]"
	if len(p.CompletedQuests) > 0 {
		bytes, err := json.Marshal(p.CompletedQuests)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal completed quests: %w", err)
		}
		questsJSON = string(bytes)
	}

	now := time.Now().UTC()
	return &PlayerModel{
		ID:              p.ID,
		Name:            p.Name,
		Level:           p.Level,
		CompletedQuests: questsJSON,
		CreatedAt:       now,
		LastActive:      &now,
		Metadata:        metadataJSON,
	}, nil
}
