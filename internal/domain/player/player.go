package player

import (
	"fmt"
	"sort"
)

// DefaultPlayerID is the single local player a world is played by
const DefaultPlayerID = 1

// Player is the progression state building requirements are gated on
type Player struct {
	ID              int
	Name            string
	Level           int
	CompletedQuests []string
	Metadata        map[string]interface{}
}

// NewPlayer creates a level 1 player with no completed quests
func NewPlayer(id int, name string) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Level:    1,
		Metadata: make(map[string]interface{}),
	}
}

// CurrentLevel implements Progress
func (p *Player) CurrentLevel() int {
	return p.Level
}

// HasCompletedQuest implements Progress
func (p *Player) HasCompletedQuest(questID string) bool {
	for _, q := range p.CompletedQuests {
		if q == questID {
			return true
		}
	}
	return false
}

// SetLevel changes the player level
func (p *Player) SetLevel(level int) error {
	if level < 1 {
		return fmt.Errorf("level must be at least 1, got %d", level)
	}
	p.Level = level
	return nil
}

// CompleteQuest records a quest as completed; completing twice is a no-op
func (p *Player) CompleteQuest(questID string) error {
	if questID == "" {
		return fmt.Errorf("quest id cannot be empty")
	}
	if p.HasCompletedQuest(questID) {
		return nil
	}
	p.CompletedQuests = append(p.CompletedQuests, questID)
	sort.Strings(p.CompletedQuests)
	return nil
}
