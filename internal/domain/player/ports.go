package player

import "context"

// Progress is the read-only view of player progression used by requirement checks
type Progress interface {
	CurrentLevel() int
	HasCompletedQuest(questID string) bool
}

// PlayerRepository defines player persistence operations
type PlayerRepository interface {
	FindByID(ctx context.Context, playerID int) (*Player, error)
	Save(ctx context.Context, player *Player) error
}
