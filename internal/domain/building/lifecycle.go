package building

import (
	"fmt"
	"time"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Status represents the lifecycle state of a placed building
type Status string

const (
	// StatusConstructing indicates the building (or its next tier) is being built
	StatusConstructing Status = "CONSTRUCTING"

	// StatusActive indicates the building is complete and functional
	StatusActive Status = "ACTIVE"

	// StatusDemolished is terminal; the building has been removed from the world
	StatusDemolished Status = "DEMOLISHED"
)

// ParseStatus parses a persisted status string
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusConstructing, StatusActive, StatusDemolished:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid building status: %q", s)
	}
}

// Lifecycle manages the CONSTRUCTING → ACTIVE → CONSTRUCTING (upgrade) → ... → DEMOLISHED
// transitions of a placed building.
//
// Invariants:
// - DEMOLISHED is terminal
// - Timestamps come from the injected clock
type Lifecycle struct {
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
	completedAt  *time.Time
	demolishedAt *time.Time
	clock        shared.Clock
}

// NewLifecycle creates a lifecycle in CONSTRUCTING state
func NewLifecycle(clock shared.Clock) *Lifecycle {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	now := clock.Now()
	return &Lifecycle{
		status:    StatusConstructing,
		createdAt: now,
		updatedAt: now,
		clock:     clock,
	}
}

func (l *Lifecycle) Status() Status {
	return l.status
}

func (l *Lifecycle) CreatedAt() time.Time {
	return l.createdAt
}

func (l *Lifecycle) UpdatedAt() time.Time {
	return l.updatedAt
}

// CompletedAt returns when construction of the current tier finished (nil while constructing)
func (l *Lifecycle) CompletedAt() *time.Time {
	return l.completedAt
}

func (l *Lifecycle) DemolishedAt() *time.Time {
	return l.demolishedAt
}

// Complete transitions from CONSTRUCTING to ACTIVE
func (l *Lifecycle) Complete() error {
	if l.status != StatusConstructing {
		return fmt.Errorf("cannot complete construction from %s state", l.status)
	}

	now := l.clock.Now()
	l.status = StatusActive
	l.completedAt = &now
	l.updatedAt = now
	return nil
}

// BeginUpgrade transitions from ACTIVE back to CONSTRUCTING
func (l *Lifecycle) BeginUpgrade() error {
	if l.status != StatusActive {
		return fmt.Errorf("cannot begin upgrade from %s state", l.status)
	}

	l.status = StatusConstructing
	l.completedAt = nil
	l.updatedAt = l.clock.Now()
	return nil
}

// Demolish transitions any non-terminal state to DEMOLISHED
func (l *Lifecycle) Demolish() error {
	if l.status == StatusDemolished {
		return fmt.Errorf("cannot demolish from %s state", l.status)
	}

	now := l.clock.Now()
	l.status = StatusDemolished
	l.demolishedAt = &now
	l.updatedAt = now
	return nil
}

func (l *Lifecycle) IsConstructing() bool {
	return l.status == StatusConstructing
}

func (l *Lifecycle) IsActive() bool {
	return l.status == StatusActive
}

func (l *Lifecycle) IsDemolished() bool {
	return l.status == StatusDemolished
}

// RecoverFromPersistence restores the lifecycle state from persisted data.
// Only entity reconstruction should call this.
func (l *Lifecycle) RecoverFromPersistence(status Status, createdAt time.Time) {
	l.status = status
	l.createdAt = createdAt
	l.updatedAt = l.clock.Now()
	l.completedAt = nil
	l.demolishedAt = nil
	if status == StatusActive {
		l.completedAt = &l.updatedAt
	}
}
