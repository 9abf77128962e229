package building

import (
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// Upgrade rejection reasons
const (
	ReasonMaxTier           = "Already at max tier"
	ReasonUnderConstruction = "Under construction"
	ReasonDemolished        = "Building demolished"
)

// UpgradeUnavailableError explains why an upgrade cannot happen right now
type UpgradeUnavailableError struct {
	*shared.DomainError
	BuildingID string
	Reason     string
	Cause      error
}

func NewUpgradeUnavailableError(buildingID, reason string, cause error) *UpgradeUnavailableError {
	return &UpgradeUnavailableError{
		DomainError: shared.NewDomainError(fmt.Sprintf("cannot upgrade %s: %s", buildingID, reason)),
		BuildingID:  buildingID,
		Reason:      reason,
		Cause:       cause,
	}
}

func (e *UpgradeUnavailableError) Unwrap() error {
	return e.Cause
}

// NotDemolishableError is returned for definitions whose policy forbids demolition
type NotDemolishableError struct {
	*shared.DomainError
	BuildingID string
}

func NewNotDemolishableError(buildingID string) *NotDemolishableError {
	return &NotDemolishableError{
		DomainError: shared.NewDomainError(fmt.Sprintf("building %s cannot be demolished", buildingID)),
		BuildingID:  buildingID,
	}
}
