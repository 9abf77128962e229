package placement

import (
	"fmt"

	"github.com/andrescamacho/homestead-go/internal/domain/shared"
)

// UnavailableError is returned when the player does not meet a definition's requirements
type UnavailableError struct {
	*shared.DomainError
	DefinitionID string
	Reason       string
}

func NewUnavailableError(definitionID, reason string) *UnavailableError {
	return &UnavailableError{
		DomainError:  shared.NewDomainError(fmt.Sprintf("%s unavailable: %s", definitionID, reason)),
		DefinitionID: definitionID,
		Reason:       reason,
	}
}

// InvalidPlacementError is returned by Commit when the current pose failed validation
type InvalidPlacementError struct {
	*shared.DomainError
	Reason string
}

func NewInvalidPlacementError(reason string) *InvalidPlacementError {
	return &InvalidPlacementError{
		DomainError: shared.NewDomainError("invalid placement: " + reason),
		Reason:      reason,
	}
}

// ModeError is returned when an operation is not allowed in the current controller mode
type ModeError struct {
	*shared.DomainError
	Mode Mode
	Op   string
}

func NewModeError(mode Mode, op string) *ModeError {
	return &ModeError{
		DomainError: shared.NewDomainError(fmt.Sprintf("cannot %s while %s", op, mode)),
		Mode:        mode,
		Op:          op,
	}
}

// NoTargetError is returned when a demolish is confirmed with nothing under the cursor
type NoTargetError struct {
	*shared.DomainError
}

func NewNoTargetError() *NoTargetError {
	return &NoTargetError{DomainError: shared.NewDomainError("no building selected")}
}
