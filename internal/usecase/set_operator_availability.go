package usecase

import (
	"context"
	"fmt"

	"github.com/tbuendia/incidentctl/internal/repo"
)

// SetOperatorAvailabilityInput contains the parameters for flipping an
// operator's availability.
type SetOperatorAvailabilityInput struct {
	OperatorID string
	Available  bool
}

// SetOperatorAvailability is the use case for marking an operator
// available or unavailable. Existing assignments are untouched.
type SetOperatorAvailability struct {
	incidents *repo.Repository
}

// NewSetOperatorAvailability creates a new SetOperatorAvailability use case.
func NewSetOperatorAvailability(incidents *repo.Repository) *SetOperatorAvailability {
	return &SetOperatorAvailability{incidents: incidents}
}

// Execute updates the operator's availability.
func (uc *SetOperatorAvailability) Execute(_ context.Context, in SetOperatorAvailabilityInput) error {
	if err := uc.incidents.SetOperatorAvailable(in.OperatorID, in.Available); err != nil {
		return fmt.Errorf("set operator availability: %w", err)
	}
	return nil
}
