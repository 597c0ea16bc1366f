package usecase

import (
	"context"
	"fmt"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/repo"
)

// TransitionIncidentInput contains the parameters for a status transition.
// Fields are ordered to minimize memory padding.
type TransitionIncidentInput struct {
	Target     domain.Status
	Actor      string // Defaults to the system actor when empty
	IncidentID int
}

// TransitionIncidentOutput contains the result of a status transition.
type TransitionIncidentOutput struct {
	Incident *domain.Incident
}

// TransitionIncident is the use case for moving an incident through the
// state machine: start work, resolve, escalate, or re-engage.
type TransitionIncident struct {
	incidents *repo.Repository
}

// NewTransitionIncident creates a new TransitionIncident use case.
func NewTransitionIncident(incidents *repo.Repository) *TransitionIncident {
	return &TransitionIncident{incidents: incidents}
}

// Execute applies the transition.
func (uc *TransitionIncident) Execute(_ context.Context, in TransitionIncidentInput) (*TransitionIncidentOutput, error) {
	if !in.Target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, string(in.Target))
	}
	actor := in.Actor
	if actor == "" {
		actor = domain.ActorSystem
	}
	inc, err := uc.incidents.Transition(in.IncidentID, in.Target, actor)
	if err != nil {
		return nil, fmt.Errorf("transition incident: %w", err)
	}
	return &TransitionIncidentOutput{Incident: inc}, nil
}
