package usecase

import (
	"context"
	"fmt"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/repo"
)

// ShowIncidentInput contains the parameters for showing an incident.
type ShowIncidentInput struct {
	IncidentID int
}

// ShowIncidentOutput contains the incident with its full history.
type ShowIncidentOutput struct {
	Incident *domain.Incident
}

// ShowIncident is the use case for inspecting a single incident.
type ShowIncident struct {
	incidents *repo.Repository
}

// NewShowIncident creates a new ShowIncident use case.
func NewShowIncident(incidents *repo.Repository) *ShowIncident {
	return &ShowIncident{incidents: incidents}
}

// Execute retrieves the incident.
func (uc *ShowIncident) Execute(_ context.Context, in ShowIncidentInput) (*ShowIncidentOutput, error) {
	inc, err := uc.incidents.Get(in.IncidentID)
	if err != nil {
		return nil, fmt.Errorf("show incident: %w", err)
	}
	return &ShowIncidentOutput{Incident: inc}, nil
}
