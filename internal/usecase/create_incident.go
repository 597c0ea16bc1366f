package usecase

import (
	"context"
	"fmt"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/repo"
)

// CreateIncidentInput contains the parameters for registering an incident.
type CreateIncidentInput struct {
	Type        domain.IncidentType
	Priority    domain.Priority
	Description string
}

// CreateIncidentOutput contains the result of registering an incident.
type CreateIncidentOutput struct {
	Incident *domain.Incident
}

// CreateIncident is the use case for registering a new incident.
type CreateIncident struct {
	incidents *repo.Repository
}

// NewCreateIncident creates a new CreateIncident use case.
func NewCreateIncident(incidents *repo.Repository) *CreateIncident {
	return &CreateIncident{incidents: incidents}
}

// Execute validates the input and registers a pending incident.
func (uc *CreateIncident) Execute(_ context.Context, in CreateIncidentInput) (*CreateIncidentOutput, error) {
	inc, err := uc.incidents.Create(in.Type, in.Priority, in.Description)
	if err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}
	return &CreateIncidentOutput{Incident: inc}, nil
}
