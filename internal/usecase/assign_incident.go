package usecase

import (
	"context"
	"fmt"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/repo"
)

// AssignIncidentInput contains the parameters for assigning an incident.
// Fields are ordered to minimize memory padding.
type AssignIncidentInput struct {
	OperatorID string
	IncidentID int
}

// AssignIncidentOutput contains the result of assigning an incident.
type AssignIncidentOutput struct {
	Incident *domain.Incident
}

// AssignIncident is the use case for assigning an incident to an operator.
// The operator must be available and hold a role matching the incident
// type; a pending or escalated incident moves to in_progress.
type AssignIncident struct {
	incidents *repo.Repository
}

// NewAssignIncident creates a new AssignIncident use case.
func NewAssignIncident(incidents *repo.Repository) *AssignIncident {
	return &AssignIncident{incidents: incidents}
}

// Execute assigns the incident to the operator.
func (uc *AssignIncident) Execute(_ context.Context, in AssignIncidentInput) (*AssignIncidentOutput, error) {
	inc, err := uc.incidents.AssignOperator(in.IncidentID, in.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("assign incident: %w", err)
	}
	return &AssignIncidentOutput{Incident: inc}, nil
}
