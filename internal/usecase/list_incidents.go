package usecase

import (
	"context"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/repo"
)

// ListIncidentsInput contains the filter for listing incidents. A zero
// filter matches everything.
type ListIncidentsInput struct {
	Filter domain.Filter
}

// ListIncidentsOutput contains the matching incidents in creation order.
type ListIncidentsOutput struct {
	Incidents []*domain.Incident
}

// ListIncidents is the use case for listing and searching incidents.
type ListIncidents struct {
	incidents *repo.Repository
}

// NewListIncidents creates a new ListIncidents use case.
func NewListIncidents(incidents *repo.Repository) *ListIncidents {
	return &ListIncidents{incidents: incidents}
}

// Execute collects the incidents matching the filter.
func (uc *ListIncidents) Execute(_ context.Context, in ListIncidentsInput) (*ListIncidentsOutput, error) {
	return &ListIncidentsOutput{Incidents: uc.incidents.List(in.Filter)}, nil
}
