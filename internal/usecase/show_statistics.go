package usecase

import (
	"context"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/repo"
)

// ShowStatisticsOutput contains the aggregated counters.
type ShowStatisticsOutput struct {
	Statistics domain.Statistics
}

// ShowStatistics is the use case for the aggregate dashboard counters.
type ShowStatistics struct {
	incidents *repo.Repository
}

// NewShowStatistics creates a new ShowStatistics use case.
func NewShowStatistics(incidents *repo.Repository) *ShowStatistics {
	return &ShowStatistics{incidents: incidents}
}

// Execute recomputes the statistics from the current repository contents.
func (uc *ShowStatistics) Execute(_ context.Context) (*ShowStatisticsOutput, error) {
	return &ShowStatisticsOutput{Statistics: uc.incidents.Statistics()}, nil
}
