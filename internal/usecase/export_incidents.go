package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/repo"
	"gopkg.in/yaml.v3"
)

// ExportFormat selects the export encoding.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
)

// ExportIncidentsInput contains the filter and format for an export.
type ExportIncidentsInput struct {
	Filter domain.Filter
	Format ExportFormat
}

// ExportIncidentsOutput contains the encoded incidents.
type ExportIncidentsOutput struct {
	Data  []byte
	Count int
}

// ExportIncidents is the use case for exporting incidents to JSON or YAML.
type ExportIncidents struct {
	incidents *repo.Repository
}

// NewExportIncidents creates a new ExportIncidents use case.
func NewExportIncidents(incidents *repo.Repository) *ExportIncidents {
	return &ExportIncidents{incidents: incidents}
}

// Execute encodes the incidents matching the filter.
func (uc *ExportIncidents) Execute(_ context.Context, in ExportIncidentsInput) (*ExportIncidentsOutput, error) {
	incidents := uc.incidents.List(in.Filter)
	if incidents == nil {
		incidents = []*domain.Incident{}
	}

	var (
		data []byte
		err  error
	)
	switch in.Format {
	case ExportJSON, "":
		data, err = json.MarshalIndent(incidents, "", "  ")
	case ExportYAML:
		data, err = yaml.Marshal(incidents)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", domain.ErrValidation, string(in.Format))
	}
	if err != nil {
		return nil, fmt.Errorf("encode incidents: %w", err)
	}

	return &ExportIncidentsOutput{Data: data, Count: len(incidents)}, nil
}
