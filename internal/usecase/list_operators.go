package usecase

import (
	"context"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/repo"
)

// ListOperatorsOutput contains the known operators in insertion order.
type ListOperatorsOutput struct {
	Operators []*domain.Operator
}

// ListOperators is the use case for listing the operator roster.
type ListOperators struct {
	incidents *repo.Repository
}

// NewListOperators creates a new ListOperators use case.
func NewListOperators(incidents *repo.Repository) *ListOperators {
	return &ListOperators{incidents: incidents}
}

// Execute returns the operators.
func (uc *ListOperators) Execute(_ context.Context) (*ListOperatorsOutput, error) {
	return &ListOperatorsOutput{Operators: uc.incidents.Operators()}, nil
}
