package usecase

import (
	"context"
	"fmt"

	"github.com/tbuendia/incidentctl/internal/repo"
)

// AddOperatorInput contains the parameters for registering an operator.
type AddOperatorInput struct {
	ID    string
	Name  string
	Roles []string
}

// AddOperator is the use case for registering a new operator. New
// operators start available.
type AddOperator struct {
	incidents *repo.Repository
}

// NewAddOperator creates a new AddOperator use case.
func NewAddOperator(incidents *repo.Repository) *AddOperator {
	return &AddOperator{incidents: incidents}
}

// Execute registers the operator.
func (uc *AddOperator) Execute(_ context.Context, in AddOperatorInput) error {
	if err := uc.incidents.AddOperator(in.ID, in.Name, in.Roles); err != nil {
		return fmt.Errorf("add operator: %w", err)
	}
	return nil
}
