package usecase

import (
	"context"
	"fmt"

	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/escalation"
	"github.com/tbuendia/incidentctl/internal/repo"
)

// SweepEscalationsOutput contains the ids escalated by the sweep.
type SweepEscalationsOutput struct {
	EscalatedIDs []int
}

// SweepEscalations is the use case for running the automatic escalation
// policy over all active incidents.
type SweepEscalations struct {
	incidents *repo.Repository
	policy    *escalation.Policy
	clock     domain.Clock
}

// NewSweepEscalations creates a new SweepEscalations use case.
func NewSweepEscalations(incidents *repo.Repository, policy *escalation.Policy, clock domain.Clock) *SweepEscalations {
	return &SweepEscalations{
		incidents: incidents,
		policy:    policy,
		clock:     clock,
	}
}

// Execute evaluates the policy against every active incident and escalates
// the ones that are due. Ids escalated before a persistence failure are
// still reported.
func (uc *SweepEscalations) Execute(_ context.Context) (*SweepEscalationsOutput, error) {
	ids, err := uc.policy.EvaluateAll(uc.incidents, uc.clock.Now())
	out := &SweepEscalationsOutput{EscalatedIDs: ids}
	if err != nil {
		return out, fmt.Errorf("escalation sweep: %w", err)
	}
	return out, nil
}
