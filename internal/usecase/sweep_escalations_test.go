package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/escalation"
)

func TestSweepEscalations_Execute(t *testing.T) {
	r, clock := newTestRepo(t)
	crit, err := r.Create(domain.TypeSecurity, domain.PriorityCritical, "active intrusion on bastion host")
	require.NoError(t, err)
	_, err = r.Create(domain.TypeApplication, domain.PriorityLow, "stale cache entries on search")
	require.NoError(t, err)

	policy := escalation.NewPolicy(domain.NewDefaultConfig().Escalation, nil)
	uc := NewSweepEscalations(r, policy, clock)

	out, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.EscalatedIDs)

	clock.advance(2 * time.Minute)
	out, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{crit.ID}, out.EscalatedIDs)

	got, err := r.Get(crit.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEscalated, got.Status)
}
