package escalation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbuendia/incidentctl/internal/domain"
	"github.com/tbuendia/incidentctl/internal/infra/storage"
	"github.com/tbuendia/incidentctl/internal/repo"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func testConfig() domain.EscalationConfig {
	return domain.EscalationConfig{
		Critical:      domain.Duration(15 * time.Minute),
		High:          domain.Duration(30 * time.Minute),
		Medium:        domain.Duration(2 * time.Hour),
		Low:           domain.Duration(8 * time.Hour),
		CriticalGrace: domain.Duration(time.Minute),
	}
}

func newTestRepo(t *testing.T, clock domain.Clock) *repo.Repository {
	t.Helper()
	store := storage.New(t.TempDir(), 5, clock)
	r, _, err := repo.Open(store, clock, nil)
	require.NoError(t, err)
	return r
}

func TestAgeRule(t *testing.T) {
	rule := NewAgeRule(testConfig())
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		priority domain.Priority
		age      time.Duration
		want     bool
	}{
		{"critical under threshold", domain.PriorityCritical, 10 * time.Minute, false},
		{"critical over threshold", domain.PriorityCritical, 16 * time.Minute, true},
		{"high over threshold", domain.PriorityHigh, 31 * time.Minute, true},
		{"medium under threshold", domain.PriorityMedium, time.Hour, false},
		{"low over threshold", domain.PriorityLow, 9 * time.Hour, true},
		{"exactly at threshold", domain.PriorityCritical, 15 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inc := domain.NewIncident(1, domain.TypeApplication, tt.priority, "background job backlog", now.Add(-tt.age))
			assert.Equal(t, tt.want, rule.ShouldEscalate(inc, now))
		})
	}
}

func TestAgeRule_DisabledThreshold(t *testing.T) {
	rule := NewAgeRule(domain.EscalationConfig{}) // all thresholds zero
	now := time.Now()
	inc := domain.NewIncident(1, domain.TypeApplication, domain.PriorityLow, "background job backlog", now.Add(-100*time.Hour))

	assert.False(t, rule.ShouldEscalate(inc, now))
}

func TestCriticalUnassignedRule(t *testing.T) {
	rule := NewCriticalUnassignedRule(testConfig())
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	fresh := domain.NewIncident(1, domain.TypeSecurity, domain.PriorityCritical, "active intrusion on bastion host", now)
	assert.False(t, rule.ShouldEscalate(fresh, now), "inside the grace period")

	aged := domain.NewIncident(2, domain.TypeSecurity, domain.PriorityCritical, "active intrusion on bastion host", now.Add(-2*time.Minute))
	assert.True(t, rule.ShouldEscalate(aged, now))

	assigned := aged.Clone()
	assigned.AssignedTo = "ana"
	assert.False(t, rule.ShouldEscalate(assigned, now), "assigned incidents take the age path")

	high := domain.NewIncident(3, domain.TypeSecurity, domain.PriorityHigh, "credential stuffing attempts", now.Add(-2*time.Minute))
	assert.False(t, rule.ShouldEscalate(high, now), "fast path is critical only")
}

func TestPolicy_EvaluateAll(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	r := newTestRepo(t, clock)

	crit, err := r.Create(domain.TypeSecurity, domain.PriorityCritical, "active intrusion on bastion host")
	require.NoError(t, err)
	low, err := r.Create(domain.TypeApplication, domain.PriorityLow, "stale cache entries on search")
	require.NoError(t, err)

	policy := NewPolicy(testConfig(), nil)

	// Nothing due yet.
	ids, err := policy.EvaluateAll(r, clock.now)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// Past the critical grace period, only the unassigned critical one fires.
	clock.advance(2 * time.Minute)
	ids, err = policy.EvaluateAll(r, clock.now)
	require.NoError(t, err)
	assert.Equal(t, []int{crit.ID}, ids)

	got, err := r.Get(crit.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEscalated, got.Status)
	assert.Equal(t, 1, got.EscalationCount)
	require.Len(t, got.History, 2)
	assert.Equal(t, domain.ActorSystem, got.History[1].Actor)

	untouched, err := r.Get(low.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, untouched.Status)
}

func TestPolicy_EvaluateAll_SkipsEscalatedAndResolved(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	r := newTestRepo(t, clock)

	esc, err := r.Create(domain.TypeInfrastructure, domain.PriorityCritical, "core switch down in dc1")
	require.NoError(t, err)
	_, err = r.Transition(esc.ID, domain.StatusEscalated, domain.ActorSystem)
	require.NoError(t, err)

	res, err := r.Create(domain.TypeApplication, domain.PriorityCritical, "payment captures failing")
	require.NoError(t, err)
	_, err = r.Transition(res.ID, domain.StatusInProgress, "miguel")
	require.NoError(t, err)
	_, err = r.Transition(res.ID, domain.StatusResolved, "miguel")
	require.NoError(t, err)

	policy := NewPolicy(testConfig(), nil)
	clock.advance(24 * time.Hour)
	ids, err := policy.EvaluateAll(r, clock.now)
	require.NoError(t, err)
	assert.Empty(t, ids)

	got, err := r.Get(esc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.EscalationCount, "already escalated incidents are not escalated again")
}

func TestPolicy_EvaluateAll_AgedInProgress(t *testing.T) {
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	r := newTestRepo(t, clock)

	inc, err := r.Create(domain.TypeSecurity, domain.PriorityHigh, "credential stuffing attempts")
	require.NoError(t, err)
	_, err = r.AssignOperator(inc.ID, "ana")
	require.NoError(t, err)

	policy := NewPolicy(testConfig(), nil)
	clock.advance(31 * time.Minute)
	ids, err := policy.EvaluateAll(r, clock.now)
	require.NoError(t, err)
	assert.Equal(t, []int{inc.ID}, ids)

	got, err := r.Get(inc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEscalated, got.Status)
	assert.Equal(t, "ana", got.AssignedTo, "escalation keeps the assignment")
}
