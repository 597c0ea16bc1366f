package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestNewIncident(t *testing.T) {
	inc := NewIncident(1, TypeInfrastructure, PriorityHigh, "  router flapping in rack 4  ", testTime)

	assert.Equal(t, 1, inc.ID)
	assert.Equal(t, StatusPending, inc.Status)
	assert.Equal(t, "router flapping in rack 4", inc.Description)
	assert.Equal(t, 0, inc.EscalationCount)
	assert.Empty(t, inc.AssignedTo)
	require.Len(t, inc.History, 1)
	assert.Equal(t, Status(""), inc.History[0].From)
	assert.Equal(t, StatusPending, inc.History[0].To)
	assert.Equal(t, ActorSystem, inc.History[0].Actor)
	assert.True(t, inc.CreatedAt.Equal(testTime))
	assert.True(t, inc.UpdatedAt.Equal(testTime))
}

func TestValidateNewIncident(t *testing.T) {
	tests := []struct {
		name        string
		typ         IncidentType
		priority    Priority
		description string
		wantErr     bool
	}{
		{"valid", TypeSecurity, PriorityHigh, "suspicious logins", false},
		{"unknown type", IncidentType("hardware"), PriorityHigh, "suspicious logins", true},
		{"unknown priority", TypeSecurity, Priority("urgent"), "suspicious logins", true},
		{"empty description", TypeSecurity, PriorityHigh, "", true},
		{"whitespace description", TypeSecurity, PriorityHigh, "    ", true},
		{"too short", TypeSecurity, PriorityHigh, "bad", true},
		{"too long", TypeSecurity, PriorityHigh, strings.Repeat("x", 501), true},
		{"at bounds", TypeSecurity, PriorityHigh, strings.Repeat("x", 500), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNewIncident(tt.typ, tt.priority, tt.description)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIncident_ApplyTransition(t *testing.T) {
	inc := NewIncident(1, TypeApplication, PriorityMedium, "checkout errors spiking", testTime)

	later := testTime.Add(10 * time.Minute)
	require.NoError(t, inc.ApplyTransition(StatusEscalated, ActorSystem, later))

	assert.Equal(t, StatusEscalated, inc.Status)
	assert.Equal(t, 1, inc.EscalationCount)
	assert.True(t, inc.UpdatedAt.Equal(later))
	require.Len(t, inc.History, 2)
	assert.Equal(t, StatusPending, inc.History[1].From)
	assert.Equal(t, StatusEscalated, inc.History[1].To)

	// History tail always matches current status.
	assert.Equal(t, inc.Status, inc.History[len(inc.History)-1].To)
}

func TestIncident_ApplyTransition_Invalid(t *testing.T) {
	inc := NewIncident(1, TypeApplication, PriorityMedium, "checkout errors spiking", testTime)

	err := inc.ApplyTransition(StatusResolved, "operator", testTime)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Contains(t, err.Error(), "pending")
	assert.Contains(t, err.Error(), "resolved")

	// Nothing changed.
	assert.Equal(t, StatusPending, inc.Status)
	assert.Len(t, inc.History, 1)
}

func TestIncident_ApplyTransition_FromResolved(t *testing.T) {
	inc := NewIncident(1, TypeApplication, PriorityMedium, "checkout errors spiking", testTime)
	require.NoError(t, inc.ApplyTransition(StatusInProgress, "miguel", testTime))
	require.NoError(t, inc.ApplyTransition(StatusResolved, "miguel", testTime))

	for _, target := range AllStatuses() {
		err := inc.ApplyTransition(target, "miguel", testTime)
		assert.True(t, errors.Is(err, ErrInvalidTransition), "resolved -> %s", target)
	}
}

func TestIncident_EscalationCountMatchesHistory(t *testing.T) {
	inc := NewIncident(1, TypeInfrastructure, PriorityCritical, "core switch down", testTime)
	require.NoError(t, inc.ApplyTransition(StatusEscalated, ActorSystem, testTime))
	require.NoError(t, inc.ApplyTransition(StatusInProgress, "carlos", testTime))
	require.NoError(t, inc.ApplyTransition(StatusEscalated, ActorSystem, testTime))

	assert.Equal(t, 2, inc.EscalationCount)
	assert.NoError(t, inc.CheckInvariants())
}

func TestIncident_CheckInvariants(t *testing.T) {
	valid := func() *Incident {
		return NewIncident(1, TypeSecurity, PriorityLow, "weekly scan findings", testTime)
	}

	tests := []struct {
		name   string
		mutate func(*Incident)
	}{
		{"zero id", func(i *Incident) { i.ID = 0 }},
		{"bad type", func(i *Incident) { i.Type = "hardware" }},
		{"bad priority", func(i *Incident) { i.Priority = "urgent" }},
		{"bad status", func(i *Incident) { i.Status = "waiting" }},
		{"empty description", func(i *Incident) { i.Description = "  " }},
		{"empty history", func(i *Incident) { i.History = nil }},
		{"history mismatch", func(i *Incident) { i.Status = StatusInProgress }},
		{"count mismatch", func(i *Incident) { i.EscalationCount = 3 }},
	}

	assert.NoError(t, valid().CheckInvariants())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inc := valid()
			tt.mutate(inc)
			assert.Error(t, inc.CheckInvariants())
		})
	}
}

func TestIncident_Clone(t *testing.T) {
	inc := NewIncident(1, TypeSecurity, PriorityLow, "weekly scan findings", testTime)
	c := inc.Clone()

	require.NoError(t, c.ApplyTransition(StatusInProgress, "ana", testTime))
	assert.Equal(t, StatusPending, inc.Status)
	assert.Len(t, inc.History, 1)
	assert.Len(t, c.History, 2)
}

func TestOperator_CanHandle(t *testing.T) {
	ana := &Operator{ID: "ana", Name: "Ana", Roles: []string{"security_analyst"}, Available: true}
	assert.True(t, ana.CanHandle(TypeSecurity))
	assert.False(t, ana.CanHandle(TypeInfrastructure))
	assert.False(t, ana.CanHandle(TypeApplication))

	admin := &Operator{ID: "admin", Name: "Admin", Roles: []string{"admin"}}
	for _, typ := range AllIncidentTypes() {
		assert.True(t, admin.CanHandle(typ), "admin handles %s", typ)
	}

	nobody := &Operator{ID: "n", Name: "Nobody"}
	assert.False(t, nobody.CanHandle(TypeSecurity))
}

func TestPriority_Rank(t *testing.T) {
	ranks := make([]int, 0, 4)
	for _, p := range AllPriorities() {
		ranks = append(ranks, p.Rank())
	}
	for i := 1; i < len(ranks); i++ {
		assert.Greater(t, ranks[i], ranks[i-1])
	}
}
