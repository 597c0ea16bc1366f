package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:    {StatusInProgress, StatusEscalated},
		StatusInProgress: {StatusResolved, StatusEscalated},
		StatusEscalated:  {StatusInProgress, StatusResolved},
		StatusResolved:   {},
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_ResolvedHasNoOutgoingTransitions(t *testing.T) {
	for _, to := range AllStatuses() {
		assert.False(t, StatusResolved.CanTransitionTo(to), "resolved -> %s must be forbidden", to)
	}
}

func TestStatus_UnknownStatus(t *testing.T) {
	assert.False(t, Status("bogus").CanTransitionTo(StatusPending))
	assert.False(t, Status("bogus").IsValid())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusResolved.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.False(t, StatusEscalated.IsTerminal())
}

func TestStatus_IsActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusInProgress.IsActive())
	assert.False(t, StatusEscalated.IsActive())
	assert.False(t, StatusResolved.IsActive())
}

func TestStatus_Display(t *testing.T) {
	assert.Equal(t, "In Progress", StatusInProgress.Display())
	assert.Equal(t, "weird", Status("weird").Display())
}
