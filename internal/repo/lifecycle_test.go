package repo

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbuendia/incidentctl/internal/domain"
)

func TestTransition_FullLifecycle(t *testing.T) {
	r, _, clock := openTestRepo(t)
	inc, err := r.Create(domain.TypeApplication, domain.PriorityMedium, "checkout errors spiking")
	require.NoError(t, err)

	clock.advance(time.Minute)
	started, err := r.Transition(inc.ID, domain.StatusInProgress, "miguel")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, started.Status)
	assert.True(t, started.UpdatedAt.Equal(clock.now))

	clock.advance(time.Hour)
	resolved, err := r.Transition(inc.ID, domain.StatusResolved, "miguel")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, resolved.Status)
	require.Len(t, resolved.History, 3)
	assert.Equal(t, domain.StatusResolved, resolved.History[2].To)
	assert.Equal(t, "miguel", resolved.History[2].Actor)
}

func TestTransition_Invalid(t *testing.T) {
	r, store, _ := openTestRepo(t)
	inc, err := r.Create(domain.TypeApplication, domain.PriorityMedium, "checkout errors spiking")
	require.NoError(t, err)
	saves := store.saveCalls

	_, err = r.Transition(inc.ID, domain.StatusResolved, "miguel")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	assert.Equal(t, saves, store.saveCalls)

	got, err := r.Get(inc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestTransition_NotFound(t *testing.T) {
	r, _, _ := openTestRepo(t)

	_, err := r.Transition(123, domain.StatusEscalated, domain.ActorSystem)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTransition_EscalationBumpsCount(t *testing.T) {
	r, _, _ := openTestRepo(t)
	inc, err := r.Create(domain.TypeInfrastructure, domain.PriorityCritical, "core switch down in dc1")
	require.NoError(t, err)

	esc, err := r.Transition(inc.ID, domain.StatusEscalated, domain.ActorSystem)
	require.NoError(t, err)
	assert.Equal(t, 1, esc.EscalationCount)

	_, err = r.Transition(inc.ID, domain.StatusInProgress, "carlos")
	require.NoError(t, err)
	again, err := r.Transition(inc.ID, domain.StatusEscalated, domain.ActorSystem)
	require.NoError(t, err)
	assert.Equal(t, 2, again.EscalationCount)
	assert.NoError(t, again.CheckInvariants())
}

func TestTransition_RollbackOnSaveFailure(t *testing.T) {
	r, store, _ := openTestRepo(t)
	inc, err := r.Create(domain.TypeApplication, domain.PriorityMedium, "checkout errors spiking")
	require.NoError(t, err)

	store.saveErr = fmt.Errorf("%w: disk full", domain.ErrPersistence)
	_, err = r.Transition(inc.ID, domain.StatusInProgress, "miguel")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))

	// Memory matches disk: the in-memory record was rolled back.
	got, err := r.Get(inc.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Len(t, got.History, 1)
	assert.True(t, got.UpdatedAt.Equal(inc.UpdatedAt))
}
