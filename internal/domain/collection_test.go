package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectionWith(t *testing.T, n int) *Collection {
	t.Helper()
	c := NewCollection()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c.Put(NewIncident(c.NextID(), TypeApplication, PriorityLow, "background job backlog", now))
	}
	return c
}

func TestCollection_InsertionOrder(t *testing.T) {
	c := collectionWith(t, 3)

	var ids []int
	for inc := range c.Incidents() {
		ids = append(ids, inc.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestCollection_IterationIsRestartable(t *testing.T) {
	c := collectionWith(t, 3)

	seq := c.Incidents()
	first := 0
	for range seq {
		first++
		break // Early stop must not consume the sequence
	}
	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, 1, first)
	assert.Equal(t, 3, second)
}

func TestCollection_NextIDAdvances(t *testing.T) {
	c := NewCollection()
	assert.Equal(t, 1, c.NextID())
	assert.Equal(t, 2, c.NextID())
}

func TestCollection_PutRepairsNextID(t *testing.T) {
	c := NewCollection()
	now := time.Now()
	c.Put(NewIncident(41, TypeSecurity, PriorityHigh, "stale session reuse", now))

	assert.Equal(t, 42, c.NextID())
}

func TestCollection_Remove(t *testing.T) {
	c := collectionWith(t, 3)
	c.Remove(2)

	var ids []int
	for inc := range c.Incidents() {
		ids = append(ids, inc.ID)
	}
	assert.Equal(t, []int{1, 3}, ids)
	_, ok := c.Get(2)
	assert.False(t, ok)
}

func TestRebuildCollection(t *testing.T) {
	now := time.Now()
	incs := []*Incident{
		NewIncident(1, TypeSecurity, PriorityHigh, "stale session reuse", now),
		NewIncident(7, TypeApplication, PriorityLow, "background job backlog", now),
	}
	ops := []*Operator{{ID: "ana", Name: "Ana", Available: true}}

	// next_id trailing the highest id is repaired upward.
	c, err := RebuildCollection(2, incs, ops)
	require.NoError(t, err)
	assert.Equal(t, 8, c.NextID())
	assert.Equal(t, 2, c.Len())
	assert.Len(t, c.Operators(), 1)
}

func TestRebuildCollection_DuplicateID(t *testing.T) {
	now := time.Now()
	incs := []*Incident{
		NewIncident(1, TypeSecurity, PriorityHigh, "stale session reuse", now),
		NewIncident(1, TypeApplication, PriorityLow, "background job backlog", now),
	}

	_, err := RebuildCollection(2, incs, nil)
	assert.Error(t, err)
}

func TestCollection_OperatorCount(t *testing.T) {
	c := NewCollection()
	c.PutOperator(&Operator{ID: "a", Name: "A", Available: true})
	c.PutOperator(&Operator{ID: "b", Name: "B", Available: false})

	total, available := c.OperatorCount()
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, available)
}
