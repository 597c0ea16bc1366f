package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tbuendia/incidentctl/internal/infra/storage"
	"github.com/tbuendia/incidentctl/internal/repo"
)

// testClock is a movable clock shared by the use case tests.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestRepo(t *testing.T) (*repo.Repository, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	store := storage.New(t.TempDir(), 5, clock)
	r, _, err := repo.Open(store, clock, nil)
	require.NoError(t, err)
	return r, clock
}
