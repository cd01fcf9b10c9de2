package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/giselleandrade1/lembrafacil/internal/cache"
	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/search"
	"github.com/giselleandrade1/lembrafacil/internal/store"
	"github.com/giselleandrade1/lembrafacil/internal/testutil"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// fixture wires a real store with an index and cache like the container does.
type fixture struct {
	store  *store.Store
	index  *search.Index
	cache  *cache.Cache
	clock  *testutil.StepClock
	logger *testutil.MockLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := testutil.NewStepClock(t0, time.Minute)
	s := store.New(clock, nil)
	ix := search.New()
	s.Bus().SubscribeAll(ix)

	c, err := cache.New(8)
	require.NoError(t, err)

	return &fixture{store: s, index: ix, cache: c, clock: clock, logger: &testutil.MockLogger{}}
}

// seed dispatches tasks in order and fails the test on error.
func (f *fixture) seed(t *testing.T, tasks ...domain.Task) {
	t.Helper()
	for _, task := range tasks {
		_, err := f.store.DispatchStrict(domain.CreateTask{Task: task})
		require.NoError(t, err)
	}
}

func task(id, title string, minutes int, deps ...string) domain.Task {
	t := testutil.Task(id, title)
	t.EstimatedMinutes = minutes
	t.Dependencies = deps
	return t
}
