package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

func task(id string) domain.Task {
	return domain.Task{ID: id, Title: "Task " + id, Status: domain.StatusTodo}
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, limit := range []int{0, -1} {
		c, err := New(limit)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, domain.ErrInvalidCapacity)
	}
}

func TestCache_GetMissing(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	got, ok := c.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, domain.Task{}, got)
	assert.Equal(t, uint64(1), c.Stats().Misses)
}

func TestCache_KeepsLastInserted(t *testing.T) {
	const capacity = 3
	c, err := New(capacity)
	require.NoError(t, err)

	for i := 1; i <= 10; i++ {
		key := fmt.Sprintf("k%d", i)
		c.Set(key, task(key))
	}

	assert.Equal(t, capacity, c.Len())
	assert.ElementsMatch(t, []string{"k8", "k9", "k10"}, c.Keys())
	assert.Equal(t, []string{"k10", "k9", "k8"}, c.Keys())
	assert.Equal(t, uint64(7), c.Stats().Evictions)
}

func TestCache_GetProtectsFromEviction(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	c.Set("a", task("a"))
	c.Set("b", task("b"))

	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", task("c"))

	_, ok = c.Get("a")
	assert.True(t, ok, "a was touched and must survive")
	_, ok = c.Get("b")
	assert.False(t, ok, "b was least recently used")
	assert.True(t, c.Evicted("b"))
}

func TestCache_SetExistingUpdatesWithoutEviction(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	c.Set("a", task("a"))
	c.Set("b", task("b"))

	updated := task("a").WithStatus(domain.StatusDone, 100)
	c.Set("a", updated)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, uint64(0), c.Stats().Evictions)
	assert.Equal(t, []string{"a", "b"}, c.Keys())

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, domain.StatusDone, got.Status)
}

func TestCache_ReinsertClearsGhost(t *testing.T) {
	c, err := New(1)
	require.NoError(t, err)

	c.Set("a", task("a"))
	c.Set("b", task("b"))
	assert.True(t, c.Evicted("a"))

	c.Set("a", task("a"))
	assert.False(t, c.Evicted("a"))
	assert.True(t, c.Evicted("b"))
}

func TestCache_GhostsAreBounded(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("k%d", i)
		c.Set(key, task(key))
	}

	assert.False(t, c.Evicted("k0"))
	assert.True(t, c.Evicted("k6"))
	assert.True(t, c.Evicted("k7"))
}

func TestCache_DeleteReusesSlot(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	c.Set("a", task("a"))
	c.Set("b", task("b"))
	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))

	c.Set("c", task("c"))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"c", "b"}, c.Keys())
	assert.Len(t, c.nodes, 2, "freed slot is reused")
}

func TestCache_ReturnsDefensiveCopies(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	orig := task("a")
	orig.Tags = []string{"x"}
	c.Set("a", orig)
	orig.Tags[0] = "mutated"

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, got.Tags)

	got.Tags[0] = "mutated"
	again, _ := c.Get("a")
	assert.Equal(t, []string{"x"}, again.Tags)
}

func TestCache_Stats(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	c.Set("a", task("a"))
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	assert.Equal(t, uint64(2), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.Equal(t, 1, s.Len)
	assert.Equal(t, 4, s.Capacity)
}

func TestCache_SetIfEpoch(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	epoch := c.Epoch()
	assert.True(t, c.SetIfEpoch("a", task("a"), epoch))
	_, ok := c.Get("a")
	assert.True(t, ok)

	epoch = c.Epoch()
	c.Delete("b")
	assert.NotEqual(t, epoch, c.Epoch(), "deleting an absent key still advances the epoch")
	assert.False(t, c.SetIfEpoch("b", task("b"), epoch))
	_, ok = c.Get("b")
	assert.False(t, ok)
}
