package crdt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

func task(id, title string) domain.Task {
	return domain.Task{ID: id, Title: title, Status: domain.StatusTodo}
}

func ids(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestSet_AddRemove(t *testing.T) {
	s := New()
	s.Add(task("a", "A"), 10)
	s.Add(task("b", "B"), 10)
	s.Remove("a", 20)

	assert.Equal(t, []string{"b"}, ids(s.Values()))
	assert.False(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
}

func TestSet_AddWinsTies(t *testing.T) {
	s := New()
	s.Add(task("a", "A"), 10)
	s.Remove("a", 10)
	assert.True(t, s.Contains("a"))
}

func TestSet_ReAddAfterRemove(t *testing.T) {
	s := New()
	s.Add(task("a", "A"), 10)
	s.Remove("a", 20)
	s.Add(task("a", "A again"), 30)

	got, ok := s.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "A again", got.Title)
}

func TestSet_StaleAddIsIgnored(t *testing.T) {
	s := New()
	s.Add(task("a", "new"), 20)
	s.Add(task("a", "old"), 10)

	got, ok := s.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "new", got.Title)

	s.Remove("a", 15)
	assert.True(t, s.Contains("a"), "remove older than latest add keeps the element")
}

func TestSet_IdempotentAdd(t *testing.T) {
	s := New()
	s.Add(task("a", "A"), 10)
	s.Add(task("a", "A"), 10)
	assert.Len(t, s.Values(), 1)
}

func TestSet_EqualTimestampTieBreakIsOrderIndependent(t *testing.T) {
	x, y := task("a", "from replica x"), task("a", "from replica y")

	s1 := New()
	s1.Add(x, 5)
	s1.Add(y, 5)

	s2 := New()
	s2.Add(y, 5)
	s2.Add(x, 5)

	assert.True(t, s1.Equal(s2))
}

func TestSet_MergeProperties(t *testing.T) {
	a := New()
	a.Add(task("1", "one"), 1)
	a.Add(task("2", "two"), 2)
	a.Remove("2", 5)

	b := New()
	b.Add(task("2", "two v2"), 6)
	b.Add(task("3", "three"), 3)
	b.Remove("3", 4)

	c := New()
	c.Add(task("1", "one v2"), 7)
	c.Remove("1", 7)

	// commutative
	ab := a.Clone()
	ab.Merge(b)
	ba := b.Clone()
	ba.Merge(a)
	assert.True(t, ab.Equal(ba))

	// associative
	abC := ab.Clone()
	abC.Merge(c)
	bc := b.Clone()
	bc.Merge(c)
	aBC := a.Clone()
	aBC.Merge(bc)
	assert.True(t, abC.Equal(aBC))

	// idempotent
	again := abC.Clone()
	again.Merge(abC)
	assert.True(t, again.Equal(abC))

	assert.Equal(t, []string{"1", "2"}, ids(abC.Values()))
	got, _ := abC.Lookup("1")
	assert.Equal(t, "one v2", got.Title)
	got, _ = abC.Lookup("2")
	assert.Equal(t, "two v2", got.Title)
}

type op struct {
	id     string
	title  string
	ts     int64
	remove bool
}

func apply(s *Set, ops []op) {
	for _, o := range ops {
		if o.remove {
			s.Remove(o.id, o.ts)
			continue
		}
		s.Add(task(o.id, o.title), o.ts)
	}
}

func TestSet_ConvergesRegardlessOfOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	keys := []string{"a", "b", "c", "d"}

	for round := 0; round < 50; round++ {
		var opsX, opsY []op
		for i := 0; i < 20; i++ {
			o := op{
				id:     keys[rng.Intn(len(keys))],
				title:  keys[rng.Intn(len(keys))],
				ts:     int64(rng.Intn(10)),
				remove: rng.Intn(3) == 0,
			}
			if rng.Intn(2) == 0 {
				opsX = append(opsX, o)
			} else {
				opsY = append(opsY, o)
			}
		}

		x1, y1 := New(), New()
		apply(x1, opsX)
		apply(y1, opsY)

		shuffledX := append([]op(nil), opsX...)
		shuffledY := append([]op(nil), opsY...)
		rng.Shuffle(len(shuffledX), func(i, j int) { shuffledX[i], shuffledX[j] = shuffledX[j], shuffledX[i] })
		rng.Shuffle(len(shuffledY), func(i, j int) { shuffledY[i], shuffledY[j] = shuffledY[j], shuffledY[i] })
		x2, y2 := New(), New()
		apply(x2, shuffledX)
		apply(y2, shuffledY)

		x1.Merge(y1)
		y2.Merge(x2)
		require.True(t, x1.Equal(y2), "round %d diverged", round)
	}
}

func TestSet_ValuesAreCopies(t *testing.T) {
	s := New()
	orig := task("a", "A")
	orig.Tags = []string{"x"}
	s.Add(orig, 1)

	vals := s.Values()
	vals[0].Tags[0] = "mutated"

	got, _ := s.Lookup("a")
	assert.Equal(t, []string{"x"}, got.Tags)
}

func TestSet_MergeNilAndSelf(t *testing.T) {
	s := New()
	s.Add(task("a", "A"), 1)
	s.Merge(nil)
	s.Merge(s)
	assert.Len(t, s.Values(), 1)
}
