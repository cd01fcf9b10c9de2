// Package store implements the event-sourced task aggregate.
//
// Commands are translated into events, events are appended to an in-memory
// log, and the log is folded into a projection of current task snapshots.
// Every applied event is mirrored into a CRDT replica and a version history
// and then published on the event bus.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/giselleandrade1/lembrafacil/internal/crdt"
	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/eventbus"
	"github.com/giselleandrade1/lembrafacil/internal/history"
)

// Store is the task aggregate. It is safe for concurrent use.
// Fields are ordered to minimize memory padding.
type Store struct {
	lastAt   time.Time
	clock    domain.Clock
	bus      *eventbus.Bus
	replica  *crdt.Set
	history  *history.History
	tasks    map[string]domain.Task
	order    []string
	events   []domain.Event
	dispatch sync.Mutex   // serializes dispatch and replay, including bus delivery
	mu       sync.RWMutex // guards tasks, order, events and lastAt
}

// New creates an empty store. A nil bus gets a private one.
func New(clock domain.Clock, bus *eventbus.Bus) *Store {
	if clock == nil {
		clock = domain.RealClock{}
	}
	if bus == nil {
		bus = eventbus.New()
	}
	return &Store{
		clock:   clock,
		bus:     bus,
		replica: crdt.New(),
		history: history.New(),
		tasks:   make(map[string]domain.Task),
	}
}

// Dispatch translates cmd into at most one event and applies it.
// Commands that produce no event (unknown commands, status updates for
// missing tasks) are ignored and nil is returned.
func (s *Store) Dispatch(cmd domain.Command) domain.Event {
	e, _ := s.handle(cmd, false)
	return e
}

// DispatchStrict behaves like Dispatch but reports why a command produced no event.
// Commands are also validated before they are applied.
func (s *Store) DispatchStrict(cmd domain.Command) (domain.Event, error) {
	return s.handle(cmd, true)
}

func (s *Store) handle(cmd domain.Command, strict bool) (domain.Event, error) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	e, err := s.translate(cmd, strict)
	if err != nil || e == nil {
		return nil, err
	}

	s.mu.Lock()
	s.applyLocked(e)
	s.mu.Unlock()

	s.bus.Publish(e)
	return e, nil
}

// translate turns a command into an event. It is the only place the clock is read.
func (s *Store) translate(cmd domain.Command, strict bool) (domain.Event, error) {
	switch c := cmd.(type) {
	case domain.CreateTask:
		if strict {
			if err := c.Validate(); err != nil {
				return nil, err
			}
		}
		return domain.TaskCreated{At: s.nextTime(), Task: c.Task.Clone()}, nil
	case domain.UpdateStatus:
		if strict {
			if err := c.Validate(); err != nil {
				return nil, err
			}
		}
		s.mu.RLock()
		_, ok := s.tasks[c.ID]
		s.mu.RUnlock()
		if !ok {
			if strict {
				return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, c.ID)
			}
			return nil, nil
		}
		return domain.StatusUpdated{At: s.nextTime(), ID: c.ID, Status: c.Status, Progress: c.Progress}, nil
	default:
		if strict {
			return nil, fmt.Errorf("%w: %T", domain.ErrUnknownCommand, cmd)
		}
		return nil, nil
	}
}

// nextTime returns a timestamp strictly after the previous event.
func (s *Store) nextTime() time.Time {
	now := s.clock.Now()
	s.mu.RLock()
	last := s.lastAt
	s.mu.RUnlock()
	if !now.After(last) {
		now = last.Add(time.Nanosecond)
	}
	return now
}

// applyLocked appends e to the log and folds it into every derived view.
func (s *Store) applyLocked(e domain.Event) {
	s.events = append(s.events, e)
	if e.Time().After(s.lastAt) {
		s.lastAt = e.Time()
	}

	if _, exists := s.tasks[e.TaskID()]; !exists && e.Type() == domain.EventTaskCreated {
		s.order = append(s.order, e.TaskID())
	}
	snapshot, ok := fold(s.tasks, e)
	if !ok {
		return
	}
	s.replica.Add(snapshot, e.Time().UnixNano())
	s.history.Append(snapshot, e.Time())
}

// Replay applies a previously recorded log without publishing on the bus.
// All events are checked before any is applied.
func (s *Store) Replay(events []domain.Event) error {
	for i, e := range events {
		switch e.(type) {
		case domain.TaskCreated, domain.StatusUpdated:
		default:
			return fmt.Errorf("event %d: %w: %T", i+1, domain.ErrUnknownEventType, e)
		}
	}

	s.dispatch.Lock()
	defer s.dispatch.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		s.applyLocked(e)
	}
	return nil
}

// Query returns copies of the current tasks in first-created order.
func (s *Store) Query() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id].Clone())
	}
	return out
}

// Get returns a copy of the task with the given ID.
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return domain.Task{}, false
	}
	return t.Clone(), true
}

// Len returns the number of tasks in the projection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Events returns a copy of the event log in append order.
func (s *Store) Events() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Event, len(s.events))
	for i, e := range s.events {
		out[i] = copyEvent(e)
	}
	return out
}

// Bus returns the bus events are published on.
func (s *Store) Bus() *eventbus.Bus { return s.bus }

// History returns the per-task version history.
func (s *Store) History() *history.History { return s.history }

// Replica returns the CRDT replica mirrored from the log.
func (s *Store) Replica() *crdt.Set { return s.replica }

// Project folds events into a fresh projection. It reads no clock and has no side effects.
func Project(events []domain.Event) map[string]domain.Task {
	tasks := make(map[string]domain.Task)
	for _, e := range events {
		fold(tasks, e)
	}
	return tasks
}

// fold applies one event to tasks and returns the resulting snapshot.
// A status update for a task that does not exist changes nothing.
func fold(tasks map[string]domain.Task, e domain.Event) (domain.Task, bool) {
	switch ev := e.(type) {
	case domain.TaskCreated:
		t := ev.Task.Clone()
		tasks[t.ID] = t
		return t, true
	case domain.StatusUpdated:
		cur, ok := tasks[ev.ID]
		if !ok {
			return domain.Task{}, false
		}
		t := cur.WithStatus(ev.Status, ev.Progress)
		tasks[ev.ID] = t
		return t, true
	default:
		return domain.Task{}, false
	}
}

func copyEvent(e domain.Event) domain.Event {
	if ev, ok := e.(domain.TaskCreated); ok {
		ev.Task = ev.Task.Clone()
		return ev
	}
	return e
}
