package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Persister appends every published event to a durable log.
// Events that fail to append stay queued and are retried, in order, before
// any later event, so the log is always a prefix of the store's history.
type Persister struct {
	log     domain.EventLog
	logger  *slog.Logger
	err     error
	pending []domain.Event
	mu      sync.Mutex
}

// NewPersister creates a Persister writing to log.
func NewPersister(log domain.EventLog, logger *slog.Logger) *Persister {
	return &Persister{log: log, logger: logger}
}

// HandleEvent queues e and writes the queue to the log.
func (p *Persister) HandleEvent(e domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, e)
	p.flushLocked(context.Background())
}

// Flush retries queued events and returns the error that keeps them queued.
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flushLocked(ctx)
	return p.err
}

// Err returns the last append failure while events are still queued, or nil
// once the log has caught up.
func (p *Persister) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Pending returns the number of events not yet in the log.
func (p *Persister) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *Persister) flushLocked(ctx context.Context) {
	for len(p.pending) > 0 {
		e := p.pending[0]
		seq, err := p.log.Append(ctx, e)
		if err != nil {
			p.logger.Error("persist event failed",
				"type", e.Type(), "task", e.TaskID(), "pending", len(p.pending), "error", err)
			p.err = err
			return
		}
		p.logger.Debug("persisted event", "seq", seq, "type", e.Type(), "task", e.TaskID())
		p.pending[0] = nil
		p.pending = p.pending[1:]
	}
	p.err = nil
}
