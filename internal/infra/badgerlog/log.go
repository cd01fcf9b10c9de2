// Package badgerlog stores the task event log in an embedded BadgerDB.
//
// Keys:
//
//	event/<seq as 8 big-endian bytes> → JSON EventRecord
//	meta/seq                          → last assigned sequence number
//
// Big-endian sequence keys make badger's sorted iteration return events in log order.
package badgerlog

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Ensure Log implements domain.EventLog.
var _ domain.EventLog = (*Log)(nil)

var (
	eventPrefix = []byte("event/")
	seqKey      = []byte("meta/seq")
)

// Config holds configuration for the badger database.
type Config struct {
	// Logger receives badger's internal logs. Nil disables them.
	Logger *slog.Logger
	// Path is the database directory. Ignored when InMemory is true.
	Path string
	// InMemory keeps everything in RAM. Useful for tests.
	InMemory bool
	// SyncWrites fsyncs every append.
	SyncWrites bool
}

// DefaultConfig returns a durable on-disk configuration for path.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns a configuration for tests.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Log is a badger-backed domain.EventLog. It is safe for concurrent use.
type Log struct {
	db *badger.DB
}

// Open opens the database described by cfg.
func Open(cfg Config) (*Log, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent event log")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create event log directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger event log: %w", err)
	}
	return &Log{db: db}, nil
}

func eventKey(seq uint64) []byte {
	key := make([]byte, len(eventPrefix)+8)
	copy(key, eventPrefix)
	binary.BigEndian.PutUint64(key[len(eventPrefix):], seq)
	return key
}

// Append stores e under the next sequence number.
// Badger transactions are serializable, so concurrent appends never share a number.
func (l *Log) Append(ctx context.Context, e domain.Event) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var seq uint64
	err := l.db.Update(func(txn *badger.Txn) error {
		last, err := readSeq(txn)
		if err != nil {
			return err
		}
		seq = last + 1

		rec, err := domain.ToRecord(seq, e)
		if err != nil {
			return err
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode event: %w", err)
		}
		if err := txn.Set(eventKey(seq), data); err != nil {
			return err
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, seq)
		return txn.Set(seqKey, buf)
	})
	if err != nil {
		return 0, fmt.Errorf("append event: %w", err)
	}
	return seq, nil
}

func readSeq(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get(seqKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var seq uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt sequence value (%d bytes)", len(val))
		}
		seq = binary.BigEndian.Uint64(val)
		return nil
	})
	return seq, err
}

// Load returns all events in log order.
func (l *Log) Load(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = eventPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec domain.EventRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode event %x: %w", it.Item().Key(), err)
			}
			e, err := domain.FromRecord(rec)
			if err != nil {
				return err
			}
			events = append(events, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	return events, nil
}

// Len returns the number of stored events.
func (l *Log) Len() (uint64, error) {
	var seq uint64
	err := l.db.View(func(txn *badger.Txn) error {
		var err error
		seq, err = readSeq(txn)
		return err
	})
	return seq, err
}

// Close closes the database.
func (l *Log) Close() error {
	return l.db.Close()
}
