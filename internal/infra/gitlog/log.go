// Package gitlog stores the task event log inside a git repository.
//
// Data structure:
//
//	refs/<namespace>/events → commit (newest event)
//	  tree
//	    event.yaml → blob (one EventRecord)
//	  parent → commit (previous event) ...
//
// Each event is one commit whose parent is the previous event, so the log is
// append-only and its history can be inspected with ordinary git tooling.
package gitlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"gopkg.in/yaml.v3"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Ensure Log implements domain.EventLog.
var _ domain.EventLog = (*Log)(nil)

const eventFile = "event.yaml"

var signature = object.Signature{Name: "lembra", Email: "lembra@localhost"}

// Log is a git-backed domain.EventLog.
// Fields are ordered to minimize memory padding.
type Log struct {
	repo      *git.Repository
	namespace string
	seq       uint64
	loaded    bool
	mu        sync.Mutex
}

// Open opens the bare repository at path, creating it if needed.
func Open(path, namespace string) (*Log, error) {
	repo, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(path, true)
	}
	if err != nil {
		return nil, fmt.Errorf("open event repository: %w", err)
	}
	return NewWithRepo(repo, namespace), nil
}

// NewWithRepo creates a Log over an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string) *Log {
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}
	return &Log{repo: repo, namespace: namespace}
}

// headRef returns the ref pointing at the newest event.
func (l *Log) headRef() plumbing.ReferenceName {
	return plumbing.ReferenceName("refs/" + l.namespace + "/events")
}

func (l *Log) head() (plumbing.Hash, bool, error) {
	ref, err := l.repo.Reference(l.headRef(), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return plumbing.ZeroHash, false, nil
	}
	if err != nil {
		return plumbing.ZeroHash, false, fmt.Errorf("get events ref: %w", err)
	}
	return ref.Hash(), true, nil
}

// Append stores e as a new commit on top of the log.
func (l *Log) Append(ctx context.Context, e domain.Event) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		seq, err := l.headSeq()
		if err != nil {
			return 0, err
		}
		l.seq, l.loaded = seq, true
	}

	rec, err := domain.ToRecord(l.seq+1, e)
	if err != nil {
		return 0, err
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("encode event: %w", err)
	}

	blobHash, err := l.writeBlob(data)
	if err != nil {
		return 0, err
	}
	treeHash, err := l.writeTree(blobHash)
	if err != nil {
		return 0, err
	}

	parent, ok, err := l.head()
	if err != nil {
		return 0, err
	}
	sig := signature
	sig.When = e.Time()
	commit := &object.Commit{
		Author:    sig,
		Committer: sig,
		Message:   fmt.Sprintf("%d %s %s", rec.Seq, rec.Type, e.TaskID()),
		TreeHash:  treeHash,
	}
	if ok {
		commit.ParentHashes = []plumbing.Hash{parent}
	}

	obj := l.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return 0, fmt.Errorf("encode commit: %w", err)
	}
	hash, err := l.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return 0, fmt.Errorf("store commit: %w", err)
	}

	if err := l.repo.Storer.SetReference(plumbing.NewHashReference(l.headRef(), hash)); err != nil {
		return 0, fmt.Errorf("set events ref: %w", err)
	}
	l.seq = rec.Seq
	return rec.Seq, nil
}

// Load returns all events, oldest first.
func (l *Log) Load(ctx context.Context) ([]domain.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.records(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(records))
	for i, rec := range records {
		if rec.Seq != uint64(i+1) {
			return nil, fmt.Errorf("event log out of order: position %d has seq %d", i+1, rec.Seq)
		}
		e, err := domain.FromRecord(rec)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	l.seq, l.loaded = uint64(len(records)), true
	return events, nil
}

// Close is a no-op; go-git holds no open handles between calls.
func (l *Log) Close() error { return nil }

// records walks the commit chain from the head and returns records oldest first.
func (l *Log) records(ctx context.Context) ([]domain.EventRecord, error) {
	hash, ok, err := l.head()
	if err != nil || !ok {
		return nil, err
	}

	var out []domain.EventRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		commit, err := l.repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("get event commit: %w", err)
		}
		rec, err := l.readRecord(commit)
		if err != nil {
			return nil, fmt.Errorf("commit %s: %w", hash, err)
		}
		out = append(out, rec)
		if len(commit.ParentHashes) == 0 {
			break
		}
		hash = commit.ParentHashes[0]
	}
	slices.Reverse(out)
	return out, nil
}

// headSeq returns the sequence number of the newest event, or 0 for an empty log.
func (l *Log) headSeq() (uint64, error) {
	hash, ok, err := l.head()
	if err != nil || !ok {
		return 0, err
	}
	commit, err := l.repo.CommitObject(hash)
	if err != nil {
		return 0, fmt.Errorf("get event commit: %w", err)
	}
	rec, err := l.readRecord(commit)
	if err != nil {
		return 0, err
	}
	return rec.Seq, nil
}

func (l *Log) readRecord(commit *object.Commit) (domain.EventRecord, error) {
	tree, err := commit.Tree()
	if err != nil {
		return domain.EventRecord{}, fmt.Errorf("get tree: %w", err)
	}
	entry, err := tree.FindEntry(eventFile)
	if err != nil {
		return domain.EventRecord{}, fmt.Errorf("find %s: %w", eventFile, err)
	}
	data, err := l.readBlob(entry.Hash)
	if err != nil {
		return domain.EventRecord{}, err
	}

	var rec domain.EventRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return domain.EventRecord{}, fmt.Errorf("decode event: %w", err)
	}
	return rec, nil
}

func (l *Log) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := l.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", err)
	}
	_ = writer.Close()

	hash, err := l.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}
	return hash, nil
}

func (l *Log) writeTree(blob plumbing.Hash) (plumbing.Hash, error) {
	tree := &object.Tree{Entries: []object.TreeEntry{
		{Name: eventFile, Mode: filemode.Regular, Hash: blob},
	}}
	obj := l.repo.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("encode tree: %w", err)
	}
	hash, err := l.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store tree: %w", err)
	}
	return hash, nil
}

func (l *Log) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := l.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}
	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}
