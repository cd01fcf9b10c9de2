// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/giselleandrade1/lembrafacil/internal/analytics"
	"github.com/giselleandrade1/lembrafacil/internal/cache"
	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/eventbus"
	"github.com/giselleandrade1/lembrafacil/internal/infra/badgerlog"
	"github.com/giselleandrade1/lembrafacil/internal/infra/config"
	"github.com/giselleandrade1/lembrafacil/internal/infra/gitlog"
	"github.com/giselleandrade1/lembrafacil/internal/infra/importer"
	"github.com/giselleandrade1/lembrafacil/internal/infra/jsonstore"
	"github.com/giselleandrade1/lembrafacil/internal/infra/logging"
	"github.com/giselleandrade1/lembrafacil/internal/infra/metrics"
	"github.com/giselleandrade1/lembrafacil/internal/infra/sqlitestore"
	"github.com/giselleandrade1/lembrafacil/internal/search"
	"github.com/giselleandrade1/lembrafacil/internal/store"
	"github.com/giselleandrade1/lembrafacil/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	DataDir       string // Directory holding config.toml, logs and persisted state
	GlobalConfDir string // Directory holding the global config.toml (empty = no global config)
}

// Deps are the externally provided dependencies of a container.
// Nil fields get defaults; a nil EventLog or Snapshots disables that persistence.
// Fields are ordered to minimize memory padding.
type Deps struct {
	Clock     domain.Clock
	EventLog  domain.EventLog
	Snapshots domain.SnapshotStore
	Settings  *domain.Config
	Logger    *slog.Logger
	AuditLog  *logging.Logger
}

// Container provides dependency injection for the application.
// It owns the store and every subscriber attached to its bus.
// Fields are ordered to minimize memory padding.
type Container struct {
	// Ports (interfaces bound to implementations)
	Clock     domain.Clock
	EventLog  domain.EventLog      // nil when event_log = none
	Snapshots domain.SnapshotStore // nil when snapshot = none

	// Pointer fields
	Settings      *domain.Config
	Logger        *slog.Logger
	AuditLog      *logging.Logger
	Store         *store.Store
	Bus           *eventbus.Bus
	Index         *search.Index
	Classifier    *search.Classifier
	Cache         *cache.Cache
	Metrics       *metrics.Metrics
	Scheduler     *analytics.RoundRobin
	Priority      *analytics.PriorityEngine
	ConfigManager *config.Manager
	persister     *Persister

	// Configuration
	Config Config
}

// New loads configuration from cfg.DataDir, opens the configured backends
// and rebuilds the store from them.
func New(ctx context.Context, cfg Config) (*Container, error) {
	loader := config.NewLoaderWithGlobalDir(cfg.DataDir, cfg.GlobalConfDir)
	settings, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(settings); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(settings.Log.Level),
	}))
	for _, w := range settings.Warnings {
		logger.Warn("config warning", "detail", w)
	}

	eventLog, err := openEventLog(settings.Store, cfg.DataDir, logger)
	if err != nil {
		return nil, err
	}
	snapshots, err := openSnapshotStore(settings.Store.Snapshot, cfg.DataDir)
	if err != nil {
		if eventLog != nil {
			_ = eventLog.Close()
		}
		return nil, err
	}

	c, err := NewWithDeps(ctx, cfg, Deps{
		Settings:  settings,
		Logger:    logger,
		EventLog:  eventLog,
		Snapshots: snapshots,
		AuditLog:  logging.New(cfg.DataDir, logging.ParseLevel(settings.Log.Level), nil),
	})
	if err != nil {
		closeAll(eventLog, snapshots)
		return nil, err
	}
	return c, nil
}

// NewWithDeps builds a container from explicit dependencies.
// The store is replayed from deps.EventLog, or restored from deps.Snapshots
// when the log is missing or empty.
func NewWithDeps(ctx context.Context, cfg Config, deps Deps) (*Container, error) {
	if deps.Settings == nil {
		deps.Settings = domain.NewDefaultConfig()
	}
	if deps.Clock == nil {
		deps.Clock = domain.RealClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.AuditLog == nil {
		deps.AuditLog = logging.New("", slog.LevelInfo, deps.Clock)
	}
	settings := deps.Settings

	tasksCache, err := cache.New(settings.Cache.Capacity)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	scheduler, err := analytics.NewRoundRobin(settings.Scheduler.Quantum)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	priority, err := analytics.PriorityEngineFromNames(settings.Priority.Strategies)
	if err != nil {
		return nil, fmt.Errorf("create priority engine: %w", err)
	}

	bus := eventbus.New()
	c := &Container{
		Clock:     deps.Clock,
		EventLog:  deps.EventLog,
		Snapshots: deps.Snapshots,
		Settings:  settings,
		Logger:    deps.Logger,
		AuditLog:  deps.AuditLog,
		Store:     store.New(deps.Clock, bus),
		Bus:       bus,
		Index:     search.New(),
		Cache:     tasksCache,
		Scheduler: scheduler,
		Priority:  priority,
		Config:    cfg,

		ConfigManager: config.NewManagerWithGlobalDir(cfg.DataDir, cfg.GlobalConfDir),
	}
	c.Metrics = metrics.New(c.Store.Query, c.Cache.Stats)
	c.Classifier = search.NewClassifier(search.DefaultCategories)

	replayed, err := c.replay(ctx)
	if err != nil {
		return nil, err
	}
	c.subscribe()
	if replayed == 0 && c.Snapshots != nil {
		out, err := c.RestoreSnapshotUseCase().Execute(ctx, usecase.RestoreSnapshotInput{})
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("restored snapshot", "tasks", out.Count)
	}
	return c, nil
}

// replay loads the durable log into the store and returns the event count.
func (c *Container) replay(ctx context.Context) (int, error) {
	if c.EventLog == nil {
		return 0, nil
	}
	events, err := c.EventLog.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load event log: %w", err)
	}
	if err := c.Store.Replay(events); err != nil {
		return 0, fmt.Errorf("replay event log: %w", err)
	}
	c.Logger.Debug("replayed event log", "events", len(events), "tasks", c.Store.Len())
	return len(events), nil
}

// subscribe attaches every derived view to the bus.
// The persister is registered first so the log is written before any view reacts.
func (c *Container) subscribe() {
	if c.EventLog != nil {
		c.persister = NewPersister(c.EventLog, c.Logger)
		c.Bus.SubscribeAll(c.persister)
	}
	c.Index.Build(c.Store.Query())
	c.Bus.SubscribeAll(c.Index)
	for _, t := range c.Store.Query() {
		c.Classifier.HandleEvent(domain.TaskCreated{Task: t})
	}
	c.Bus.Subscribe(domain.EventTaskCreated, c.Classifier)
	c.Bus.SubscribeAll(eventbus.SubscriberFunc(func(e domain.Event) {
		c.Cache.Delete(e.TaskID())
	}))
	c.Bus.SubscribeAll(c.Metrics)
	c.Bus.SubscribeAll(c.AuditLog)
}

// PersistErr returns the append failure holding events back from the log, if any.
func (c *Container) PersistErr() error {
	if c.persister == nil {
		return nil
	}
	return c.persister.Err()
}

// Flush retries events that have not reached the event log yet.
func (c *Container) Flush(ctx context.Context) error {
	if c.persister == nil {
		return nil
	}
	return c.persister.Flush(ctx)
}

// Close releases the backends and audit log files.
func (c *Container) Close() error {
	var errs []error
	if c.EventLog != nil {
		errs = append(errs, c.EventLog.Close())
	}
	if c.Snapshots != nil {
		errs = append(errs, c.Snapshots.Close())
	}
	errs = append(errs, c.AuditLog.Close())
	return errors.Join(errs...)
}

func openEventLog(cfg domain.StoreConfig, dataDir string, logger *slog.Logger) (domain.EventLog, error) {
	switch cfg.EventLog {
	case domain.BackendGit:
		l, err := gitlog.Open(domain.EventRepoPath(dataDir), cfg.Namespace)
		if err != nil {
			return nil, err
		}
		return l, nil
	case domain.BackendBadger:
		bcfg := badgerlog.DefaultConfig(domain.BadgerPath(dataDir))
		bcfg.Logger = logger.With("component", "badger")
		l, err := badgerlog.Open(bcfg)
		if err != nil {
			return nil, err
		}
		return l, nil
	case domain.BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("store.event_log %q: %w", cfg.EventLog, domain.ErrUnknownBackend)
	}
}

func openSnapshotStore(backend, dataDir string) (domain.SnapshotStore, error) {
	switch backend {
	case domain.BackendJSON:
		return jsonstore.New(domain.SnapshotJSONPath(dataDir), nil), nil
	case domain.BackendSQLite:
		s, err := sqlitestore.Open(domain.SnapshotSQLitePath(dataDir))
		if err != nil {
			return nil, err
		}
		return s, nil
	case domain.BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("store.snapshot %q: %w", backend, domain.ErrUnknownBackend)
	}
}

func closeAll(eventLog domain.EventLog, snapshots domain.SnapshotStore) {
	if eventLog != nil {
		_ = eventLog.Close()
	}
	if snapshots != nil {
		_ = snapshots.Close()
	}
}

// UseCase factory methods

// CreateTaskUseCase returns a new CreateTask use case.
func (c *Container) CreateTaskUseCase() *usecase.CreateTask {
	return usecase.NewCreateTask(c.Store, c.Clock, c.Classifier, c.AuditLog)
}

// UpdateStatusUseCase returns a new UpdateStatus use case.
func (c *Container) UpdateStatusUseCase() *usecase.UpdateStatus {
	return usecase.NewUpdateStatus(c.Store, c.Cache, c.AuditLog)
}

// AdvanceStatusUseCase returns a new AdvanceStatus use case.
func (c *Container) AdvanceStatusUseCase() *usecase.AdvanceStatus {
	return usecase.NewAdvanceStatus(c.Store, c.UpdateStatusUseCase())
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store, c.Index)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Store, c.Cache)
}

// TaskHistoryUseCase returns a new TaskHistory use case.
func (c *Container) TaskHistoryUseCase() *usecase.TaskHistory {
	return usecase.NewTaskHistory(c.Store.History())
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Store, importer.Parse, c.Clock, c.AuditLog)
}

// SearchTasksUseCase returns a new SearchTasks use case.
func (c *Container) SearchTasksUseCase() *usecase.SearchTasks {
	return usecase.NewSearchTasks(c.Store, c.Index)
}

// AnalyzeUseCase returns a new Analyze use case.
func (c *Container) AnalyzeUseCase() *usecase.Analyze {
	return usecase.NewAnalyze(c.Store, c.Scheduler, c.Priority)
}

// CriticalPathUseCase returns a new CriticalPath use case.
func (c *Container) CriticalPathUseCase() *usecase.CriticalPath {
	return usecase.NewCriticalPath(c.Store)
}

// ScheduleUseCase returns a new Schedule use case.
func (c *Container) ScheduleUseCase() *usecase.Schedule {
	return usecase.NewSchedule(c.Store, c.Scheduler)
}

// ClassifyUseCase returns a new Classify use case.
func (c *Container) ClassifyUseCase() *usecase.Classify {
	return usecase.NewClassify(c.Store, c.Priority)
}

// RankTasksUseCase returns a new RankTasks use case.
func (c *Container) RankTasksUseCase() *usecase.RankTasks {
	return usecase.NewRankTasks(c.Store, c.Priority)
}

// SaveSnapshotUseCase returns a new SaveSnapshot use case.
func (c *Container) SaveSnapshotUseCase() *usecase.SaveSnapshot {
	return usecase.NewSaveSnapshot(c.Store, c.Snapshots, c.AuditLog)
}

// RestoreSnapshotUseCase returns a new RestoreSnapshot use case.
func (c *Container) RestoreSnapshotUseCase() *usecase.RestoreSnapshot {
	return usecase.NewRestoreSnapshot(c.Store, c.Snapshots, c.AuditLog)
}

// VerifyUseCase returns a new Verify use case.
func (c *Container) VerifyUseCase() *usecase.Verify {
	return usecase.NewVerify(c.Store)
}
