package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrEmptyID          = errors.New("task id cannot be empty")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrInvalidStatus    = errors.New("invalid status (expected todo, doing or done)")
	ErrInvalidProgress  = errors.New("progress must be between 0 and 100")
	ErrInvalidCapacity  = errors.New("cache capacity must be positive")
	ErrInvalidQuantum   = errors.New("scheduler quantum must be positive")
	ErrCycleDetected    = errors.New("dependency cycle detected")
	ErrUnknownStrategy  = errors.New("unknown priority strategy")
	ErrUnknownEventType = errors.New("unknown event type")
	ErrUnknownBackend   = errors.New("unknown storage backend")
	ErrConfigExists     = errors.New("config file already exists")
	ErrReplayMismatch   = errors.New("replayed projection differs from live projection")
)
