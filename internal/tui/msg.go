package tui

import "github.com/giselleandrade1/lembrafacil/internal/domain"

// Msg is the sealed interface for all board messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when the board has been read from the store.
type MsgTasksLoaded struct {
	Tasks []domain.Task
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskAdvanced is sent when a task has moved to its next status.
type MsgTaskAdvanced struct {
	ID     string
	Status domain.Status
}

func (MsgTaskAdvanced) sealed() {}

// MsgTaskCreated is sent when a new task has been created.
type MsgTaskCreated struct {
	ID string
}

func (MsgTaskCreated) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
