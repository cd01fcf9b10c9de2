package domain

// Command is a request to change the task store.
// Commands are never stored; the store turns them into events.
type Command interface {
	command()
}

// CreateTask inserts a task, replacing any existing task with the same ID.
type CreateTask struct {
	Task Task
}

// UpdateStatus changes the status and progress of an existing task.
type UpdateStatus struct {
	ID       string
	Status   Status
	Progress int
}

func (CreateTask) command()   {}
func (UpdateStatus) command() {}

// Validate checks the command fields without looking at store state.
func (c CreateTask) Validate() error {
	if c.Task.ID == "" {
		return ErrEmptyID
	}
	if c.Task.Title == "" {
		return ErrEmptyTitle
	}
	if !c.Task.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// Validate checks the command fields without looking at store state.
func (c UpdateStatus) Validate() error {
	if c.ID == "" {
		return ErrEmptyID
	}
	if !c.Status.IsValid() {
		return ErrInvalidStatus
	}
	if c.Progress < 0 || c.Progress > 100 {
		return ErrInvalidProgress
	}
	return nil
}
