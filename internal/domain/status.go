package domain

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusTodo  Status = "todo"  // Created, not started
	StatusDoing Status = "doing" // Being worked on
	StatusDone  Status = "done"  // Finished
)

// AllStatuses returns all valid status values in board order.
func AllStatuses() []Status {
	return []Status{StatusTodo, StatusDoing, StatusDone}
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	default:
		return false
	}
}

// Next returns the following status on the board.
// Done stays done; unknown values restart at todo.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusDoing
	case StatusDoing, StatusDone:
		return StatusDone
	default:
		return StatusTodo
	}
}

// DefaultProgress returns the progress implied by moving a task into s.
func (s Status) DefaultProgress() int {
	switch s {
	case StatusDoing:
		return 50
	case StatusDone:
		return 100
	default:
		return 0
	}
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusDoing:
		return "Doing"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ParseStatus converts a string into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
