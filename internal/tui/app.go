package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/giselleandrade1/lembrafacil/internal/app"
	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/usecase"
)

// columnCount is the number of board columns, one per status.
const columnCount = 3

// Model is the bubbletea model for the board.
type Model struct {
	// Dependencies
	container *app.Container
	err       error

	pendingFocus string // Task to select once the next load arrives

	// State
	columns [columnCount][]domain.Task

	// Components
	keys       KeyMap
	styles     Styles
	help       help.Model
	titleInput textinput.Model

	// Cursor
	rows   [columnCount]int
	col    int
	mode   Mode
	width  int
	height int
}

// New creates a board model backed by c.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 200

	return &Model{
		container:  c,
		keys:       DefaultKeyMap(),
		styles:     DefaultStyles(),
		help:       help.New(),
		titleInput: ti,
		mode:       ModeNormal,
	}
}

// Run starts the board and blocks until the user quits or ctx is done.
func Run(ctx context.Context, c *app.Container) error {
	_, err := tea.NewProgram(New(c), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadTasks()
}

// loadTasks returns a command that reads the board from the store.
func (m *Model) loadTasks() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ListTasksUseCase().Execute(context.Background(), usecase.ListTasksInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{Tasks: out.Tasks}
	}
}

// advanceTask returns a command that moves a task to its next status.
func (m *Model) advanceTask(id string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AdvanceStatusUseCase().Execute(context.Background(), usecase.AdvanceStatusInput{ID: id})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskAdvanced{ID: out.After.ID, Status: out.After.Status}
	}
}

// createTask returns a command that creates a task with default fields.
func (m *Model) createTask(title string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.CreateTaskUseCase().Execute(context.Background(), usecase.CreateTaskInput{Title: title})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskCreated{ID: out.Task.ID}
	}
}

// setTasks distributes tasks into their columns and clamps the cursors.
func (m *Model) setTasks(tasks []domain.Task) {
	var cols [columnCount][]domain.Task
	for _, t := range tasks {
		cols[columnIndex(t.Status)] = append(cols[columnIndex(t.Status)], t)
	}
	m.columns = cols
	for i := range m.rows {
		m.rows[i] = clampRow(m.rows[i], len(cols[i]))
	}
}

// SelectedTask returns the task under the cursor.
func (m *Model) SelectedTask() (domain.Task, bool) {
	col := m.columns[m.col]
	if len(col) == 0 {
		return domain.Task{}, false
	}
	return col[m.rows[m.col]], true
}

// focusTask moves the cursor onto the task with the given ID, if present.
func (m *Model) focusTask(id string) {
	for c, col := range m.columns {
		for r, t := range col {
			if t.ID == id {
				m.col, m.rows[c] = c, r
				return
			}
		}
	}
}

func columnIndex(s domain.Status) int {
	for i, st := range domain.AllStatuses() {
		if st == s {
			return i
		}
	}
	return 0
}

func clampRow(row, n int) int {
	if n == 0 {
		return 0
	}
	return max(0, min(row, n-1))
}
