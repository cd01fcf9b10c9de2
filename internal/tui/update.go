package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MsgTasksLoaded:
		m.setTasks(msg.Tasks)
		if m.pendingFocus != "" {
			m.focusTask(m.pendingFocus)
			m.pendingFocus = ""
		}
		return m, nil

	case MsgTaskAdvanced:
		m.err = nil
		m.pendingFocus = msg.ID
		return m, m.loadTasks()

	case MsgTaskCreated:
		m.err = nil
		m.pendingFocus = msg.ID
		return m, m.loadTasks()

	case MsgError:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKey dispatches key presses by mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.mode = ModeNormal
		}
		return m, nil
	default:
		return m.handleNormalMode(msg)
	}
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.rows[m.col] = clampRow(m.rows[m.col]-1, len(m.columns[m.col]))

	case key.Matches(msg, m.keys.Down):
		m.rows[m.col] = clampRow(m.rows[m.col]+1, len(m.columns[m.col]))

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}

	case key.Matches(msg, m.keys.Right):
		if m.col < columnCount-1 {
			m.col++
		}

	case key.Matches(msg, m.keys.Advance):
		if t, ok := m.SelectedTask(); ok && !t.IsDone() {
			return m, m.advanceTask(t.ID)
		}

	case key.Matches(msg, m.keys.New):
		m.mode = ModeInput
		m.titleInput.Reset()
		return m, m.titleInput.Focus()

	case key.Matches(msg, m.keys.Refresh):
		m.err = nil
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
	}
	return m, nil
}

func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.titleInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		title := strings.TrimSpace(m.titleInput.Value())
		m.mode = ModeNormal
		m.titleInput.Blur()
		if title == "" {
			return m, nil
		}
		return m, m.createTask(title)
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}
