package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

const (
	minColumnWidth = 20
	defaultWidth   = 90
)

// View renders the board.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.headerText()))
	b.WriteString("\n")

	if m.mode == ModeHelp {
		m.help.ShowAll = true
		b.WriteString(m.help.View(m.keys))
		return m.styles.App.Render(b.String())
	}

	b.WriteString(m.viewColumns())
	b.WriteString(m.styles.Footer.Render(m.viewFooter()))
	return m.styles.App.Render(b.String())
}

func (m *Model) headerText() string {
	total, done := 0, 0
	for i, col := range m.columns {
		total += len(col)
		if domain.AllStatuses()[i] == domain.StatusDone {
			done += len(col)
		}
	}
	return fmt.Sprintf("lembra  %d/%d done", done, total)
}

func (m *Model) columnWidth() int {
	width := m.width
	if width == 0 {
		width = defaultWidth
	}
	// App padding plus two border and two padding cells per column.
	return max(minColumnWidth, (width-4)/columnCount-4)
}

func (m *Model) viewColumns() string {
	width := m.columnWidth()
	cols := make([]string, columnCount)
	for i, status := range domain.AllStatuses() {
		style := m.styles.Column
		if i == m.col {
			style = m.styles.ColumnFocused
		}
		cols[i] = style.Width(width).Render(m.viewColumn(i, status, width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m *Model) viewColumn(idx int, status domain.Status, width int) string {
	var b strings.Builder
	title := fmt.Sprintf("%s (%d)", status.Display(), len(m.columns[idx]))
	b.WriteString(m.styles.StatusStyle(status).Render(title))
	b.WriteString("\n")

	if len(m.columns[idx]) == 0 {
		b.WriteString(m.styles.Muted.Render("empty"))
		return b.String()
	}

	for row, t := range m.columns[idx] {
		selected := idx == m.col && row == m.rows[idx]
		b.WriteString("\n")
		b.WriteString(m.viewCard(t, selected, width))
	}
	return b.String()
}

func (m *Model) viewCard(t domain.Task, selected bool, width int) string {
	style, cursor := m.styles.Card, "  "
	if selected {
		style, cursor = m.styles.CardSelected, "> "
	}
	title := truncate(t.Title, width-len(cursor))
	meta := fmt.Sprintf("%s  %d%%  %dmin", t.ID, t.Progress, t.EstimatedMinutes)
	return cursor + style.Render(title) + "\n  " + m.styles.CardMeta.Render(truncate(meta, width-2))
}

func (m *Model) viewFooter() string {
	switch {
	case m.mode == ModeInput:
		return m.styles.Input.Render("New task: ") + m.titleInput.View()
	case m.err != nil:
		return m.styles.Error.Render("Error: "+m.err.Error()) + "\n" + m.help.View(m.keys)
	default:
		m.help.ShowAll = false
		return m.help.View(m.keys)
	}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
