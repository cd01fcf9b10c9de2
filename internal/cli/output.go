package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/giselleandrade1/lembrafacil/internal/domain"
)

// Status colours match the board columns.
var statusStyles = map[domain.Status]lipgloss.Style{
	domain.StatusTodo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	domain.StatusDoing: lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
	domain.StatusDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
}

// styledStatus renders a status with its colour. Colour is dropped
// automatically when the output is not a terminal.
func styledStatus(s domain.Status) string {
	if style, ok := statusStyles[s]; ok {
		return style.Render(string(s))
	}
	return string(s)
}

// printTaskList prints tasks as an aligned table.
func printTaskList(w io.Writer, tasks []domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tPROGRESS\tDUE\tTAGS\tTITLE")
	for _, t := range tasks {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d%%\t%s\t%s\t%s\n",
			t.ID, styledStatus(t.Status), t.Progress, formatDate(t.DueAt), formatList(t.Tags), t.Title)
	}
}

// printTask prints every field of a task.
func printTask(w io.Writer, t domain.Task) {
	_, _ = fmt.Fprintf(w, "Task %s: %s\n\n", t.ID, t.Title)
	_, _ = fmt.Fprintf(w, "Status: %s (%d%%)\n", styledStatus(t.Status), t.Progress)
	_, _ = fmt.Fprintf(w, "Created: %s\n", formatTime(t.CreatedAt))
	_, _ = fmt.Fprintf(w, "Due: %s\n", formatTime(t.DueAt))
	_, _ = fmt.Fprintf(w, "Estimate: %d min\n", t.EstimatedMinutes)
	_, _ = fmt.Fprintf(w, "Urgency: %d  Importance: %d  Energy: %d  Effort: %d\n",
		t.Urgency, t.Importance, t.Energy, t.EffortScore)
	_, _ = fmt.Fprintf(w, "Context: %s\n", formatContext(t.Context))
	_, _ = fmt.Fprintf(w, "Tags: %s\n", formatList(t.Tags))
	_, _ = fmt.Fprintf(w, "Depends on: %s\n", formatList(t.Dependencies))
	if t.Description != "" {
		_, _ = fmt.Fprintf(w, "\nDescription:\n%s\n", t.Description)
	}
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return "[" + strings.Join(items, ",") + "]"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateTime)
}

func formatContext(c domain.Context) string {
	var parts []string
	for _, p := range []string{c.Device, c.Location, c.Mood} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
