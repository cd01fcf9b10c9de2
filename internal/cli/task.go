package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/giselleandrade1/lembrafacil/internal/app"
	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/usecase"
)

// newAddCommand creates the add command for creating tasks.
func newAddCommand(s *session) *cobra.Command {
	var opts struct {
		ID          string
		Description string
		Category    string
		Due         string
		Mood        string
		Device      string
		Tags        []string
		DependsOn   []string
		Energy      int
		Urgency     int
		Importance  int
		Effort      int
		Minutes     int
	}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a new task",
		Long: `Create a new task with status 'todo'.

Omitted fields take the quick-capture defaults: energy 5, a 30 minute
estimate, the 'auto' tag and a desktop context. The due date defaults
to now.

Examples:
  # Quick capture
  lembra add "Buy milk"

  # A task with scoring inputs and a dependency
  lembra add "Write report" --urgency 8 --importance 6 --depends-on research

  # Due date as a day or RFC 3339 timestamp
  lembra add "Pay rent" --due 2025-04-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, args []string) error {
			due, err := parseDue(opts.Due)
			if err != nil {
				return err
			}

			out, err := c.CreateTaskUseCase().Execute(cmd.Context(), usecase.CreateTaskInput{
				ID:               opts.ID,
				Title:            strings.Join(args, " "),
				Description:      opts.Description,
				Category:         opts.Category,
				DueAt:            due,
				Mood:             opts.Mood,
				Device:           opts.Device,
				Tags:             opts.Tags,
				Dependencies:     opts.DependsOn,
				Energy:           opts.Energy,
				Urgency:          opts.Urgency,
				Importance:       opts.Importance,
				EffortScore:      opts.Effort,
				EstimatedMinutes: opts.Minutes,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", out.Task.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "Task ID (default: generated)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&opts.Category, "category", "", "Category (predicted from the title when omitted)")
	cmd.Flags().StringVar(&opts.Mood, "mood", "", "Mood hint (focused boosts the mood strategy)")
	cmd.Flags().StringVar(&opts.Device, "device", "", "Device context (desktop, mobile)")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Tags (can specify multiple)")
	cmd.Flags().StringArrayVar(&opts.DependsOn, "depends-on", nil, "IDs of tasks this one waits on (can specify multiple)")
	cmd.Flags().IntVar(&opts.Energy, "energy", 0, "Energy cost (default 5)")
	cmd.Flags().IntVar(&opts.Urgency, "urgency", 0, "Urgency 0-10")
	cmd.Flags().IntVar(&opts.Importance, "importance", 0, "Importance 0-10")
	cmd.Flags().IntVar(&opts.Effort, "effort", 0, "Effort score")
	cmd.Flags().IntVar(&opts.Minutes, "minutes", 0, "Estimated minutes (default 30)")

	return cmd
}

// parseDue accepts an empty string, a date or an RFC 3339 timestamp.
func parseDue(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q (expected YYYY-MM-DD or RFC 3339)", s)
	}
	return t, nil
}

// newStatusCommand creates the status command.
func newStatusCommand(s *session) *cobra.Command {
	var progress int

	cmd := &cobra.Command{
		Use:   "status <id> <todo|doing|done>",
		Short: "Change a task's status",
		Long: `Change a task's status and progress.

Progress defaults to 0 for todo, 50 for doing and 100 for done.

Examples:
  lembra status 3f2a doing
  lembra status 3f2a doing --progress 80`,
		Args: cobra.ExactArgs(2),
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, args []string) error {
			status, err := domain.ParseStatus(args[1])
			if err != nil {
				return err
			}

			in := usecase.UpdateStatusInput{ID: args[0], Status: status}
			if cmd.Flags().Changed("progress") {
				in.Progress = &progress
			}

			out, err := c.UpdateStatusUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s: %s -> %s (%d%%)\n",
				out.After.ID, out.Before.Status, styledStatus(out.After.Status), out.After.Progress)
			return nil
		}),
	}

	cmd.Flags().IntVar(&progress, "progress", 0, "Progress 0-100 (default: implied by status)")
	return cmd
}

// newListCommand creates the list command.
func newListCommand(s *session) *cobra.Command {
	var opts struct {
		Status string
		Query  string
		JSON   bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display tasks in creation order.

Output columns: ID, STATUS, PROGRESS, DUE, TAGS, TITLE

Examples:
  lembra list
  lembra list --status doing
  lembra list --query report`,
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				Status: domain.Status(opts.Status),
				Query:  opts.Query,
			})
			if err != nil {
				return err
			}
			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), out.Tasks)
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks)
			return nil
		}),
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status (todo, doing, done)")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "Filter by title words")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")
	return cmd
}

// newShowCommand creates the show command.
func newShowCommand(s *session) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, args []string) error {
			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{ID: args[0]})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out.Task)
			}
			printTask(cmd.OutOrStdout(), out.Task)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// newHistoryCommand creates the history command.
func newHistoryCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show every recorded version of a task",
		Args:  cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, args []string) error {
			out, err := c.TaskHistoryUseCase().Execute(cmd.Context(), usecase.TaskHistoryInput{ID: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, v := range out.Versions {
				_, _ = fmt.Fprintf(w, "#%d  %s  %s (%d%%)  %s\n",
					i+1, formatTime(v.At), styledStatus(v.Task.Status), v.Task.Progress, v.Task.Title)
			}
			return nil
		}),
	}
}

// newLogsCommand creates the logs command.
func newLogsCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "logs [id]",
		Short: "Show the audit log",
		Long: `Show the audit log of one task, or the global log when no ID is given.

Log files live under <data-dir>/logs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, args []string) error {
			taskID := ""
			if len(args) == 1 {
				taskID = args[0]
			}
			lines, err := c.AuditLog.Lines(taskID)
			if err != nil {
				return err
			}
			for _, line := range lines {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		}),
	}
}

// newImportCommand creates the import command.
func newImportCommand(s *session) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Create tasks from a YAML file",
		Long: `Create tasks from a YAML file.

File format:
  tasks:
    - id: research
      title: Research
      estimatedMinutes: 60
    - title: Write report
      urgency: 8
      dependencies: [research]

Omitted IDs are generated. Unknown keys are rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{
				Content: string(content),
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			for _, w := range out.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			if dryRun {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Would create %d tasks:\n", len(out.Tasks))
				printTaskList(cmd.OutOrStdout(), out.Tasks)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks\n", len(out.Tasks))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and preview without creating tasks")
	return cmd
}

// newSearchCommand creates the search command.
func newSearchCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "search <words...>",
		Short: "Find tasks whose titles share a word with the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, args []string) error {
			out, err := c.SearchTasksUseCase().Execute(cmd.Context(), usecase.SearchTasksInput{Query: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No matching tasks")
				return nil
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks)
			return nil
		}),
	}
}
