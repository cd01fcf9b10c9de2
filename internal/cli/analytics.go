package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/giselleandrade1/lembrafacil/internal/analytics"
	"github.com/giselleandrade1/lembrafacil/internal/app"
	"github.com/giselleandrade1/lembrafacil/internal/usecase"
)

var binNames = [analytics.Bins]string{"low", "mid", "high"}

var contextNames = [analytics.Contexts]string{"desktop", "mobile"}

// newAnalyzeCommand creates the analyze command.
func newAnalyzeCommand(s *session) *cobra.Command {
	var opts struct {
		Quantum int
		Strict  bool
		JSON    bool
	}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report burndown, forecast, critical path and priorities",
		Long: `Run every analysis over the current board.

The report covers:
  - burndown: percentage of tasks done
  - forecast: average estimate in hours
  - critical path: longest dependency chain in minutes
  - the busiest creation hour
  - the top of the priority ranking

Use --json for the complete report including the schedule and matrix.`,
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.AnalyzeUseCase().Execute(cmd.Context(), usecase.AnalyzeInput{
				Quantum: opts.Quantum,
				Strict:  opts.Strict,
			})
			if err != nil {
				return err
			}
			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), out.Report)
			}
			printReport(cmd.OutOrStdout(), out.Report)
			return nil
		}),
	}

	cmd.Flags().IntVar(&opts.Quantum, "quantum", 0, "Scheduler quantum in minutes (default: from config)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when dependencies form a cycle")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")
	return cmd
}

func printReport(w io.Writer, r *analytics.Report) {
	_, _ = fmt.Fprintf(w, "Tasks: %d\n", r.Tasks)
	_, _ = fmt.Fprintf(w, "Burndown: %d%%\n", r.Burndown)
	_, _ = fmt.Fprintf(w, "Forecast: %dh per task\n", r.Forecast)
	_, _ = fmt.Fprintf(w, "Critical path: %d min", r.CriticalPath)
	if len(r.CriticalTasks) > 0 {
		_, _ = fmt.Fprintf(w, " (%s)", strings.Join(r.CriticalTasks, " -> "))
	}
	_, _ = fmt.Fprintln(w)
	if day, hour, count, ok := r.Heatmap.Peak(); ok {
		_, _ = fmt.Fprintf(w, "Busiest hour: %s %02d:00 (%d tasks)\n", time.Weekday(day), hour, count)
	}

	top := r.Ranking
	if len(top) > 5 {
		top = top[:5]
	}
	if len(top) > 0 {
		_, _ = fmt.Fprintln(w, "\nTop priorities:")
		printRanking(w, top)
	}
}

// newCriticalPathCommand creates the critical-path command.
func newCriticalPathCommand(s *session) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "critical-path",
		Short: "Show the longest dependency chain",
		Long: `Show the longest chain of dependent tasks, weighted by estimated minutes.

Tasks caught in a dependency cycle are left out unless --strict is set,
in which case the cycle is reported as an error.`,
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.CriticalPathUseCase().Execute(cmd.Context(), usecase.CriticalPathInput{Strict: strict})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Critical path: %d min\n", out.Length)
			for i, id := range out.Tasks {
				_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, id)
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when dependencies form a cycle")
	return cmd
}

// newScheduleCommand creates the schedule command.
func newScheduleCommand(s *session) *cobra.Command {
	var opts struct {
		Quantum int
		JSON    bool
	}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Split work into round-robin time slices",
		Long: `Simulate working through every task in round-robin order.

Each turn runs a task for its quantum plus its energy, capped at the
time it has left. Output shows each slice and the minutes each task
received.`,
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.ScheduleUseCase().Execute(cmd.Context(), usecase.ScheduleInput{Quantum: opts.Quantum})
			if err != nil {
				return err
			}
			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Quantum: %d min  Makespan: %d min\n\n", out.Quantum, out.Makespan)
			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "START\tEND\tTASK")
			for _, slot := range out.Slots {
				_, _ = fmt.Fprintf(tw, "%d\t%d\t%s\n", slot.Start, slot.End, slot.ID)
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().IntVar(&opts.Quantum, "quantum", 0, "Scheduler quantum in minutes (default: from config)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")
	return cmd
}

// newMatrixCommand creates the matrix command.
func newMatrixCommand(s *session) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Bucket tasks by urgency, importance, energy and device",
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.ClassifyUseCase().Execute(cmd.Context(), usecase.ClassifyInput{})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out.Cells)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "URGENCY\tIMPORTANCE\tENERGY\tDEVICE\tTASKS")
			for _, cell := range out.Cells {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					binNames[cell.Urgency], binNames[cell.Importance], binNames[cell.Energy],
					contextNames[cell.Context], strings.Join(cell.Tasks, ","))
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// newRankCommand creates the rank command.
func newRankCommand(s *session) *cobra.Command {
	var opts struct {
		Limit    int
		OnlyTodo bool
	}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank tasks by the configured priority strategies",
		Long: `Rank tasks by the sum of the configured strategy scores, highest first.

Strategies are set in config.toml under [priority].`,
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.RankTasksUseCase().Execute(cmd.Context(), usecase.RankTasksInput{
				Limit:    opts.Limit,
				OnlyTodo: opts.OnlyTodo,
			})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Strategies: %s\n\n", strings.Join(out.Strategies, ", "))
			printRanking(w, out.Ranked)
			return nil
		}),
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Show at most n tasks")
	cmd.Flags().BoolVar(&opts.OnlyTodo, "pending", false, "Skip tasks that are done")
	return cmd
}

func printRanking(w io.Writer, ranked []analytics.Ranked) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()
	_, _ = fmt.Fprintln(tw, "#\tSCORE\tID\tTITLE")
	for i, r := range ranked {
		_, _ = fmt.Fprintf(tw, "%d\t%g\t%s\t%s\n", i+1, r.Score, r.ID, r.Title)
	}
}
