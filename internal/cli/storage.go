package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giselleandrade1/lembrafacil/internal/api"
	"github.com/giselleandrade1/lembrafacil/internal/app"
	"github.com/giselleandrade1/lembrafacil/internal/usecase"
)

// serveFunc runs the HTTP server, allowing it to be mocked in tests.
var serveFunc = func(ctx context.Context, c *app.Container, addr string) error {
	return api.New(c).ListenAndServe(ctx, addr)
}

// newSnapshotCommand creates the snapshot command and its restore subcommand.
func newSnapshotCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save the current board to the snapshot store",
		Long: `Save the current board to the snapshot store configured by
store.snapshot (json or sqlite).

A snapshot is loaded automatically on startup when the event log is empty.`,
		Args: cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.SaveSnapshotUseCase().Execute(cmd.Context(), usecase.SaveSnapshotInput{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d tasks\n", out.Count)
			return nil
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "restore",
		Short: "Re-create every task in the snapshot",
		Long: `Re-create every task in the snapshot as new events.

Tasks already on the board are replaced by their snapshot version.`,
		Args: cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.RestoreSnapshotUseCase().Execute(cmd.Context(), usecase.RestoreSnapshotInput{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored %d tasks\n", out.Count)
			return nil
		}),
	})

	return cmd
}

// newVerifyCommand creates the verify command.
func newVerifyCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that replaying the log rebuilds the board",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			out, err := c.VerifyUseCase().Execute(cmd.Context(), usecase.VerifyInput{})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "OK: %d events rebuild %d tasks\n", out.Events, out.Tasks)
			return nil
		}),
	}
}

// newServeCommand creates the serve command.
func newServeCommand(s *session) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		Long: `Serve the board as a JSON API with Prometheus metrics.

Routes:
  GET   /health
  GET   /metrics
  GET   /api/tasks?q=&status=
  POST  /api/tasks
  GET   /api/tasks/{id}
  PATCH /api/tasks/{id}/status
  GET   /api/tasks/{id}/history
  GET   /api/analytics
  GET   /api/schedule
  GET   /api/matrix

The server stops on interrupt.`,
		Args: cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			if addr == "" {
				addr = c.Settings.Server.Addr
			}
			return serveFunc(cmd.Context(), c, addr)
		}),
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")
	return cmd
}
