package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/giselleandrade1/lembrafacil/internal/app"
	"github.com/giselleandrade1/lembrafacil/internal/tui"
)

// newBoardCommand creates the board command.
func newBoardCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive kanban board",
		Long: `Open the interactive kanban board.

Columns show todo, doing and done tasks. Press enter or space to move
the selected task forward, n to add a task and ? for help.`,
		Args: cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			return launchBoardFunc(cmd.Context(), c)
		}),
	}
}

func launchBoard(ctx context.Context, c *app.Container) error {
	return tui.Run(ctx, c)
}
