// Package cli provides the command-line interface for lembra.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giselleandrade1/lembrafacil/internal/app"
	"github.com/giselleandrade1/lembrafacil/internal/domain"
	"github.com/giselleandrade1/lembrafacil/internal/infra/config"
)

// Command group IDs.
const (
	groupTask      = "task"
	groupAnalytics = "analytics"
	groupStore     = "store"
	groupSetup     = "setup"
)

// Opener builds a container for the given paths. app.New is the production opener.
type Opener func(ctx context.Context, cfg app.Config) (*app.Container, error)

// launchBoardFunc launches the terminal board, allowing it to be mocked in tests.
var launchBoardFunc = launchBoard

// session lazily opens one container per command invocation.
type session struct {
	open Opener
	c    *app.Container
	cfg  app.Config
}

// container returns the open container, creating it on first use.
func (s *session) container(cmd *cobra.Command) (*app.Container, error) {
	if s.c != nil {
		return s.c, nil
	}
	c, err := s.open(cmd.Context(), s.cfg)
	if err != nil {
		return nil, fmt.Errorf("open data dir %s: %w", s.cfg.DataDir, err)
	}
	s.c = c
	return c, nil
}

// close releases the container and reports events that never reached the log.
func (s *session) close() error {
	if s.c == nil {
		return nil
	}
	c := s.c
	s.c = nil
	if err := c.Flush(context.Background()); err != nil {
		_ = c.Close()
		return fmt.Errorf("event log out of date: %w", err)
	}
	return c.Close()
}

// run wraps a command body that needs the container.
func (s *session) run(fn func(cmd *cobra.Command, c *app.Container, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := s.container(cmd)
		if err != nil {
			return err
		}
		if err := fn(cmd, c, args); err != nil {
			// PersistentPostRunE is skipped on error.
			_ = s.close()
			return err
		}
		return nil
	}
}

// NewRootCommand creates the root command for lembra.
// open is called at most once per execution, after flags are parsed.
func NewRootCommand(open Opener, version string) *cobra.Command {
	s := &session{open: open}

	root := &cobra.Command{
		Use:   "lembra",
		Short: "Event-sourced task planner",
		Long: `lembra keeps tasks as an append-only log of events and derives
everything else from it: the current board, per-task history, a
critical path through dependencies, a round-robin work schedule and
a priority ranking.

Run without arguments to open the board.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return s.close()
		},
		RunE: s.run(func(cmd *cobra.Command, c *app.Container, _ []string) error {
			return launchBoardFunc(cmd.Context(), c)
		}),
	}

	root.PersistentFlags().StringVar(&s.cfg.DataDir, "data-dir", domain.DataDirName, "Directory holding config, logs and the event log")
	root.PersistentFlags().StringVar(&s.cfg.GlobalConfDir, "global-config-dir", config.DefaultGlobalConfigDir(), "Directory holding the global config.toml")
	_ = root.PersistentFlags().MarkHidden("global-config-dir")

	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
		&cobra.Group{ID: groupAnalytics, Title: "Analytics Commands:"},
		&cobra.Group{ID: groupStore, Title: "Storage Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	for _, cmd := range []*cobra.Command{
		newAddCommand(s),
		newStatusCommand(s),
		newListCommand(s),
		newShowCommand(s),
		newHistoryCommand(s),
		newLogsCommand(s),
		newImportCommand(s),
		newSearchCommand(s),
		newBoardCommand(s),
	} {
		cmd.GroupID = groupTask
		root.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		newAnalyzeCommand(s),
		newCriticalPathCommand(s),
		newScheduleCommand(s),
		newMatrixCommand(s),
		newRankCommand(s),
	} {
		cmd.GroupID = groupAnalytics
		root.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		newSnapshotCommand(s),
		newVerifyCommand(s),
		newServeCommand(s),
	} {
		cmd.GroupID = groupStore
		root.AddCommand(cmd)
	}

	configCmd := newConfigCommand(s)
	configCmd.GroupID = groupSetup
	root.AddCommand(configCmd)

	return root
}
