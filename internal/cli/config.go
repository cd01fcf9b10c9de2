package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giselleandrade1/lembrafacil/internal/infra/config"
)

// newConfigCommand creates the config command.
// It reads files directly and never opens the event log.
func newConfigCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration files and the effective config",
		Long: `Show the global and data directory config files followed by the
effective configuration after merging defaults, global and local
settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			mgr := config.NewManagerWithGlobalDir(s.cfg.DataDir, s.cfg.GlobalConfDir)

			for _, item := range []struct {
				label string
				info  config.Info
			}{
				{"Global", mgr.GlobalInfo()},
				{"Local", mgr.LocalInfo()},
			} {
				switch {
				case item.info.Path == "":
					_, _ = fmt.Fprintf(w, "# %s: (disabled)\n\n", item.label)
				case item.info.Exists:
					_, _ = fmt.Fprintf(w, "# %s: %s\n%s\n", item.label, item.info.Path, item.info.Content)
				default:
					_, _ = fmt.Fprintf(w, "# %s: %s (not found)\n\n", item.label, item.info.Path)
				}
			}

			cfg, err := config.NewLoaderWithGlobalDir(s.cfg.DataDir, s.cfg.GlobalConfDir).Load()
			if err != nil {
				return err
			}
			for _, warn := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warn)
			}
			rendered, err := config.Render(cfg)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "# Effective\n%s", rendered)
			return nil
		},
	}

	var global bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config template",
		Long: `Write a commented config template holding the defaults into the
data directory, or the global config directory with --global.

Existing files are never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr := config.NewManagerWithGlobalDir(s.cfg.DataDir, s.cfg.GlobalConfDir)
			write := mgr.InitLocal
			if global {
				write = mgr.InitGlobal
			}
			path, err := write()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&global, "global", false, "Write the global config instead")
	cmd.AddCommand(initCmd)

	return cmd
}
