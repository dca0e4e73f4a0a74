package commands

import (
	"github.com/simonhull/firebird-suite/postgen"
	"github.com/simonhull/firebird-suite/postgen/internal/cleanup"
	"github.com/simonhull/firebird-suite/postgen/internal/config"
	"github.com/simonhull/firebird-suite/postgen/internal/output"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// RootCmd creates the postgen command. Running it with no arguments cleans
// the current directory and removes the postgen executable.
func RootCmd() *cobra.Command {
	return newRootCmd(afero.NewOsFs(), config.DefaultResolver())
}

func newRootCmd(fsys afero.Fs, resolver config.Resolver) *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "postgen",
		Short: "Tidy a freshly generated Go project",
		Long: `postgen runs once, right after a project template has been rendered.

It:
• Removes an empty .goreleaser.yml and the release workflow that needs it
• Optionally removes cmd/ when its main.go was rendered empty (library projects)
• Reminds you to run 'go mod init' when no go.mod was generated
• Deletes its own executable when done

Every flag can also be set through a POSTGEN_* environment variable,
e.g. POSTGEN_REMOVE_EMPTY_CMD=true.`,
		Version:       postgen.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output.SetVerbose(v.GetBool(config.KeyVerbose))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, resolver)
			if err != nil {
				return err
			}

			output.Verbose("resolved configuration",
				"root", cfg.Root,
				"self", cfg.Self,
				"remove_empty_cmd", cfg.RemoveEmptyCmd,
				"dry_run", cfg.DryRun,
			)

			cleaner := cleanup.New(cleanup.Options{
				Fs:             fsys,
				Root:           cfg.Root,
				Self:           cfg.Self,
				RemoveEmptyCmd: cfg.RemoveEmptyCmd,
				DryRun:         cfg.DryRun,
				Out:            cmd.OutOrStdout(),
			})
			if err := cleaner.Run(cmd.Context()); err != nil {
				return err
			}

			if cfg.DryRun {
				output.NewPrinter(cmd.OutOrStdout()).Success("Dry-run complete. Run without --dry-run to clean up.")
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String(config.KeyRoot, "", "Project root to clean (overrides --root-mode)")
	flags.String(config.KeyRootMode, string(config.RootModeCwd), "How to find the project root: cwd or self (directory holding postgen)")
	flags.String(config.KeySelf, "", "File to delete as the final step (default: the running executable)")
	flags.Bool(config.KeyRemoveEmptyCmd, false, "Remove cmd/ when its first main.go is empty")
	flags.Bool(config.KeyDryRun, false, "Show what would be removed without removing anything")
	cmd.PersistentFlags().BoolP(config.KeyVerbose, "v", false, "Enable verbose output for debugging")

	for _, key := range []string{
		config.KeyRoot,
		config.KeyRootMode,
		config.KeySelf,
		config.KeyRemoveEmptyCmd,
		config.KeyDryRun,
	} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}
	_ = v.BindPFlag(config.KeyVerbose, cmd.PersistentFlags().Lookup(config.KeyVerbose))

	return cmd
}
