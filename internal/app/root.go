package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bitshepherds/relkit/internal/config"
	"github.com/bitshepherds/relkit/internal/fs"
	"github.com/bitshepherds/relkit/internal/launcher"
	"github.com/bitshepherds/relkit/internal/repo"
)

// Version is the current version of relkit, set at build time.
var Version = "dev"

const InitCmdName = "init"

// Banner with colour codes.
var Banner = "\033[32m" + `
             ___ __   _ __
   ________ / / /__  (_) /_
  / ___/ _ \/ / //_/ / / __/
 / /  /  __/ / ,<   / / /_
/_/   \___/_/_/|_| /_/\__/
` + "\033[0m"

var LongDescription = `
relkit drives the release mechanics of a project from its git tags: the
latest tag is the product version, stage releases bump the patch component
and production releases bump the minor component from the release branch.
It also launches build tooling with captured or detached output.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stderr io.Writer, envProvider fs.EnvProvider) *cobra.Command {
	var debug bool
	var noColour bool
	var workDirFlag pathValue
	var project string

	rootCmd := &cobra.Command{
		Use:           "relkit",
		Short:         "Tag-driven release automation for git repositories",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          Banner + "\n" + LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help, completion and init commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) || cmd.Name() == InitCmdName {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				if debug {
					ll.Set(slog.LevelDebug)
				}
				return nil
			}

			// 1. Setup Logging
			if debug {
				ll.Set(slog.LevelDebug)
			}

			// 2. Resolve the working directory. An explicit path wins; a
			// project name is resolved against the workspace; otherwise the
			// current directory is the repository.
			workDir, err := resolveWorkDir(string(workDirFlag), project, envProvider)
			if err != nil {
				return err
			}

			// 3. Build Dependencies
			cfg, err := config.Load(workDir)
			if err != nil {
				return err
			}

			logger, _, err := setupLogger(stderr, ll, workDir, envProvider)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}

			launch := launcher.NewLauncher(logger)
			gitter := repo.NewCLIGitter(cfg, launch, workDir)
			cloneParent := fs.ResolveWorkingDir(envProvider, "", fs.Workspace{
				Drive:   cfg.Workspace.Drive,
				MainDir: cfg.Workspace.MainDir,
			}, "")

			// 4. Hydrate the Lazy Wrapper
			realMgr := NewCLIManager(logger, gitter, launch, workDir, cloneParent)
			lazy.SetInner(realMgr)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().VarP(&workDirFlag, "workdir", "C", "path to the repository working directory")
	rootCmd.PersistentFlags().StringVarP(&project, "project", "p", "", "project name, resolved against the workspace")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColour", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColour")

	// Subcommands
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewStatusCmd(lazy))
	rootCmd.AddCommand(NewStageTagCmd(lazy))
	rootCmd.AddCommand(NewProdTagCmd(lazy))
	rootCmd.AddCommand(NewSetTagCmd(lazy))
	rootCmd.AddCommand(NewPushTagCmd(lazy))
	rootCmd.AddCommand(NewDeleteTagCmd(lazy))
	rootCmd.AddCommand(NewListTagsCmd(lazy))
	rootCmd.AddCommand(NewCheckoutCmd(lazy))
	rootCmd.AddCommand(NewCloneCmd(lazy))
	rootCmd.AddCommand(NewExecCmd(lazy))

	return rootCmd
}

// resolveWorkDir picks the repository directory for this invocation.
func resolveWorkDir(explicit, project string, envProvider fs.EnvProvider) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if project != "" {
		return fs.ResolveWorkingDir(envProvider, "", fs.Workspace{}, project), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine working directory: %w", err)
	}
	return wd, nil
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
