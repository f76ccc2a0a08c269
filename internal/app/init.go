package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bitshepherds/relkit/internal/config"
)

// NewInitCmd returns a new cobra command for writing a starter configuration.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   InitCmdName + " [dirpath]",
		Short: "Write a starter " + config.RelkitConfigFile + " configuration file",
		Long: `
Create a commented ` + config.RelkitConfigFile + ` in the given directory (default: the current
directory). Every setting in the file is optional; a repository with no
configuration file at all runs with the same defaults.`,
		Args: cobra.MaximumNArgs(1),
		Example: `
relkit init
relkit init ./my-project
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirpath := "."
			if len(args) > 0 {
				dirpath = args[0]
			}

			if err := os.MkdirAll(dirpath, 0o750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}

			path, err := config.WriteDefault(dirpath)
			if err != nil {
				return err
			}

			cmd.Printf("Wrote %s\n", path)
			cmd.Println("Edit it to set your release branch, remote and workspace.")
			return nil
		},
	}

	return cmd
}
