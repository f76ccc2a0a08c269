package app

import (
	"github.com/spf13/cobra"
)

// NewCloneCmd returns a new cobra command for cloning repositories into the
// workspace.
func NewCloneCmd(mgr Manager) *cobra.Command {
	var into pathValue

	cmd := &cobra.Command{
		Use:   "clone <url> [url...]",
		Short: "Clone repositories into the workspace",
		Long: `
Clone one or more repositories into the workspace directory (or the --into
directory), each under its project name derived from the URL. An existing
project directory is never overwritten.`,
		Args: cobra.MinimumNArgs(1),
		Example: `
relkit clone git@github.com:myorg/widget.git
relkit clone https://github.com/myorg/widget.git --into /tmp/checkouts
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.Clone(cmd.Context(), args, string(into))
		},
	}

	cmd.Flags().VarP(&into, "into", "i", "Parent directory for the clones (default: the workspace)")

	return cmd
}
