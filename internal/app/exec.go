package app

import (
	"github.com/spf13/cobra"
)

// NewExecCmd returns a new cobra command for launching arbitrary tooling in
// the working directory.
func NewExecCmd(mgr Manager) *cobra.Command {
	var detach bool
	var capture bool

	cmd := &cobra.Command{
		Use:   "run -- <executable> [args...]",
		Short: "Launch a command in the working directory",
		Long: `
Launch an arbitrary command in the resolved working directory. The command's
exit code becomes relkit's exit code. With --capture its output is echoed
line by line; with --detach it is launched and left running.`,
		Args: cobra.MinimumNArgs(1),
		Example: `
relkit run -- make release
relkit run --capture -- ./scripts/package.sh
relkit run --detach -- ./server
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.Exec(cmd.Context(), args, detach, capture)
		},
	}

	cmd.Flags().BoolVar(&detach, "detach", false, "Launch the command and do not wait for it")
	cmd.Flags().BoolVar(&capture, "capture", false, "Capture and echo the command's output")

	return cmd
}
