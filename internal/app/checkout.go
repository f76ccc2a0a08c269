package app

import (
	"github.com/spf13/cobra"
)

// NewCheckoutCmd returns a new cobra command for switching branches.
func NewCheckoutCmd(mgr Manager) *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:   "checkout <branch>",
		Short: "Switch to a branch, optionally creating it",
		Args:  cobra.ExactArgs(1),
		Example: `
relkit checkout main
relkit checkout feature/tags --create
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.Checkout(cmd.Context(), args[0], create)
		},
	}

	cmd.Flags().BoolVarP(&create, "create", "b", false, "Create the branch if it does not exist")

	return cmd
}
