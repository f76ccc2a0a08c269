package app

import (
	"github.com/spf13/cobra"
)

// NewDeleteTagCmd returns a new cobra command for deleting a version tag.
func NewDeleteTagCmd(mgr Manager) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "delete-tag <version>",
		Short: "Delete a version tag locally or on the remote",
		Args:  cobra.ExactArgs(1),
		Example: `
relkit delete-tag 1.4.0
relkit delete-tag 1.4.0 --remote
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.DeleteTag(cmd.Context(), args[0], remote)
		},
	}

	cmd.Flags().BoolVarP(&remote, "remote", "r", false, "Delete the tag on the configured remote instead")

	return cmd
}
