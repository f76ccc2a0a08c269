package app

import (
	"github.com/spf13/cobra"
)

// NewProdTagCmd returns a new cobra command for production version bumps.
func NewProdTagCmd(mgr Manager) *cobra.Command {
	var apply bool
	var push bool

	cmd := &cobra.Command{
		Use:   "prod-tag",
		Short: "Compute the next production version (minor bump, patch reset)",
		Long: `
Compute the next production version from the current tag by incrementing
the minor component and resetting the patch component. The release branch
must be checked out; any other branch is a hard failure. Without --apply
the version is only printed.`,
		Args: cobra.NoArgs,
		Example: `
relkit prod-tag
relkit prod-tag --apply --push
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := mgr.ProdTag(cmd.Context(), apply || push, push)
			return err
		},
	}

	cmd.Flags().BoolVarP(&apply, "apply", "a", false, "Write the computed tag to the repository")
	cmd.Flags().BoolVar(&push, "push", false, "Push the tag to the remote (implies --apply)")

	return cmd
}
