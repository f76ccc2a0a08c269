package app

import (
	"github.com/spf13/cobra"
)

// NewStageTagCmd returns a new cobra command for stage version bumps.
func NewStageTagCmd(mgr Manager) *cobra.Command {
	var apply bool
	var push bool

	cmd := &cobra.Command{
		Use:   "stage-tag",
		Short: "Compute the next stage version (patch bump)",
		Long: `
Compute the next stage version from the current tag by incrementing the
patch component. An untagged repository starts from 0.0.0. Without --apply
the version is only printed; nothing is written to the repository.`,
		Args: cobra.NoArgs,
		Example: `
relkit stage-tag
relkit stage-tag --apply
relkit stage-tag --apply --push
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := mgr.StageTag(cmd.Context(), apply || push, push)
			return err
		},
	}

	cmd.Flags().BoolVarP(&apply, "apply", "a", false, "Write the computed tag to the repository")
	cmd.Flags().BoolVar(&push, "push", false, "Push the tag to the remote (implies --apply)")

	return cmd
}
