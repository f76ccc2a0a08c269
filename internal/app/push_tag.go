package app

import (
	"github.com/spf13/cobra"
)

// NewPushTagCmd returns a new cobra command for pushing a version tag.
func NewPushTagCmd(mgr Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push-tag <version>",
		Short: "Push a version tag to the configured remote",
		Args:  cobra.ExactArgs(1),
		Example: `
relkit push-tag 1.4.0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.PushTag(cmd.Context(), args[0])
		},
	}

	return cmd
}
