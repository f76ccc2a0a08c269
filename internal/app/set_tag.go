package app

import (
	"github.com/spf13/cobra"
)

// NewSetTagCmd returns a new cobra command for writing an explicit version tag.
func NewSetTagCmd(mgr Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-tag <version>",
		Short: "Tag the current commit with an explicit version",
		Long: `
Tag the current commit with the given version, replacing an existing tag of
the same name. The version must be exactly three numeric components; a
platform suffix such as 1.2.3.windows.1 is accepted and truncated.`,
		Args: cobra.ExactArgs(1),
		Example: `
relkit set-tag 1.4.0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.SetTag(cmd.Context(), args[0])
		},
	}

	return cmd
}
