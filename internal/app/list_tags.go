package app

import (
	"github.com/spf13/cobra"
)

// NewListTagsCmd returns a new cobra command for listing version tags.
func NewListTagsCmd(mgr Manager) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "list-tags",
		Short: "List version tags in the repository or on the remote",
		Long: `
List the repository's version tags in the order git reports them, marking
the highest version. Tags that are not three numeric components are not
version tags and are skipped.`,
		Args: cobra.NoArgs,
		Example: `
relkit list-tags
relkit list-tags --remote -o json
`,
	}

	outputVal := formatValue("text")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().BoolVarP(&remote, "remote", "r", false, "List tags on the configured remote instead")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		noColour, _ := cmd.Flags().GetBool("nocolour")
		return mgr.ListTags(cmd.Context(), remote, string(outputVal), !noColour)
	}

	return cmd
}
