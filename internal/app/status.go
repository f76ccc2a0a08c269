package app

import (
	"github.com/spf13/cobra"
)

// NewStatusCmd returns a new cobra command reporting branch and version state.
func NewStatusCmd(mgr Manager) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current branch, version tag and next versions",
		Example: `
relkit status
relkit status -o json
relkit status --watch
`,
	}

	outputVal := formatValue("text")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch the repository and re-report on changes")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		noColour, _ := cmd.Flags().GetBool("nocolour")
		useColour := !noColour

		if watch {
			return mgr.WatchStatus(cmd.Context(), string(outputVal), useColour, nil)
		}
		return mgr.Status(cmd.Context(), string(outputVal), useColour)
	}

	return cmd
}
