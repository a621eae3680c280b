package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"elmscope.dev/pkg/elmscope/internal/domain"
	m "elmscope.dev/pkg/elmscope/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "View previously saved check reports",
		Long:  "View check reports saved by an earlier run from the reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				Reports: m.Path(viper.GetString(outputFlagName)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
