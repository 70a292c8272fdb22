package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fusionary/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the assets whenever the sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputMode, _ := cmd.Flags().GetString("output")
			ci, _ := cmd.Flags().GetBool("ci")

			if ci {
				outputMode = "linear"
			}

			return c.app.Watch(cmd.Context(), app.WatchOptions{
				PassOptions: c.passOptions(),
				OutputMode:  outputMode,
			})
		},
	}
	cmd.Flags().String("output", "auto", "Output mode: auto, interactive, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output=linear)")
	return cmd
}
