package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fusionary/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Configure and bundle the project assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				PassOptions: c.passOptions(),
				Force:       force,
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Bundle even when nothing changed since the last build")
	return cmd
}
