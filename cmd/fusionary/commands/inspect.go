package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fusionary/internal/app"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the finalized configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")

			return c.app.Inspect(cmd.Context(), app.InspectOptions{
				PassOptions: c.passOptions(),
				Format:      format,
			})
		},
	}
	cmd.Flags().StringP("format", "o", "yaml", "Output format: yaml or json")
	return cmd
}
