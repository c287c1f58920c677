package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pico version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"version":    Version,
					"build_time": BuildTime,
				})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "pico version %s (built %s)\n", Version, BuildTime)
			return err
		},
	}
}
