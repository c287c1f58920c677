// Package cmd implements the pico CLI commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json"
}

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the pico root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pico",
		Short: "pico - small components for server-rendered markup",
		Long: `pico binds connect procedures to custom elements and shares one
event-driven store between them.

The CLI inspects markup and project configuration without running
any component code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRefsCommand(opts))
	cmd.AddCommand(NewStateCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// response is the JSON envelope for command output.
type response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(response{Status: "ok", Data: data})
}

// verbosef writes diagnostics to the command's error stream when --verbose
// is set, keeping JSON output on stdout clean.
func verbosef(cmd *cobra.Command, opts *RootOptions, format string, args ...any) {
	if !opts.Verbose {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
