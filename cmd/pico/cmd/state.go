package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/pico/pkg/config"
	"github.com/go-drift/pico/pkg/store"
)

// StateReport is the resolved project configuration printed by the state
// command.
type StateReport struct {
	App       string      `json:"app" yaml:"app"`
	Module    string      `json:"module,omitempty" yaml:"module,omitempty"`
	RefMarker string      `json:"ref_marker" yaml:"ref_marker"`
	LogLevel  string      `json:"log_level" yaml:"log_level"`
	State     store.State `json:"state" yaml:"state"`
}

// NewStateCommand creates the state command.
func NewStateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "state [dir]",
		Short: "Print the resolved configuration and initial state",
		Long: `Resolve pico.yaml in dir (default: the project root containing the
current directory) and print the app name, ref marker, log level and
initial store state.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			} else {
				root, err := config.FindProjectRoot()
				if err != nil {
					return err
				}
				dir = root
			}
			return runState(cmd, rootOpts, dir)
		},
	}
}

func runState(cmd *cobra.Command, rootOpts *RootOptions, dir string) error {
	resolved, err := config.Resolve(dir)
	if err != nil {
		return err
	}
	verbosef(cmd, rootOpts, "resolved %s in %s", config.FileName, resolved.Root)

	report := StateReport{
		App:       resolved.AppName,
		Module:    resolved.ModulePath,
		RefMarker: resolved.RefMarker,
		LogLevel:  resolved.LogLevel.String(),
		State:     resolved.State,
	}

	if rootOpts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), report)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return enc.Close()
}
