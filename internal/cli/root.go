// Package cli implements the rosterd command line interface.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Config  string // path to the YAML config file, empty for defaults
}

// NewRootCommand creates the root command for the rosterd CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "rosterd",
		Short:         "Employee roster dashboard",
		Long:          "Serves a browser dashboard over employee training records, with spreadsheet import/export and a small record-editing API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env for ROSTERD_* overrides; a missing file is fine.
			_ = godotenv.Load()
			setupLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "path to config file")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))

	return cmd
}
