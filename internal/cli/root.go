// Package cli provides the command-line interface for loglyzer.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pmartel/loglyzer/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if commands.ExitCode != 0 {
			return commands.ExitCode
		}
		return 1
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "loglyzer",
		Short: "Analyze and filter structured log files",
		Long: `Loglyzer ingests line-oriented log files, filters entries by level,
time range, and text search, and reports aggregate statistics:
level breakdown, most frequent errors, and per-hour error counts
and rates.

Log lines must follow the format:
  YYYY-MM-DD HH:MM:SS [LEVEL] message

Lines that don't match are counted and skipped, never fatal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
