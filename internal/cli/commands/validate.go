package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pmartel/loglyzer/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a loglyzer configuration file without running analysis.

Checks:
  - YAML syntax
  - Output format, top-N, and color values
  - Webhook URLs and trigger values`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]

	fmt.Printf("Validating %s...\n", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Format:   %s\n", cfg.Format)
	fmt.Printf("  Top:      %d\n", cfg.Top)
	fmt.Printf("  Color:    %s\n", cfg.Color)
	fmt.Printf("  Webhooks: %d\n", len(cfg.Webhooks))

	return nil
}
