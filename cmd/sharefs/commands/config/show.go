package config

import (
	"github.com/spf13/cobra"

	"github.com/marmos91/sharefs/internal/cli/output"
	"github.com/marmos91/sharefs/pkg/config"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Display the effective configuration: file, environment and defaults
merged. Secrets are masked.

Outputs YAML unless --output json is given.

Examples:
  sharefs config show
  sharefs config show -o json --config /etc/sharefs/config.yaml`,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(configPath(cmd))
	if err != nil {
		return err
	}

	outputFlag, _ := cmd.Flags().GetString("output")
	format, err := output.ParseFormat(outputFlag)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == output.FormatJSON {
		return output.PrintJSON(out, cfg.Redacted())
	}
	return output.PrintYAML(out, cfg.Redacted())
}
