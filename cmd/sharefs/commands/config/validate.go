package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/sharefs/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Load the configuration and run every validation rule without
connecting to the share.

Examples:
  sharefs config validate --config /etc/sharefs/config.yaml`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := configPath(cmd)
	if _, err := config.MustLoad(path); err != nil {
		return err
	}

	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %s\n", path)
	return nil
}
