// Package config implements configuration management subcommands.
package config

import (
	"github.com/spf13/cobra"
)

// Cmd is the config subcommand.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage sharefs configuration files.

Subcommands:
  init           Create a configuration file
  validate       Validate configuration file
  show           Display current configuration
  schema         Generate JSON schema for IDE/validation
  hash-password  Hash a gateway account password`,
}

func init() {
	Cmd.AddCommand(initCmd)
	Cmd.AddCommand(validateCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(schemaCmd)
	Cmd.AddCommand(hashPasswordCmd)
}

// configPath returns the --config persistent flag of the root command.
func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}
