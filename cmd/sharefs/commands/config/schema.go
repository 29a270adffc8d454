package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/sharefs/pkg/config"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schema for IDE/validation",
	Long: `Print the JSON schema of the configuration file.

Examples:
  sharefs config schema > sharefs.schema.json

  # In config.yaml, for the YAML language server:
  # yaml-language-server: $schema=./sharefs.schema.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}
