package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/sharefs/internal/cli/prompt"
	"github.com/marmos91/sharefs/pkg/config"
	"github.com/marmos91/sharefs/pkg/sharefs"
)

var (
	initForce       bool
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file",
	Long: `Create a sample configuration file with a freshly generated JWT secret.

The file is written to --config, or to the default location
($XDG_CONFIG_HOME/sharefs/config.yaml). The share password is never
written; supply it with SHAREFS_SHARE_PASSWORD or --password.

Examples:
  # Sample configuration at the default location
  sharefs config init

  # Seed the share from flags
  sharefs config init --share //fs01/docs --user 'CORP\alice'

  # Answer prompts for the share settings
  sharefs config init -i --config ./sharefs.yaml`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Prompt for the share settings")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath(cmd)
	if path == "" {
		path = config.GetDefaultConfigPath()
	}

	share := config.SampleShare
	flags := cmd.Flags()
	if flags.Changed("share") {
		share.Address, _ = flags.GetString("share")
	}
	if flags.Changed("user") {
		share.Username, _ = flags.GetString("user")
	}
	if flags.Changed("domain") {
		share.Domain, _ = flags.GetString("domain")
	}

	if initInteractive {
		var err error
		if share, err = promptShare(share); err != nil {
			return err
		}
	}

	if share.Address != "" {
		if _, err := sharefs.ParseShareAddress(share.Address); err != nil {
			return err
		}
	}

	if err := config.InitConfigWithShare(path, initForce, share); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration written to %s\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  export SHAREFS_SHARE_PASSWORD=...")
	fmt.Fprintln(out, "  sharefs ls")
	return nil
}

func promptShare(share config.ShareConfig) (config.ShareConfig, error) {
	var err error
	share.Address, err = prompt.InputWithValidation("Share address (//host/share)", share.Address, func(s string) error {
		_, err := sharefs.ParseShareAddress(s)
		return err
	})
	if err != nil {
		return share, err
	}
	if share.Username, err = prompt.Input("Username", share.Username); err != nil {
		return share, err
	}
	if share.Domain, err = prompt.Input("Domain (optional)", share.Domain); err != nil {
		return share, err
	}
	return share, nil
}
