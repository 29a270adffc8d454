// Package commands implements the sharefs command-line client.
package commands

import (
	"github.com/spf13/cobra"

	configcmd "github.com/marmos91/sharefs/cmd/sharefs/commands/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GlobalFlags holds the persistent flag values.
type GlobalFlags struct {
	ConfigFile string
	Share      string
	User       string
	Password   string
	Domain     string
	Gateway    string
	Token      string
	Output     string
	NoColor    bool
	Verbose    bool
}

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

var rootCmd = &cobra.Command{
	Use:   "sharefs",
	Short: "sharefs - path-addressed access to SMB shares",
	Long: `sharefs reads and writes files on an SMB2/3 share addressed as
\\host\share (or //host/share), and can expose the share over HTTP.

Connection settings come from the configuration file, SHAREFS_* environment
variables and the --share, --user, --password and --domain flags, in
increasing order of precedence. With --gateway the file commands go through
a running "sharefs serve" instead of connecting to the share directly.

Use "sharefs [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&Flags.ConfigFile, "config", "", "config file (default: $XDG_CONFIG_HOME/sharefs/config.yaml)")
	pf.StringVar(&Flags.Share, "share", "", `share address, \\host\share or //host/share`)
	pf.StringVarP(&Flags.User, "user", "u", "", "username")
	pf.StringVar(&Flags.Password, "password", "", "password (prompted on a terminal when a user is set without one)")
	pf.StringVar(&Flags.Domain, "domain", "", "authentication domain")
	pf.StringVar(&Flags.Gateway, "gateway", "", "reach the share through a sharefs gateway at this URL instead of SMB")
	pf.StringVar(&Flags.Token, "token", "", "gateway bearer token (default $SHAREFS_GATEWAY_TOKEN)")
	pf.StringVarP(&Flags.Output, "output", "o", "table", "output format (table|json|yaml)")
	pf.BoolVar(&Flags.NoColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&Flags.Verbose, "verbose", "v", false, "log at DEBUG level")

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(configcmd.Cmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
