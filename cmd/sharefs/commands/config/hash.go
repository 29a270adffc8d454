package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/sharefs/internal/cli/prompt"
	"github.com/marmos91/sharefs/pkg/api/auth"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash a gateway account password",
	Long: `Print the bcrypt hash of a password for api.auth.users.

On a terminal the password is prompted for twice. Otherwise one line is
read from standard input.

Examples:
  sharefs config hash-password
  echo "$PASSWORD" | sharefs config hash-password`,
	Args: cobra.NoArgs,
	RunE: runHashPassword,
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	var (
		password string
		err      error
	)
	if prompt.IsTerminal(os.Stdin) {
		password, err = prompt.NewPassword(auth.MinPasswordLength)
	} else {
		password, err = prompt.ReadLine(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
	return err
}
