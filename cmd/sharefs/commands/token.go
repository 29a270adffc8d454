package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmos91/sharefs/internal/cli/output"
	"github.com/marmos91/sharefs/pkg/api/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token <username>",
	Short: "Issue a gateway bearer token",
	Long: `Issue a bearer token for a configured gateway account, signed with
api.auth.jwt_secret. Intended for operators with access to the
configuration; clients normally use POST /api/v1/auth/token.

Examples:
  TOKEN=$(sharefs token alice)
  curl -H "Authorization: Bearer $TOKEN" localhost:8080/api/v1/fs/list`,
	Args: cobra.ExactArgs(1),
	RunE: runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.API.Auth.Enabled {
		return fmt.Errorf("gateway authentication is disabled (api.auth.enabled: false)")
	}
	if !cfg.API.Auth.HasUser(args[0]) {
		return fmt.Errorf("unknown gateway user %q", args[0])
	}

	svc, err := auth.NewJWTService(cfg.API.Auth.JWTConfig())
	if err != nil {
		return err
	}
	tok, err := svc.Issue(args[0])
	if err != nil {
		return err
	}

	p, err := newPrinter(cmd)
	if err != nil {
		return err
	}
	if p.Format() == output.FormatTable {
		p.Println(tok.AccessToken)
		return nil
	}
	return p.Print(tok)
}
