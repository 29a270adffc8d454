package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// ErrConfigExists is returned by InitConfig when the target file exists
// and force is false.
var ErrConfigExists = errors.New("configuration file already exists")

// InitConfig writes a sample configuration to the default location and
// returns its path.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	return path, InitConfigToPath(path, force)
}

// SampleShare is the share written by InitConfigToPath.
var SampleShare = ShareConfig{Address: "//fileserver/docs", Username: "guest"}

// InitConfigToPath writes a sample configuration to path. A random JWT
// secret is generated for the gateway.
func InitConfigToPath(path string, force bool) error {
	return InitConfigWithShare(path, force, SampleShare)
}

// InitConfigWithShare is InitConfigToPath with the share address, username
// and domain taken from share. The password is never written.
func InitConfigWithShare(path string, force bool, share ShareConfig) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
		}
	}

	secret, err := generateSecret()
	if err != nil {
		return err
	}

	cfg := GetDefaultConfig()
	cfg.Share.Address = share.Address
	cfg.Share.Username = share.Username
	cfg.Share.Domain = share.Domain

	content, err := renderSampleConfig(cfg, secret)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

var sampleConfig = template.Must(template.New("config").Funcs(template.FuncMap{
	"join":  strings.Join,
	"quote": yamlQuote,
}).Parse(`# sharefs configuration file
#
# Every key can be overridden with an environment variable:
#   SHAREFS_<SECTION>_<KEY>, e.g. SHAREFS_LOGGING_LEVEL=DEBUG

logging:
  # DEBUG, INFO, WARN, ERROR
  level: {{ .Cfg.Logging.Level }}
  # text or json
  format: {{ .Cfg.Logging.Format }}
  # stdout, stderr, or a file path
  output: {{ .Cfg.Logging.Output }}

telemetry:
  enabled: false
  endpoint: {{ .Cfg.Telemetry.Endpoint }}
  insecure: true
  sample_rate: {{ .Cfg.Telemetry.SampleRate }}
  profiling:
    enabled: false
    endpoint: {{ .Cfg.Telemetry.Profiling.Endpoint }}
    profile_types: [{{ join .Cfg.Telemetry.Profiling.ProfileTypes ", " }}]

metrics:
  enabled: false
  port: {{ .MetricsPort }}

share:
  # \\host\share or //host/share, optionally host:port
  address: {{ quote .Cfg.Share.Address }}
  # DOMAIN\user or user@domain
  username: {{ quote .Cfg.Share.Username }}
{{- if .Cfg.Share.Domain }}
  domain: {{ quote .Cfg.Share.Domain }}
{{- end }}
  # Prefer SHAREFS_SHARE_PASSWORD over storing the password here.
  # password: ""
  # smb2 or memory
  backend: {{ .Cfg.Share.Backend }}
  dial_timeout: {{ .Cfg.Share.DialTimeout }}
  max_read_size: {{ .Cfg.Share.MaxReadSize }}

api:
  enabled: true
  port: {{ .Cfg.API.Port }}
  read_timeout: {{ .Cfg.API.ReadTimeout }}
  write_timeout: {{ .Cfg.API.WriteTimeout }}
  idle_timeout: {{ .Cfg.API.IdleTimeout }}
  max_body_size: {{ .Cfg.API.MaxBodySize }}
  auth:
    enabled: false
    # Override with SHAREFS_API_AUTH_JWT_SECRET in production.
    jwt_secret: "{{ .Secret }}"
    issuer: {{ .Cfg.API.Auth.Issuer }}
    token_ttl: {{ .Cfg.API.Auth.TokenTTL }}
    # Generate hashes with: sharefs config hash-password
    users: []

shutdown_timeout: {{ .Cfg.ShutdownTimeout }}
`))

func renderSampleConfig(cfg *Config, secret string) (string, error) {
	var sb strings.Builder
	err := sampleConfig.Execute(&sb, struct {
		Cfg         *Config
		Secret      string
		MetricsPort int
	}{cfg, secret, DefaultMetricsPort})
	if err != nil {
		return "", fmt.Errorf("failed to render sample config: %w", err)
	}
	return sb.String(), nil
}

// yamlQuote renders s as a single-quoted YAML scalar, which keeps
// backslashes literal.
func yamlQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
