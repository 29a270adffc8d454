package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/marmos91/sharefs/pkg/sharefs"
)

// MinJWTSecretLength is the shortest accepted api.auth.jwt_secret.
const MinJWTSecretLength = 32

var validate = validator.New()

// Validate checks struct tags first, then the rules tags cannot express.
// Log levels are accepted in either case; ApplyDefaults normalizes them.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return validateCustomRules(cfg)
}

func validateCustomRules(cfg *Config) error {
	if cfg.Share.Address != "" {
		if _, err := sharefs.ParseShareAddress(cfg.Share.Address); err != nil {
			return fmt.Errorf("share.address: %w", err)
		}
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry.endpoint: required when telemetry is enabled")
	}
	if cfg.Telemetry.Profiling.Enabled && cfg.Telemetry.Profiling.Endpoint == "" {
		return fmt.Errorf("telemetry.profiling.endpoint: required when profiling is enabled")
	}

	if cfg.Metrics.Enabled && cfg.API.Enabled && cfg.Metrics.Port == cfg.API.Port {
		return fmt.Errorf("metrics.port: %d is already used by api.port", cfg.Metrics.Port)
	}

	return validateAuth(&cfg.API.Auth)
}

func validateAuth(auth *AuthConfig) error {
	if !auth.Enabled {
		return nil
	}
	if len(auth.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("api.auth.jwt_secret: must be at least %d characters", MinJWTSecretLength)
	}
	if len(auth.Users) == 0 {
		return fmt.Errorf("api.auth.users: at least one user is required when auth is enabled")
	}

	seen := make(map[string]bool, len(auth.Users))
	for i, u := range auth.Users {
		if seen[u.Username] {
			return fmt.Errorf("api.auth.users[%d]: duplicate username %q", i, u.Username)
		}
		seen[u.Username] = true
	}
	return nil
}

// formatValidationError reports the first failing field.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
