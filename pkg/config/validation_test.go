package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := GetDefaultConfig()
	cfg.Share.Address = `\\fileserver\docs`
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"lowercase level", func(c *Config) { c.Logging.Level = "debug" }, ""},
		{"bad level", func(c *Config) { c.Logging.Level = "TRACE" }, "Level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "Format"},
		{"bad backend", func(c *Config) { c.Share.Backend = "nfs" }, "Backend"},
		{"negative dial timeout", func(c *Config) { c.Share.DialTimeout = -1 }, "DialTimeout"},
		{"bad share address", func(c *Config) { c.Share.Address = "fileserver/docs" }, "share.address"},
		{"empty share address", func(c *Config) { c.Share.Address = "" }, ""},
		{"api port range", func(c *Config) { c.API.Port = 70000 }, "Port"},
		{"sample rate", func(c *Config) { c.Telemetry.SampleRate = 1.5 }, "SampleRate"},
		{"telemetry without endpoint", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Endpoint = ""
		}, "telemetry.endpoint"},
		{"metrics port clash", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Port = c.API.Port
		}, "metrics.port"},
		{"metrics port clash with gateway off", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Port = c.API.Port
			c.API.Enabled = false
		}, ""},
		{"short jwt secret", func(c *Config) {
			c.API.Auth.Enabled = true
			c.API.Auth.JWTSecret = "short"
			c.API.Auth.Users = []UserConfig{{Username: "a", PasswordHash: "h"}}
		}, "jwt_secret"},
		{"auth without users", func(c *Config) {
			c.API.Auth.Enabled = true
			c.API.Auth.JWTSecret = strings.Repeat("x", MinJWTSecretLength)
		}, "api.auth.users"},
		{"duplicate users", func(c *Config) {
			c.API.Auth.Enabled = true
			c.API.Auth.JWTSecret = strings.Repeat("x", MinJWTSecretLength)
			c.API.Auth.Users = []UserConfig{{Username: "a", PasswordHash: "h"}, {Username: "a", PasswordHash: "h"}}
		}, "duplicate username"},
		{"user without hash", func(c *Config) {
			c.API.Auth.Users = []UserConfig{{Username: "a"}}
		}, "PasswordHash"},
		{"short secret ignored when auth is off", func(c *Config) {
			c.API.Auth.JWTSecret = "short"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "warn", Format: "json", Output: "/var/log/sharefs.log"},
		Share:   ShareConfig{Backend: "MEMORY", MaxReadSize: 10},
		API:     APIConfig{Port: 1234},
	}
	ApplyDefaults(cfg)

	assert.Equal(t, "WARN", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/var/log/sharefs.log", cfg.Logging.Output)
	assert.Equal(t, BackendMemory, cfg.Share.Backend)
	assert.EqualValues(t, 10, cfg.Share.MaxReadSize)
	assert.Equal(t, 1234, cfg.API.Port)
	assert.Equal(t, DefaultIssuer, cfg.API.Auth.Issuer)
	assert.Zero(t, cfg.Metrics.Port, "metrics port stays unset while metrics are disabled")
}
