package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestInitConfig_Success(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	configPath, err := InitConfig(false)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if configPath != GetDefaultConfigPath() {
		t.Errorf("Expected %s, got %s", GetDefaultConfigPath(), configPath)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	for _, section := range []string{
		"# sharefs configuration file",
		"logging:",
		"telemetry:",
		"metrics:",
		"share:",
		"api:",
		"shutdown_timeout:",
	} {
		if !strings.Contains(string(content), section) {
			t.Errorf("Config file missing section: %s", section)
		}
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		t.Fatalf("Generated config is not valid YAML: %v", err)
	}
}

func TestInitConfigToPath_AlreadyExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("keep: me\n"), 0600); err != nil {
		t.Fatal(err)
	}

	err := InitConfigToPath(path, false)
	if !errors.Is(err, ErrConfigExists) {
		t.Fatalf("Expected ErrConfigExists, got %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "keep: me\n" {
		t.Error("Existing file was modified")
	}
}

func TestInitConfigToPath_Force(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("keep: me\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := InitConfigToPath(path, true); err != nil {
		t.Fatalf("InitConfigToPath with force failed: %v", err)
	}
	content, _ := os.ReadFile(path)
	if strings.Contains(string(content), "keep: me") {
		t.Error("Expected file to be overwritten")
	}
}

func TestGeneratedConfigIsLoadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	if err := InitConfigToPath(path, false); err != nil {
		t.Fatalf("InitConfigToPath failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Generated config does not load: %v", err)
	}
	if cfg.Share.Address != "//fileserver/docs" {
		t.Errorf("Unexpected share address %q", cfg.Share.Address)
	}
	if cfg.Share.MaxReadSize != DefaultMaxReadSize {
		t.Errorf("Expected max_read_size %v, got %v", DefaultMaxReadSize, cfg.Share.MaxReadSize)
	}
	if cfg.API.Auth.TokenTTL != DefaultTokenTTL {
		t.Errorf("Expected token_ttl %v, got %v", DefaultTokenTTL, cfg.API.Auth.TokenTTL)
	}
	if len(cfg.API.Auth.JWTSecret) < MinJWTSecretLength {
		t.Errorf("Expected a generated JWT secret of at least %d chars, got %d", MinJWTSecretLength, len(cfg.API.Auth.JWTSecret))
	}
}

func TestGeneratedSecretsDiffer(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")
	if err := InitConfigToPath(a, false); err != nil {
		t.Fatal(err)
	}
	if err := InitConfigToPath(b, false); err != nil {
		t.Fatal(err)
	}

	ca, err := Load(a)
	if err != nil {
		t.Fatal(err)
	}
	cb, err := Load(b)
	if err != nil {
		t.Fatal(err)
	}
	if ca.API.Auth.JWTSecret == cb.API.Auth.JWTSecret {
		t.Error("Expected each generated config to carry its own secret")
	}
}

func TestInitConfigWithShare(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	share := ShareConfig{Address: `\\files\it's`, Username: `CORP\alice`, Domain: "CORP", Password: "never-written"}

	if err := InitConfigWithShare(path, false, share); err != nil {
		t.Fatalf("InitConfigWithShare failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if strings.Contains(string(content), "never-written") {
		t.Error("password was written to the config file")
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Generated config does not load: %v", err)
	}
	if cfg.Share.Address != share.Address {
		t.Errorf("address = %q, want %q", cfg.Share.Address, share.Address)
	}
	if cfg.Share.Username != share.Username {
		t.Errorf("username = %q, want %q", cfg.Share.Username, share.Username)
	}
	if cfg.Share.Domain != "CORP" {
		t.Errorf("domain = %q, want CORP", cfg.Share.Domain)
	}
}
