package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/marmos91/sharefs/internal/bytesize"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
logging:
  level: "info"

share:
  address: //fileserver/docs
  username: alice
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected normalized level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Share.Backend != BackendSMB2 {
		t.Errorf("Expected default backend %q, got %q", BackendSMB2, cfg.Share.Backend)
	}
	if cfg.Share.DialTimeout != DefaultDialTimeout {
		t.Errorf("Expected default dial timeout, got %v", cfg.Share.DialTimeout)
	}
	if cfg.Share.MaxReadSize != DefaultMaxReadSize {
		t.Errorf("Expected default max read size, got %v", cfg.Share.MaxReadSize)
	}
	if !cfg.API.Enabled {
		t.Error("Expected the gateway to be enabled by default")
	}
	if cfg.API.Port != DefaultAPIPort {
		t.Errorf("Expected API port %d, got %d", DefaultAPIPort, cfg.API.Port)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown_timeout 30s, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Expected no error when loading defaults, got: %v", err)
	}
	if cfg.Share.Address != "" {
		t.Errorf("Expected no share address, got %q", cfg.Share.Address)
	}
	if cfg.API.Port != DefaultAPIPort {
		t.Errorf("Expected default API port, got %d", cfg.API.Port)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid.yaml", `
logging:
  level: INFO
  invalid yaml here [[[
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error with invalid YAML, got nil")
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[logging]
level = "WARN"
format = "json"

[share]
address = '\\fileserver\docs'
max_read_size = "16Mi"
dial_timeout = "3s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load TOML config: %v", err)
	}
	if cfg.Logging.Level != "WARN" || cfg.Logging.Format != "json" {
		t.Errorf("Unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Share.MaxReadSize != 16*bytesize.MiB {
		t.Errorf("Expected max_read_size 16Mi, got %v", cfg.Share.MaxReadSize)
	}
	if cfg.Share.DialTimeout != 3*time.Second {
		t.Errorf("Expected dial_timeout 3s, got %v", cfg.Share.DialTimeout)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("SHAREFS_LOGGING_LEVEL", "ERROR")
	t.Setenv("SHAREFS_API_PORT", "9191")
	t.Setenv("SHAREFS_SHARE_PASSWORD", "from-env")
	t.Setenv("SHAREFS_TELEMETRY_PROFILING_PROFILE_TYPES", "cpu,goroutines")

	path := writeConfig(t, "config.yaml", `
logging:
  level: "INFO"
share:
  address: //fileserver/docs
api:
  port: 8080
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "ERROR" {
		t.Errorf("Expected level 'ERROR' from env var, got %q", cfg.Logging.Level)
	}
	if cfg.API.Port != 9191 {
		t.Errorf("Expected port 9191 from env var, got %d", cfg.API.Port)
	}
	if cfg.Share.Password != "from-env" {
		t.Errorf("Expected password from env var for a key absent from the file, got %q", cfg.Share.Password)
	}
	if got := strings.Join(cfg.Telemetry.Profiling.ProfileTypes, ","); got != "cpu,goroutines" {
		t.Errorf("Expected profile types from env var, got %q", got)
	}
}

func TestLoad_ExplicitFalseOverridesDefault(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
api:
  enabled: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.API.Enabled {
		t.Error("Expected api.enabled false to be preserved")
	}
}

func TestLoad_InvalidByteSize(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
share:
  max_read_size: lots
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for invalid byte size")
	}
}

func TestMustLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := MustLoad(missing)
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "sharefs config init --config") {
		t.Errorf("Expected init hint in error, got: %v", err)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Share.Address = `\\fileserver\docs`
	cfg.Share.Username = `CORP\alice`
	cfg.Share.MaxReadSize = 32 * bytesize.MiB

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat failed: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("Expected permissions 0600, got %o", perm)
		}
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to reload saved config: %v", err)
	}
	if loaded.Share.Address != cfg.Share.Address || loaded.Share.Username != cfg.Share.Username {
		t.Errorf("Share config did not round-trip: %+v", loaded.Share)
	}
	if loaded.Share.MaxReadSize != 32*bytesize.MiB {
		t.Errorf("Expected max_read_size 32Mi, got %v", loaded.Share.MaxReadSize)
	}
	if loaded.API.MaxBodySize != DefaultMaxBodySize {
		t.Errorf("Expected max_body_size to round-trip, got %v", loaded.API.MaxBodySize)
	}
}

func TestRedacted(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Share.Password = "hunter2"
	cfg.API.Auth.JWTSecret = strings.Repeat("s", 40)
	cfg.API.Auth.Users = []UserConfig{{Username: "ops", PasswordHash: "$2a$10$abc"}}

	r := cfg.Redacted()
	if r.Share.Password == "hunter2" || r.API.Auth.JWTSecret == cfg.API.Auth.JWTSecret {
		t.Error("Expected secrets to be masked")
	}
	if r.API.Auth.Users[0].PasswordHash == "$2a$10$abc" {
		t.Error("Expected password hashes to be masked")
	}
	if cfg.API.Auth.Users[0].PasswordHash != "$2a$10$abc" {
		t.Error("Redacted must not modify the original")
	}
	if r.Share.Username != cfg.Share.Username {
		t.Error("Expected non-secret fields to be preserved")
	}
}

func TestGetDefaultConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "sharefs", "config.yaml")
	if got := GetDefaultConfigPath(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if DefaultConfigExists() {
		t.Error("Expected no default config in an empty directory")
	}
	if GetConfigDir() != filepath.Join(dir, "sharefs") {
		t.Errorf("Unexpected config dir %q", GetConfigDir())
	}
}
