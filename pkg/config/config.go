// Package config loads the sharefs configuration from file, environment
// and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/marmos91/sharefs/internal/bytesize"
)

// EnvPrefix prefixes every environment override, e.g. SHAREFS_LOGGING_LEVEL.
const EnvPrefix = "SHAREFS"

// Config is the sharefs configuration.
//
// Sources in order of precedence:
//  1. CLI flags (applied by the commands after Load)
//  2. Environment variables (SHAREFS_*)
//  3. Configuration file (YAML or TOML)
//  4. Default values
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`

	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry" json:"telemetry"`

	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`

	// Share is the SMB share every command and the gateway talk to.
	Share ShareConfig `mapstructure:"share" yaml:"share" json:"share"`

	// API configures the HTTP gateway started by `sharefs serve`.
	API APIConfig `mapstructure:"api" yaml:"api" json:"api"`

	// ShutdownTimeout bounds graceful shutdown of the gateway.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout" json:"shutdown_timeout" jsonschema:"type=string,example=30s"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR (case-insensitive, normalized
	// to uppercase).
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level" json:"level" jsonschema:"enum=DEBUG,enum=INFO,enum=WARN,enum=ERROR"`

	// Format is text or json.
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format" json:"format" jsonschema:"enum=text,enum=json"`

	// Output is stdout, stderr, or a file path.
	Output string `mapstructure:"output" validate:"required" yaml:"output" json:"output"`
}

// TelemetryConfig controls OpenTelemetry tracing. Spans are exported to an
// OTLP gRPC collector when Enabled is true.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Endpoint is the collector host:port.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`

	// Insecure disables TLS towards the collector.
	Insecure bool `mapstructure:"insecure" yaml:"insecure" json:"insecure"`

	// SampleRate is the fraction of traces kept, 0.0 to 1.0.
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate" json:"sample_rate" jsonschema:"minimum=0,maximum=1"`

	Profiling ProfilingConfig `mapstructure:"profiling" yaml:"profiling" json:"profiling"`
}

// ProfilingConfig controls Pyroscope continuous profiling.
type ProfilingConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Endpoint is the Pyroscope server URL.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`

	// ProfileTypes lists the profiles to collect: cpu, alloc_objects,
	// alloc_space, inuse_objects, inuse_space, goroutines, mutex_count,
	// mutex_duration, block_count, block_duration.
	ProfileTypes []string `mapstructure:"profile_types" yaml:"profile_types" json:"profile_types"`
}

// MetricsConfig configures the Prometheus metrics HTTP server.
// When Enabled is false no metrics are collected.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Port is the HTTP port for /metrics. Default: 9090
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port" json:"port"`
}

// Share backends.
const (
	BackendSMB2   = "smb2"
	BackendMemory = "memory"
)

// ShareConfig identifies the share and the credentials used to reach it.
type ShareConfig struct {
	// Address is the share in \\host\share or //host/share form, with an
	// optional :port on the host.
	Address string `mapstructure:"address" yaml:"address" json:"address" jsonschema:"example=//fileserver/docs"`

	// Username may carry a domain as DOMAIN\user or user@domain.
	Username string `mapstructure:"username" yaml:"username" json:"username"`

	// Password is better supplied through SHAREFS_SHARE_PASSWORD.
	Password string `mapstructure:"password" yaml:"password,omitempty" json:"password,omitempty"`

	// Domain applies when Username carries none.
	Domain string `mapstructure:"domain" yaml:"domain,omitempty" json:"domain,omitempty"`

	// Backend selects the client: smb2 (network) or memory (process-local
	// share for demos and tests).
	Backend string `mapstructure:"backend" validate:"required,oneof=smb2 memory" yaml:"backend" json:"backend" jsonschema:"enum=smb2,enum=memory"`

	// DialTimeout bounds the TCP connect. Default: 10s
	DialTimeout time.Duration `mapstructure:"dial_timeout" validate:"gte=0" yaml:"dial_timeout" json:"dial_timeout" jsonschema:"type=string,example=10s"`

	// MaxReadSize caps the payload a single read buffers. Default: 1Gi
	MaxReadSize bytesize.ByteSize `mapstructure:"max_read_size" yaml:"max_read_size" json:"max_read_size" jsonschema:"example=1Gi"`
}

// APIConfig configures the HTTP gateway.
type APIConfig struct {
	// Enabled controls whether `sharefs serve` exposes the gateway.
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Port is the gateway's HTTP port. Default: 8080
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port" json:"port"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" json:"read_timeout" jsonschema:"type=string,example=30s"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" json:"write_timeout" jsonschema:"type=string,example=30s"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout" json:"idle_timeout" jsonschema:"type=string,example=60s"`

	// MaxBodySize caps uploads through PUT /fs/content. Default: 64Mi
	MaxBodySize bytesize.ByteSize `mapstructure:"max_body_size" yaml:"max_body_size" json:"max_body_size" jsonschema:"example=64Mi"`

	Auth AuthConfig `mapstructure:"auth" yaml:"auth" json:"auth"`
}

// AuthConfig configures bearer-token authentication of the gateway.
type AuthConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// JWTSecret signs HS256 tokens. At least 32 characters.
	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret,omitempty" json:"jwt_secret,omitempty"`

	// Issuer is written to and checked against the iss claim. Default: sharefs
	Issuer string `mapstructure:"issuer" yaml:"issuer" json:"issuer"`

	// TokenTTL is the lifetime of issued tokens. Default: 1h
	TokenTTL time.Duration `mapstructure:"token_ttl" yaml:"token_ttl" json:"token_ttl" jsonschema:"type=string,example=1h"`

	Users []UserConfig `mapstructure:"users" validate:"dive" yaml:"users,omitempty" json:"users,omitempty"`
}

// UserConfig is one gateway account.
type UserConfig struct {
	Username string `mapstructure:"username" validate:"required" yaml:"username" json:"username"`

	// PasswordHash is a bcrypt hash; see `sharefs config hash-password`.
	PasswordHash string `mapstructure:"password_hash" validate:"required" yaml:"password_hash" json:"password_hash"`
}

// Load loads configuration from file, environment, and defaults, then
// validates it. A missing file is not an error: defaults plus environment
// are used.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)
	bindEnv(v, reflect.TypeOf(Config{}), "")

	if _, err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load with user-facing guidance when an explicitly named file
// does not exist.
func MustLoad(configPath string) (*Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s\n\n"+
				"Please create the configuration file:\n"+
				"  sharefs config init --config %s",
				configPath, configPath)
		}
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML with owner-only permissions.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold the share password and the JWT secret.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Redacted returns a copy with secrets masked, for display.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Share.Password != "" {
		out.Share.Password = redactedValue
	}
	if out.API.Auth.JWTSecret != "" {
		out.API.Auth.JWTSecret = redactedValue
	}
	out.API.Auth.Users = append([]UserConfig(nil), c.API.Auth.Users...)
	for i := range out.API.Auth.Users {
		out.API.Auth.Users[i].PasswordHash = redactedValue
	}
	return &out
}

const redactedValue = "********"

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Booleans whose default is true cannot be filled by ApplyDefaults.
	v.SetDefault("api.enabled", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.AddConfigPath(getConfigDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// bindEnv registers every leaf key of t with viper so that environment
// overrides reach Unmarshal even when the key is absent from the file.
func bindEnv(v *viper.Viper, t reflect.Type, prefix string) {
	for i := range t.NumField() {
		f := t.Field(i)
		tag := strings.Split(f.Tag.Get("mapstructure"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct && f.Type != reflect.TypeOf(time.Time{}) {
			bindEnv(v, f.Type, key)
			continue
		}
		if f.Type.Kind() == reflect.Slice && f.Type.Elem().Kind() == reflect.Struct {
			continue
		}
		_ = v.BindEnv(key)
	}
}

// readConfigFile reports whether a config file was found and read.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		durationDecodeHook(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// byteSizeDecodeHook accepts "64Mi", "100MB" or plain numbers.
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return bytesize.ParseByteSize(v)
		case int:
			if v < 0 {
				return nil, fmt.Errorf("negative byte size %d", v)
			}
			return bytesize.ByteSize(v), nil
		case int64:
			if v < 0 {
				return nil, fmt.Errorf("negative byte size %d", v)
			}
			return bytesize.ByteSize(v), nil
		case uint64:
			return bytesize.ByteSize(v), nil
		case float64:
			// YAML numbers can arrive as float64.
			if v < 0 {
				return nil, fmt.Errorf("negative byte size %v", v)
			}
			return bytesize.ByteSize(v), nil
		default:
			return data, nil
		}
	}
}

// durationDecodeHook accepts "30s", "5m", "1h" or raw nanoseconds.
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir resolves $XDG_CONFIG_HOME/sharefs, then ~/.config/sharefs,
// then the working directory.
func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sharefs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "sharefs")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string {
	return getConfigDir()
}
