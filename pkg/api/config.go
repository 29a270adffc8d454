package api

import (
	"time"

	"github.com/marmos91/sharefs/pkg/api/auth"
)

// Config configures the gateway HTTP server.
type Config struct {
	// Port is the listen port. Zero picks a free port; see Server.Addr.
	Port int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// MaxBodySize caps PUT /api/v1/fs/content bodies. Zero disables the cap.
	MaxBodySize int64

	// RequestTimeout bounds each request's context. Default: 60s
	RequestTimeout time.Duration

	// Auth enables bearer-token authentication of /api/v1/fs.
	Auth *AuthConfig
}

// AuthConfig holds the token issuer and the accounts allowed to obtain
// tokens. Users maps username to bcrypt hash.
type AuthConfig struct {
	JWT   auth.JWTConfig
	Users map[string]string
}

func (c *Config) applyDefaults() {
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 60 * time.Second
	}
}
