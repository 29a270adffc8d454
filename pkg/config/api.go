package config

import (
	"github.com/marmos91/sharefs/pkg/api"
	"github.com/marmos91/sharefs/pkg/api/auth"
)

// JWTConfig returns the token settings of the gateway.
func (a AuthConfig) JWTConfig() auth.JWTConfig {
	return auth.JWTConfig{
		Secret:   a.JWTSecret,
		Issuer:   a.Issuer,
		TokenTTL: a.TokenTTL,
	}
}

// HasUser reports whether username is a configured gateway account.
func (a AuthConfig) HasUser(username string) bool {
	for _, u := range a.Users {
		if u.Username == username {
			return true
		}
	}
	return false
}

// ServerConfig maps the gateway section onto the HTTP server settings.
func (c APIConfig) ServerConfig() api.Config {
	sc := api.Config{
		Port:         c.Port,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		IdleTimeout:  c.IdleTimeout,
		MaxBodySize:  c.MaxBodySize.Int64(),
	}
	if c.Auth.Enabled {
		users := make(map[string]string, len(c.Auth.Users))
		for _, u := range c.Auth.Users {
			users[u.Username] = u.PasswordHash
		}
		sc.Auth = &api.AuthConfig{JWT: c.Auth.JWTConfig(), Users: users}
	}
	return sc
}
