package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/sharefs/internal/bytesize"
)

func TestAPIServerConfig(t *testing.T) {
	c := APIConfig{
		Port:         8081,
		ReadTimeout:  time.Second,
		WriteTimeout: 2 * time.Second,
		IdleTimeout:  3 * time.Second,
		MaxBodySize:  4 * bytesize.MiB,
	}

	sc := c.ServerConfig()
	assert.Equal(t, 8081, sc.Port)
	assert.Equal(t, time.Second, sc.ReadTimeout)
	assert.Equal(t, 3*time.Second, sc.IdleTimeout)
	assert.EqualValues(t, 4<<20, sc.MaxBodySize)
	assert.Nil(t, sc.Auth)

	c.Auth = AuthConfig{
		Enabled:   true,
		JWTSecret: "0123456789abcdef0123456789abcdef",
		Issuer:    "corp",
		TokenTTL:  time.Minute,
		Users:     []UserConfig{{Username: "alice", PasswordHash: "h1"}, {Username: "bob", PasswordHash: "h2"}},
	}
	sc = c.ServerConfig()
	require.NotNil(t, sc.Auth)
	assert.Equal(t, map[string]string{"alice": "h1", "bob": "h2"}, sc.Auth.Users)
	assert.Equal(t, "corp", sc.Auth.JWT.Issuer)
	assert.Equal(t, time.Minute, sc.Auth.JWT.TokenTTL)

	assert.True(t, c.Auth.HasUser("bob"))
	assert.False(t, c.Auth.HasUser("carol"))
}
