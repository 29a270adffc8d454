package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/sharefs/pkg/api/auth"
)

func TestServerLifecycle(t *testing.T) {
	srv, err := NewServer(Config{}, newTestShare(t), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() { errChan <- srv.Start(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	addr, err := srv.Addr(waitCtx)
	require.NoError(t, err)

	port := addr.(*net.TCPAddr).Port
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health/ready", port))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}

	// Stop after shutdown is a no-op.
	assert.NoError(t, srv.Stop(context.Background()))
}

func TestNewServerAuthValidation(t *testing.T) {
	share := newTestShare(t)

	_, err := NewServer(Config{Auth: &AuthConfig{JWT: auth.JWTConfig{Secret: "short"}}}, share, nil)
	assert.ErrorIs(t, err, auth.ErrInvalidSecretLength)

	_, err = NewServer(Config{Auth: &AuthConfig{JWT: auth.JWTConfig{Secret: testSecret}}}, share, nil)
	assert.Error(t, err)

	srv, err := NewServer(Config{Auth: &AuthConfig{
		JWT:   auth.JWTConfig{Secret: testSecret},
		Users: map[string]string{"alice": "$2a$10$abcdefghijklmnopqrstuuvwxyzABCDEFGHIJKLMNOPQRSTUVWXY"},
	}}, share, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, srv.Port())
}
