package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/pkg/api/auth"
	"github.com/marmos91/sharefs/pkg/api/handlers"
	"github.com/marmos91/sharefs/pkg/metrics"
)

// Server is the gateway HTTP server. It serves one share connection; see
// NewRouter for the endpoints.
//
// Requests are serialized by the connection itself, so a slow transfer
// delays every other request.
type Server struct {
	server       *http.Server
	config       Config
	jwt          *auth.JWTService
	ready        chan struct{}
	addr         net.Addr
	shutdownOnce sync.Once
}

// NewServer creates a stopped gateway server for fs. Token authentication
// is enabled when config.Auth is set, in which case the JWT secret must be
// at least 32 characters.
func NewServer(config Config, fs handlers.FS, m metrics.APIMetrics) (*Server, error) {
	config.applyDefaults()

	var (
		jwt      *auth.JWTService
		accounts handlers.Authenticator
	)
	if config.Auth != nil {
		svc, err := auth.NewJWTService(config.Auth.JWT)
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT service: %w", err)
		}
		if len(config.Auth.Users) == 0 {
			return nil, errors.New("gateway auth enabled without users")
		}
		jwt = svc
		accounts = auth.NewAccounts(config.Auth.Users)
	}

	return &Server{
		server: &http.Server{
			Addr:              net.JoinHostPort("", strconv.Itoa(config.Port)),
			Handler:           NewRouter(config, fs, jwt, accounts, m),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       config.ReadTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
		},
		config: config,
		jwt:    jwt,
		ready:  make(chan struct{}),
	}, nil
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("API server listen: %w", err)
	}
	s.addr = ln.Addr()
	close(s.ready)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("API server listening",
			logger.Address(s.addr.String()),
			"auth", s.jwt != nil)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("API server shutdown signal received")
		// ctx is already cancelled; give shutdown its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("API server failed: %w", err)
	}
}

// Stop shuts the server down. Safe to call more than once and
// concurrently with Start.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("API server shutdown: %w", err)
			logger.Error("API server shutdown failed", logger.Err(err))
			return
		}
		logger.Info("API server stopped")
	})
	return shutdownErr
}

// Addr blocks until Start has bound the listener and returns its address.
func (s *Server) Addr(ctx context.Context) (net.Addr, error) {
	select {
	case <-s.ready:
		return s.addr, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Port returns the configured port.
func (s *Server) Port() int {
	return s.config.Port
}
