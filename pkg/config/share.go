package config

import (
	"context"
	"errors"
	"strings"

	"github.com/marmos91/sharefs/pkg/sharefs"
	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/gosmb2"
	"github.com/marmos91/sharefs/pkg/smbclient/memory"
)

// ErrNoShare is returned when no share address has been configured.
var ErrNoShare = errors.New("no share configured: set share.address, SHAREFS_SHARE_ADDRESS or --share")

// Principal returns Username qualified with Domain when Username carries
// no domain of its own.
func (s ShareConfig) Principal() string {
	if s.Domain == "" || strings.ContainsAny(s.Username, `\@`) {
		return s.Username
	}
	return s.Domain + `\` + s.Username
}

// NewDialer returns the client for Backend.
func (s ShareConfig) NewDialer() (smbclient.Dialer, error) {
	if s.Backend != BackendMemory {
		return gosmb2.NewDialer(gosmb2.WithDialTimeout(s.DialTimeout)), nil
	}
	if s.Address == "" {
		return nil, ErrNoShare
	}
	addr, err := sharefs.ParseShareAddress(s.Address)
	if err != nil {
		return nil, err
	}
	return memory.NewServer(addr.Host, addr.Share), nil
}

// Connect opens a Conn to the configured share. m may be nil.
func (s ShareConfig) Connect(ctx context.Context, m sharefs.Metrics) (*sharefs.Conn, error) {
	if s.Address == "" {
		return nil, ErrNoShare
	}
	dialer, err := s.NewDialer()
	if err != nil {
		return nil, err
	}
	return sharefs.Connect(ctx, dialer, s.Address, s.Principal(), s.Password,
		sharefs.WithMaxReadSize(s.MaxReadSize.Int64()),
		sharefs.WithMetrics(m))
}
