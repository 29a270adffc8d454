// Package gosmb2 implements smbclient on top of github.com/hirochachacha/go-smb2.
//
// go-smb2 exposes a path-oriented API (OpenFile, Mkdir, Remove, Rename)
// rather than raw CREATE requests. Create translates a CreateRequest into
// the closest sequence of those calls and reproduces the NT_STATUS outcome
// a server would give for the request:
//
//   - FILE_DIRECTORY_FILE with a creating disposition issues Mkdir first.
//   - Directory and non-directory options are checked against the opened
//     object's attributes.
//   - FILE_DELETE_ON_CLOSE removes the object during Create; the returned
//     handle's Close does nothing.
//   - SetRenameInfo closes the handle and renames by path.
package gosmb2

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/hirochachacha/go-smb2"

	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/pkg/smbclient"
)

// DefaultDialTimeout bounds the TCP connect when the caller's context has
// no deadline.
const DefaultDialTimeout = 10 * time.Second

// Dialer dials SMB2/3 servers with NTLM authentication.
type Dialer struct {
	timeout time.Duration
}

// Option configures a Dialer.
type Option func(*Dialer)

// WithDialTimeout overrides DefaultDialTimeout. Zero disables the timeout.
func WithDialTimeout(d time.Duration) Option {
	return func(dl *Dialer) { dl.timeout = d }
}

// NewDialer creates a Dialer.
func NewDialer(opts ...Option) *Dialer {
	d := &Dialer{timeout: DefaultDialTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dial implements smbclient.Dialer.
func (d *Dialer) Dial(ctx context.Context, addr smbclient.ShareAddress, creds smbclient.Credentials) (smbclient.Session, error) {
	nd := net.Dialer{Timeout: d.timeout}
	conn, err := nd.DialContext(ctx, "tcp", addr.DialAddr())
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr.DialAddr(), err)
	}

	sd := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     creds.Username,
			Password: creds.Password,
			Domain:   creds.Domain,
		},
	}
	s, err := sd.DialContext(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return nil, convertError("session setup", "", err)
	}

	root := addr.Root()
	share, err := s.WithContext(ctx).Mount(root)
	if err != nil {
		_ = s.Logoff()
		_ = conn.Close()
		return nil, convertError("tree connect", root, err)
	}

	logger.Debug("smb2 session established",
		logger.Share(root),
		logger.Address(conn.RemoteAddr().String()),
		logger.Username(creds.Username))

	return &session{
		conn:  conn,
		smb:   s,
		share: share,
		root:  root,
	}, nil
}

type session struct {
	conn  net.Conn
	smb   *smb2.Session
	share *smb2.Share
	root  string
}

func (s *session) Root() string { return s.root }

func (s *session) Close() error {
	errUmount := s.share.Umount()
	errLogoff := s.smb.Logoff()
	errConn := s.conn.Close()
	if errors.Is(errConn, net.ErrClosed) {
		errConn = nil
	}
	return errors.Join(
		convertError("tree disconnect", s.root, errUmount),
		convertError("logoff", "", errLogoff),
		errConn,
	)
}
