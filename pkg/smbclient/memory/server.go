// Package memory implements an in-process SMB share with NT_STATUS semantics.
//
// It is the backend used by unit tests and by `backend: memory` for local
// demos. Semantics follow what a Windows or Samba server does for the subset of
// CREATE, READ, WRITE, QUERY_INFO, QUERY_DIRECTORY and SET_INFO that the share
// adapter issues: create dispositions, directory/non-directory create
// options, delete-on-close with delete-pending, rename collisions.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// Op names a protocol request for fault injection.
type Op string

const (
	OpCreate         Op = "create"
	OpRead           Op = "read"
	OpWrite          Op = "write"
	OpQueryInfo      Op = "query_info"
	OpQueryDirectory Op = "query_directory"
	OpSetInfo        Op = "set_info"
)

// FaultFunc is consulted before every request. A non-nil error is returned
// to the caller instead of executing the request. path is share-relative.
// The hook runs with the server locked and must not call back into it.
type FaultFunc func(op Op, path string) error

// Server is an in-memory share. It is safe for concurrent use by any number
// of sessions.
type Server struct {
	mu sync.Mutex

	host  string
	share string
	users map[string]string
	now   func() time.Time
	fault FaultFunc
	root  *node

	creates int
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithUser registers an account. A server with no accounts accepts any
// credentials.
func WithUser(username, password string) Option {
	return func(s *Server) { s.users[strings.ToLower(username)] = password }
}

// NewServer creates an empty share \\host\share.
func NewServer(host, share string, opts ...Option) *Server {
	s := &Server{
		host:  host,
		share: share,
		users: make(map[string]string),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.root = newNode("", true, nil, s.now())
	return s
}

// Address returns the address sessions should dial.
func (s *Server) Address() smbclient.ShareAddress {
	return smbclient.ShareAddress{Host: s.host, Share: s.share}
}

// SetFault installs fn as the fault hook; nil removes it.
func (s *Server) SetFault(fn FaultFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = fn
}

// MarkCorrupt makes directory enumeration fail to decode the entry at rel.
func (s *Server) MarkCorrupt(rel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	segs, status := splitRel(rel)
	if status != types.StatusSuccess {
		return smbclient.NewResponseError("mark", rel, status)
	}
	n := s.root.lookup(segs)
	if n == nil {
		return smbclient.NewResponseError("mark", rel, types.StatusObjectNameNotFound)
	}
	n.corrupt = true
	return nil
}

// CreateCount returns how many CREATE requests the server has answered.
func (s *Server) CreateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creates
}

// Dial implements smbclient.Dialer.
func (s *Server) Dial(ctx context.Context, addr smbclient.ShareAddress, creds smbclient.Credentials) (smbclient.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !strings.EqualFold(addr.Host, s.host) {
		return nil, fmt.Errorf("dial %s: no route to host", addr.DialAddr())
	}
	if len(s.users) > 0 {
		pw, ok := s.users[strings.ToLower(creds.Username)]
		if !ok || pw != creds.Password {
			return nil, smbclient.NewResponseError("session setup", "", types.StatusLogonFailure)
		}
	}
	if !strings.EqualFold(addr.Share, s.share) {
		return nil, smbclient.NewResponseError("tree connect", addr.Root(), types.StatusBadNetworkName)
	}
	return &session{srv: s, root: smbclient.ShareAddress{Host: s.host, Share: s.share}.Root()}, nil
}

func (s *Server) injected(op Op, rel string) error {
	if s.fault == nil {
		return nil
	}
	return s.fault(op, rel)
}

// splitRel splits a share-relative backslash path into segments.
func splitRel(rel string) ([]string, types.Status) {
	rel = strings.Trim(rel, `\`)
	if rel == "" {
		return nil, types.StatusSuccess
	}
	segs := strings.Split(rel, `\`)
	for _, seg := range segs {
		switch seg {
		case "":
			return nil, types.StatusObjectNameInvalid
		case ".", "..":
			return nil, types.StatusObjectPathSyntaxBad
		}
		if strings.ContainsAny(seg, `/:*?"<>|`) {
			return nil, types.StatusObjectNameInvalid
		}
	}
	return segs, types.StatusSuccess
}
