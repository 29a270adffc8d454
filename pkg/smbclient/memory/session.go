package memory

import (
	"context"
	"strings"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

type session struct {
	srv    *Server
	root   string
	closed bool
}

func (s *session) Root() string { return s.root }

func (s *session) Close() error {
	s.srv.mu.Lock()
	defer s.srv.mu.Unlock()
	s.closed = true
	return nil
}

// relative strips the \\host\share prefix from path.
func (s *session) relative(path string) (string, bool) {
	if len(path) < len(s.root) || !strings.EqualFold(path[:len(s.root)], s.root) {
		return "", false
	}
	rest := path[len(s.root):]
	if rest != "" && rest[0] != '\\' {
		return "", false
	}
	return strings.TrimPrefix(rest, `\`), true
}

func (s *session) Create(ctx context.Context, path string, req smbclient.CreateRequest) (smbclient.Handle, error) {
	srv := s.srv
	srv.mu.Lock()
	defer srv.mu.Unlock()

	fail := func(status types.Status) (smbclient.Handle, error) {
		return nil, smbclient.NewResponseError("create", path, status)
	}

	if s.closed {
		return fail(types.StatusUserSessionDeleted)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, ok := s.relative(path)
	if !ok {
		return fail(types.StatusBadNetworkName)
	}

	srv.creates++
	if err := srv.injected(OpCreate, rel); err != nil {
		return nil, err
	}

	segs, status := splitRel(rel)
	if status != types.StatusSuccess {
		return fail(status)
	}

	wantDir := req.Options&types.FileDirectoryFile != 0
	wantFile := req.Options&types.FileNonDirectoryFile != 0
	deleteOnClose := req.Options&types.FileDeleteOnClose != 0
	if wantDir && wantFile {
		return fail(types.StatusInvalidParameter)
	}
	if deleteOnClose && !types.HasDeleteAccess(req.DesiredAccess) {
		return fail(types.StatusInvalidParameter)
	}

	now := srv.now()
	n := srv.root
	if len(segs) > 0 {
		parent := srv.root.lookup(segs[:len(segs)-1])
		if parent == nil || !parent.dir {
			return fail(types.StatusObjectPathNotFound)
		}
		name := segs[len(segs)-1]
		n = parent.child(name)
		if n == nil {
			if !req.Disposition.CreatesMissing() {
				return fail(types.StatusObjectNameNotFound)
			}
			if parent.deletePending {
				return fail(types.StatusDeletePending)
			}
			n = newNode(name, wantDir, parent, now)
			n.attrs |= req.Attributes &^ (types.FileAttributeNormal | types.FileAttributeDirectory)
			parent.link(n)
			parent.mtime, parent.ctime = now, now
			return s.open(n, rel, req.DesiredAccess, deleteOnClose), nil
		}
	}

	if n.deletePending {
		return fail(types.StatusDeletePending)
	}
	if req.Disposition == types.FileCreate {
		return fail(types.StatusObjectNameCollision)
	}
	if wantDir && !n.dir {
		return fail(types.StatusNotADirectory)
	}
	if n.dir && (wantFile || req.Disposition.Truncates()) {
		return fail(types.StatusFileIsADirectory)
	}
	if deleteOnClose {
		switch {
		case n == srv.root, n.attrs&types.FileAttributeReadonly != 0:
			return fail(types.StatusCannotDelete)
		case n.dir && len(n.children) > 0:
			return fail(types.StatusDirectoryNotEmpty)
		}
	}
	if !n.dir && req.Disposition.Truncates() {
		n.data = nil
		n.mtime, n.ctime = now, now
	}
	return s.open(n, rel, req.DesiredAccess, deleteOnClose), nil
}

func (s *session) open(n *node, rel string, access uint32, deleteOnClose bool) smbclient.Handle {
	n.openCount++
	h := &handle{
		sess:          s,
		n:             n,
		rel:           rel,
		access:        access,
		deleteOnClose: deleteOnClose,
	}
	if n.dir {
		return &dirHandle{handle: h}
	}
	return &fileHandle{handle: h}
}
