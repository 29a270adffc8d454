package gosmb2

import (
	"context"
	"os"
	"strings"

	"github.com/hirochachacha/go-smb2"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// relative converts a \\host\share\a\b path into the share-relative a\b
// form go-smb2 expects.
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

// openFlags maps a disposition and access mask onto os.OpenFile flags the
// way go-smb2 maps them back to CREATE dispositions.
func openFlags(d types.CreateDisposition, access uint32) (int, bool) {
	var flag int
	switch d {
	case types.FileOpen:
	case types.FileCreate:
		flag = os.O_CREATE | os.O_EXCL
	case types.FileOpenIf:
		flag = os.O_CREATE
	case types.FileOverwrite:
		flag = os.O_TRUNC
	case types.FileOverwriteIf, types.FileSupersede:
		flag = os.O_CREATE | os.O_TRUNC
	default:
		return 0, false
	}

	switch {
	case types.HasWriteAccess(access) && access&(types.GenericRead|types.GenericAll|types.FileReadData) != 0:
		flag |= os.O_RDWR
	case types.HasWriteAccess(access):
		flag |= os.O_WRONLY
	default:
		flag |= os.O_RDONLY
	}
	return flag, true
}

func (s *session) Create(ctx context.Context, path string, req smbclient.CreateRequest) (smbclient.Handle, error) {
	fail := func(status types.Status) (smbclient.Handle, error) {
		return nil, smbclient.NewResponseError("create", path, status)
	}

	rel, ok := s.relative(path)
	if !ok {
		return fail(types.StatusBadNetworkName)
	}
	wantDir := req.Options&types.FileDirectoryFile != 0
	wantFile := req.Options&types.FileNonDirectoryFile != 0
	if wantDir && wantFile {
		return fail(types.StatusInvalidParameter)
	}
	if req.Options&types.FileDeleteOnClose != 0 {
		if !types.HasDeleteAccess(req.DesiredAccess) {
			return fail(types.StatusInvalidParameter)
		}
		return s.deleteOnOpen(ctx, path, rel, wantDir, wantFile)
	}

	share := s.share.WithContext(ctx)

	if wantDir {
		return s.openDirectory(share, path, rel, req.Disposition)
	}

	flag, ok := openFlags(req.Disposition, req.DesiredAccess)
	if !ok {
		return fail(types.StatusInvalidParameter)
	}
	perm := os.FileMode(0o644)
	if req.Attributes&types.FileAttributeReadonly != 0 {
		perm = 0o444
	}
	f, err := share.OpenFile(rel, flag, perm)
	if err != nil {
		return nil, convertError("create", path, err)
	}
	h, err := newHandle(share, f, path, rel)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if wantFile && h.kind == smbclient.HandleDirectory {
		_ = f.Close()
		return fail(types.StatusFileIsADirectory)
	}
	return h.typed(), nil
}

// openDirectory handles FILE_DIRECTORY_FILE requests.
func (s *session) openDirectory(share *smb2.Share, path, rel string, d types.CreateDisposition) (smbclient.Handle, error) {
	switch d {
	case types.FileOpen:
	case types.FileCreate, types.FileOpenIf:
		if err := share.Mkdir(rel, 0o755); err != nil {
			err = convertError("create", path, err)
			if d == types.FileCreate || !statusIs(err, types.StatusObjectNameCollision) {
				return nil, err
			}
		}
	default:
		return nil, smbclient.NewResponseError("create", path, types.StatusInvalidParameter)
	}

	f, err := share.OpenFile(rel, os.O_RDONLY, 0)
	if err != nil {
		return nil, convertError("create", path, err)
	}
	h, err := newHandle(share, f, path, rel)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if h.kind != smbclient.HandleDirectory {
		_ = f.Close()
		return nil, smbclient.NewResponseError("create", path, types.StatusNotADirectory)
	}
	return h.typed(), nil
}

// deleteOnOpen emulates FILE_DELETE_ON_CLOSE. The object is checked against
// the kind options and removed before Create returns.
func (s *session) deleteOnOpen(ctx context.Context, path, rel string, wantDir, wantFile bool) (smbclient.Handle, error) {
	if rel == "" {
		return nil, smbclient.NewResponseError("create", path, types.StatusCannotDelete)
	}
	share := s.share.WithContext(ctx)

	fi, err := share.Stat(rel)
	if err != nil {
		return nil, convertError("create", path, err)
	}
	kind := smbclient.HandleFile
	if fi.IsDir() {
		kind = smbclient.HandleDirectory
	}
	switch {
	case wantDir && kind != smbclient.HandleDirectory:
		return nil, smbclient.NewResponseError("create", path, types.StatusNotADirectory)
	case wantFile && kind == smbclient.HandleDirectory:
		return nil, smbclient.NewResponseError("create", path, types.StatusFileIsADirectory)
	}

	if err := share.Remove(rel); err != nil {
		return nil, convertError("create", path, err)
	}
	return deletedHandle{kind: kind}, nil
}

// deletedHandle stands in for a delete-on-close handle whose object is
// already gone.
type deletedHandle struct {
	kind smbclient.HandleKind
}

func (h deletedHandle) Kind() smbclient.HandleKind { return h.kind }
func (deletedHandle) Close() error                 { return nil }
