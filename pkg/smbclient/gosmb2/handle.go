package gosmb2

import (
	"fmt"
	"io/fs"
	"iter"
	"path"
	"strings"

	"github.com/hirochachacha/go-smb2"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

type handle struct {
	share  *smb2.Share
	f      *smb2.File
	path   string // \\host\share\rel, for errors
	rel    string
	kind   smbclient.HandleKind
	closed bool
}

func newHandle(share *smb2.Share, f *smb2.File, path, rel string) (*handle, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, convertError("query_info", path, err)
	}
	kind := smbclient.HandleFile
	if fi.IsDir() {
		kind = smbclient.HandleDirectory
	}
	return &handle{share: share, f: f, path: path, rel: rel, kind: kind}, nil
}

// typed wraps h in the smbclient interface matching its kind.
func (h *handle) typed() smbclient.Handle {
	if h.kind == smbclient.HandleDirectory {
		return &dirHandle{h}
	}
	return &fileHandle{h}
}

func (h *handle) Kind() smbclient.HandleKind { return h.kind }

func (h *handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return convertError("close", h.path, h.f.Close())
}

func (h *handle) stat() (*smb2.FileStat, error) {
	fi, err := h.f.Stat()
	if err != nil {
		return nil, convertError("query_info", h.path, err)
	}
	st, ok := fi.(*smb2.FileStat)
	if !ok {
		return nil, fmt.Errorf("query_info %s: unexpected file info %T", h.path, fi)
	}
	return st, nil
}

func (h *handle) QueryBasicInfo() (smbclient.BasicInformation, error) {
	st, err := h.stat()
	if err != nil {
		return smbclient.BasicInformation{}, err
	}
	return smbclient.BasicInformation{
		CreationTime:   types.TimeToFiletime(st.CreationTime),
		LastAccessTime: types.TimeToFiletime(st.LastAccessTime),
		LastWriteTime:  types.TimeToFiletime(st.LastWriteTime),
		ChangeTime:     types.TimeToFiletime(st.ChangeTime),
		FileAttributes: st.FileAttributes,
	}, nil
}

// QueryStandardInfo reports one link: go-smb2 does not expose
// FileStandardInformation.NumberOfLinks.
func (h *handle) QueryStandardInfo() (smbclient.StandardInformation, error) {
	st, err := h.stat()
	if err != nil {
		return smbclient.StandardInformation{}, err
	}
	return smbclient.StandardInformation{
		AllocationSize: uint64(max(st.AllocationSize, 0)),
		EndOfFile:      uint64(max(st.EndOfFile, 0)),
		NumberOfLinks:  1,
		Directory:      st.FileAttributes&types.FileAttributeDirectory != 0,
	}, nil
}

// SetRenameInfo releases the handle and renames by path. go-smb2 cannot
// send ReplaceIfExists, so a collision with an existing file is resolved by
// replaceRename; an existing directory is refused as the server would.
func (h *handle) SetRenameInfo(info smbclient.RenameInformation) error {
	fail := func(status types.Status) error {
		return smbclient.NewResponseError("set_info", h.path, status)
	}
	if h.closed {
		return fail(types.StatusFileClosed)
	}
	if info.RootDirectory != 0 {
		return fail(types.StatusNotSupported)
	}
	dest := strings.Trim(info.FileName, `\`)
	if dest == "" {
		return fail(types.StatusObjectNameInvalid)
	}
	if h.rel == "" {
		return fail(types.StatusAccessDenied)
	}
	if err := h.Close(); err != nil {
		return err
	}

	err := convertError("set_info", h.path, h.share.Rename(h.rel, dest))
	if err == nil || !info.ReplaceIfExists || !statusIs(err, types.StatusObjectNameCollision) {
		return err
	}
	return replaceRename(h.share, h.path, h.rel, dest, err)
}

type fileHandle struct {
	*handle
}

func (f *fileHandle) Read(p []byte) (int, error) {
	n, err := f.f.Read(p)
	return n, convertError("read", f.path, err)
}

func (f *fileHandle) Write(p []byte) (int, error) {
	n, err := f.f.Write(p)
	return n, convertError("write", f.path, err)
}

type dirHandle struct {
	*handle
}

// QueryDirectory lists the directory in one go. go-smb2 decodes the whole
// response before returning, so a malformed record fails the query instead
// of a single entry.
func (d *dirHandle) QueryDirectory(pattern string) (iter.Seq2[smbclient.DirEntry, error], error) {
	if pattern == "" {
		pattern = "*"
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, smbclient.NewResponseError("query_directory", d.path, types.StatusInvalidParameter)
	}

	infos, err := d.f.Readdir(-1)
	if err != nil {
		return nil, convertError("query_directory", d.path, err)
	}

	return func(yield func(smbclient.DirEntry, error) bool) {
		for i, fi := range infos {
			if pattern != "*" {
				if ok, _ := path.Match(strings.ToLower(pattern), strings.ToLower(fi.Name())); !ok {
					continue
				}
			}
			entry, err := dirEntry(fi)
			if err != nil {
				err = &smbclient.DecodeError{Index: i, Err: err}
			}
			if !yield(entry, err) {
				return
			}
		}
	}, nil
}

func dirEntry(fi fs.FileInfo) (smbclient.DirEntry, error) {
	st, ok := fi.(*smb2.FileStat)
	if !ok {
		return smbclient.DirEntry{}, fmt.Errorf("unexpected file info %T", fi)
	}
	if st.FileName == "" {
		return smbclient.DirEntry{}, fmt.Errorf("entry without a name")
	}
	return smbclient.DirEntry{
		FileName:       st.FileName,
		FileAttributes: st.FileAttributes,
		EndOfFile:      uint64(max(st.EndOfFile, 0)),
		LastWriteTime:  st.LastWriteTime,
	}, nil
}
