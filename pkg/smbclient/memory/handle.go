package memory

import (
	"io"
	"iter"
	"path"
	"strings"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

type handle struct {
	sess          *session
	n             *node
	rel           string
	access        uint32
	deleteOnClose bool
	closed        bool
}

func (h *handle) fail(op string, status types.Status) error {
	return smbclient.NewResponseError(op, h.sess.root+`\`+h.rel, status)
}

// check validates the handle and runs the fault hook. Callers hold srv.mu.
func (h *handle) check(op Op) error {
	if h.sess.closed {
		return h.fail(string(op), types.StatusUserSessionDeleted)
	}
	if h.closed {
		return h.fail(string(op), types.StatusFileClosed)
	}
	return h.sess.srv.injected(op, h.rel)
}

func (h *handle) Close() error {
	srv := h.sess.srv
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if h.closed {
		return h.fail("close", types.StatusFileClosed)
	}
	h.closed = true
	n := h.n
	n.openCount--
	if h.deleteOnClose {
		n.deletePending = true
	}
	if n.deletePending && n.openCount == 0 {
		if n.parent != nil {
			now := srv.now()
			n.parent.mtime, n.parent.ctime = now, now
		}
		n.unlink()
	}
	return nil
}

func (h *handle) QueryBasicInfo() (smbclient.BasicInformation, error) {
	srv := h.sess.srv
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := h.check(OpQueryInfo); err != nil {
		return smbclient.BasicInformation{}, err
	}
	n := h.n
	return smbclient.BasicInformation{
		CreationTime:   types.TimeToFiletime(n.btime),
		LastAccessTime: types.TimeToFiletime(n.atime),
		LastWriteTime:  types.TimeToFiletime(n.mtime),
		ChangeTime:     types.TimeToFiletime(n.ctime),
		FileAttributes: n.fileAttributes(),
	}, nil
}

func (h *handle) QueryStandardInfo() (smbclient.StandardInformation, error) {
	srv := h.sess.srv
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := h.check(OpQueryInfo); err != nil {
		return smbclient.StandardInformation{}, err
	}
	n := h.n
	return smbclient.StandardInformation{
		AllocationSize: n.allocationSize(),
		EndOfFile:      uint64(len(n.data)),
		NumberOfLinks:  1,
		DeletePending:  n.deletePending,
		Directory:      n.dir,
	}, nil
}

func (h *handle) SetRenameInfo(info smbclient.RenameInformation) error {
	srv := h.sess.srv
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := h.check(OpSetInfo); err != nil {
		return err
	}
	if !types.HasDeleteAccess(h.access) {
		return h.fail("set_info", types.StatusAccessDenied)
	}
	if info.RootDirectory != 0 {
		return h.fail("set_info", types.StatusNotSupported)
	}
	segs, status := splitRel(info.FileName)
	if status != types.StatusSuccess {
		return h.fail("set_info", status)
	}
	if len(segs) == 0 {
		return h.fail("set_info", types.StatusObjectNameInvalid)
	}

	n := h.n
	if n == srv.root {
		return h.fail("set_info", types.StatusAccessDenied)
	}
	if n.deletePending {
		return h.fail("set_info", types.StatusDeletePending)
	}
	parent := srv.root.lookup(segs[:len(segs)-1])
	if parent == nil || !parent.dir {
		return h.fail("set_info", types.StatusObjectPathNotFound)
	}
	if n.dir && n.isAncestorOf(parent) {
		return h.fail("set_info", types.StatusInvalidParameter)
	}

	name := segs[len(segs)-1]
	if existing := parent.child(name); existing != nil && existing != n {
		if !info.ReplaceIfExists {
			return h.fail("set_info", types.StatusObjectNameCollision)
		}
		if existing.dir {
			return h.fail("set_info", types.StatusAccessDenied)
		}
		if existing.openCount > 0 {
			return h.fail("set_info", types.StatusSharingViolation)
		}
		existing.unlink()
	}

	now := srv.now()
	if n.parent != nil {
		n.parent.mtime = now
	}
	n.unlink()
	n.name = name
	parent.link(n)
	parent.mtime = now
	n.ctime = now
	h.rel = strings.Join(segs, `\`)
	return nil
}

type fileHandle struct {
	*handle
	offset int
}

func (f *fileHandle) Kind() smbclient.HandleKind { return smbclient.HandleFile }

func (f *fileHandle) Read(p []byte) (int, error) {
	srv := f.sess.srv
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := f.check(OpRead); err != nil {
		return 0, err
	}
	if f.offset >= len(f.n.data) {
		return 0, io.EOF
	}
	n := copy(p, f.n.data[f.offset:])
	f.offset += n
	f.n.atime = srv.now()
	return n, nil
}

func (f *fileHandle) Write(p []byte) (int, error) {
	srv := f.sess.srv
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := f.check(OpWrite); err != nil {
		return 0, err
	}
	if !types.HasWriteAccess(f.access) {
		return 0, f.fail("write", types.StatusAccessDenied)
	}
	end := f.offset + len(p)
	if end > len(f.n.data) {
		grown := make([]byte, end)
		copy(grown, f.n.data)
		f.n.data = grown
	}
	copy(f.n.data[f.offset:], p)
	f.offset = end
	now := srv.now()
	f.n.mtime, f.n.ctime = now, now
	return len(p), nil
}

type dirHandle struct {
	*handle
}

func (d *dirHandle) Kind() smbclient.HandleKind { return smbclient.HandleDirectory }

type dirResult struct {
	entry smbclient.DirEntry
	err   error
}

func (d *dirHandle) QueryDirectory(pattern string) (iter.Seq2[smbclient.DirEntry, error], error) {
	srv := d.sess.srv
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := d.check(OpQueryDirectory); err != nil {
		return nil, err
	}
	if pattern == "" {
		pattern = "*"
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, d.fail("query_directory", types.StatusInvalidParameter)
	}

	self := d.n
	parent := self.parent
	if parent == nil {
		parent = self
	}
	dots := []smbclient.DirEntry{
		{FileName: ".", FileAttributes: self.fileAttributes(), LastWriteTime: self.mtime},
		{FileName: "..", FileAttributes: parent.fileAttributes(), LastWriteTime: parent.mtime},
	}

	var results []dirResult
	for _, e := range dots {
		if match(pattern, e.FileName) {
			results = append(results, dirResult{entry: e})
		}
	}
	for i, c := range self.sortedChildren() {
		if !match(pattern, c.name) {
			continue
		}
		if c.corrupt {
			results = append(results, dirResult{err: &smbclient.DecodeError{
				Index: i + len(dots),
				Err:   io.ErrUnexpectedEOF,
			}})
			continue
		}
		results = append(results, dirResult{entry: smbclient.DirEntry{
			FileName:       c.name,
			FileAttributes: c.fileAttributes(),
			EndOfFile:      uint64(len(c.data)),
			LastWriteTime:  c.mtime,
		}})
	}
	self.atime = srv.now()

	return func(yield func(smbclient.DirEntry, error) bool) {
		for _, r := range results {
			if !yield(r.entry, r.err) {
				return
			}
		}
	}, nil
}

func match(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	ok, _ := path.Match(strings.ToLower(pattern), strings.ToLower(name))
	return ok
}
