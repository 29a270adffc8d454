package sessiontest

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// SessionFactory returns a session to an empty share. The factory owns
// teardown via t.Cleanup.
type SessionFactory func(t *testing.T) smbclient.Session

// RunConformanceSuite runs the full suite. Each subtest gets a fresh session.
func RunConformanceSuite(t *testing.T, factory SessionFactory) {
	t.Helper()

	t.Run("FileOps", func(t *testing.T) {
		runFileOpsTests(t, factory)
	})

	t.Run("DirOps", func(t *testing.T) {
		runDirOpsTests(t, factory)
	})

	t.Run("Rename", func(t *testing.T) {
		runRenameTests(t, factory)
	})
}

// join appends share-relative segments to the session root.
func join(sess smbclient.Session, segs ...string) string {
	p := sess.Root()
	for _, s := range segs {
		p += `\` + s
	}
	return p
}

func writeFile(t *testing.T, sess smbclient.Session, path string, data []byte) {
	t.Helper()

	h, err := sess.Create(t.Context(), path, smbclient.CreateRequest{
		DesiredAccess: types.GenericRead | types.GenericWrite,
		Disposition:   types.FileOverwriteIf,
		Options:       types.FileNonDirectoryFile,
		Attributes:    types.FileAttributeNormal,
	})
	require.NoError(t, err, "create %s", path)
	defer func() { _ = h.Close() }()

	f, ok := h.(smbclient.File)
	require.True(t, ok, "expected file handle for %s, got %s", path, h.Kind())
	n, err := f.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
}

func readFile(t *testing.T, sess smbclient.Session, path string) []byte {
	t.Helper()

	h, err := sess.Create(t.Context(), path, smbclient.CreateRequest{
		DesiredAccess: types.GenericRead,
		Disposition:   types.FileOpen,
	})
	require.NoError(t, err, "open %s", path)
	defer func() { _ = h.Close() }()

	f, ok := h.(smbclient.File)
	require.True(t, ok, "expected file handle for %s", path)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return data
}

func mkdir(t *testing.T, sess smbclient.Session, path string) {
	t.Helper()

	h, err := sess.Create(t.Context(), path, smbclient.CreateRequest{
		DesiredAccess: types.GenericRead | types.GenericWrite,
		Disposition:   types.FileCreate,
		Options:       types.FileDirectoryFile,
		Attributes:    types.FileAttributeDirectory,
	})
	require.NoError(t, err, "mkdir %s", path)
	require.NoError(t, h.Close())
}

func open(t *testing.T, sess smbclient.Session, path string, options uint32) (smbclient.Handle, error) {
	t.Helper()

	return sess.Create(t.Context(), path, smbclient.CreateRequest{
		DesiredAccess: types.GenericRead,
		Disposition:   types.FileOpen,
		Options:       options,
	})
}

func requireStatus(t *testing.T, err error, want types.Status) {
	t.Helper()

	require.Error(t, err)
	got, ok := smbclient.StatusOf(err)
	require.True(t, ok, "expected a response error, got %T: %v", err, err)
	require.Equal(t, want, got, "unexpected status: %v", err)
}

func exists(t *testing.T, sess smbclient.Session, path string) bool {
	t.Helper()

	h, err := open(t, sess, path, 0)
	if err != nil {
		return false
	}
	_ = h.Close()
	return true
}
