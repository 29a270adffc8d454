package sessiontest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

func runDirOpsTests(t *testing.T, factory SessionFactory) {
	t.Run("MkdirCollision", func(t *testing.T) {
		sess := factory(t)
		p := join(sess, "dir")
		mkdir(t, sess, p)

		_, err := sess.Create(t.Context(), p, smbclient.CreateRequest{
			DesiredAccess: types.GenericRead | types.GenericWrite,
			Disposition:   types.FileCreate,
			Options:       types.FileDirectoryFile,
		})
		requireStatus(t, err, types.StatusObjectNameCollision)
	})

	t.Run("OpenIfExistingDirectory", func(t *testing.T) {
		sess := factory(t)
		p := join(sess, "dir")
		mkdir(t, sess, p)

		h, err := sess.Create(t.Context(), p, smbclient.CreateRequest{
			DesiredAccess: types.GenericRead | types.GenericWrite,
			Disposition:   types.FileOpenIf,
			Options:       types.FileDirectoryFile,
		})
		require.NoError(t, err)
		assert.Equal(t, smbclient.HandleDirectory, h.Kind())
		require.NoError(t, h.Close())
	})

	t.Run("MissingParent", func(t *testing.T) {
		sess := factory(t)

		_, err := sess.Create(t.Context(), join(sess, "nope", "child"), smbclient.CreateRequest{
			DesiredAccess: types.GenericRead | types.GenericWrite,
			Disposition:   types.FileCreate,
			Options:       types.FileDirectoryFile,
		})
		requireStatus(t, err, types.StatusObjectPathNotFound)
	})

	t.Run("Enumerate", func(t *testing.T) {
		sess := factory(t)
		mkdir(t, sess, join(sess, "d"))
		mkdir(t, sess, join(sess, "d", "sub"))
		writeFile(t, sess, join(sess, "d", "a.txt"), []byte("a"))

		h, err := open(t, sess, join(sess, "d"), types.FileDirectoryFile)
		require.NoError(t, err)
		defer func() { _ = h.Close() }()

		dir, ok := h.(smbclient.Directory)
		require.True(t, ok)
		entries, err := dir.QueryDirectory("*")
		require.NoError(t, err)

		got := map[string]bool{}
		for e, err := range entries {
			require.NoError(t, err)
			if e.FileName == "." || e.FileName == ".." {
				continue
			}
			got[e.FileName] = e.IsDir()
		}
		assert.Equal(t, map[string]bool{"sub": true, "a.txt": false}, got)
	})

	t.Run("DeleteNonEmptyDirectory", func(t *testing.T) {
		sess := factory(t)
		mkdir(t, sess, join(sess, "full"))
		writeFile(t, sess, join(sess, "full", "f"), []byte("x"))

		_, err := sess.Create(t.Context(), join(sess, "full"), smbclient.CreateRequest{
			DesiredAccess: types.Delete | types.GenericRead | types.GenericWrite,
			Disposition:   types.FileOpen,
			Options:       types.FileDeleteOnClose | types.FileDirectoryFile,
		})
		requireStatus(t, err, types.StatusDirectoryNotEmpty)
	})

	t.Run("DeleteEmptyDirectory", func(t *testing.T) {
		sess := factory(t)
		p := join(sess, "empty")
		mkdir(t, sess, p)

		h, err := sess.Create(t.Context(), p, smbclient.CreateRequest{
			DesiredAccess: types.Delete | types.GenericRead | types.GenericWrite,
			Disposition:   types.FileOpen,
			Options:       types.FileDeleteOnClose | types.FileDirectoryFile,
		})
		require.NoError(t, err)
		require.NoError(t, h.Close())

		assert.False(t, exists(t, sess, p))
	})
}
