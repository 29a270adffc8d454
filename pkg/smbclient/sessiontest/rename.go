package sessiontest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

func openForRename(t *testing.T, sess smbclient.Session, path string, options uint32) smbclient.Renamer {
	t.Helper()

	h, err := sess.Create(t.Context(), path, smbclient.CreateRequest{
		DesiredAccess: types.Delete | types.GenericRead | types.GenericWrite,
		Disposition:   types.FileOpen,
		Options:       options,
	})
	require.NoError(t, err, "open %s for rename", path)
	t.Cleanup(func() { _ = h.Close() })

	r, ok := h.(smbclient.Renamer)
	require.True(t, ok)
	return r
}

func runRenameTests(t *testing.T, factory SessionFactory) {
	t.Run("RenameFile", func(t *testing.T) {
		sess := factory(t)
		writeFile(t, sess, join(sess, "a.txt"), []byte("payload"))

		r := openForRename(t, sess, join(sess, "a.txt"), types.FileNonDirectoryFile)
		require.NoError(t, r.SetRenameInfo(smbclient.RenameInformation{FileName: "b.txt"}))

		assert.False(t, exists(t, sess, join(sess, "a.txt")))
		assert.Equal(t, []byte("payload"), readFile(t, sess, join(sess, "b.txt")))
	})

	t.Run("RenameCollision", func(t *testing.T) {
		sess := factory(t)
		writeFile(t, sess, join(sess, "a.txt"), []byte("a"))
		writeFile(t, sess, join(sess, "b.txt"), []byte("b"))

		r := openForRename(t, sess, join(sess, "a.txt"), types.FileNonDirectoryFile)
		err := r.SetRenameInfo(smbclient.RenameInformation{FileName: "b.txt"})
		requireStatus(t, err, types.StatusObjectNameCollision)
	})

	t.Run("RenameReplace", func(t *testing.T) {
		sess := factory(t)
		writeFile(t, sess, join(sess, "a.txt"), []byte("a"))
		writeFile(t, sess, join(sess, "b.txt"), []byte("b"))

		r := openForRename(t, sess, join(sess, "a.txt"), types.FileNonDirectoryFile)
		require.NoError(t, r.SetRenameInfo(smbclient.RenameInformation{
			ReplaceIfExists: true,
			FileName:        "b.txt",
		}))

		assert.Equal(t, []byte("a"), readFile(t, sess, join(sess, "b.txt")))
	})

	t.Run("RenameDirectoryAcrossParents", func(t *testing.T) {
		sess := factory(t)
		mkdir(t, sess, join(sess, "src"))
		mkdir(t, sess, join(sess, "dst"))
		writeFile(t, sess, join(sess, "src", "f"), []byte("f"))

		r := openForRename(t, sess, join(sess, "src"), types.FileDirectoryFile)
		require.NoError(t, r.SetRenameInfo(smbclient.RenameInformation{FileName: `dst\moved`}))

		assert.Equal(t, []byte("f"), readFile(t, sess, join(sess, "dst", "moved", "f")))
	})
}
