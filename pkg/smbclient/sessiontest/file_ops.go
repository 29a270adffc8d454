package sessiontest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

func runFileOpsTests(t *testing.T, factory SessionFactory) {
	t.Run("WriteThenRead", func(t *testing.T) {
		sess := factory(t)
		p := join(sess, "hello.txt")

		writeFile(t, sess, p, []byte("hello, share"))
		assert.Equal(t, []byte("hello, share"), readFile(t, sess, p))
	})

	t.Run("OverwriteReplacesContent", func(t *testing.T) {
		sess := factory(t)
		p := join(sess, "over.txt")

		writeFile(t, sess, p, []byte("a much longer first payload"))
		writeFile(t, sess, p, []byte("short"))
		assert.Equal(t, []byte("short"), readFile(t, sess, p))
	})

	t.Run("LargePayload", func(t *testing.T) {
		sess := factory(t)
		p := join(sess, "large.bin")
		data := bytes.Repeat([]byte{0xAB, 0xCD, 0xEF}, 1<<20)

		writeFile(t, sess, p, data)
		assert.Equal(t, data, readFile(t, sess, p))
	})

	t.Run("OpenMissing", func(t *testing.T) {
		sess := factory(t)

		_, err := open(t, sess, join(sess, "missing.txt"), 0)
		requireStatus(t, err, types.StatusObjectNameNotFound)
	})

	t.Run("CreateCollision", func(t *testing.T) {
		sess := factory(t)
		p := join(sess, "exists.txt")
		writeFile(t, sess, p, nil)

		_, err := sess.Create(t.Context(), p, smbclient.CreateRequest{
			DesiredAccess: types.GenericRead | types.GenericWrite,
			Disposition:   types.FileCreate,
		})
		requireStatus(t, err, types.StatusObjectNameCollision)
	})

	t.Run("DirectoryOptionOnFile", func(t *testing.T) {
		sess := factory(t)
		p := join(sess, "plain.txt")
		writeFile(t, sess, p, []byte("x"))

		_, err := open(t, sess, p, types.FileDirectoryFile)
		requireStatus(t, err, types.StatusNotADirectory)
	})

	t.Run("HandleKindFollowsServer", func(t *testing.T) {
		sess := factory(t)
		writeFile(t, sess, join(sess, "f.txt"), []byte("x"))
		mkdir(t, sess, join(sess, "d"))

		h, err := open(t, sess, join(sess, "f.txt"), 0)
		require.NoError(t, err)
		assert.Equal(t, smbclient.HandleFile, h.Kind())
		require.NoError(t, h.Close())

		h, err = open(t, sess, join(sess, "d"), 0)
		require.NoError(t, err)
		assert.Equal(t, smbclient.HandleDirectory, h.Kind())
		require.NoError(t, h.Close())
	})

	t.Run("StandardInfo", func(t *testing.T) {
		sess := factory(t)
		p := join(sess, "sized.txt")
		writeFile(t, sess, p, []byte("0123456789"))

		h, err := open(t, sess, p, types.FileNonDirectoryFile)
		require.NoError(t, err)
		defer func() { _ = h.Close() }()

		q := h.(smbclient.InfoQuerier)
		std, err := q.QueryStandardInfo()
		require.NoError(t, err)
		assert.Equal(t, uint64(10), std.EndOfFile)
		assert.False(t, std.Directory)

		basic, err := q.QueryBasicInfo()
		require.NoError(t, err)
		assert.Zero(t, basic.FileAttributes&types.FileAttributeDirectory)
		assert.NotZero(t, basic.LastWriteTime)
	})

	t.Run("DeleteOnClose", func(t *testing.T) {
		sess := factory(t)
		p := join(sess, "doomed.txt")
		writeFile(t, sess, p, []byte("bye"))

		h, err := sess.Create(t.Context(), p, smbclient.CreateRequest{
			DesiredAccess: types.Delete | types.GenericRead | types.GenericWrite,
			Disposition:   types.FileOpen,
			Options:       types.FileDeleteOnClose | types.FileNonDirectoryFile,
		})
		require.NoError(t, err)
		require.NoError(t, h.Close())

		assert.False(t, exists(t, sess, p))
	})
}
