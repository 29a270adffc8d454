package gosmb2

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"testing"
	"time"

	"github.com/hirochachacha/go-smb2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

func TestRelative(t *testing.T) {
	s := &session{root: `\\files\docs`}

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{`\\files\docs`, "", true},
		{`\\files\docs\a`, "a", true},
		{`\\FILES\Docs\a\b.txt`, `a\b.txt`, true},
		{`\\files\docsx\a`, "", false},
		{`\\other\docs\a`, "", false},
		{`docs\a`, "", false},
	}
	for _, tt := range tests {
		got, ok := s.relative(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestOpenFlags(t *testing.T) {
	rw := types.GenericRead | types.GenericWrite

	tests := []struct {
		name   string
		d      types.CreateDisposition
		access uint32
		want   int
	}{
		{"open read", types.FileOpen, types.GenericRead, os.O_RDONLY},
		{"create new", types.FileCreate, rw, os.O_CREATE | os.O_EXCL | os.O_RDWR},
		{"open if", types.FileOpenIf, rw, os.O_CREATE | os.O_RDWR},
		{"overwrite", types.FileOverwrite, types.GenericWrite, os.O_TRUNC | os.O_WRONLY},
		{"overwrite if", types.FileOverwriteIf, rw, os.O_CREATE | os.O_TRUNC | os.O_RDWR},
		{"supersede", types.FileSupersede, rw, os.O_CREATE | os.O_TRUNC | os.O_RDWR},
		{"delete access only", types.FileOpen, types.Delete, os.O_RDONLY},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := openFlags(tt.d, tt.access)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := openFlags(types.CreateDisposition(42), types.GenericRead)
	assert.False(t, ok)
}

func TestConvertError(t *testing.T) {
	assert.NoError(t, convertError("read", "p", nil))
	assert.Equal(t, io.EOF, convertError("read", "p", io.EOF))

	wrapped := &os.PathError{Op: "open", Path: "a", Err: &smb2.ResponseError{Code: uint32(types.StatusObjectNameNotFound)}}
	err := convertError("create", `\\h\s\a`, wrapped)
	status, ok := smbclient.StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, types.StatusObjectNameNotFound, status)
	assert.Contains(t, err.Error(), "(0xC0000034)")

	plain := errors.New("connection reset")
	err = convertError("read", `\\h\s\a`, plain)
	assert.ErrorIs(t, err, plain)
	_, ok = smbclient.StatusOf(err)
	assert.False(t, ok)
}

func TestDirEntry(t *testing.T) {
	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	e, err := dirEntry(&smb2.FileStat{
		FileName:       "report.csv",
		FileAttributes: types.FileAttributeArchive,
		EndOfFile:      1234,
		LastWriteTime:  mtime,
	})
	require.NoError(t, err)
	assert.Equal(t, "report.csv", e.FileName)
	assert.Equal(t, uint64(1234), e.EndOfFile)
	assert.Equal(t, mtime, e.LastWriteTime)
	assert.False(t, e.IsDir())

	_, err = dirEntry(&smb2.FileStat{})
	assert.Error(t, err)
}

func TestDeletedHandle(t *testing.T) {
	h := deletedHandle{kind: smbclient.HandleDirectory}
	assert.Equal(t, smbclient.HandleDirectory, h.Kind())
	assert.NoError(t, h.Close())
}

func TestDialRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	require.NoError(t, ln.Close())

	d := NewDialer(WithDialTimeout(time.Second))
	_, err = d.Dial(context.Background(), smbclient.ShareAddress{Host: "127.0.0.1", Port: addr.Port, Share: "docs"}, smbclient.Credentials{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial 127.0.0.1:")
}

func TestDialHandshakeFailure(t *testing.T) {
	// A server that accepts and immediately hangs up never completes NEGOTIATE.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			_ = c.Close()
		}
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	_, err = NewDialer().Dial(context.Background(), smbclient.ShareAddress{Host: "127.0.0.1", Port: port, Share: "docs"}, smbclient.Credentials{Username: "u"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session setup")
}
