package sharefs

import (
	"context"
	"errors"

	"github.com/marmos91/sharefs/pkg/smbclient"
)

// resolve is Resolve with the failing operation recorded on the error.
func (c *Conn) resolve(op, rel string) (string, error) {
	path, err := Resolve(c.root, rel)
	if err != nil {
		return "", withOp(err, op)
	}
	return path, nil
}

// withOp relabels a path error raised on behalf of op.
func withOp(err error, op string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Op = op
	}
	return err
}

// openFile opens path and requires the server to report a regular file.
// The caller closes the returned handle.
func openFile(ctx context.Context, sess smbclient.Session, op, path string, req smbclient.CreateRequest) (smbclient.File, error) {
	h, err := sess.Create(ctx, path, req)
	if err != nil {
		return nil, newError(ErrOpen, op, path, err)
	}
	f, ok := h.(smbclient.File)
	if !ok || h.Kind() != smbclient.HandleFile {
		closeHandle(ctx, h)
		return nil, &Error{Code: ErrNotAFile, Op: op, Path: path, Message: "not a file"}
	}
	return f, nil
}

// openDirectory opens path and requires the server to report a directory.
// The caller closes the returned handle.
func openDirectory(ctx context.Context, sess smbclient.Session, op, path string, req smbclient.CreateRequest) (smbclient.Directory, error) {
	h, err := sess.Create(ctx, path, req)
	if err != nil {
		return nil, newError(ErrOpen, op, path, err)
	}
	d, ok := h.(smbclient.Directory)
	if !ok || h.Kind() != smbclient.HandleDirectory {
		closeHandle(ctx, h)
		return nil, &Error{Code: ErrNotADirectory, Op: op, Path: path, Message: "not a directory"}
	}
	return d, nil
}
