package sharefs

import (
	"context"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// Mkdir creates the directory rel. Its parent must exist and rel must not.
func (c *Conn) Mkdir(ctx context.Context, rel string) (err error) {
	const op = "mkdir"
	ctx, call := c.instrument(ctx, op, rel)
	defer func() { call.finish(err) }()

	path, err := c.resolve(op, rel)
	if err != nil {
		return err
	}
	if path == c.root {
		return &Error{Code: ErrBadPath, Op: op, Path: rel, Message: "empty path"}
	}

	return c.withSession(call, func(sess smbclient.Session) error {
		h, err := sess.Create(ctx, path, smbclient.CreateRequest{
			DesiredAccess: types.GenericRead | types.GenericWrite,
			Disposition:   types.FileCreate,
			Options:       types.FileDirectoryFile,
			Attributes:    types.FileAttributeDirectory,
		})
		if err != nil {
			if isCollision(err) {
				return &Error{Code: ErrAlreadyExists, Op: op, Path: path, Message: "already exists", Err: err}
			}
			return newError(ErrCreate, op, path, err)
		}
		closeHandle(ctx, h)
		return nil
	})
}

// MkdirAll creates rel and any missing parents. Existing directories along
// the way are left as they are; an empty path does nothing.
func (c *Conn) MkdirAll(ctx context.Context, rel string) (err error) {
	const op = "mkdir_p"
	ctx, call := c.instrument(ctx, op, rel)
	defer func() { call.finish(err) }()

	segs, err := Segments(rel)
	if err != nil {
		return withOp(err, op)
	}
	if len(segs) == 0 {
		return nil
	}

	return c.withSession(call, func(sess smbclient.Session) error {
		for i := range segs {
			path := join(c.root, segs[:i+1])
			h, err := sess.Create(ctx, path, smbclient.CreateRequest{
				DesiredAccess: types.GenericRead | types.GenericWrite,
				Disposition:   types.FileOpenIf,
				Options:       types.FileDirectoryFile,
				Attributes:    types.FileAttributeDirectory,
			})
			if err != nil {
				return newError(ErrCreate, op, path, err)
			}
			closeHandle(ctx, h)
		}
		return nil
	})
}
