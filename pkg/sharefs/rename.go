package sharefs

import (
	"context"
	"strings"

	"github.com/marmos91/sharefs/internal/telemetry"
	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// Rename moves from to to. Both are share-relative. When replace is false
// and to exists, the server refuses the rename.
func (c *Conn) Rename(ctx context.Context, from, to string, replace bool) (err error) {
	const op = "rename"
	ctx, call := c.instrument(ctx, op, from, telemetry.Target(to), telemetry.Replace(replace))
	defer func() { call.finish(err) }()

	src, err := c.resolve(op, from)
	if err != nil {
		return err
	}
	destSegs, err := Segments(to)
	if err != nil {
		return withOp(err, op)
	}
	if src == c.root || len(destSegs) == 0 {
		return &Error{Code: ErrBadPath, Op: op, Path: from + " -> " + to, Message: "empty path"}
	}
	dest := strings.Join(destSegs, `\`)

	return c.withSession(call, func(sess smbclient.Session) error {
		access := types.Delete | types.GenericRead | types.GenericWrite
		h, err := sess.Create(ctx, src, smbclient.CreateRequest{
			DesiredAccess: access,
			Disposition:   types.FileOpen,
			Options:       types.FileNonDirectoryFile,
		})
		if err != nil {
			h, err = sess.Create(ctx, src, smbclient.CreateRequest{
				DesiredAccess: access,
				Disposition:   types.FileOpen,
				Options:       types.FileDirectoryFile,
			})
			if err != nil {
				return newError(ErrRenameOpen, op, src, err)
			}
		}
		defer closeHandle(ctx, h)

		r, ok := h.(smbclient.Renamer)
		if !ok {
			return &Error{Code: ErrRename, Op: op, Path: src, Message: "handle does not support rename"}
		}
		err = r.SetRenameInfo(smbclient.RenameInformation{
			ReplaceIfExists: replace,
			FileName:        dest,
		})
		if err != nil {
			return newError(ErrRename, op, src, err)
		}
		return nil
	})
}
