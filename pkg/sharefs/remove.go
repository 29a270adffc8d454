package sharefs

import (
	"context"

	"github.com/marmos91/sharefs/internal/telemetry"
	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// Remove deletes the file or empty directory at rel. A path that does not
// exist, or is already being deleted, counts as removed.
//
// The object is opened with delete-on-close and the handle released; the
// server completes the deletion when its last handle closes.
func (c *Conn) Remove(ctx context.Context, rel string) (err error) {
	const op = "rm"
	ctx, call := c.instrument(ctx, op, rel)
	defer func() { call.finish(err) }()

	path, err := c.resolve(op, rel)
	if err != nil {
		return err
	}
	if path == c.root {
		return &Error{Code: ErrBadPath, Op: op, Path: rel, Message: "refusing to remove the share root"}
	}

	return c.withSession(call, func(sess smbclient.Session) error {
		kind, err := probe(ctx, sess, op, path)
		if err != nil {
			return err
		}
		telemetry.SetAttributes(ctx, telemetry.Kind(kind.String()))
		if kind == KindNotFound {
			return nil
		}

		h, err := sess.Create(ctx, path, smbclient.CreateRequest{
			DesiredAccess: types.Delete | types.GenericRead | types.GenericWrite,
			Disposition:   types.FileOpen,
			Options:       types.FileDeleteOnClose | kindOption(kind),
		})
		if err != nil {
			return classifyDelete(path, err)
		}
		closeHandle(ctx, h)
		return nil
	})
}
