package sharefs

import (
	"context"
	"io"

	"github.com/marmos91/sharefs/internal/telemetry"
	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// WriteFile creates the file at rel, or truncates it, and writes data.
func (c *Conn) WriteFile(ctx context.Context, rel string, data []byte) (err error) {
	const op = "write_file"
	ctx, call := c.instrument(ctx, op, rel, telemetry.Size(int64(len(data))))
	defer func() { call.finish(err) }()

	path, err := c.resolve(op, rel)
	if err != nil {
		return err
	}

	err = c.withSession(call, func(sess smbclient.Session) error {
		f, err := openFile(ctx, sess, op, path, smbclient.CreateRequest{
			DesiredAccess: types.GenericRead | types.GenericWrite,
			Disposition:   types.FileOverwriteIf,
			Attributes:    types.FileAttributeNormal,
		})
		if err != nil {
			return err
		}
		defer closeHandle(ctx, f)

		if len(data) == 0 {
			return nil
		}
		n, err := f.Write(data)
		if err == nil && n < len(data) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return newError(ErrWrite, op, path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.metrics.AddBytes(op, len(data))
	return nil
}
