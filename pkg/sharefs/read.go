package sharefs

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/marmos91/sharefs/internal/telemetry"
	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// ReadFile returns the whole content of the file at rel.
func (c *Conn) ReadFile(ctx context.Context, rel string) (data []byte, err error) {
	const op = "read_file"
	ctx, call := c.instrument(ctx, op, rel)
	defer func() { call.finish(err) }()

	path, err := c.resolve(op, rel)
	if err != nil {
		return nil, err
	}

	err = c.withSession(call, func(sess smbclient.Session) error {
		f, err := openFile(ctx, sess, op, path, smbclient.CreateRequest{
			DesiredAccess: types.GenericRead,
			Disposition:   types.FileOpen,
		})
		if err != nil {
			return err
		}
		defer closeHandle(ctx, f)

		data, err = readAll(op, path, f, c.maxReadSize)
		return err
	})
	if err != nil {
		return nil, err
	}

	telemetry.SetAttributes(ctx, telemetry.Size(int64(len(data))))
	c.metrics.AddBytes(op, len(data))
	return data, nil
}

// readAll buffers r to EOF. A payload above limit (when limit > 0), or a
// buffer that cannot grow, is ErrAlloc.
func readAll(op, path string, r io.Reader, limit int64) (data []byte, err error) {
	var buf bytes.Buffer
	defer func() {
		if p := recover(); p != nil {
			if p != bytes.ErrTooLarge {
				panic(p)
			}
			data, err = nil, &Error{Code: ErrAlloc, Op: op, Path: path, Message: "payload too large to buffer", Err: bytes.ErrTooLarge}
		}
	}()

	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}
	if _, err := buf.ReadFrom(src); err != nil {
		return nil, newError(ErrRead, op, path, err)
	}
	if limit > 0 && int64(buf.Len()) > limit {
		return nil, &Error{Code: ErrAlloc, Op: op, Path: path, Message: fmt.Sprintf("file exceeds the %d byte read limit", limit)}
	}
	return buf.Bytes(), nil
}
