package sharefs

import (
	"context"
	"io"

	"github.com/marmos91/sharefs/internal/telemetry"
	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// Stat reports whether rel is a directory and, for files, its size.
//
// The size is measured by reading the file to the end, not taken from
// metadata. FileStats is the metadata-based alternative.
func (c *Conn) Stat(ctx context.Context, rel string) (res StatResult, err error) {
	const op = "stat"
	ctx, call := c.instrument(ctx, op, rel)
	defer func() { call.finish(err) }()

	path, err := c.resolve(op, rel)
	if err != nil {
		return StatResult{}, err
	}

	err = c.withSession(call, func(sess smbclient.Session) error {
		h, err := sess.Create(ctx, path, smbclient.CreateRequest{
			DesiredAccess: types.GenericRead,
			Disposition:   types.FileOpen,
		})
		if err != nil {
			return newError(ErrOpen, op, path, err)
		}
		defer closeHandle(ctx, h)

		f, ok := h.(smbclient.File)
		if !ok || h.Kind() != smbclient.HandleFile {
			res = StatResult{IsDirectory: true}
			return nil
		}

		n, err := io.Copy(io.Discard, f)
		if err != nil {
			return newError(ErrRead, op, path, err)
		}
		res = StatResult{Size: n}
		return nil
	})
	if err != nil {
		return StatResult{}, err
	}

	telemetry.SetAttributes(ctx, telemetry.Size(res.Size))
	return res, nil
}

// FileStats returns a metadata snapshot of rel. A missing path reports
// found == false with a nil error.
func (c *Conn) FileStats(ctx context.Context, rel string) (stats FileStats, found bool, err error) {
	const op = "file_stats"
	ctx, call := c.instrument(ctx, op, rel)
	defer func() { call.finish(err) }()

	path, err := c.resolve(op, rel)
	if err != nil {
		return FileStats{}, false, err
	}

	err = c.withSession(call, func(sess smbclient.Session) error {
		kind, err := probe(ctx, sess, op, path)
		if err != nil {
			return err
		}
		if kind == KindNotFound {
			return nil
		}

		req := smbclient.CreateRequest{
			DesiredAccess: types.GenericRead,
			Disposition:   types.FileOpen,
			Options:       kindOption(kind),
		}
		var q smbclient.InfoQuerier
		var h smbclient.Handle
		if kind == KindDirectory {
			d, err := openDirectory(ctx, sess, op, path, req)
			if err != nil {
				return err
			}
			h, q = d, d
		} else {
			f, err := openFile(ctx, sess, op, path, req)
			if err != nil {
				return err
			}
			h, q = f, f
		}
		defer closeHandle(ctx, h)

		basic, err := q.QueryBasicInfo()
		if err != nil {
			return newError(ErrQuery, op, path, err)
		}
		std, err := q.QueryStandardInfo()
		if err != nil {
			return newError(ErrQuery, op, path, err)
		}

		stats = FileStats{
			Kind:           kind,
			Size:           std.EndOfFile,
			AllocationSize: std.AllocationSize,
			LinkCount:      std.NumberOfLinks,
			Attributes:     basic.FileAttributes,
			Mtime:          types.FiletimeToUnixSeconds(basic.LastWriteTime),
			Atime:          types.FiletimeToUnixSeconds(basic.LastAccessTime),
			Ctime:          types.FiletimeToUnixSeconds(basic.ChangeTime),
			Btime:          types.FiletimeToUnixSeconds(basic.CreationTime),
		}
		found = true
		return nil
	})
	if err != nil {
		return FileStats{}, false, err
	}

	telemetry.SetAttributes(ctx, telemetry.Kind(stats.Kind.String()))
	return stats, found, nil
}
