package sharefs

import (
	"context"

	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/internal/telemetry"
	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// ListDir returns the entries of the directory at rel in enumeration order,
// without "." and "..".
//
// Entries the server returns in a form that cannot be decoded are left out.
// The caller is not told; each one is logged at debug level and counted by
// Metrics.SkippedEntries.
func (c *Conn) ListDir(ctx context.Context, rel string) (entries []DirEntry, err error) {
	const op = "list_dir"
	ctx, call := c.instrument(ctx, op, rel)
	defer func() { call.finish(err) }()

	path, err := c.resolve(op, rel)
	if err != nil {
		return nil, err
	}

	skipped := 0
	err = c.withSession(call, func(sess smbclient.Session) error {
		d, err := openDirectory(ctx, sess, op, path, smbclient.CreateRequest{
			DesiredAccess: types.GenericRead,
			Disposition:   types.FileOpen,
		})
		if err != nil {
			return err
		}
		defer closeHandle(ctx, d)

		seq, err := d.QueryDirectory("*")
		if err != nil {
			return newError(ErrQuery, op, path, err)
		}

		entries = make([]DirEntry, 0)
		for e, err := range seq {
			if err != nil {
				skipped++
				logger.DebugCtx(ctx, "skipping undecodable directory entry", logger.Path(rel), logger.Err(err))
				continue
			}
			if e.FileName == "." || e.FileName == ".." {
				continue
			}
			kind := KindFile
			if e.IsDir() {
				kind = KindDirectory
			}
			entries = append(entries, DirEntry{
				Name:    e.FileName,
				Kind:    kind,
				Size:    e.EndOfFile,
				ModTime: e.LastWriteTime,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	telemetry.SetAttributes(ctx, telemetry.Entries(len(entries)), telemetry.Skipped(skipped))
	if skipped > 0 {
		c.metrics.SkippedEntries(skipped)
	}
	return entries, nil
}
