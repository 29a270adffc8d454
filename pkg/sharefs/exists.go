package sharefs

import (
	"context"

	"github.com/marmos91/sharefs/internal/telemetry"
	"github.com/marmos91/sharefs/pkg/smbclient"
)

// Exists reports what rel refers to. The share root is a directory and is
// answered without contacting the server.
func (c *Conn) Exists(ctx context.Context, rel string) (kind Kind, err error) {
	const op = "exists"
	ctx, call := c.instrument(ctx, op, rel)
	defer func() { call.finish(err) }()

	path, err := c.resolve(op, rel)
	if err != nil {
		return KindNotFound, err
	}
	if path == c.root {
		return KindDirectory, nil
	}

	err = c.withSession(call, func(sess smbclient.Session) error {
		kind, err = probe(ctx, sess, op, path)
		return err
	})
	if err != nil {
		return KindNotFound, err
	}

	telemetry.SetAttributes(ctx, telemetry.Kind(kind.String()))
	return kind, nil
}
