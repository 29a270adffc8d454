package sharefs

import (
	"context"
	"errors"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// probe classifies path by opening it for read with no create options, so
// files and directories both open. An open failure reads as KindNotFound,
// unless ctx is done: then the answer is unknown and probe returns an
// ErrOpen wrapping the context error. Must be called with the session held.
func probe(ctx context.Context, sess smbclient.Session, op, path string) (Kind, error) {
	h, err := sess.Create(ctx, path, smbclient.CreateRequest{
		DesiredAccess: types.GenericRead,
		Disposition:   types.FileOpen,
	})
	if err != nil {
		if cerr := contextError(ctx, err); cerr != nil {
			return KindNotFound, newError(ErrOpen, op, path, cerr)
		}
		return KindNotFound, nil
	}
	defer closeHandle(ctx, h)

	switch h.Kind() {
	case smbclient.HandleFile:
		return KindFile, nil
	case smbclient.HandleDirectory:
		return KindDirectory, nil
	default:
		return KindNotFound, nil
	}
}

// contextError returns the cancellation behind a failed request, or nil
// when err has nothing to do with ctx.
func contextError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return ctx.Err()
}

// kindOption returns the create option that constrains an open to kind.
func kindOption(kind Kind) uint32 {
	if kind == KindDirectory {
		return types.FileDirectoryFile
	}
	return types.FileNonDirectoryFile
}
