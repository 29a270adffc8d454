package gosmb2

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// renamer is the part of *smb2.Share a replacing rename needs.
type renamer interface {
	Rename(oldpath, newpath string) error
	Stat(name string) (os.FileInfo, error)
	Remove(name string) error
}

// replaceRename moves src over an existing file at dest. The old dest is
// first parked under a temporary sibling name and only removed once src is
// in place; if moving src fails, the parked file is put back. collision is
// the error from the plain rename attempt.
func replaceRename(share renamer, path, src, dest string, collision error) error {
	fi, err := share.Stat(dest)
	if err != nil {
		return collision
	}
	if fi.IsDir() {
		return smbclient.NewResponseError("set_info", path, types.StatusAccessDenied)
	}

	parked := parkedName(dest)
	if err := share.Rename(dest, parked); err != nil {
		return convertError("set_info", path, err)
	}

	if err := share.Rename(src, dest); err != nil {
		moveErr := convertError("set_info", path, err)
		if rerr := share.Rename(parked, dest); rerr != nil {
			logger.Error("rename: replaced file left under temporary name",
				logger.Path(dest), "parked", parked, logger.Err(rerr))
			return errors.Join(moveErr, fmt.Errorf("restore %s from %s: %w", dest, parked, rerr))
		}
		return moveErr
	}

	if err := share.Remove(parked); err != nil {
		// The rename itself succeeded; the leftover is only clutter.
		logger.Warn("rename: could not remove replaced file",
			logger.Path(dest), "parked", parked, logger.Err(err))
	}
	return nil
}

// parkedName returns a hidden sibling of dest unlikely to collide with
// anything on the share.
func parkedName(dest string) string {
	dir, base := "", dest
	if i := strings.LastIndexByte(dest, '\\'); i >= 0 {
		dir, base = dest[:i+1], dest[i+1:]
	}
	return dir + ".~" + base + "." + uuid.NewString()[:8] + ".replaced"
}
