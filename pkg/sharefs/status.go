package sharefs

import (
	"strconv"
	"strings"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// StatusOf extracts the NT_STATUS code behind err.
//
// Errors from smbclient carry the code as a field. Errors from elsewhere are
// searched for the "(0xNNNNNNNN)" rendering that SMB clients conventionally
// use.
func StatusOf(err error) (types.Status, bool) {
	if err == nil {
		return 0, false
	}
	if status, ok := smbclient.StatusOf(err); ok {
		return status, true
	}
	return parseStatusText(err.Error())
}

func parseStatusText(msg string) (types.Status, bool) {
	start := strings.Index(msg, "(0x")
	if start < 0 {
		return 0, false
	}
	digits := msg[start+3:]
	end := strings.IndexByte(digits, ')')
	if end < 0 {
		return 0, false
	}
	v, err := strconv.ParseUint(digits[:end], 16, 32)
	if err != nil {
		return 0, false
	}
	return types.Status(v), true
}

// classifyDelete maps a failed delete-on-close open to an outcome. Objects
// already gone or already scheduled for deletion count as deleted.
func classifyDelete(path string, err error) error {
	status, _ := StatusOf(err)
	switch status {
	case types.StatusObjectNameNotFound, types.StatusDeletePending:
		return nil
	case types.StatusDirectoryNotEmpty:
		return &Error{Code: ErrDirectoryNotEmpty, Op: "rm", Path: path, Message: "directory is not empty", Err: err}
	default:
		return newError(ErrDelete, "rm", path, err)
	}
}
