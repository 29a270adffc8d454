package smbclient

import (
	"errors"
	"fmt"

	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// ResponseError is a failed SMB2 response.
type ResponseError struct {
	Op     string
	Path   string
	Status types.Status
}

// Error renders the status code in hex inside parentheses, e.g.
// "create \\srv\share\a: STATUS_OBJECT_NAME_NOT_FOUND (0xC0000034)".
func (e *ResponseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %s (0x%08X)", e.Op, e.Path, e.Status, uint32(e.Status))
	}
	return fmt.Sprintf("%s: %s (0x%08X)", e.Op, e.Status, uint32(e.Status))
}

// NewResponseError builds a ResponseError.
func NewResponseError(op, path string, status types.Status) *ResponseError {
	return &ResponseError{Op: op, Path: path, Status: status}
}

// StatusOf extracts the NT_STATUS carried by err, if any.
func StatusOf(err error) (types.Status, bool) {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Status, true
	}
	return 0, false
}

// DecodeError reports a directory record the backend could not decode.
type DecodeError struct {
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode directory entry %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
