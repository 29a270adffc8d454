package gosmb2

import (
	"errors"
	"fmt"
	"io"

	"github.com/hirochachacha/go-smb2"

	"github.com/marmos91/sharefs/pkg/smbclient"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// convertError turns a go-smb2 failure into an *smbclient.ResponseError when
// the server answered with a status. io.EOF passes through untouched.
func convertError(op, path string, err error) error {
	if err == nil || err == io.EOF {
		return err
	}
	var re *smb2.ResponseError
	if errors.As(err, &re) {
		return smbclient.NewResponseError(op, path, types.Status(re.Code))
	}
	if path != "" {
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// statusIs reports whether err carries status.
func statusIs(err error, status types.Status) bool {
	got, ok := smbclient.StatusOf(err)
	return ok && got == status
}
