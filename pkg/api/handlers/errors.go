package handlers

import (
	"errors"
	"net/http"

	"github.com/marmos91/sharefs/pkg/sharefs"
	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// statusFor maps a share error onto an HTTP status.
//
//	bad path or address                400
//	missing object                     404
//	exists, not empty, wrong kind      409
//	payload over max_read_size         413
//	session unusable                   503
//	anything else                      502
func statusFor(err error) int {
	code := sharefs.CodeOf(err)
	switch code {
	case sharefs.ErrBadPath, sharefs.ErrBadAddress:
		return http.StatusBadRequest
	case sharefs.ErrAlreadyExists, sharefs.ErrDirectoryNotEmpty,
		sharefs.ErrNotAFile, sharefs.ErrNotADirectory:
		return http.StatusConflict
	case sharefs.ErrAlloc:
		return http.StatusRequestEntityTooLarge
	case sharefs.ErrLockUnavailable:
		return http.StatusServiceUnavailable
	}

	if status, ok := sharefs.StatusOf(err); ok {
		switch status {
		case types.StatusObjectNameNotFound, types.StatusObjectPathNotFound, types.StatusNoSuchFile:
			return http.StatusNotFound
		case types.StatusObjectNameCollision:
			return http.StatusConflict
		}
	}
	return http.StatusBadGateway
}

// WriteShareError writes the problem response for a failed share
// operation.
func WriteShareError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	p := &Problem{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: r.URL.Path,
	}
	var se *sharefs.Error
	if errors.As(err, &se) {
		p.Code = se.Code.String()
	}
	writeProblem(w, p)
}
