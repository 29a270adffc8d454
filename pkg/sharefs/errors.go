package sharefs

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failed share operation.
//
// ErrorCode implements error so the codes double as sentinels:
//
//	if errors.Is(err, sharefs.ErrDirectoryNotEmpty) { ... }
type ErrorCode int

const (
	// ErrBadAddress indicates a malformed \\host\share address.
	ErrBadAddress ErrorCode = iota + 1

	// ErrBadPath indicates an unusable relative path (a ".." segment, or an
	// empty path where the share root is not allowed).
	ErrBadPath

	// ErrConnect indicates the session could not be established.
	ErrConnect

	// ErrOpen indicates the remote object could not be opened.
	ErrOpen

	// ErrNotAFile indicates the opened object is not a file. Member of ErrOpen.
	ErrNotAFile

	// ErrNotADirectory indicates the opened object is not a directory. Member of ErrOpen.
	ErrNotADirectory

	// ErrRead indicates a failure while reading file content.
	ErrRead

	// ErrWrite indicates a failure while writing file content.
	ErrWrite

	// ErrQuery indicates a metadata query failed.
	ErrQuery

	// ErrCreate indicates a directory could not be created.
	ErrCreate

	// ErrAlreadyExists indicates the target of a create exists. Member of ErrCreate.
	ErrAlreadyExists

	// ErrDelete indicates a delete failed.
	ErrDelete

	// ErrDirectoryNotEmpty indicates a delete targeted a non-empty directory.
	ErrDirectoryNotEmpty

	// ErrRenameOpen indicates the rename source could not be opened.
	ErrRenameOpen

	// ErrRename indicates the rename itself was refused.
	ErrRename

	// ErrAlloc indicates the payload buffer could not be allocated.
	ErrAlloc

	// ErrLockUnavailable indicates an earlier operation left the connection
	// unusable. The connection must be discarded.
	ErrLockUnavailable
)

// String returns the wire tag for the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrBadAddress:
		return "bad_address"
	case ErrBadPath:
		return "bad_path"
	case ErrConnect:
		return "connect_error"
	case ErrOpen:
		return "open_error"
	case ErrNotAFile:
		return "not_a_file"
	case ErrNotADirectory:
		return "not_a_directory"
	case ErrRead:
		return "read_error"
	case ErrWrite:
		return "write_error"
	case ErrQuery:
		return "query_error"
	case ErrCreate:
		return "create_error"
	case ErrAlreadyExists:
		return "already_exists"
	case ErrDelete:
		return "delete_error"
	case ErrDirectoryNotEmpty:
		return "dir_not_empty"
	case ErrRenameOpen:
		return "rename_open_error"
	case ErrRename:
		return "rename_error"
	case ErrAlloc:
		return "alloc_error"
	case ErrLockUnavailable:
		return "lock_unavailable"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

func (c ErrorCode) Error() string { return c.String() }

// family returns the broader code a specific code belongs to.
func (c ErrorCode) family() ErrorCode {
	switch c {
	case ErrNotAFile, ErrNotADirectory:
		return ErrOpen
	case ErrAlreadyExists:
		return ErrCreate
	default:
		return c
	}
}

// Error is a failed share operation.
type Error struct {
	Code    ErrorCode
	Op      string
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code.String()
	}
	s := e.Op + ": " + msg
	if e.Path != "" {
		s += " (path: " + e.Path + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches an ErrorCode target against the code and its family, so
// errors.Is(err, ErrOpen) holds for ErrNotAFile.
func (e *Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	if !ok {
		return false
	}
	return e.Code == code || e.Code.family() == code
}

func newError(code ErrorCode, op, path string, err error) *Error {
	return &Error{Code: code, Op: op, Path: path, Err: err}
}

// CodeOf returns the ErrorCode carried by err, or 0 if err is not a share error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c ErrorCode
	if errors.As(err, &c) {
		return c
	}
	return 0
}

// ParseErrorCode returns the code whose wire tag is tag.
func ParseErrorCode(tag string) (ErrorCode, bool) {
	for c := ErrBadAddress; c <= ErrLockUnavailable; c++ {
		if c.String() == tag {
			return c, true
		}
	}
	return 0, false
}
