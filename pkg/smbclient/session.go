package smbclient

import (
	"context"
	"io"
	"iter"
	"time"

	"github.com/marmos91/sharefs/pkg/smbclient/types"
)

// Credentials authenticate a session. Domain may be empty.
type Credentials struct {
	Username string
	Password string
	Domain   string
}

// Dialer establishes sessions to a share.
type Dialer interface {
	// Dial connects and authenticates to addr and mounts its share.
	Dial(ctx context.Context, addr ShareAddress, creds Credentials) (Session, error)
}

// Session is an authenticated tree connection to a single share.
//
// A Session is not safe for concurrent use; callers serialize access.
type Session interface {
	// Root returns the canonical \\host\share identity of the mounted share.
	Root() string

	// Create opens or creates the object at path, a full \\host\share\... path.
	Create(ctx context.Context, path string, req CreateRequest) (Handle, error)

	// Close tears down the tree connection and the session.
	Close() error
}

// CreateRequest carries the parameters of an SMB2 CREATE.
type CreateRequest struct {
	DesiredAccess uint32
	Disposition   types.CreateDisposition
	Options       uint32
	Attributes    uint32
}

// HandleKind tags an open handle by what the server says it refers to.
type HandleKind int

const (
	HandleOther HandleKind = iota
	HandleFile
	HandleDirectory
)

func (k HandleKind) String() string {
	switch k {
	case HandleFile:
		return "file"
	case HandleDirectory:
		return "directory"
	default:
		return "other"
	}
}

// Handle is an open object. Close must be called on every exit path.
type Handle interface {
	Kind() HandleKind
	Close() error
}

// InfoQuerier issues QUERY_INFO requests against an open handle.
type InfoQuerier interface {
	QueryBasicInfo() (BasicInformation, error)
	QueryStandardInfo() (StandardInformation, error)
}

// Renamer issues a SET_INFO FileRenameInformation against an open handle.
type Renamer interface {
	SetRenameInfo(info RenameInformation) error
}

// File is a handle the server reported as a regular file.
type File interface {
	Handle
	io.Reader
	io.Writer
	InfoQuerier
	Renamer
}

// Directory is a handle the server reported as a directory.
type Directory interface {
	Handle
	InfoQuerier
	Renamer

	// QueryDirectory enumerates entries matching pattern. Entries that the
	// backend could not decode are yielded as errors without ending the
	// sequence.
	QueryDirectory(pattern string) (iter.Seq2[DirEntry, error], error)
}

// BasicInformation mirrors FILE_BASIC_INFORMATION [MS-FSCC] 2.4.7.
// Times are FILETIME ticks.
type BasicInformation struct {
	CreationTime   uint64
	LastAccessTime uint64
	LastWriteTime  uint64
	ChangeTime     uint64
	FileAttributes uint32
}

// StandardInformation mirrors FILE_STANDARD_INFORMATION [MS-FSCC] 2.4.41.
type StandardInformation struct {
	AllocationSize uint64
	EndOfFile      uint64
	NumberOfLinks  uint32
	DeletePending  bool
	Directory      bool
}

// RenameInformation mirrors FILE_RENAME_INFORMATION_TYPE_2 [MS-FSCC] 2.4.37.2.
// FileName is relative to the share root when RootDirectory is zero.
type RenameInformation struct {
	ReplaceIfExists bool
	RootDirectory   uint64
	FileName        string
}

// DirEntry is one record of a directory enumeration.
type DirEntry struct {
	FileName       string
	FileAttributes uint32
	EndOfFile      uint64
	LastWriteTime  time.Time
}

// IsDir reports whether the entry carries FILE_ATTRIBUTE_DIRECTORY.
func (e DirEntry) IsDir() bool {
	return e.FileAttributes&types.FileAttributeDirectory != 0
}
