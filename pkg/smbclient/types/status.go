package types

import "fmt"

// Status is an NT_STATUS code as returned in an SMB2 response header.
//
// The top two bits carry the severity; see [MS-ERREF] 2.3.
type Status uint32

// Codes the client interprets. Anything else is reported by number.
const (
	StatusSuccess     Status = 0x00000000
	StatusNoMoreFiles Status = 0x80000006

	// Lookups
	StatusNoSuchFile          Status = 0xC000000F
	StatusObjectNameInvalid   Status = 0xC0000033
	StatusObjectNameNotFound  Status = 0xC0000034
	StatusObjectNameCollision Status = 0xC0000035
	StatusObjectPathNotFound  Status = 0xC000003A
	StatusObjectPathSyntaxBad Status = 0xC000003B
	StatusFileIsADirectory    Status = 0xC00000BA
	StatusNotADirectory       Status = 0xC0000103

	// Access and state
	StatusInvalidParameter  Status = 0xC000000D
	StatusAccessDenied      Status = 0xC0000022
	StatusSharingViolation  Status = 0xC0000043
	StatusDeletePending     Status = 0xC0000056
	StatusDirectoryNotEmpty Status = 0xC0000101
	StatusCannotDelete      Status = 0xC0000121
	StatusFileClosed        Status = 0xC0000128
	StatusDiskFull          Status = 0xC000007F
	StatusNotSupported      Status = 0xC00000BB
	StatusUnexpectedIOError Status = 0xC00000E9

	// Session
	StatusLogonFailure       Status = 0xC000006D
	StatusBadNetworkName     Status = 0xC00000CC
	StatusUserSessionDeleted Status = 0xC0000203
)

var statusNames = map[Status]string{
	StatusSuccess:             "STATUS_SUCCESS",
	StatusNoMoreFiles:         "STATUS_NO_MORE_FILES",
	StatusNoSuchFile:          "STATUS_NO_SUCH_FILE",
	StatusObjectNameInvalid:   "STATUS_OBJECT_NAME_INVALID",
	StatusObjectNameNotFound:  "STATUS_OBJECT_NAME_NOT_FOUND",
	StatusObjectNameCollision: "STATUS_OBJECT_NAME_COLLISION",
	StatusObjectPathNotFound:  "STATUS_OBJECT_PATH_NOT_FOUND",
	StatusObjectPathSyntaxBad: "STATUS_OBJECT_PATH_SYNTAX_BAD",
	StatusFileIsADirectory:    "STATUS_FILE_IS_A_DIRECTORY",
	StatusNotADirectory:       "STATUS_NOT_A_DIRECTORY",
	StatusInvalidParameter:    "STATUS_INVALID_PARAMETER",
	StatusAccessDenied:        "STATUS_ACCESS_DENIED",
	StatusSharingViolation:    "STATUS_SHARING_VIOLATION",
	StatusDeletePending:       "STATUS_DELETE_PENDING",
	StatusDirectoryNotEmpty:   "STATUS_DIRECTORY_NOT_EMPTY",
	StatusCannotDelete:        "STATUS_CANNOT_DELETE",
	StatusFileClosed:          "STATUS_FILE_CLOSED",
	StatusDiskFull:            "STATUS_DISK_FULL",
	StatusNotSupported:        "STATUS_NOT_SUPPORTED",
	StatusUnexpectedIOError:   "STATUS_UNEXPECTED_IO_ERROR",
	StatusLogonFailure:        "STATUS_LOGON_FAILURE",
	StatusBadNetworkName:      "STATUS_BAD_NETWORK_NAME",
	StatusUserSessionDeleted:  "STATUS_USER_SESSION_DELETED",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS_0x%08X", uint32(s))
}

// Severity is the two-bit severity field of a Status.
type Severity uint8

const (
	SeveritySuccess Severity = iota
	SeverityInformational
	SeverityWarning
	SeverityError
)

// Severity returns the severity field of s.
func (s Status) Severity() Severity {
	return Severity(uint32(s) >> 30)
}

// IsSuccess reports success or informational severity.
func (s Status) IsSuccess() bool { return s.Severity() <= SeverityInformational }

// IsWarning reports warning severity.
func (s Status) IsWarning() bool { return s.Severity() == SeverityWarning }

// IsError reports error severity.
func (s Status) IsError() bool { return s.Severity() == SeverityError }
