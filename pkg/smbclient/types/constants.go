package types

// CreateDisposition is the open-time policy for an SMB2 CREATE request.
// [MS-SMB2] 2.2.13
type CreateDisposition uint32

const (
	FileSupersede   CreateDisposition = 0x00000000 // Replace if exists
	FileOpen        CreateDisposition = 0x00000001 // Open existing
	FileCreate      CreateDisposition = 0x00000002 // Create new (fail if exists)
	FileOpenIf      CreateDisposition = 0x00000003 // Open or create
	FileOverwrite   CreateDisposition = 0x00000004 // Overwrite existing
	FileOverwriteIf CreateDisposition = 0x00000005 // Overwrite or create
)

func (d CreateDisposition) String() string {
	switch d {
	case FileSupersede:
		return "SUPERSEDE"
	case FileOpen:
		return "OPEN"
	case FileCreate:
		return "CREATE"
	case FileOpenIf:
		return "OPEN_IF"
	case FileOverwrite:
		return "OVERWRITE"
	case FileOverwriteIf:
		return "OVERWRITE_IF"
	default:
		return "UNKNOWN"
	}
}

// CreatesMissing reports whether the disposition creates the target when absent.
func (d CreateDisposition) CreatesMissing() bool {
	return d == FileSupersede || d == FileCreate || d == FileOpenIf || d == FileOverwriteIf
}

// Truncates reports whether the disposition discards existing content.
func (d CreateDisposition) Truncates() bool {
	return d == FileSupersede || d == FileOverwrite || d == FileOverwriteIf
}

// File Attributes [MS-FSCC] 2.6
const (
	FileAttributeReadonly          uint32 = 0x00000001
	FileAttributeHidden            uint32 = 0x00000002
	FileAttributeSystem            uint32 = 0x00000004
	FileAttributeDirectory         uint32 = 0x00000010
	FileAttributeArchive           uint32 = 0x00000020
	FileAttributeNormal            uint32 = 0x00000080
	FileAttributeTemporary         uint32 = 0x00000100
	FileAttributeSparseFile        uint32 = 0x00000200
	FileAttributeReparsePoint      uint32 = 0x00000400
	FileAttributeCompressed        uint32 = 0x00000800
	FileAttributeNotContentIndexed uint32 = 0x00002000
	FileAttributeEncrypted         uint32 = 0x00004000
)

// Access Mask constants [MS-SMB2] 2.2.13.1
const (
	FileReadData        uint32 = 0x00000001
	FileWriteData       uint32 = 0x00000002
	FileAppendData      uint32 = 0x00000004
	FileReadAttributes  uint32 = 0x00000080
	FileWriteAttributes uint32 = 0x00000100
	Delete              uint32 = 0x00010000
	ReadControl         uint32 = 0x00020000
	Synchronize         uint32 = 0x00100000
	MaximumAllowed      uint32 = 0x02000000
	GenericAll          uint32 = 0x10000000
	GenericExecute      uint32 = 0x20000000
	GenericWrite        uint32 = 0x40000000
	GenericRead         uint32 = 0x80000000
)

// Create Options constants [MS-SMB2] 2.2.13
const (
	FileDirectoryFile         uint32 = 0x00000001
	FileWriteThrough          uint32 = 0x00000002
	FileSequentialOnly        uint32 = 0x00000004
	FileSynchronousIoNonalert uint32 = 0x00000020
	FileNonDirectoryFile      uint32 = 0x00000040
	FileDeleteOnClose         uint32 = 0x00001000
	FileOpenReparsePoint      uint32 = 0x00200000
)

// HasWriteAccess reports whether an access mask grants data writes.
func HasWriteAccess(access uint32) bool {
	return access&(GenericWrite|GenericAll|FileWriteData|FileAppendData|MaximumAllowed) != 0
}

// HasDeleteAccess reports whether an access mask grants DELETE.
func HasDeleteAccess(access uint32) bool {
	return access&(Delete|GenericAll|MaximumAllowed) != 0
}
