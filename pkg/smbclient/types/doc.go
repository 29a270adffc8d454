// Package types contains the SMB2 protocol values the share client speaks:
// NT_STATUS codes, create dispositions and options, access masks, file
// attributes and the FILETIME timestamp encoding.
//
// Everything here is a plain value type with no I/O, so both the real
// protocol backend and the in-memory backend share one vocabulary.
//
// References:
//   - [MS-SMB2] Server Message Block (SMB) Protocol Versions 2 and 3
//   - [MS-FSCC] File System Control Codes
//   - [MS-ERREF] Windows Error Codes
package types
