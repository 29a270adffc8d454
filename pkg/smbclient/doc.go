// Package smbclient defines the seam between the share adapter and the SMB2
// protocol engine that actually talks to a server.
//
// A Dialer produces a Session bound to one share. A Session opens handles with
// SMB2 CREATE semantics (access mask, disposition, create options). Handles are
// tagged as files or directories by the server's answer, not by the request,
// and expose the small set of follow-up calls the adapter needs: data
// transfer, basic and standard information queries, directory enumeration and
// rename.
//
// Two backends implement the seam:
//   - gosmb2: a real network client built on github.com/hirochachacha/go-smb2
//   - memory: an in-process share with full NT_STATUS semantics, for tests and demos
//
// Errors coming out of a backend carry the NT_STATUS code as a typed field
// (see ResponseError) so callers never have to parse error text.
package smbclient
