// Package sessiontest provides a conformance suite for smbclient.Session
// implementations.
//
// Every backend (the in-memory share and the go-smb2 network client against a
// real Samba server) must pass the same suite, so the adapter can rely on one
// set of CREATE/close/rename semantics regardless of what it is wired to.
//
// Usage:
//
//	func TestConformance(t *testing.T) {
//	    sessiontest.RunConformanceSuite(t, func(t *testing.T) smbclient.Session {
//	        return newSession(t)
//	    })
//	}
package sessiontest
