package smbclient

import (
	"net"
	"strconv"
)

// DefaultPort is the SMB-over-TCP port.
const DefaultPort = 445

// ShareAddress identifies a share on a server.
type ShareAddress struct {
	Host  string
	Port  int
	Share string
}

// Root renders the canonical \\host\share form. The port is not part of the
// UNC identity.
func (a ShareAddress) Root() string {
	return `\\` + a.Host + `\` + a.Share
}

// DialAddr returns the host:port pair to open the TCP connection to.
func (a ShareAddress) DialAddr() string {
	port := a.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(port))
}

func (a ShareAddress) String() string {
	return a.Root()
}
