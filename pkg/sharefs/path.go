package sharefs

import (
	"net"
	"strconv"
	"strings"

	"github.com/marmos91/sharefs/pkg/smbclient"
)

func isSeparator(r rune) bool { return r == '\\' || r == '/' }

// Segments splits a share-relative path into its components. Empty and "."
// components are dropped; a ".." component anywhere fails with ErrBadPath.
// Either separator is accepted.
func Segments(rel string) ([]string, error) {
	parts := strings.FieldsFunc(rel, isSeparator)
	segs := parts[:0]
	for _, p := range parts {
		switch p {
		case ".":
			continue
		case "..":
			return nil, &Error{Code: ErrBadPath, Op: "resolve", Path: rel, Message: "path contains a '..' segment"}
		}
		segs = append(segs, p)
	}
	return segs, nil
}

// Resolve joins a share-relative path onto root, producing
// \\host\share\seg1\seg2. An empty path (after trimming separators)
// resolves to root itself.
func Resolve(root, rel string) (string, error) {
	segs, err := Segments(rel)
	if err != nil {
		return "", err
	}
	return join(root, segs), nil
}

func join(root string, segs []string) string {
	if len(segs) == 0 {
		return root
	}
	return strings.TrimRight(root, `\`) + `\` + strings.Join(segs, `\`)
}

// ParseShareAddress parses `\\host\share` or `//host/share`. The host may
// carry a ":port" suffix; the default is 445. A trailing separator is
// tolerated; anything deeper than the share name is rejected.
func ParseShareAddress(s string) (smbclient.ShareAddress, error) {
	bad := func(msg string) (smbclient.ShareAddress, error) {
		return smbclient.ShareAddress{}, &Error{Code: ErrBadAddress, Op: "connect", Path: s, Message: msg}
	}

	if !strings.HasPrefix(s, `\\`) && !strings.HasPrefix(s, "//") {
		return bad(`share address must start with \\ or //`)
	}
	rest := strings.TrimRightFunc(s[2:], isSeparator)
	i := strings.IndexFunc(rest, isSeparator)
	if i <= 0 || strings.ContainsFunc(rest[i+1:], isSeparator) {
		return bad(`share address must be \\host\share`)
	}

	addr := smbclient.ShareAddress{Host: rest[:i], Share: rest[i+1:]}
	if strings.ContainsRune(addr.Host, ':') {
		host, port, err := net.SplitHostPort(addr.Host)
		if err != nil {
			return bad("invalid host: " + err.Error())
		}
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return bad("invalid port " + strconv.Quote(port))
		}
		addr.Host, addr.Port = host, n
	}
	if addr.Host == "" {
		return bad("missing host")
	}
	if addr.Share == "." || addr.Share == ".." {
		return bad("invalid share name")
	}
	return addr, nil
}

// SplitUsername separates a DOMAIN\user (or user@domain) login into its
// parts. A plain name has an empty domain.
func SplitUsername(login string) (domain, user string) {
	if i := strings.IndexByte(login, '\\'); i >= 0 {
		return login[:i], login[i+1:]
	}
	if i := strings.LastIndexByte(login, '@'); i >= 0 {
		return login[i+1:], login[:i]
	}
	return "", login
}
