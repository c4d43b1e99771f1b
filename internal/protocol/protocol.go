// Package protocol defines the closed set of check protocols a template can target.
package protocol

import (
	"fmt"
	"strings"
)

// Protocol identifies the mechanism a check uses to test a service.
type Protocol string

const (
	DNS        Protocol = "dns"
	FTP        Protocol = "ftp"
	HTTP       Protocol = "http"
	HTTPS      Protocol = "https"
	ICMP       Protocol = "icmp"
	IMAP       Protocol = "imap"
	LDAP       Protocol = "ldap"
	MSSQL      Protocol = "mssql"
	MySQL      Protocol = "mysql"
	Noop       Protocol = "noop"
	PostgreSQL Protocol = "postgresql"
	RDP        Protocol = "rdp"
	SMB        Protocol = "smb"
	SMTP       Protocol = "smtp"
	SSH        Protocol = "ssh"
	TCP        Protocol = "tcp"
	VNC        Protocol = "vnc"
	WinRM      Protocol = "winrm"
	XMPP       Protocol = "xmpp"
)

var all = []Protocol{
	DNS, FTP, HTTP, HTTPS, ICMP, IMAP, LDAP, MSSQL, MySQL, Noop,
	PostgreSQL, RDP, SMB, SMTP, SSH, TCP, VNC, WinRM, XMPP,
}

var known = func() map[Protocol]struct{} {
	m := make(map[Protocol]struct{}, len(all))
	for _, p := range all {
		m[p] = struct{}{}
	}
	return m
}()

// All returns every supported protocol in display order.
func All() []Protocol {
	out := make([]Protocol, len(all))
	copy(out, all)
	return out
}

// IsValid reports whether value is exactly one of the supported protocols.
func IsValid(value string) bool {
	_, ok := known[Protocol(value)]
	return ok
}

// Parse normalizes value (trimmed, lowercased) and returns the matching protocol.
func Parse(value string) (Protocol, error) {
	p := Protocol(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := known[p]; !ok {
		return "", fmt.Errorf("unknown protocol %q", value)
	}
	return p, nil
}

func (p Protocol) String() string {
	return string(p)
}

// Valid reports whether p is a member of the supported set.
func (p Protocol) Valid() bool {
	return IsValid(string(p))
}
