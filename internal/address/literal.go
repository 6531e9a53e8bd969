// Package address provides literal address parsing, packet checksums, ARP
// frame construction/parsing, and local interface enumeration for the
// probing layer. No DNS resolution happens here — a caller passes literal
// IPv4/IPv6 addresses only.
package address

import (
	"net"

	hserrors "github.com/netreveal/hostscan/internal/errors"
)

// Family identifies the address family of a parsed literal.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyV4
	FamilyV6
)

// ParseLiteral parses s as a literal IPv4 or IPv6 address, rejecting
// anything that requires DNS resolution (hostnames) or that net.ParseIP
// considers ambiguous.
func ParseLiteral(s string) (net.IP, Family, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, FamilyUnknown, hserrors.NewWithTarget(hserrors.CodeTargetInvalid, "not a literal IPv4/IPv6 address", s)
	}
	if v4 := ip.To4(); v4 != nil {
		return v4, FamilyV4, nil
	}
	return ip, FamilyV6, nil
}

// IsLiteral reports whether s parses as a literal IP address.
func IsLiteral(s string) bool {
	return net.ParseIP(s) != nil
}
