package probe

import "time"

// Config bundles the per-protocol timeouts and feature toggles the
// scanners need, the probe-layer twin of config.Config's timeout fields.
type Config struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	BannerTimeout  time.Duration
	UDPTimeout     time.Duration
	ICMPTimeout    time.Duration
	ARPTimeout     time.Duration
	SkipBannerGrab bool

	// Payloads is the UDP probe-payload catalogue keyed by destination
	// port; key 0 is the generic fallback payload sent to ports with no
	// protocol-specific entry.
	Payloads map[uint16][]byte
}

// ServiceScannerFactory dispatches a Protocol to its Scanner implementation.
type ServiceScannerFactory struct{}

// Get returns the Scanner for proto: TCPScanner for TCP, UDPScanner for
// UDP, and ICMPPinger for both ICMP and ICMPv6 (the pinger infers the
// address family from the target itself).
func (ServiceScannerFactory) Get(proto Protocol, cfg Config) Scanner {
	switch proto {
	case ProtoUDP:
		return NewUDPScanner(cfg)
	case ProtoICMP, ProtoICMPv6:
		return NewICMPPinger(cfg)
	default:
		return NewTCPScanner(cfg)
	}
}
