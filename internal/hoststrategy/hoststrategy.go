// Package hoststrategy provides the three host-scanning strategies: an
// internal scanner that drives internal/probe directly, an nmap-backed
// scanner that shells out to the nmap binary, and a Shodan-backed passive
// scanner that queries Shodan's host API instead of sending any packets.
package hoststrategy

import (
	"context"

	"github.com/netreveal/hostscan/internal/probe"
)

// HostTarget is one host's scan request: an address plus the TCP/UDP ports
// to probe and whether a host-alive ping should run alongside them.
type HostTarget struct {
	Address  string
	TCPPorts []uint16
	UDPPorts []uint16
	ICMPPing bool
}

// ServiceOutcome is one (protocol, port) probe result for a HostTarget.
type ServiceOutcome struct {
	Protocol probe.Protocol
	Port     uint16
	Alive    bool
	Reason   probe.Reason
	Banner   []byte
}

// HostOutcome is the verdict for a whole HostTarget: whether the host
// itself answered, and the outcome of each requested service probe.
type HostOutcome struct {
	Alive    bool
	Reason   probe.Reason
	Services []ServiceOutcome
}

// HostScanner scans one host according to its own strategy (internal
// probing, nmap, or Shodan).
type HostScanner interface {
	Scan(ctx context.Context, target HostTarget) (HostOutcome, error)
}
