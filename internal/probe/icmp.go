package probe

import (
	"context"
	"encoding/binary"
	"errors"
	"net"
	"os"
	"time"

	"github.com/netreveal/hostscan/internal/address"
	hserrors "github.com/netreveal/hostscan/internal/errors"
)

const (
	icmpEchoRequest   = 8
	icmpEchoReply     = 0
	icmpv6EchoRequest = 128
	icmpv6EchoReply   = 129
)

// ICMPPinger sends a single ICMP (or ICMPv6) echo request and waits for the
// matching echo reply. It serves both IPPROTO_ICMP and IPPROTO_ICMPV6 —
// the address family is inferred from the target, not a stored field.
type ICMPPinger struct {
	cfg Config
}

func NewICMPPinger(cfg Config) *ICMPPinger { return &ICMPPinger{cfg: cfg} }

func (p *ICMPPinger) Probe(ctx context.Context, target Target) (Result, error) {
	ip := net.ParseIP(target.Address)
	if ip == nil {
		return Result{Alive: false, Reason: ReasonScanFailed}, nil
	}
	v6 := ip.To4() == nil

	network := "ip4:icmp"
	if v6 {
		network = "ip6:ipv6-icmp"
	}

	conn, err := net.ListenPacket(network, "")
	if err != nil {
		return Result{}, hserrors.Wrap(hserrors.CodePermission, "open raw icmp socket", err)
	}
	defer conn.Close()

	id := uint16(os.Getpid() & 0xffff)
	msg := buildEchoRequest(id, 1, v6)

	deadline := time.Now().Add(p.cfg.ICMPTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return Result{Alive: false, Reason: ReasonScanFailed}, nil
	}

	if _, err := conn.WriteTo(msg, &net.IPAddr{IP: ip}); err != nil {
		return Result{Alive: false, Reason: ReasonScanFailed}, nil
	}

	buf := make([]byte, 1500)
	for {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			return Result{Alive: false, Reason: classifyICMPError(err)}, nil
		}

		icmp := buf[:n]
		if !v6 {
			// The ip4 raw socket hands back the IP header too; ip6 does not.
			hlen := int(icmp[0]&0x0f) * 4
			if len(icmp) < hlen+8 {
				continue
			}
			icmp = icmp[hlen:]
		}
		if len(icmp) < 8 {
			continue
		}

		switch {
		case !v6 && icmp[0] == icmpEchoReply && binary.BigEndian.Uint16(icmp[4:6]) == id:
			return Result{Alive: true, Reason: ReasonReplyReceived}, nil
		case v6 && icmp[0] == icmpv6EchoReply && binary.BigEndian.Uint16(icmp[4:6]) == id:
			return Result{Alive: true, Reason: ReasonReplyReceived}, nil
		case !v6 && icmp[0] == 3: // destination unreachable
			return Result{Alive: false, Reason: ReasonIcmpUnreachable}, nil
		case v6 && icmp[0] == 1: // destination unreachable
			return Result{Alive: false, Reason: ReasonIcmpUnreachable}, nil
		}
	}
}

// buildEchoRequest builds an echo-request message with an identifier and
// sequence number. The IPv4 checksum is computed here; the IPv6 checksum
// needs the pseudo-header, which the kernel fills in for ip6:ipv6-icmp raw
// sockets, so it's left zero.
func buildEchoRequest(id, seq uint16, v6 bool) []byte {
	msg := make([]byte, 8)
	if v6 {
		msg[0] = icmpv6EchoRequest
	} else {
		msg[0] = icmpEchoRequest
	}
	binary.BigEndian.PutUint16(msg[4:6], id)
	binary.BigEndian.PutUint16(msg[6:8], seq)
	if !v6 {
		chk := address.ICMPv4Checksum(msg)
		binary.BigEndian.PutUint16(msg[2:4], chk)
	}
	return msg
}

func classifyICMPError(err error) Reason {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimedOut
	}
	return ReasonScanFailed
}
