package probe

import (
	"context"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/netreveal/hostscan/internal/address"
	hserrors "github.com/netreveal/hostscan/internal/errors"
)

// ArpPinger answers "is this host up" for targets on a directly-attached
// local subnet by sending a raw ARP request and waiting for the reply —
// the only reliable host-discovery signal on a LAN segment where ICMP may
// be filtered. Used directly by internal/hoststrategy, not dispatched
// through ServiceScannerFactory, since it operates at the host rather than
// service level.
type ArpPinger struct {
	cfg Config
}

func NewArpPinger(cfg Config) *ArpPinger { return &ArpPinger{cfg: cfg} }

func htons(v uint16) uint16 { return (v << 8 & 0xff00) | (v >> 8 & 0x00ff) }

func (p *ArpPinger) Probe(ctx context.Context, target Target) (Result, error) {
	ip := net.ParseIP(target.Address).To4()
	if ip == nil {
		return Result{Alive: false, Reason: ReasonScanFailed}, nil
	}

	ifaces, err := address.EnumerateLocalInterfaces()
	if err != nil {
		return Result{}, hserrors.Wrap(hserrors.CodeScanFailed, "enumerate local interfaces", err)
	}
	iface, _, ok := address.FindLocalInterfaceFor(ifaces, ip)
	if !ok {
		return Result{Alive: false, Reason: ReasonScanFailed}, nil
	}
	srcIP := localIPv4(iface)
	if srcIP == nil {
		return Result{Alive: false, Reason: ReasonScanFailed}, nil
	}

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(htons(unix.ETH_P_ARP)))
	if err != nil {
		return Result{}, hserrors.Wrap(hserrors.CodePermission, "open raw arp socket", err)
	}
	defer unix.Close(fd)

	sa := &unix.SockaddrLinklayer{Protocol: htons(unix.ETH_P_ARP), Ifindex: iface.Index}
	if err := unix.Bind(fd, sa); err != nil {
		return Result{}, hserrors.Wrap(hserrors.CodePermission, "bind raw arp socket", err)
	}

	frame := address.BuildARPRequest(iface.MAC, srcIP, ip)
	if err := unix.Sendto(fd, frame, 0, sa); err != nil {
		return Result{Alive: false, Reason: ReasonScanFailed}, nil
	}

	deadline := time.Now().Add(p.cfg.ARPTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	buf := make([]byte, 128)
	for time.Now().Before(deadline) {
		tv := unix.NsecToTimeval(time.Until(deadline).Nanoseconds())
		if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
			break
		}
		n, _, err := unix.Recvfrom(fd, buf, 0)
		if err != nil {
			break
		}
		reply, ok, err := address.ParseARPReply(buf[:n])
		if err != nil || !ok {
			continue
		}
		if reply.SenderIP.Equal(ip) {
			return Result{Alive: true, Reason: ReasonReplyReceived}, nil
		}
	}
	return Result{Alive: false, Reason: ReasonTimedOut}, nil
}

func localIPv4(iface address.LocalInterface) net.IP {
	for _, c := range iface.CIDRs {
		if v4 := c.IP.To4(); v4 != nil {
			return v4
		}
	}
	return nil
}
