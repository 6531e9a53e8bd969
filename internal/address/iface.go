package address

import "net"

// LocalInterface describes one local network interface: its index, hardware
// address, and the CIDR blocks it is attached to.
type LocalInterface struct {
	Index int
	Name  string
	MAC   net.HardwareAddr
	CIDRs []*net.IPNet
}

// EnumerateLocalInterfaces returns every up, non-loopback local interface
// along with the CIDR blocks attached to it, used by the ARP prober to pick
// the right source interface for a target in a local subnet.
func EnumerateLocalInterfaces() ([]LocalInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	out := make([]LocalInterface, 0, len(ifaces))
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		var cidrs []*net.IPNet
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok {
				cidrs = append(cidrs, ipnet)
			}
		}
		if len(cidrs) == 0 {
			continue
		}

		out = append(out, LocalInterface{
			Index: iface.Index,
			Name:  iface.Name,
			MAC:   iface.HardwareAddr,
			CIDRs: cidrs,
		})
	}
	return out, nil
}

// FindLocalInterfaceFor returns the LocalInterface whose CIDR contains ip,
// and the matching CIDR, or ok=false if ip is not in any local subnet.
func FindLocalInterfaceFor(ifaces []LocalInterface, ip net.IP) (iface LocalInterface, cidr *net.IPNet, ok bool) {
	for _, li := range ifaces {
		for _, c := range li.CIDRs {
			if c.Contains(ip) {
				return li, c, true
			}
		}
	}
	return LocalInterface{}, nil, false
}
