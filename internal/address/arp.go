package address

import (
	"encoding/binary"
	"net"

	hserrors "github.com/netreveal/hostscan/internal/errors"
)

const (
	arpHardwareEthernet = 1
	arpProtocolIPv4     = 0x0800
	arpOpRequest        = 1
	arpOpReply          = 2
)

// BroadcastMAC is the Ethernet broadcast address.
var BroadcastMAC = net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// ARPFrame is a parsed Ethernet+ARP frame for the fields the ARP pinger
// cares about.
type ARPFrame struct {
	Operation uint16
	SenderMAC net.HardwareAddr
	SenderIP  net.IP
	TargetMAC net.HardwareAddr
	TargetIP  net.IP
}

// BuildARPRequest builds a raw Ethernet frame carrying an ARP request
// (operation 1) from (srcMAC, srcIP) asking who has targetIP, addressed to
// the Ethernet broadcast address.
func BuildARPRequest(srcMAC net.HardwareAddr, srcIP, targetIP net.IP) []byte {
	srcIP4 := srcIP.To4()
	targetIP4 := targetIP.To4()

	eth := make([]byte, 14)
	copy(eth[0:6], BroadcastMAC)
	copy(eth[6:12], srcMAC)
	binary.BigEndian.PutUint16(eth[12:14], 0x0806) // EtherType ARP

	arp := make([]byte, 28)
	binary.BigEndian.PutUint16(arp[0:2], arpHardwareEthernet)
	binary.BigEndian.PutUint16(arp[2:4], arpProtocolIPv4)
	arp[4] = 6 // hardware address length
	arp[5] = 4 // protocol address length
	binary.BigEndian.PutUint16(arp[6:8], arpOpRequest)
	copy(arp[8:14], srcMAC)
	copy(arp[14:18], srcIP4)
	copy(arp[18:24], BroadcastMAC) // target MAC, unknown, conventionally zero/broadcast
	copy(arp[24:28], targetIP4)

	return append(eth, arp...)
}

// ParseARPReply parses a raw Ethernet frame and returns the ARP payload if
// it is an ARP reply (operation 2), or ok=false otherwise.
func ParseARPReply(frame []byte) (reply ARPFrame, ok bool, err error) {
	if len(frame) < 14+28 {
		return ARPFrame{}, false, hserrors.New(hserrors.CodeScanFailed, "arp frame too short")
	}
	etherType := binary.BigEndian.Uint16(frame[12:14])
	if etherType != 0x0806 {
		return ARPFrame{}, false, nil
	}

	arp := frame[14:42]
	op := binary.BigEndian.Uint16(arp[6:8])
	if op != arpOpReply {
		return ARPFrame{}, false, nil
	}

	return ARPFrame{
		Operation: op,
		SenderMAC: net.HardwareAddr(append([]byte(nil), arp[8:14]...)),
		SenderIP:  net.IP(append([]byte(nil), arp[14:18]...)),
		TargetMAC: net.HardwareAddr(append([]byte(nil), arp[18:24]...)),
		TargetIP:  net.IP(append([]byte(nil), arp[24:28]...)),
	}, true, nil
}
