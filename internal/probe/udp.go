package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/miekg/dns"
)

// UDPScanner probes a UDP port with a protocol-aware payload where one is
// known (DNS CHAOS TXT version.bind on 53, SNMP sysDescr.0 on 161) and the
// generic payload-catalogue probe otherwise, per internal/data's payload
// records.
type UDPScanner struct {
	cfg Config
}

func NewUDPScanner(cfg Config) *UDPScanner { return &UDPScanner{cfg: cfg} }

func (s *UDPScanner) Probe(ctx context.Context, target Target) (Result, error) {
	switch target.Port {
	case 53:
		return s.probeDNS(ctx, target)
	case 161:
		return s.probeSNMP(target)
	default:
		return s.probeGeneric(target)
	}
}

// probeDNS sends the traditional BIND version-disclosure query: a CHAOS
// class TXT lookup for "version.bind".
func (s *UDPScanner) probeDNS(ctx context.Context, target Target) (Result, error) {
	addr := net.JoinHostPort(target.Address, "53")
	c := dns.Client{Net: "udp", Timeout: s.cfg.UDPTimeout}

	m := new(dns.Msg)
	m.SetQuestion("version.bind.", dns.TypeTXT)
	m.Question[0].Qclass = dns.ClassCHAOS

	resp, _, err := c.ExchangeContext(ctx, m, addr)
	if err != nil {
		return Result{Alive: false, Reason: classifyUDPError(err)}, nil
	}

	var texts []string
	for _, ans := range resp.Answer {
		if txt, ok := ans.(*dns.TXT); ok {
			texts = append(texts, txt.Txt...)
		}
	}
	banner := strings.Join(texts, " ")
	if banner == "" {
		banner = resp.String()
	}
	return Result{Alive: true, Reason: ReasonReplyReceived, Banner: []byte(banner)}, nil
}

// probeSNMP issues a real SNMPv2c GetRequest for sysDescr.0 against the
// "public" community.
func (s *UDPScanner) probeSNMP(target Target) (Result, error) {
	g := &gosnmp.GoSNMP{
		Target:    target.Address,
		Port:      161,
		Community: "public",
		Version:   gosnmp.Version2c,
		Timeout:   s.cfg.UDPTimeout,
		Retries:   0,
	}
	if err := g.Connect(); err != nil {
		return Result{Alive: false, Reason: classifyUDPError(err)}, nil
	}
	defer g.Conn.Close()

	result, err := g.Get([]string{"1.3.6.1.2.1.1.1.0"}) // sysDescr.0
	if err != nil {
		return Result{Alive: false, Reason: classifyUDPError(err)}, nil
	}
	var banner string
	if len(result.Variables) > 0 {
		banner = fmt.Sprintf("%v", result.Variables[0].Value)
	}
	return Result{Alive: true, Reason: ReasonReplyReceived, Banner: []byte(banner)}, nil
}

func (s *UDPScanner) probeGeneric(target Target) (Result, error) {
	addr := &net.UDPAddr{IP: net.ParseIP(target.Address), Port: int(target.Port)}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return Result{Alive: false, Reason: ReasonScanFailed}, nil
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(s.cfg.UDPTimeout)); err != nil {
		return Result{Alive: false, Reason: ReasonScanFailed}, nil
	}
	if _, err := conn.Write(s.payloadFor(target.Port)); err != nil {
		return Result{Alive: false, Reason: classifyUDPError(err)}, nil
	}

	buf := make([]byte, 2048)
	n, err := conn.Read(buf)
	if err != nil {
		return Result{Alive: false, Reason: classifyUDPError(err)}, nil
	}
	return Result{Alive: true, Reason: ReasonReplyReceived, Banner: buf[:n]}, nil
}

func (s *UDPScanner) payloadFor(port uint16) []byte {
	if p, ok := s.cfg.Payloads[port]; ok {
		return p
	}
	return s.cfg.Payloads[0]
}

// classifyUDPError distinguishes a plain timeout (no reply, the common
// "silently dropped" case) from an ICMP port-unreachable, which a connected
// UDP socket on Linux surfaces as ECONNREFUSED on the next syscall.
func classifyUDPError(err error) Reason {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimedOut
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ReasonPortUnreachable
	}
	return ReasonScanFailed
}
