package hoststrategy

import (
	"context"
	"encoding/xml"
	"strconv"
	"time"

	nmap "github.com/Ullaakut/nmap/v3"

	hserrors "github.com/netreveal/hostscan/internal/errors"
	"github.com/netreveal/hostscan/internal/logging"
	"github.com/netreveal/hostscan/internal/probe"
)

// NmapScanner delegates host scanning to the nmap binary. Scan shells out
// through github.com/Ullaakut/nmap/v3; Process parses a raw nmap XML blob
// directly, so the result-conversion logic is unit-testable without the
// binary installed.
type NmapScanner struct {
	timeout time.Duration
	ports   string
}

// NewNmapScanner builds an NmapScanner that scans the given port list
// (nmap -p syntax, e.g. "22,80,443") with the given overall timeout.
func NewNmapScanner(timeout time.Duration, ports string) *NmapScanner {
	return &NmapScanner{timeout: timeout, ports: ports}
}

func (s *NmapScanner) Scan(ctx context.Context, target HostTarget) (HostOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	scanner, err := nmap.NewScanner(ctx,
		nmap.WithTargets(target.Address),
		nmap.WithPorts(s.ports),
		nmap.WithServiceInfo(),
	)
	if err != nil {
		return HostOutcome{}, hserrors.WrapWithOp(hserrors.CodeScanFailed, "nmap scan", "build scanner", err).WithContext("target", target.Address)
	}

	run, warnings, err := scanner.Run()
	if err != nil {
		return HostOutcome{}, hserrors.WrapWithOp(hserrors.CodeScanFailed, "nmap scan", "run", err).WithContext("target", target.Address)
	}
	if warnings != nil && len(*warnings) > 0 {
		logging.InfoProbe("nmap reported warnings", target.Address, "warnings", *warnings)
	}

	return convertNmapRun(run), nil
}

// Process parses a captured nmap XML report (nmap -oX -) and converts it to
// a HostOutcome, without invoking the nmap binary.
func (s *NmapScanner) Process(xmlBlob []byte) (HostOutcome, error) {
	var run nmapRunXML
	if err := xml.Unmarshal(xmlBlob, &run); err != nil {
		return HostOutcome{}, hserrors.Wrap(hserrors.CodeScanFailed, "parse nmap xml report", err)
	}
	return convertNmapXML(run), nil
}

// nmapRunXML mirrors just the slice of the nmaprun schema this package
// reads: host status, open ports, service detection, and the banner script
// output nmap attaches when --script banner is used.
type nmapRunXML struct {
	XMLName xml.Name  `xml:"nmaprun"`
	Hosts   []hostXML `xml:"host"`
}

type hostXML struct {
	Status  statusXML `xml:"status"`
	Address []struct {
		Addr     string `xml:"addr,attr"`
		AddrType string `xml:"addrtype,attr"`
	} `xml:"address"`
	Ports struct {
		Port []portXML `xml:"port"`
	} `xml:"ports"`
}

type statusXML struct {
	State string `xml:"state,attr"`
}

type portXML struct {
	Protocol string `xml:"protocol,attr"`
	PortID   string `xml:"portid,attr"`
	State    struct {
		State string `xml:"state,attr"`
	} `xml:"state"`
	Service struct {
		Name    string `xml:"name,attr"`
		Product string `xml:"product,attr"`
		Version string `xml:"version,attr"`
		Extra   string `xml:"extrainfo,attr"`
	} `xml:"service"`
	Scripts []struct {
		ID     string `xml:"id,attr"`
		Output string `xml:"output,attr"`
	} `xml:"script"`
}

func convertNmapXML(run nmapRunXML) HostOutcome {
	outcome := HostOutcome{}
	for _, h := range run.Hosts {
		if h.Status.State != "up" {
			continue
		}
		outcome.Alive = true
		outcome.Reason = probe.ReasonReplyReceived

		for _, p := range h.Ports.Port {
			if p.State.State != "open" {
				continue
			}
			port, err := strconv.ParseUint(p.PortID, 10, 16)
			if err != nil {
				continue
			}
			outcome.Services = append(outcome.Services, ServiceOutcome{
				Protocol: protocolFromNmap(p.Protocol),
				Port:     uint16(port),
				Alive:    true,
				Reason:   probe.ReasonReplyReceived,
				Banner:   nmapPortBanner(p),
			})
		}
	}
	return outcome
}

func nmapPortBanner(p portXML) []byte {
	for _, sc := range p.Scripts {
		if sc.ID == "banner" && sc.Output != "" {
			return []byte(sc.Output)
		}
	}
	if p.Service.Product == "" {
		return nil
	}
	banner := p.Service.Product
	if p.Service.Version != "" {
		banner += " " + p.Service.Version
	}
	if p.Service.Extra != "" {
		banner += " (" + p.Service.Extra + ")"
	}
	return []byte(banner)
}

func convertNmapRun(run *nmap.Run) HostOutcome {
	outcome := HostOutcome{}
	if run == nil {
		return outcome
	}
	for _, h := range run.Hosts {
		if h.Status.State != "up" {
			continue
		}
		outcome.Alive = true
		outcome.Reason = probe.ReasonReplyReceived

		for _, p := range h.Ports {
			if p.State.State != "open" {
				continue
			}
			banner := p.Service.Product
			if p.Service.Version != "" {
				banner += " " + p.Service.Version
			}
			if p.Service.ExtraInfo != "" {
				banner += " (" + p.Service.ExtraInfo + ")"
			}
			outcome.Services = append(outcome.Services, ServiceOutcome{
				Protocol: protocolFromNmap(string(p.Protocol)),
				Port:     uint16(p.ID),
				Alive:    true,
				Reason:   probe.ReasonReplyReceived,
				Banner:   []byte(banner),
			})
		}
	}
	return outcome
}

func protocolFromNmap(proto string) probe.Protocol {
	if proto == "udp" {
		return probe.ProtoUDP
	}
	return probe.ProtoTCP
}
