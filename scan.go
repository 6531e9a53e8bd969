package hostscan

import (
	"context"
	"strings"
	"time"

	"github.com/netreveal/hostscan/internal/data"
	hserrors "github.com/netreveal/hostscan/internal/errors"
	"github.com/netreveal/hostscan/internal/hoststrategy"
	"github.com/netreveal/hostscan/internal/logging"
	"github.com/netreveal/hostscan/internal/match"
	"github.com/netreveal/hostscan/internal/metrics"
	"github.com/netreveal/hostscan/internal/osid"
	"github.com/netreveal/hostscan/internal/probe"
	"github.com/netreveal/hostscan/internal/runner"
	"github.com/netreveal/hostscan/internal/tokenize"
	"github.com/netreveal/hostscan/internal/vuln"
)

// Scan probes every given Host, mutating it and its Services in place:
// host/service alive-ness and reason, service banners, and — unless
// disabled — each service's CPE product identifiers, known CVEs, and the
// host's identified OS family/version. It returns an error only for a
// fatal, non-per-target failure (invalid Options, a missing data file a
// requested feature needs); individual probe outcomes are always reported
// through Reason, never through the returned error.
func Scan(ctx context.Context, hosts []*Host, opts Options) error {
	cfg, err := opts.toConfig()
	if err != nil {
		return err
	}

	probeCfg := probe.Config{
		ConnectTimeout: cfg.ConnectTimeout(),
		ReadTimeout:    cfg.ReadTimeout(),
		BannerTimeout:  cfg.BannerTimeout(),
		UDPTimeout:     cfg.UDPTimeout(),
		ICMPTimeout:    cfg.ICMPTimeout(),
		ARPTimeout:     cfg.ARPTimeout(),
		SkipBannerGrab: cfg.SkipBannerGrab,
	}

	var matcher match.Matcher
	var lookup *vuln.Lookup
	if cfg.DataDir != "" {
		loader := data.NewFileLoader(cfg.DataDir)

		payloads, err := loader.LoadPayloads()
		if err != nil {
			return hserrors.WrapWithOp(hserrors.CodeDataLoad, "load scan options", "load payload catalogue", err)
		}
		probeCfg.Payloads = payloadMap(payloads)

		cpeList, err := loader.LoadCpeList()
		if err != nil {
			return hserrors.WrapWithOp(hserrors.CodeDataLoad, "load scan options", "load cpe dictionary", err)
		}
		regexRecords, err := loader.LoadCpeRegex()
		if err != nil {
			return hserrors.WrapWithOp(hserrors.CodeDataLoad, "load scan options", "load cpe regex catalogue", err)
		}
		matcher = match.NewAutoMatcher(regexRecords, cpeList)

		if !cfg.DisableVulnLookup {
			cveRecords, err := loader.LoadCpeCves()
			if err != nil {
				return hserrors.WrapWithOp(hserrors.CodeDataLoad, "load scan options", "load cpe-cve catalogue", err)
			}
			lookup = vuln.NewLookup(cveRecords)
		}
	}

	pool := runner.New(cfg.Workers, maxTimeout(&probeCfg))
	factory := hoststrategy.HostScannerFactory{
		Internal: hoststrategy.NewInternalScanner(probeCfg, pool),
		Nmap:     hoststrategy.NewNmapScanner(maxTimeout(&probeCfg), cfg.NmapPorts),
		Shodan:   hoststrategy.NewShodanScanner(cfg.ShodanAPIKey),
	}
	scanner := factory.Get(cfg.Passive, cfg.External)

	for _, host := range hosts {
		scanHost(ctx, scanner, host, matcher, lookup)
	}
	return nil
}

func scanHost(ctx context.Context, scanner hoststrategy.HostScanner, host *Host, matcher match.Matcher, lookup *vuln.Lookup) {
	target := hoststrategy.HostTarget{Address: host.Address, ICMPPing: true}
	for _, svc := range host.Services {
		switch svc.Protocol {
		case ProtoTCP:
			target.TCPPorts = append(target.TCPPorts, svc.Port)
		case ProtoUDP:
			target.UDPPorts = append(target.UDPPorts, svc.Port)
		}
	}

	outcome, err := scanner.Scan(ctx, target)
	if err != nil {
		host.Alive = false
		host.Reason = ScanFailed
		logging.ErrorProbe("host scan failed", host.Address, err)
		return
	}

	host.Alive = outcome.Alive
	host.Reason = convertReason(outcome.Reason)
	applyServiceOutcomes(host, outcome.Services)

	analyzeServices(host, matcher, lookup)
}

// applyServiceOutcomes copies each hoststrategy.ServiceOutcome onto the
// matching Service by (protocol, port); an outcome for a port the Host
// never declared is appended as a new Service (the nmap and Shodan
// strategies can surface open ports the caller didn't ask about).
func applyServiceOutcomes(host *Host, outcomes []hoststrategy.ServiceOutcome) {
	for _, o := range outcomes {
		proto := convertProbeProtocol(o.Protocol)
		svc := findService(host, proto, o.Port)
		if svc == nil {
			svc = host.AddService(proto, o.Port)
		}
		svc.Alive = o.Alive
		svc.Reason = convertReason(o.Reason)
		svc.Banner = o.Banner
	}
}

func findService(host *Host, proto Protocol, port uint16) *Service {
	for _, svc := range host.Services {
		if svc.Protocol == proto && svc.Port == port {
			return svc
		}
	}
	return nil
}

// analyzeServices runs the banner-analysis pipeline — tokenize, match,
// vulnerability lookup, then OS identification — over every service that
// returned a banner. OS identification runs last since it needs the
// combined evidence of every service on the host, not just one.
func analyzeServices(host *Host, matcher match.Matcher, lookup *vuln.Lookup) {
	var banners []string
	for _, svc := range host.Services {
		if len(svc.Banner) == 0 {
			continue
		}
		raw := svc.BannerString()
		banners = append(banners, raw)

		if matcher == nil {
			continue
		}

		start := time.Now()
		normalized := strings.Join(tokenize.Auto(raw), " ")
		metrics.RecordAnalyze("tokenize", "ok", time.Since(start))

		start = time.Now()
		svc.CPE = matcher.Scan(normalized)
		metrics.RecordAnalyze("match", boolOutcome(len(svc.CPE) > 0), time.Since(start))
		if lookup == nil || len(svc.CPE) == 0 {
			continue
		}

		start = time.Now()
		matches := lookup.Scan(svc.CPE)
		svc.CVE = convertCveMatches(matches)
		metrics.RecordAnalyze("vuln", boolOutcome(len(matches) > 0), time.Since(start))
		for cpe, ms := range matches {
			metrics.GetGlobalMetrics().IncrementVulnMatches(cpeVendor(cpe), len(ms))
		}
	}

	if len(banners) == 0 {
		return
	}

	start := time.Now()
	res, ok := osid.Auto(banners)
	metrics.RecordAnalyze("osid", boolOutcome(ok), time.Since(start))
	if ok {
		host.OpSys = convertOpSys(res.OpSys)
		host.OsVer = res.OsVer
	}
}

func boolOutcome(ok bool) string {
	if ok {
		return "matched"
	}
	return "unmatched"
}

// cpeVendor extracts the vendor component of a "part:vendor:product[:version]"
// CPE string for the vuln-match vendor metric label.
func cpeVendor(cpe string) string {
	if parts := strings.SplitN(cpe, ":", 3); len(parts) >= 2 {
		return parts[1]
	}
	return cpe
}

func payloadMap(records []data.PayloadRecord) map[uint16][]byte {
	m := make(map[uint16][]byte, len(records))
	for _, r := range records {
		m[r.Port] = r.Payload
	}
	return m
}

func convertCveMatches(matches map[string][]vuln.Match) map[string][]CveRecord {
	out := make(map[string][]CveRecord, len(matches))
	for cpe, ms := range matches {
		records := make([]CveRecord, len(ms))
		for i, m := range ms {
			records[i] = CveRecord{CVE: m.CVE, Severity: severityLabel(m.Severity)}
		}
		out[cpe] = records
	}
	return out
}

func severityLabel(s byte) string {
	switch s {
	case 0:
		return "low"
	case 1:
		return "medium"
	case 2:
		return "high"
	case 3:
		return "critical"
	default:
		return "unknown"
	}
}

func convertReason(r probe.Reason) ScanReason {
	switch r {
	case probe.ReasonReplyReceived:
		return ReplyReceived
	case probe.ReasonTimedOut:
		return TimedOut
	case probe.ReasonIcmpUnreachable:
		return IcmpUnreachable
	case probe.ReasonPortUnreachable:
		return PortUnreachable
	case probe.ReasonHostUnreachable:
		return HostUnreachable
	case probe.ReasonScanFailed:
		return ScanFailed
	default:
		return NotScanned
	}
}

func convertProbeProtocol(p probe.Protocol) Protocol {
	switch p {
	case probe.ProtoUDP:
		return ProtoUDP
	case probe.ProtoICMP:
		return ProtoICMP
	case probe.ProtoICMPv6:
		return ProtoICMPv6
	default:
		return ProtoTCP
	}
}

func convertOpSys(o osid.OpSys) OpSys {
	switch o {
	case osid.Debian:
		return Debian
	case osid.Ubuntu:
		return Ubuntu
	case osid.EnterpriseLinux:
		return EnterpriseLinux
	case osid.Fedora:
		return Fedora
	default:
		return Unidentified
	}
}

// maxTimeout returns the longest of the probe-layer timeouts, used as the
// per-task timeout for the worker pool and the overall deadline for an
// nmap invocation: whichever single probe in a host's scan takes longest
// bounds how long the pool waits for that task.
func maxTimeout(cfg *probe.Config) time.Duration {
	var longest time.Duration
	for _, d := range []time.Duration{cfg.ConnectTimeout, cfg.BannerTimeout, cfg.UDPTimeout, cfg.ICMPTimeout, cfg.ARPTimeout} {
		if d > longest {
			longest = d
		}
	}
	return longest
}
