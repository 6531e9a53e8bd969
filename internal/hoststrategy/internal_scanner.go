package hoststrategy

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/netreveal/hostscan/internal/address"
	"github.com/netreveal/hostscan/internal/logging"
	"github.com/netreveal/hostscan/internal/metrics"
	"github.com/netreveal/hostscan/internal/probe"
	"github.com/netreveal/hostscan/internal/runner"
)

// InternalScanner drives internal/probe directly: an ARP ping for hosts on
// a directly-attached local subnet, an ICMP(v6) ping otherwise, and a TCP or
// UDP service probe per requested port, all run concurrently through a
// bounded worker pool.
type InternalScanner struct {
	probeCfg probe.Config
	pool     *runner.Pool
	factory  probe.ServiceScannerFactory
}

// NewInternalScanner builds an InternalScanner that runs its probes through
// pool, each governed by probeCfg's per-protocol timeouts.
func NewInternalScanner(probeCfg probe.Config, pool *runner.Pool) *InternalScanner {
	return &InternalScanner{probeCfg: probeCfg, pool: pool, factory: probe.ServiceScannerFactory{}}
}

func (s *InternalScanner) Scan(ctx context.Context, target HostTarget) (HostOutcome, error) {
	var mu sync.Mutex
	outcome := HostOutcome{}

	var tasks []runner.Task

	if target.ICMPPing {
		tasks = append(tasks, s.timedTask("icmp", func(ctx context.Context) (probe.Result, error) {
			return s.pingHost(ctx, target.Address)
		}, func(res probe.Result) {
			mu.Lock()
			defer mu.Unlock()
			outcome.Alive = outcome.Alive || res.Alive
			outcome.Reason = res.Reason
		}))
	}

	for _, port := range target.TCPPorts {
		port := port
		tasks = append(tasks, s.timedTask("tcp", func(ctx context.Context) (probe.Result, error) {
			scanner := s.factory.Get(probe.ProtoTCP, s.probeCfg)
			return scanner.Probe(ctx, probe.Target{Address: target.Address, Port: port})
		}, func(res probe.Result) {
			mu.Lock()
			defer mu.Unlock()
			outcome.Services = append(outcome.Services, ServiceOutcome{
				Protocol: probe.ProtoTCP, Port: port, Alive: res.Alive, Reason: res.Reason, Banner: res.Banner,
			})
			outcome.Alive = outcome.Alive || res.Alive
		}))
	}

	for _, port := range target.UDPPorts {
		port := port
		tasks = append(tasks, s.timedTask("udp", func(ctx context.Context) (probe.Result, error) {
			scanner := s.factory.Get(probe.ProtoUDP, s.probeCfg)
			return scanner.Probe(ctx, probe.Target{Address: target.Address, Port: port})
		}, func(res probe.Result) {
			mu.Lock()
			defer mu.Unlock()
			outcome.Services = append(outcome.Services, ServiceOutcome{
				Protocol: probe.ProtoUDP, Port: port, Alive: res.Alive, Reason: res.Reason, Banner: res.Banner,
			})
			outcome.Alive = outcome.Alive || res.Alive
		}))
	}

	tasks = s.withActiveGauge(tasks)

	results := s.pool.Run(ctx, tasks)
	for _, r := range results {
		if r.Err != nil {
			logging.ErrorProbe("probe task failed", target.Address, r.Err)
		}
	}
	return outcome, nil
}

// timedTask wraps a probe call with duration/error metrics recording; apply
// is responsible for its own locking around the shared HostOutcome.
func (s *InternalScanner) timedTask(protocol string, probeFn func(ctx context.Context) (probe.Result, error), apply func(probe.Result)) runner.Task {
	return func(ctx context.Context) error {
		start := time.Now()
		res, err := probeFn(ctx)
		metrics.RecordProbe(protocol, res.Reason.String(), time.Since(start))
		if err != nil {
			metrics.RecordProbeError(protocol, "probe_failed")
		}
		apply(res)
		return err
	}
}

// withActiveGauge wraps each task so the metrics active-probes gauge tracks
// how many of them are running concurrently in the pool at any instant.
func (s *InternalScanner) withActiveGauge(tasks []runner.Task) []runner.Task {
	var active int64
	gm := metrics.GetGlobalMetrics()
	wrapped := make([]runner.Task, len(tasks))
	for i, t := range tasks {
		task := t
		wrapped[i] = func(ctx context.Context) error {
			gm.SetActiveProbes(int(atomic.AddInt64(&active, 1)))
			defer gm.SetActiveProbes(int(atomic.AddInt64(&active, -1)))
			return task(ctx)
		}
	}
	return wrapped
}

// pingHost ARP-pings targets on a directly-attached local subnet (ICMP is
// often filtered on a LAN segment) and ICMP(v6)-pings everything else.
func (s *InternalScanner) pingHost(ctx context.Context, addr string) (probe.Result, error) {
	ip := net.ParseIP(addr)
	if ip != nil && ip.To4() != nil {
		if ifaces, err := address.EnumerateLocalInterfaces(); err == nil {
			if _, _, ok := address.FindLocalInterfaceFor(ifaces, ip); ok {
				arp := probe.NewArpPinger(s.probeCfg)
				return arp.Probe(ctx, probe.Target{Address: addr})
			}
		}
	}

	proto := probe.ProtoICMP
	if ip != nil && ip.To4() == nil {
		proto = probe.ProtoICMPv6
	}
	pinger := s.factory.Get(proto, s.probeCfg)
	return pinger.Probe(ctx, probe.Target{Address: addr})
}
