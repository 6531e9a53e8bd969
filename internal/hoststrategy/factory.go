package hoststrategy

// HostScannerFactory dispatches to one of the three HostScanner strategies
// by the same (passive, external) pair the root package's Options exposes.
type HostScannerFactory struct {
	Internal *InternalScanner
	Nmap     *NmapScanner
	Shodan   *ShodanScanner
}

// Get returns the Shodan scanner when passive is set, the nmap scanner when
// external is set, and the internal scanner otherwise. Passive takes
// precedence over external when both are set.
func (f HostScannerFactory) Get(passive, external bool) HostScanner {
	switch {
	case passive:
		return f.Shodan
	case external:
		return f.Nmap
	default:
		return f.Internal
	}
}
