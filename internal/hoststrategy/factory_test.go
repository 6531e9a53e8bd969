package hoststrategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostScannerFactoryGet(t *testing.T) {
	f := HostScannerFactory{
		Internal: &InternalScanner{},
		Nmap:     &NmapScanner{},
		Shodan:   &ShodanScanner{},
	}

	assert.Same(t, f.Internal, f.Get(false, false))
	assert.Same(t, f.Shodan, f.Get(true, false))
	assert.Same(t, f.Nmap, f.Get(false, true))
	assert.Same(t, f.Shodan, f.Get(true, true), "passive takes precedence over external")
}
