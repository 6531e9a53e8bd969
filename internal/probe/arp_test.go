package probe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHtons(t *testing.T) {
	assert.Equal(t, uint16(0x0608), htons(0x0806)) // ETH_P_ARP, big-endian on the wire
	assert.Equal(t, uint16(0x0008), htons(0x0800)) // ETH_P_IP
}

// Raw AF_PACKET sockets require CAP_NET_RAW and a real local interface, so
// the full Probe path only asserts it degrades to a clean result or error
// rather than panicking when neither is available.
func TestArpPingerProbeDoesNotPanic(t *testing.T) {
	p := NewArpPinger(testConfig())
	assert.NotPanics(t, func() {
		_, _ = p.Probe(context.Background(), Target{Address: "198.51.100.1"})
	})
}

// A target outside every locally-attached CIDR is rejected before any
// socket is opened, so this path needs no CAP_NET_RAW and is deterministic:
// a TEST-NET-2 bogon is never going to be a directly-attached subnet.
func TestArpPingerProbeOutsideLocalSubnetScanFailed(t *testing.T) {
	p := NewArpPinger(testConfig())

	res, err := p.Probe(context.Background(), Target{Address: "198.51.100.1"})

	require.NoError(t, err)
	assert.False(t, res.Alive)
	assert.Equal(t, ReasonScanFailed, res.Reason)
}
