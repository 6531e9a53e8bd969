package probe

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEchoRequest(t *testing.T) {
	v4 := buildEchoRequest(42, 1, false)
	require.Len(t, v4, 8)
	assert.Equal(t, byte(icmpEchoRequest), v4[0])
	assert.NotZero(t, v4[2], "checksum should be filled in for v4")

	v6 := buildEchoRequest(42, 1, true)
	require.Len(t, v6, 8)
	assert.Equal(t, byte(icmpv6EchoRequest), v6[0])
	assert.Zero(t, v6[2], "v6 checksum is left for the kernel's pseudo-header")
}

func TestClassifyICMPError(t *testing.T) {
	_, err := net.DialTimeout("tcp", "203.0.113.1:81", 1)
	require.Error(t, err)
	assert.Equal(t, ReasonTimedOut, classifyICMPError(err))
}

// Raw ICMP sockets require CAP_NET_RAW, unavailable in most CI sandboxes, so
// the full Probe path is exercised only as a smoke test that tolerates the
// permission-denied case rather than failing on it.
func TestICMPPingerProbePermissionOrUnreachable(t *testing.T) {
	p := NewICMPPinger(testConfig())
	res, err := p.Probe(context.Background(), Target{Address: "127.0.0.1"})
	if err != nil {
		return // no CAP_NET_RAW in this environment
	}
	assert.NotEqual(t, ReasonUnknown, res.Reason)
}
