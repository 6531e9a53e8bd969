package hostscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHost(t *testing.T) {
	h := NewHost("10.0.0.1")

	assert.Equal(t, "10.0.0.1", h.Address)
	assert.Equal(t, NotScanned, h.Reason)
	assert.Equal(t, Unidentified, h.OpSys)
	assert.Empty(t, h.Services)
}

func TestHostAddService(t *testing.T) {
	h := NewHost("10.0.0.1")

	svc := h.AddService(ProtoTCP, 22)

	require := assert.New(t)
	require.Same(h, svc.Host)
	require.Equal(ProtoTCP, svc.Protocol)
	require.Equal(uint16(22), svc.Port)
	require.Equal(NotScanned, svc.Reason)
	require.Len(h.Services, 1)
	require.Same(svc, h.Services[0])
}

func TestServiceBannerString(t *testing.T) {
	svc := &Service{Banner: []byte("SSH-2.0-OpenSSH_7.2p2")}

	assert.Equal(t, "SSH-2.0-OpenSSH_7.2p2", svc.BannerString())

	var empty Service
	assert.Equal(t, "", empty.BannerString())
}

func TestScanReasonString(t *testing.T) {
	assert.Equal(t, "ReplyReceived", ReplyReceived.String())
	assert.Equal(t, "PortUnreachable", PortUnreachable.String())
	assert.Contains(t, ScanReason(99).String(), "ScanReason(99)")
}

func TestOpSysString(t *testing.T) {
	assert.Equal(t, "Ubuntu", Ubuntu.String())
	assert.Equal(t, "Unidentified", Unidentified.String())
	assert.Contains(t, OpSys(99).String(), "OpSys(99)")
}

func TestProtocolString(t *testing.T) {
	assert.Equal(t, "tcp", ProtoTCP.String())
	assert.Equal(t, "icmpv6", ProtoICMPv6.String())
	assert.Contains(t, Protocol(99).String(), "Protocol(99)")
}
