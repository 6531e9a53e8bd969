package hoststrategy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netreveal/hostscan/internal/probe"
)

func TestShodanScannerScan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "testkey", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"ip_str": "203.0.113.5",
			"os": "Linux",
			"data": [
				{"port": 22, "transport": "tcp", "data": "SSH-2.0-OpenSSH_7.2p2 Ubuntu-4ubuntu2.2\r\n"},
				{"port": 53, "transport": "udp", "product": "ISC BIND", "version": "9.10.3"}
			]
		}`))
	}))
	defer srv.Close()

	s := NewShodanScanner("testkey")
	s.baseURL = srv.URL

	outcome, err := s.Scan(context.Background(), HostTarget{Address: "203.0.113.5"})

	require.NoError(t, err)
	assert.True(t, outcome.Alive)
	require.Len(t, outcome.Services, 2)
	assert.Equal(t, probe.ProtoTCP, outcome.Services[0].Protocol)
	assert.Contains(t, string(outcome.Services[0].Banner), "OpenSSH_7.2p2")
	assert.Equal(t, probe.ProtoUDP, outcome.Services[1].Protocol)
	assert.Equal(t, "ISC BIND 9.10.3", string(outcome.Services[1].Banner))
}

func TestShodanScannerScanNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewShodanScanner("testkey")
	s.baseURL = srv.URL

	outcome, err := s.Scan(context.Background(), HostTarget{Address: "203.0.113.6"})

	require.NoError(t, err)
	assert.False(t, outcome.Alive)
	assert.Equal(t, probe.ReasonHostUnreachable, outcome.Reason)
}
