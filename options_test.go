package hostscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()

	assert.Equal(t, 100, o.Workers)
	assert.Equal(t, 3000, o.ConnectTimeoutMS)
	assert.False(t, o.SkipBannerGrab)
	assert.False(t, o.DisableVulnLookup)
}

func TestOptionsToConfigFillsDefaults(t *testing.T) {
	o := DefaultOptions()
	o.DisableVulnLookup = true

	cfg, err := o.toConfig()

	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Workers)
	assert.Equal(t, "1-1000", cfg.NmapPorts)
}

func TestOptionsToConfigRejectsNegativeWorkers(t *testing.T) {
	o := DefaultOptions()
	o.Workers = -1

	_, err := o.toConfig()

	require.Error(t, err)
}

func TestOptionsToConfigPassiveRequiresShodanKey(t *testing.T) {
	o := DefaultOptions()
	o.DisableVulnLookup = true
	o.Passive = true

	_, err := o.toConfig()

	require.Error(t, err)
}

func TestOptionsToConfigPassiveWithKeySucceeds(t *testing.T) {
	o := DefaultOptions()
	o.DisableVulnLookup = true
	o.Passive = true
	o.ShodanAPIKey = "testkey"

	cfg, err := o.toConfig()

	require.NoError(t, err)
	assert.Equal(t, "testkey", cfg.ShodanAPIKey)
}

func TestOptionsToConfigCustomNmapPorts(t *testing.T) {
	o := DefaultOptions()
	o.DisableVulnLookup = true
	o.NmapPorts = "22,80,443"

	cfg, err := o.toConfig()

	require.NoError(t, err)
	assert.Equal(t, "22,80,443", cfg.NmapPorts)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 5, orDefault(0, 5))
	assert.Equal(t, 3, orDefault(3, 5))
}

func TestDefaultStr(t *testing.T) {
	assert.Equal(t, "fallback", defaultStr("", "fallback"))
	assert.Equal(t, "set", defaultStr("set", "fallback"))
}
