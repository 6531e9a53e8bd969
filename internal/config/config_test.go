package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, DefaultWorkers, c.Workers)
	assert.Equal(t, DefaultConnectMS, c.ConnectTimeoutMS)
	assert.Equal(t, DefaultARPMS, c.ARPTimeoutMS)
}

func TestValidateRejectsZeroWorkers(t *testing.T) {
	c := Default()
	c.Workers = 0
	c.DataDir = "/tmp/data"

	err := c.Validate()

	require.Error(t, err)
}

func TestValidateRequiresDataDirUnlessVulnLookupDisabled(t *testing.T) {
	c := Default()
	c.DataDir = ""

	err := c.Validate()
	require.Error(t, err)

	c.DisableVulnLookup = true
	assert.NoError(t, c.Validate())
}

func TestValidateRequiresShodanAPIKeyWhenPassive(t *testing.T) {
	c := Default()
	c.DisableVulnLookup = true
	c.Passive = true

	err := c.Validate()
	require.Error(t, err)

	c.ShodanAPIKey = "testkey"
	assert.NoError(t, c.Validate())
}

func TestTimeoutAccessors(t *testing.T) {
	c := Default()

	assert.Equal(t, c.ConnectTimeout().Milliseconds(), int64(c.ConnectTimeoutMS))
	assert.Equal(t, c.ReadTimeout().Milliseconds(), int64(c.ReadTimeoutMS))
	assert.Equal(t, c.BannerTimeout().Milliseconds(), int64(c.BannerTimeoutMS))
	assert.Equal(t, c.UDPTimeout().Milliseconds(), int64(c.UDPTimeoutMS))
	assert.Equal(t, c.ICMPTimeout().Milliseconds(), int64(c.ICMPTimeoutMS))
	assert.Equal(t, c.ARPTimeout().Milliseconds(), int64(c.ARPTimeoutMS))
}

func TestLoadFillsDefaultsForUnsetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /var/lib/hostscan\nworkers: 50\n"), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Workers)
	assert.Equal(t, "/var/lib/hostscan", cfg.DataDir)
	assert.Equal(t, DefaultARPMS, cfg.ARPTimeoutMS)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")

	require.Error(t, err)
}
