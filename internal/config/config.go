// Package config provides the scanning configuration surface for hostscan:
// worker pool size, per-protocol timeouts, and the data directory the
// catalogue loaders read from. It is the internal, validated twin of the
// public hostscan.Options type.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	hserrors "github.com/netreveal/hostscan/internal/errors"
)

// Default values, per spec §6's options table and §5's timeout defaults.
const (
	DefaultWorkers       = 100
	DefaultConnectMS     = 3000
	DefaultReadMS        = 2000
	DefaultBannerMS      = 2000
	DefaultICMPMS        = 1000
	DefaultARPMS         = 1000
	DefaultUDPMS         = 2000
	defaultConfigDirPerm = 0o750
)

// Config is the fully-resolved, validated scanning configuration.
type Config struct {
	Passive           bool   `yaml:"passive" json:"passive"`
	External          bool   `yaml:"external" json:"external"`
	Workers           int    `yaml:"workers" json:"workers" validate:"required,gt=0,lte=4096"`
	ConnectTimeoutMS  int    `yaml:"tcp_timeout_ms" json:"tcp_timeout_ms" validate:"required,gt=0"`
	ReadTimeoutMS     int    `yaml:"read_timeout_ms" json:"read_timeout_ms" validate:"required,gt=0"`
	UDPTimeoutMS      int    `yaml:"udp_timeout_ms" json:"udp_timeout_ms" validate:"required,gt=0"`
	ICMPTimeoutMS     int    `yaml:"icmp_timeout_ms" json:"icmp_timeout_ms" validate:"required,gt=0"`
	ARPTimeoutMS      int    `yaml:"arp_timeout_ms" json:"arp_timeout_ms" validate:"required,gt=0"`
	BannerTimeoutMS   int    `yaml:"banner_timeout_ms" json:"banner_timeout_ms" validate:"required,gt=0"`
	SkipBannerGrab    bool   `yaml:"skip_banner_grab" json:"skip_banner_grab"`
	DisableVulnLookup bool   `yaml:"disable_vuln_lookup" json:"disable_vuln_lookup"`
	DataDir           string `yaml:"data_dir" json:"data_dir"`
	ShodanAPIKey      string `yaml:"shodan_api_key" json:"-"`
	NmapPorts         string `yaml:"nmap_ports" json:"nmap_ports"`
}

// Default returns a Config populated with the spec's documented defaults.
func Default() Config {
	return Config{
		Workers:          DefaultWorkers,
		ConnectTimeoutMS: DefaultConnectMS,
		ReadTimeoutMS:    DefaultReadMS,
		UDPTimeoutMS:     DefaultUDPMS,
		ICMPTimeoutMS:    DefaultICMPMS,
		ARPTimeoutMS:     DefaultARPMS,
		BannerTimeoutMS:  DefaultBannerMS,
	}
}

var validate = validator.New()

// Validate checks the configuration against its struct tags, and rejects a
// data-directory feature request (vuln lookup needs it) with no DataDir set.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return hserrors.Wrap(hserrors.CodeValidation, "invalid scan configuration", err)
	}
	if !c.DisableVulnLookup && c.DataDir == "" {
		return hserrors.New(hserrors.CodeValidation, "data_dir is required unless disable_vuln_lookup is set")
	}
	if c.Passive && c.ShodanAPIKey == "" {
		return hserrors.New(hserrors.CodeValidation, "shodan_api_key is required when passive is set")
	}
	return nil
}

// ConnectTimeout returns the TCP connect deadline as a time.Duration.
func (c *Config) ConnectTimeout() time.Duration { return time.Duration(c.ConnectTimeoutMS) * time.Millisecond }

// ReadTimeout returns the banner-grab read deadline.
func (c *Config) ReadTimeout() time.Duration { return time.Duration(c.ReadTimeoutMS) * time.Millisecond }

// BannerTimeout returns the banner-grab phase deadline.
func (c *Config) BannerTimeout() time.Duration { return time.Duration(c.BannerTimeoutMS) * time.Millisecond }

// UDPTimeout returns the UDP probe deadline.
func (c *Config) UDPTimeout() time.Duration { return time.Duration(c.UDPTimeoutMS) * time.Millisecond }

// ICMPTimeout returns the ICMP probe deadline.
func (c *Config) ICMPTimeout() time.Duration { return time.Duration(c.ICMPTimeoutMS) * time.Millisecond }

// ARPTimeout returns the ARP probe deadline.
func (c *Config) ARPTimeout() time.Duration { return time.Duration(c.ARPTimeoutMS) * time.Millisecond }

// Load reads a Config from a YAML file, filling unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-provided config path
	if err != nil {
		return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read config file", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, hserrors.Wrap(hserrors.CodeDataLoad, "parse config file", err)
	}

	return &cfg, nil
}
