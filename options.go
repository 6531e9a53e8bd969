package hostscan

import (
	"github.com/go-playground/validator/v10"

	"github.com/netreveal/hostscan/internal/config"
	hserrors "github.com/netreveal/hostscan/internal/errors"
)

// Options is the public, caller-facing configuration for Scan. It is
// validated and converted to the internal config.Config before a scan runs.
type Options struct {
	// Passive selects the Shodan passive strategy instead of sending packets.
	Passive bool
	// External delegates host scanning to nmap instead of the internal prober.
	External bool

	// Workers bounds how many probe tasks run concurrently (default 100).
	Workers int `validate:"omitempty,gt=0,lte=4096"`

	// Per-protocol probe deadlines, in milliseconds. Zero means "use default".
	ConnectTimeoutMS int `validate:"omitempty,gt=0"`
	ReadTimeoutMS    int `validate:"omitempty,gt=0"`
	UDPTimeoutMS     int `validate:"omitempty,gt=0"`
	ICMPTimeoutMS    int `validate:"omitempty,gt=0"`
	ARPTimeoutMS     int `validate:"omitempty,gt=0"`
	BannerTimeoutMS  int `validate:"omitempty,gt=0"`

	// SkipBannerGrab fills only Alive/Reason, never Banner.
	SkipBannerGrab bool
	// DisableVulnLookup skips the CVE-lookup enrichment stage.
	DisableVulnLookup bool

	// DataDir is the directory containing the four catalogue files
	// (payloads, cpe-list, cpe-regex, cpe-cves). Required unless
	// DisableVulnLookup is set and callers don't need product tokens either.
	DataDir string

	// ShodanAPIKey authenticates the passive Shodan strategy. Required when
	// Passive is set.
	ShodanAPIKey string

	// NmapPorts is the nmap -p port-list syntax used when External is set
	// (default "1-1000").
	NmapPorts string
}

// DefaultOptions returns Options populated with the library's documented
// defaults.
func DefaultOptions() Options {
	d := config.Default()
	return Options{
		Workers:          d.Workers,
		ConnectTimeoutMS: d.ConnectTimeoutMS,
		ReadTimeoutMS:    d.ReadTimeoutMS,
		UDPTimeoutMS:     d.UDPTimeoutMS,
		ICMPTimeoutMS:    d.ICMPTimeoutMS,
		ARPTimeoutMS:     d.ARPTimeoutMS,
		BannerTimeoutMS:  d.BannerTimeoutMS,
	}
}

var optionsValidate = validator.New()

// toConfig validates o and converts it into the internal config.Config,
// filling any zero-valued timeout/worker fields from the documented
// defaults.
func (o Options) toConfig() (*config.Config, error) {
	if err := optionsValidate.Struct(o); err != nil {
		return nil, hserrors.Wrap(hserrors.CodeValidation, "invalid scan options", err)
	}

	d := config.Default()
	cfg := &config.Config{
		Passive:           o.Passive,
		External:          o.External,
		Workers:           orDefault(o.Workers, d.Workers),
		ConnectTimeoutMS:  orDefault(o.ConnectTimeoutMS, d.ConnectTimeoutMS),
		ReadTimeoutMS:     orDefault(o.ReadTimeoutMS, d.ReadTimeoutMS),
		UDPTimeoutMS:      orDefault(o.UDPTimeoutMS, d.UDPTimeoutMS),
		ICMPTimeoutMS:     orDefault(o.ICMPTimeoutMS, d.ICMPTimeoutMS),
		ARPTimeoutMS:      orDefault(o.ARPTimeoutMS, d.ARPTimeoutMS),
		BannerTimeoutMS:   orDefault(o.BannerTimeoutMS, d.BannerTimeoutMS),
		SkipBannerGrab:    o.SkipBannerGrab,
		DisableVulnLookup: o.DisableVulnLookup,
		DataDir:           o.DataDir,
		ShodanAPIKey:      o.ShodanAPIKey,
		NmapPorts:         defaultStr(o.NmapPorts, "1-1000"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func defaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
