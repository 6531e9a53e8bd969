package hoststrategy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	hserrors "github.com/netreveal/hostscan/internal/errors"
	"github.com/netreveal/hostscan/internal/probe"
)

const shodanBaseURL = "https://api.shodan.io"

// ShodanScanner is the passive strategy: it never sends a packet to the
// target, instead asking Shodan's host API what it last observed there.
type ShodanScanner struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewShodanScanner builds a ShodanScanner authenticated with apiKey.
func NewShodanScanner(apiKey string) *ShodanScanner {
	return &ShodanScanner{
		apiKey:  apiKey,
		baseURL: shodanBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type shodanHostResponse struct {
	IPStr string            `json:"ip_str"`
	OS    string            `json:"os"`
	Data  []shodanDataEntry `json:"data"`
}

type shodanDataEntry struct {
	Port      int    `json:"port"`
	Transport string `json:"transport"`
	Data      string `json:"data"`
	Product   string `json:"product"`
	Version   string `json:"version"`
}

func (s *ShodanScanner) Scan(ctx context.Context, target HostTarget) (HostOutcome, error) {
	endpoint := fmt.Sprintf("%s/shodan/host/%s?key=%s", s.baseURL, url.PathEscape(target.Address), url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return HostOutcome{}, hserrors.WrapWithOp(hserrors.CodeScanFailed, "shodan lookup", "build request", err).WithContext("target", target.Address)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return HostOutcome{Alive: false, Reason: probe.ReasonHostUnreachable}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return HostOutcome{Alive: false, Reason: probe.ReasonHostUnreachable}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return HostOutcome{}, hserrors.NewWithTarget(hserrors.CodeScanFailed, fmt.Sprintf("shodan returned status %d", resp.StatusCode), target.Address)
	}

	var parsed shodanHostResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return HostOutcome{}, hserrors.WrapWithOp(hserrors.CodeScanFailed, "shodan lookup", "decode response", err).WithContext("target", target.Address)
	}

	return convertShodanResponse(parsed), nil
}

func convertShodanResponse(r shodanHostResponse) HostOutcome {
	outcome := HostOutcome{Alive: len(r.Data) > 0}
	if outcome.Alive {
		outcome.Reason = probe.ReasonReplyReceived
	}

	for _, entry := range r.Data {
		banner := entry.Data
		if banner == "" && entry.Product != "" {
			banner = entry.Product
			if entry.Version != "" {
				banner += " " + entry.Version
			}
		}
		outcome.Services = append(outcome.Services, ServiceOutcome{
			Protocol: protocolFromTransport(entry.Transport),
			Port:     uint16(entry.Port),
			Alive:    true,
			Reason:   probe.ReasonReplyReceived,
			Banner:   []byte(banner),
		})
	}
	return outcome
}

func protocolFromTransport(transport string) probe.Protocol {
	if transport == "udp" {
		return probe.ProtoUDP
	}
	return probe.ProtoTCP
}
