package match

import (
	"regexp"
	"strings"

	"github.com/netreveal/hostscan/internal/data"
)

// CpeDictMatcher matches a banner against the CPE dictionary by looking for
// a record's product name or one of its human-readable titles somewhere in
// the banner text, then pulling a version number out of the text right
// after the match.
//
// Unlike RegexMatcher, a banner can yield several CPEs here (e.g. a web
// server banner naming both the HTTP daemon and the PHP module behind it),
// so every record is tried rather than stopping at the first hit.
type CpeDictMatcher struct {
	records []data.CpeRecord
}

func NewCpeDictMatcher(records []data.CpeRecord) *CpeDictMatcher {
	return &CpeDictMatcher{records: records}
}

func (m *CpeDictMatcher) Scan(banner string) []string {
	var cpes []string
	for _, rec := range m.records {
		if cpe, ok := matchRecord(rec, banner); ok {
			cpes = append(cpes, cpe)
		}
	}
	return dedupeSorted(cpes)
}

func matchRecord(rec data.CpeRecord, banner string) (string, bool) {
	candidates := append([]string{rec.Product}, rec.Titles...)
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		idx := caseInsensitiveIndex(banner, candidate)
		if idx < 0 {
			continue
		}

		if isCiscoIOS(rec) {
			if ver, ok := ciscoIOSVersion(banner); ok {
				return cpeString(rec, ver), true
			}
			continue
		}

		rest := banner[idx+len(candidate):]
		if ver, ok := adjacentVersion(rest); ok {
			return cpeString(rec, ver), true
		}
		if rec.Version != "" && hasVersion(banner, rec.Version) {
			return cpeString(rec, rec.Version), true
		}
		for _, prev := range rec.PrevVersions {
			if hasVersion(banner, prev) {
				return cpeString(rec, prev), true
			}
		}
	}
	return "", false
}

// adjacentVersion looks for a dotted-decimal version immediately after a
// product name match, tolerating a "/" or run of whitespace in between
// (e.g. "Apache/31.33.7", "Exim 13.37").
var adjacentVersionRe = regexp.MustCompile(`^[/\s]+([0-9]+(?:\.[0-9]+)*)`)

func adjacentVersion(s string) (string, bool) {
	m := adjacentVersionRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func hasVersion(banner, version string) bool {
	return strings.Contains(banner, version)
}

func isCiscoIOS(rec data.CpeRecord) bool {
	return strings.EqualFold(rec.Vendor, "cisco") && strings.EqualFold(rec.Product, "ios")
}

// ciscoIOSVersion collapses Cisco's "12.2(53)SE" train notation into the
// dictionary's flat "12.2se" form by dropping the parenthesized maintenance
// number and lowercasing the train suffix.
var ciscoVersionRe = regexp.MustCompile(`Version\s+([0-9]+(?:\.[0-9]+)*)\(([^)]+)\)([A-Za-z0-9]*)`)

func ciscoIOSVersion(banner string) (string, bool) {
	m := ciscoVersionRe.FindStringSubmatch(banner)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1] + m[3]), true
}
