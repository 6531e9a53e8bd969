// Package vuln looks up known vulnerabilities for a CPE against the
// CPE-to-CVE catalogue.
package vuln

import (
	"strconv"
	"strings"

	"github.com/netreveal/hostscan/internal/data"
)

// Match is one vulnerability found for a queried CPE.
type Match struct {
	CVE      string
	Severity byte
}

// Lookup answers vulnerability queries against an in-memory inverted index
// built from the CPE-to-CVE catalogue, keyed by "part:vendor:product" so a
// query only has to scan the handful of CVEs recorded against that product.
type Lookup struct {
	index map[string][]data.CveCatalogueRecord
}

func NewLookup(records []data.CveCatalogueRecord) *Lookup {
	l := &Lookup{index: make(map[string][]data.CveCatalogueRecord)}
	for _, rec := range records {
		key := baseKey(rec.CpePrefix)
		l.index[key] = append(l.index[key], rec)
	}
	return l
}

// Scan returns the matching CVEs for each of the given CPEs, keyed by the
// CPE string queried. CPEs with no known vulnerabilities are omitted.
func (l *Lookup) Scan(cpes []string) map[string][]Match {
	out := make(map[string][]Match)
	for _, cpe := range cpes {
		key, version := splitCpe(cpe)
		for _, rec := range l.index[key] {
			if !versionMatches(recordVersion(rec.CpePrefix), version) {
				continue
			}
			out[cpe] = append(out[cpe], Match{CVE: rec.CveID, Severity: rec.Severity})
		}
	}
	return out
}

// baseKey strips the version component off a "part:vendor:product:version"
// CPE string, leaving the "part:vendor:product" the inverted index is keyed
// on.
func baseKey(cpe string) string {
	parts := strings.SplitN(cpe, ":", 4)
	if len(parts) < 3 {
		return cpe
	}
	return strings.Join(parts[:3], ":")
}

func recordVersion(cpe string) string {
	parts := strings.SplitN(cpe, ":", 4)
	if len(parts) < 4 {
		return ""
	}
	return parts[3]
}

func splitCpe(cpe string) (key, version string) {
	return baseKey(cpe), recordVersion(cpe)
}

// versionMatches implements the catalogue's loose dotted-version
// comparison: a record with no version applies to every version of the
// product; otherwise the record's dotted version must be a prefix of the
// target's (so "2.2" covers every 2.2.x release).
func versionMatches(recordVersion, targetVersion string) bool {
	if recordVersion == "" {
		return true
	}
	rp := strings.Split(recordVersion, ".")
	tp := strings.Split(targetVersion, ".")
	if len(rp) > len(tp) {
		return false
	}
	for i, r := range rp {
		if !segmentEqual(r, tp[i]) {
			return false
		}
	}
	return true
}

// segmentEqual compares two version segments numerically when both parse
// as integers, falling back to a literal string comparison for segments
// like "2ubuntu5" that a strconv.Atoi can't handle.
func segmentEqual(a, b string) bool {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return an == bn
	}
	return a == b
}
