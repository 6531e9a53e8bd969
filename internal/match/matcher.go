// Package match fingerprints tokenized service banners against the CPE
// regex and dictionary catalogues, producing CPE 2.2 strings a caller can
// feed straight into vulnerability lookup.
package match

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/netreveal/hostscan/internal/data"
)

// Matcher fingerprints a raw banner and returns the CPEs it recognizes.
type Matcher interface {
	Scan(banner string) []string
}

// versionPrefix pulls the leading dotted-decimal run out of a version-ish
// string, e.g. "5.2.4-2ubuntu5.2.5" -> "5.2.4".
var versionPrefix = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)*`)

func dedupeSorted(cpes []string) []string {
	seen := make(map[string]struct{}, len(cpes))
	out := make([]string, 0, len(cpes))
	for _, c := range cpes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func cpeString(rec data.CpeRecord, version string) string {
	return fmt.Sprintf("%c:%s:%s:%s", rec.Part, rec.Vendor, rec.Product, version)
}

func cpeStringNoVersion(rec data.CpeRecord) string {
	return fmt.Sprintf("%c:%s:%s", rec.Part, rec.Vendor, rec.Product)
}

func caseInsensitiveIndex(haystack, needle string) int {
	return strings.Index(strings.ToLower(haystack), strings.ToLower(needle))
}
