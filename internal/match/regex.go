package match

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/netreveal/hostscan/internal/data"
)

// RegexMatcher tests a banner against the compiled fingerprint regex
// catalogue. Each record pairs a pattern with a CPE template containing
// "$1", "$2", ... placeholders filled in from the pattern's capture groups.
//
// A banner only ever yields at most one CPE from this matcher: regex
// fingerprints are written to be specific enough that the first match wins,
// keeping it safe to stop scanning the catalogue as soon as one hits.
type RegexMatcher struct {
	records  []data.RegexRecord
	compiled []*regexp.Regexp
}

// NewRegexMatcher compiles every pattern in records up front so Scan never
// pays compilation cost per call. A record whose pattern fails to compile is
// skipped rather than failing the whole matcher.
func NewRegexMatcher(records []data.RegexRecord) *RegexMatcher {
	m := &RegexMatcher{records: records, compiled: make([]*regexp.Regexp, len(records))}
	for i, rec := range records {
		if re, err := regexp.Compile(rec.Pattern); err == nil {
			m.compiled[i] = re
		}
	}
	return m
}

func (m *RegexMatcher) Scan(banner string) []string {
	for i, re := range m.compiled {
		if re == nil {
			continue
		}
		groups := re.FindStringSubmatch(banner)
		if groups == nil {
			continue
		}
		// An empty version capture would leave a trailing ":" behind.
		return []string{strings.TrimSuffix(expandTemplate(m.records[i].CpeTemplate, groups), ":")}
	}
	return nil
}

var templatePlaceholder = regexp.MustCompile(`\$([0-9]+)`)

func expandTemplate(template string, groups []string) string {
	return templatePlaceholder.ReplaceAllStringFunc(template, func(placeholder string) string {
		n, err := strconv.Atoi(placeholder[1:])
		if err != nil || n >= len(groups) {
			return ""
		}
		return strings.TrimSpace(groups[n])
	})
}
