package match

import "github.com/netreveal/hostscan/internal/data"

// AutoMatcher runs every supported matcher against a banner and merges the
// results into one deduplicated, sorted CPE list.
type AutoMatcher struct {
	regex   *RegexMatcher
	cpedict *CpeDictMatcher
}

func NewAutoMatcher(regexRecords []data.RegexRecord, cpeRecords []data.CpeRecord) *AutoMatcher {
	return &AutoMatcher{
		regex:   NewRegexMatcher(regexRecords),
		cpedict: NewCpeDictMatcher(cpeRecords),
	}
}

func (m *AutoMatcher) Scan(banner string) []string {
	var cpes []string
	cpes = append(cpes, m.regex.Scan(banner)...)
	cpes = append(cpes, m.cpedict.Scan(banner)...)
	return dedupeSorted(cpes)
}
