package vuln

import (
	"testing"

	"github.com/netreveal/hostscan/internal/data"
	"github.com/stretchr/testify/assert"
)

func fixtureCatalogue() []data.CveCatalogueRecord {
	return []data.CveCatalogueRecord{
		{CpePrefix: "a:apache:http_server:2.2.22", CveID: "2012-2687", Severity: 2},
		{CpePrefix: "a:apache:http_server:2.2", CveID: "2014-0231", Severity: 3},
		{CpePrefix: "a:php:php:5.5.5", CveID: "2013-6712", Severity: 2},
		{CpePrefix: "a:php:php:5.5", CveID: "2015-6836", Severity: 1},
		{CpePrefix: "a:php:php:5.4", CveID: "2014-9999", Severity: 1},
	}
}

func TestLookupScan(t *testing.T) {
	l := NewLookup(fixtureCatalogue())

	cves := l.Scan([]string{"a:apache:http_server:2.2.22", "a:php:php:5.5.5"})
	assert.NotEmpty(t, cves)

	apacheIDs := ids(cves["a:apache:http_server:2.2.22"])
	assert.ElementsMatch(t, []string{"2012-2687", "2014-0231"}, apacheIDs)

	phpIDs := ids(cves["a:php:php:5.5.5"])
	assert.ElementsMatch(t, []string{"2013-6712", "2015-6836"}, phpIDs)
}

func TestLookupScanNoMatch(t *testing.T) {
	l := NewLookup(fixtureCatalogue())
	cves := l.Scan([]string{"a:nginx:nginx:1.1.2"})
	assert.Empty(t, cves)
}

func TestLookupVersionPrefixExcludesOtherBranch(t *testing.T) {
	l := NewLookup(fixtureCatalogue())
	cves := l.Scan([]string{"a:php:php:5.4.0"})
	assert.ElementsMatch(t, []string{"2014-9999"}, ids(cves["a:php:php:5.4.0"]))
}

func ids(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.CVE
	}
	return out
}
