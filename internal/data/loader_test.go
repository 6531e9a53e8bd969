package data

import (
	"os"
	"path/filepath"
	"testing"

	hserrors "github.com/netreveal/hostscan/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0o600))
}

func TestFileLoaderLoadPayloads(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, payloadsFile, buildPayloadsFixture([]PayloadRecord{
		{Port: 0, Payload: []byte("generic-probe")},
		{Port: 53, Payload: []byte{0xde, 0xad, 0xbe, 0xef}},
	}))

	l := NewFileLoader(dir)
	records, err := l.LoadPayloads()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, uint16(0), records[0].Port)
	assert.Equal(t, "generic-probe", string(records[0].Payload))
	assert.Equal(t, uint16(53), records[1].Port)
}

func TestFileLoaderLoadCpeList(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, cpeListFile, buildCpeListFixture([]CpeRecord{
		{
			Part:         'a',
			Vendor:       "openbsd",
			Product:      "openssh",
			Version:      "",
			Titles:       []string{"OpenSSH"},
			PrevVersions: []string{"7.1", "7.2"},
		},
	}))

	l := NewFileLoader(dir)
	records, err := l.LoadCpeList()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, byte('a'), records[0].Part)
	assert.Equal(t, "openssh", records[0].Product)
	assert.Equal(t, []string{"7.1", "7.2"}, records[0].PrevVersions)
}

func TestFileLoaderLoadCpeRegex(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, cpeRegexFile, buildCpeRegexFixture([]RegexRecord{
		{Pattern: `SSH-2\.0-OpenSSH_([0-9.]+)`, CpeTemplate: "a:openbsd:openssh:$1"},
	}))

	l := NewFileLoader(dir)
	records, err := l.LoadCpeRegex()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Pattern, "OpenSSH")
}

func TestFileLoaderLoadCpeCves(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, cpeCvesFile, buildCpeCvesFixture([]CveCatalogueRecord{
		{CpePrefix: "a:apache:http_server:2.2.22", CveID: "2012-2687", Severity: 2},
	}))

	l := NewFileLoader(dir)
	records, err := l.LoadCpeCves()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2012-2687", records[0].CveID)
}

func TestFileLoaderMissingFile(t *testing.T) {
	l := NewFileLoader(t.TempDir())
	_, err := l.LoadPayloads()
	require.Error(t, err)
	code, ok := hserrors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, hserrors.CodeDataLoad, code)
}

func TestFileLoaderCorruptFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, payloadsFile, []byte("not gzip data"))

	l := NewFileLoader(dir)
	_, err := l.LoadPayloads()
	require.Error(t, err)
}
