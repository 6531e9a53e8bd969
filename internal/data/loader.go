// Package data reads the four gzip-compressed, varint-length-prefixed
// binary catalogues the scanner ships with: UDP payloads, the CPE
// dictionary, the CPE regex fingerprint database, and the CPE-to-CVE index.
// Each Load call reads its file in full and returns fresh records; the
// loader itself caches nothing between calls.
package data

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	hserrors "github.com/netreveal/hostscan/internal/errors"
	"github.com/netreveal/hostscan/internal/logging"
)

// PayloadRecord is one UDP probe payload for a destination port (port 0 is
// the generic/fallback probe).
type PayloadRecord struct {
	Port    uint16
	Payload []byte
}

// CpeRecord is one entry from the CPE dictionary.
type CpeRecord struct {
	Part         byte // 'a', 'o', or 'h'
	Vendor       string
	Product      string
	Version      string
	Titles       []string
	PrevVersions []string
}

// RegexRecord is one entry from the regex fingerprint catalogue.
type RegexRecord struct {
	Pattern     string
	CpeTemplate string
}

// CveCatalogueRecord is one entry from the CPE-to-CVE index.
type CveCatalogueRecord struct {
	CpePrefix string
	CveID     string
	Severity  byte
}

const (
	payloadsFile = "payloads"
	cpeListFile  = "cpe-list"
	cpeRegexFile = "cpe-regex"
	cpeCvesFile  = "cpe-cves"
)

// Loader reads the four catalogues from a data directory. It exists as an
// interface so unit tests can simulate a corrupt or missing catalogue
// without a filesystem fixture.
type Loader interface {
	LoadPayloads() ([]PayloadRecord, error)
	LoadCpeList() ([]CpeRecord, error)
	LoadCpeRegex() ([]RegexRecord, error)
	LoadCpeCves() ([]CveCatalogueRecord, error)
}

// FileLoader is the production Loader, reading catalogues from a directory
// on disk.
type FileLoader struct {
	Dir string
}

// NewFileLoader returns a Loader rooted at dir.
func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{Dir: dir}
}

func (l *FileLoader) openGzip(name string) (*gzip.Reader, func() error, error) {
	path := filepath.Join(l.Dir, name)
	f, err := os.Open(path) //nolint:gosec // data_dir is caller-provided configuration
	if err != nil {
		return nil, nil, hserrors.WrapWithOp(hserrors.CodeDataLoad, "open "+name, "failed to open catalogue file", err).WithContext("path", path)
	}
	gz, err := gzip.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, nil, hserrors.WrapWithOp(hserrors.CodeDataLoad, "gunzip "+name, "corrupt catalogue file", err).WithContext("path", path)
	}
	return gz, f.Close, nil
}

func readUvarint(r io.ByteReader) (uint64, error) {
	return binary.ReadUvarint(r)
}

// readField reads one varint-length-prefixed UTF-8 field.
func readField(r *bufio.Reader) (string, error) {
	n, err := readUvarint(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readBytesField(r *bufio.Reader) ([]byte, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// LoadPayloads reads the UDP payload catalogue.
func (l *FileLoader) LoadPayloads() ([]PayloadRecord, error) {
	gz, closeFile, err := l.openGzip(payloadsFile)
	if err != nil {
		return nil, err
	}
	defer closeFile()
	defer gz.Close()

	r := bufio.NewReader(gz)
	count, err := readUvarint(r)
	if err != nil {
		return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read payloads record count", err)
	}

	out := make([]PayloadRecord, 0, count)
	for i := uint64(0); i < count; i++ {
		portBytes, err := readBytesField(r)
		if err != nil || len(portBytes) != 2 {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read payload port", err)
		}
		payload, err := readBytesField(r)
		if err != nil {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read payload bytes", err)
		}
		out = append(out, PayloadRecord{
			Port:    binary.BigEndian.Uint16(portBytes),
			Payload: payload,
		})
	}

	logging.InfoLoad("loaded payload catalogue", "records", len(out))
	return out, nil
}

// LoadCpeList reads the CPE dictionary.
func (l *FileLoader) LoadCpeList() ([]CpeRecord, error) {
	gz, closeFile, err := l.openGzip(cpeListFile)
	if err != nil {
		return nil, err
	}
	defer closeFile()
	defer gz.Close()

	r := bufio.NewReader(gz)
	count, err := readUvarint(r)
	if err != nil {
		return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cpe-list record count", err)
	}

	out := make([]CpeRecord, 0, count)
	for i := uint64(0); i < count; i++ {
		partB, err := readBytesField(r)
		if err != nil || len(partB) != 1 {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cpe part", err)
		}
		vendor, err := readField(r)
		if err != nil {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cpe vendor", err)
		}
		product, err := readField(r)
		if err != nil {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cpe product", err)
		}
		version, err := readField(r)
		if err != nil {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cpe version", err)
		}
		titlesN, err := readUvarint(r)
		if err != nil {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cpe titles count", err)
		}
		titles := make([]string, titlesN)
		for j := range titles {
			titles[j], err = readField(r)
			if err != nil {
				return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cpe title", err)
			}
		}
		prevN, err := readUvarint(r)
		if err != nil {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cpe prev_versions count", err)
		}
		prev := make([]string, prevN)
		for j := range prev {
			prev[j], err = readField(r)
			if err != nil {
				return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cpe prev_version", err)
			}
		}

		out = append(out, CpeRecord{
			Part:         partB[0],
			Vendor:       vendor,
			Product:      product,
			Version:      version,
			Titles:       titles,
			PrevVersions: prev,
		})
	}

	logging.InfoLoad("loaded cpe dictionary", "records", len(out))
	return out, nil
}

// LoadCpeRegex reads the regex fingerprint catalogue.
func (l *FileLoader) LoadCpeRegex() ([]RegexRecord, error) {
	gz, closeFile, err := l.openGzip(cpeRegexFile)
	if err != nil {
		return nil, err
	}
	defer closeFile()
	defer gz.Close()

	r := bufio.NewReader(gz)
	count, err := readUvarint(r)
	if err != nil {
		return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cpe-regex record count", err)
	}

	out := make([]RegexRecord, 0, count)
	for i := uint64(0); i < count; i++ {
		pattern, err := readField(r)
		if err != nil {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read regex pattern", err)
		}
		template, err := readField(r)
		if err != nil {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read regex cpe_template", err)
		}
		out = append(out, RegexRecord{Pattern: pattern, CpeTemplate: template})
	}

	logging.InfoLoad("loaded regex catalogue", "records", len(out))
	return out, nil
}

// LoadCpeCves reads the CPE-to-CVE index.
func (l *FileLoader) LoadCpeCves() ([]CveCatalogueRecord, error) {
	gz, closeFile, err := l.openGzip(cpeCvesFile)
	if err != nil {
		return nil, err
	}
	defer closeFile()
	defer gz.Close()

	r := bufio.NewReader(gz)
	count, err := readUvarint(r)
	if err != nil {
		return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cpe-cves record count", err)
	}

	out := make([]CveCatalogueRecord, 0, count)
	for i := uint64(0); i < count; i++ {
		prefix, err := readField(r)
		if err != nil {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cve cpe_prefix", err)
		}
		cveID, err := readField(r)
		if err != nil {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cve id", err)
		}
		sevB, err := readBytesField(r)
		if err != nil || len(sevB) != 1 {
			return nil, hserrors.Wrap(hserrors.CodeDataLoad, "read cve severity", err)
		}
		out = append(out, CveCatalogueRecord{CpePrefix: prefix, CveID: cveID, Severity: sevB[0]})
	}

	logging.InfoLoad("loaded cve catalogue", "records", len(out))
	return out, nil
}
