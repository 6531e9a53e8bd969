package data

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
)

// The functions below build well-formed catalogue files in memory. They
// exist to give the loader tests real fixtures to round-trip against
// without shipping binary test data files.

func writeUvarint(buf *bytes.Buffer, v uint64) {
	tmp := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(tmp, v)
	buf.Write(tmp[:n])
}

func writeField(buf *bytes.Buffer, s string) {
	writeUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func writeBytesField(buf *bytes.Buffer, b []byte) {
	writeUvarint(buf, uint64(len(b)))
	buf.Write(b)
}

func gzipBytes(raw []byte) []byte {
	var out bytes.Buffer
	gz := gzip.NewWriter(&out)
	gz.Write(raw) //nolint:errcheck // in-memory writer, Close() surfaces any error
	gz.Close()
	return out.Bytes()
}

func buildPayloadsFixture(records []PayloadRecord) []byte {
	var buf bytes.Buffer
	writeUvarint(&buf, uint64(len(records)))
	for _, rec := range records {
		portBytes := make([]byte, 2)
		binary.BigEndian.PutUint16(portBytes, rec.Port)
		writeBytesField(&buf, portBytes)
		writeBytesField(&buf, rec.Payload)
	}
	return gzipBytes(buf.Bytes())
}

func buildCpeListFixture(records []CpeRecord) []byte {
	var buf bytes.Buffer
	writeUvarint(&buf, uint64(len(records)))
	for _, rec := range records {
		writeBytesField(&buf, []byte{rec.Part})
		writeField(&buf, rec.Vendor)
		writeField(&buf, rec.Product)
		writeField(&buf, rec.Version)
		writeUvarint(&buf, uint64(len(rec.Titles)))
		for _, t := range rec.Titles {
			writeField(&buf, t)
		}
		writeUvarint(&buf, uint64(len(rec.PrevVersions)))
		for _, v := range rec.PrevVersions {
			writeField(&buf, v)
		}
	}
	return gzipBytes(buf.Bytes())
}

func buildCpeRegexFixture(records []RegexRecord) []byte {
	var buf bytes.Buffer
	writeUvarint(&buf, uint64(len(records)))
	for _, rec := range records {
		writeField(&buf, rec.Pattern)
		writeField(&buf, rec.CpeTemplate)
	}
	return gzipBytes(buf.Bytes())
}

func buildCpeCvesFixture(records []CveCatalogueRecord) []byte {
	var buf bytes.Buffer
	writeUvarint(&buf, uint64(len(records)))
	for _, rec := range records {
		writeField(&buf, rec.CpePrefix)
		writeField(&buf, rec.CveID)
		writeBytesField(&buf, []byte{rec.Severity})
	}
	return gzipBytes(buf.Bytes())
}
