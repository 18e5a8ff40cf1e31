package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/EchoTools/locresTools/pkg/locres"
)

var csvHeader = []string{"namespace", "key", "value", "namespace_hash", "key_hash", "value_hash"}

// ErrCSVHeader is returned when a CSV file does not start with the expected
// header row.
var ErrCSVHeader = errors.New("unexpected csv header")

// WriteCSV writes one row per entry, preceded by a header row. Hashes are
// hexadecimal.
func WriteCSV(w io.Writer, doc *locres.Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range doc.Entries() {
		row := []string{
			e.Namespace,
			e.Key,
			e.Value,
			formatHash(e.NamespaceHash),
			formatHash(e.KeyHash),
			formatHash(e.ValueHash),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s/%s: %w", e.Namespace, e.Key, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a document written by WriteCSV. Empty hash columns are
// treated as zero.
func ReadCSV(r io.Reader) (*locres.Document, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range csvHeader {
		if header[i] != name {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrCSVHeader, i, header[i], name)
		}
	}

	doc := locres.NewDocument()
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		var hashes [3]uint32
		for i := range hashes {
			if hashes[i], err = parseHash(row[3+i]); err != nil {
				return nil, fmt.Errorf("line %d %s: %w", line, csvHeader[3+i], err)
			}
		}

		doc.Set(locres.Entry{
			Namespace:     row[0],
			NamespaceHash: hashes[0],
			Key:           row[1],
			KeyHash:       hashes[1],
			Value:         row[2],
			ValueHash:     hashes[2],
		})
	}
	return doc, nil
}

func formatHash(h uint32) string {
	if h == 0 {
		return ""
	}
	return fmt.Sprintf("%08x", h)
}

func parseHash(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
