package locres

import (
	"bytes"
	"fmt"
	"io"

	"github.com/EchoTools/locresTools/pkg/stream"
)

// minValueSize is the smallest string table record: length + count.
const minValueSize = 8

// Reader decodes documents from an io.ReadSeeker.
type Reader struct {
	src     *stream.Reader
	cfg     config
	missing int
}

// NewReader creates a reader that decodes from src, starting at its
// current position.
func NewReader(src io.ReadSeeker, opts ...Option) (*Reader, error) {
	sr, err := stream.NewReader(src)
	if err != nil {
		return nil, err
	}
	return &Reader{
		src: sr,
		cfg: newConfig(opts),
	}, nil
}

// MissingReferences returns how many keys in the last Read pointed past the
// string table and were given an empty value.
func (r *Reader) MissingReferences() int {
	return r.missing
}

// Read decodes one document.
func (r *Reader) Read() (*Document, error) {
	r.missing = 0

	start, err := r.src.Position()
	if err != nil {
		return nil, err
	}

	headerBytes, err := r.src.ReadBytes(HeaderSize)
	if err != nil {
		return nil, formatError("read header", err)
	}
	header := &Header{}
	if err := header.UnmarshalBinary(headerBytes); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	if header.StringTableOffset < HeaderSize || header.StringTableOffset > r.src.Size()-start {
		return nil, fmt.Errorf("%w: string table offset %d outside of %d byte stream",
			ErrFormat, header.StringTableOffset, r.src.Size()-start)
	}

	if err := r.src.SetPosition(start + header.StringTableOffset); err != nil {
		return nil, formatError("seek to string table", err)
	}
	values, err := r.readStringTable()
	if err != nil {
		return nil, err
	}

	if err := r.src.SetPosition(start + HeaderSize); err != nil {
		return nil, formatError("seek to namespaces", err)
	}

	doc := NewDocument()
	doc.Version = header.Version
	doc.EntryCount = header.EntryCount
	doc.UniqueCount = uint32(len(values))

	nsCount, err := r.src.ReadUint32()
	if err != nil {
		return nil, formatError("read namespace count", err)
	}
	for i := uint32(0); i < nsCount; i++ {
		if err := r.readNamespace(doc, values); err != nil {
			return nil, fmt.Errorf("read namespace %d: %w", i, err)
		}
	}

	return doc, nil
}

func (r *Reader) readStringTable() ([]stringEntry, error) {
	count, err := r.src.ReadUint32()
	if err != nil {
		return nil, formatError("read string count", err)
	}

	remaining, err := r.src.Remaining()
	if err != nil {
		return nil, err
	}
	if uint64(count)*minValueSize > remaining {
		return nil, fmt.Errorf("%w: %d strings cannot fit in %d bytes", ErrFormat, count, remaining)
	}

	values := make([]stringEntry, count)
	for i := range values {
		value, err := readString(r.src)
		if err != nil {
			return nil, formatError(fmt.Sprintf("read string %d", i), err)
		}
		occurrences, err := r.src.ReadUint32()
		if err != nil {
			return nil, formatError(fmt.Sprintf("read string %d count", i), err)
		}
		values[i] = stringEntry{
			index: uint32(i),
			value: value,
			count: occurrences,
		}
	}
	return values, nil
}

func (r *Reader) readNamespace(doc *Document, values []stringEntry) error {
	nsHash, err := r.src.ReadUint32()
	if err != nil {
		return formatError("read hash", err)
	}
	name, err := readString(r.src)
	if err != nil {
		return formatError("read name", err)
	}
	keyCount, err := r.src.ReadUint32()
	if err != nil {
		return formatError("read key count", err)
	}

	for i := uint32(0); i < keyCount; i++ {
		entry := Entry{
			Namespace:       name,
			NamespaceHash:   nsHash,
			OccurrenceCount: 1,
		}

		if entry.KeyHash, err = r.src.ReadUint32(); err != nil {
			return formatError("read key hash", err)
		}
		if entry.Key, err = readString(r.src); err != nil {
			return formatError("read key", err)
		}
		if entry.ValueHash, err = r.src.ReadUint32(); err != nil {
			return formatError("read value hash", err)
		}
		index, err := r.src.ReadUint32()
		if err != nil {
			return formatError("read string index", err)
		}

		if int(index) < len(values) {
			entry.Value = values[index].value
			entry.OccurrenceCount = values[index].count
		} else if r.cfg.strictReferences {
			return fmt.Errorf("key %q index %d of %d: %w", entry.Key, index, len(values), ErrMissingReference)
		} else {
			r.missing++
		}

		doc.Set(entry)
	}
	return nil
}

// Decode reads a document from src.
func Decode(src io.ReadSeeker, opts ...Option) (*Document, error) {
	r, err := NewReader(src, opts...)
	if err != nil {
		return nil, err
	}
	return r.Read()
}

// Unmarshal decodes a document from data.
func Unmarshal(data []byte, opts ...Option) (*Document, error) {
	return Decode(bytes.NewReader(data), opts...)
}

// UnmarshalBinary decodes data into d with default options.
func (d *Document) UnmarshalBinary(data []byte) error {
	doc, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}
