package locres

import (
	"fmt"
	"hash/crc32"
	"io"

	"github.com/EchoTools/locresTools/pkg/stream"
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// stringEntry is one distinct value in the string table.
type stringEntry struct {
	index   uint32
	value   string
	count   uint32
	entries []*Entry
}

// Writer encodes documents to an io.WriteSeeker.
type Writer struct {
	dst    *stream.Writer
	cfg    config
	hashes *lru.Cache[string, uint32]

	dedup  map[uint64]*stringEntry
	values []*stringEntry
}

// NewWriter creates a writer that encodes to dst.
func NewWriter(dst io.WriteSeeker, opts ...Option) (*Writer, error) {
	w := &Writer{
		dst: stream.NewWriter(dst),
		cfg: newConfig(opts),
	}

	if w.cfg.hashCacheSize > 0 {
		cache, err := lru.New[string, uint32](w.cfg.hashCacheSize)
		if err != nil {
			return nil, fmt.Errorf("create hash cache: %w", err)
		}
		w.hashes = cache
	}

	return w, nil
}

// Write encodes doc at the current position of the destination.
//
// Zero hashes in doc are replaced with computed ones, and EntryCount,
// UniqueCount and every entry's OccurrenceCount are updated to match what
// was written.
func (w *Writer) Write(doc *Document) error {
	if doc == nil || doc.Len() == 0 {
		return ErrEmptyInput
	}

	w.dedup = make(map[uint64]*stringEntry)
	w.values = w.values[:0]

	start, err := w.dst.Position()
	if err != nil {
		return err
	}

	// Placeholder header; offset and entry count are patched at the end.
	header := NewHeader(0, 0)
	headerBytes, err := header.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	if err := w.dst.WriteBytes(headerBytes); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := w.dst.WriteUint32(uint32(len(doc.namespaces))); err != nil {
		return fmt.Errorf("write namespace count: %w", err)
	}

	var total uint32
	for _, ns := range doc.namespaces {
		if err := w.writeNamespace(ns); err != nil {
			return fmt.Errorf("write namespace %q: %w", ns.Name, err)
		}
		total += uint32(len(ns.entries))
	}

	end, err := w.dst.Position()
	if err != nil {
		return err
	}
	header.StringTableOffset = end - start

	if err := w.writeStringTable(); err != nil {
		return fmt.Errorf("write string table: %w", err)
	}

	end, err = w.dst.Position()
	if err != nil {
		return err
	}

	if err := w.dst.SetPosition(start + offsetFieldPos); err != nil {
		return err
	}
	if err := w.dst.WriteUint64(header.StringTableOffset); err != nil {
		return fmt.Errorf("patch string table offset: %w", err)
	}
	if err := w.dst.WriteUint32(total); err != nil {
		return fmt.Errorf("patch entry count: %w", err)
	}
	if err := w.dst.SetPosition(end); err != nil {
		return err
	}

	doc.Version = Version
	doc.EntryCount = total
	doc.UniqueCount = uint32(len(w.values))
	return nil
}

func (w *Writer) writeNamespace(ns *Namespace) error {
	if ns.Hash == 0 {
		ns.Hash = w.hashName(ns.Name)
	}

	if err := w.dst.WriteUint32(ns.Hash); err != nil {
		return err
	}
	if err := writeString(w.dst, ns.Name); err != nil {
		return err
	}
	if err := w.dst.WriteUint32(uint32(len(ns.entries))); err != nil {
		return err
	}

	for _, e := range ns.entries {
		e.NamespaceHash = ns.Hash
		if e.KeyHash == 0 {
			e.KeyHash = w.hashName(e.Key)
		}
		if e.ValueHash == 0 {
			e.ValueHash = HashValue(e.Value)
		}

		if err := w.dst.WriteUint32(e.KeyHash); err != nil {
			return err
		}
		if err := writeString(w.dst, e.Key); err != nil {
			return fmt.Errorf("write key %q: %w", e.Key, err)
		}
		if err := w.dst.WriteUint32(e.ValueHash); err != nil {
			return err
		}
		if err := w.dst.WriteUint32(w.addValue(e)); err != nil {
			return err
		}
	}
	return nil
}

// addValue returns the string table index for e's value, registering it on
// first sight.
func (w *Writer) addValue(e *Entry) uint32 {
	key := w.dedupKey(e.Value)
	if se, ok := w.dedup[key]; ok {
		se.count++
		se.entries = append(se.entries, e)
		return se.index
	}

	se := &stringEntry{
		index:   uint32(len(w.values)),
		value:   e.Value,
		count:   1,
		entries: []*Entry{e},
	}
	w.dedup[key] = se
	w.values = append(w.values, se)
	return se.index
}

func (w *Writer) writeStringTable() error {
	if err := w.dst.WriteUint32(uint32(len(w.values))); err != nil {
		return err
	}
	for _, se := range w.values {
		if err := writeString(w.dst, se.value); err != nil {
			return fmt.Errorf("write value %d: %w", se.index, err)
		}
		if err := w.dst.WriteUint32(se.count); err != nil {
			return err
		}
		for _, e := range se.entries {
			e.OccurrenceCount = se.count
		}
	}
	return nil
}

// dedupKey is CRC-32 of the value bytes unless strong dedup is enabled.
// Two values with colliding keys share one string table slot.
func (w *Writer) dedupKey(value string) uint64 {
	if w.cfg.strongDedup {
		return xxhash.Sum64String(value)
	}
	return uint64(crc32.ChecksumIEEE([]byte(value)))
}

func (w *Writer) hashName(s string) uint32 {
	if w.hashes == nil {
		return HashName(s)
	}
	if h, ok := w.hashes.Get(s); ok {
		return h
	}
	h := HashName(s)
	w.hashes.Add(s, h)
	return h
}

// Encode writes doc to dst.
func Encode(dst io.WriteSeeker, doc *Document, opts ...Option) error {
	w, err := NewWriter(dst, opts...)
	if err != nil {
		return err
	}
	return w.Write(doc)
}

// Marshal encodes doc into a new byte slice.
func Marshal(doc *Document, opts ...Option) ([]byte, error) {
	buf := stream.NewBuffer(nil)
	if err := Encode(buf, doc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalBinary encodes the document with default options.
func (d *Document) MarshalBinary() ([]byte, error) {
	return Marshal(d)
}
