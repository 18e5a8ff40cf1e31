// Package locres reads and writes Unreal Engine localization resource
// (.locres) files.
//
// A Document holds namespaces in insertion order, each holding entries in
// insertion order. Encoding assigns hashes that were left as zero and
// de-duplicates values into a shared string table; decoding restores the
// same namespaces and keys in file order.
package locres

// Entry is a single localized string.
//
// A hash of zero means "not computed yet"; the encoder fills it in.
type Entry struct {
	Namespace       string
	NamespaceHash   uint32
	Key             string
	KeyHash         uint32
	Value           string
	ValueHash       uint32
	OccurrenceCount uint32 // Number of entries sharing Value, set by the encoder
}

// NewEntry creates an entry with no precomputed hashes.
func NewEntry(namespace, key, value string) Entry {
	return Entry{
		Namespace:       namespace,
		Key:             key,
		Value:           value,
		OccurrenceCount: 1,
	}
}

// Namespace is an ordered set of entries sharing a namespace name.
type Namespace struct {
	Name    string
	Hash    uint32
	entries []*Entry
	index   map[string]int
}

// Len returns the number of keys in the namespace.
func (n *Namespace) Len() int {
	return len(n.entries)
}

// Entries returns the entries in insertion order.
func (n *Namespace) Entries() []*Entry {
	return n.entries
}

// Get returns the entry for key.
func (n *Namespace) Get(key string) (*Entry, bool) {
	i, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.entries[i], true
}

// Document is an in-memory localization resource.
type Document struct {
	Version     uint8
	EntryCount  uint32 // Total entries as recorded in the header
	UniqueCount uint32 // Distinct values in the string table

	namespaces []*Namespace
	index      map[string]int
}

// NewDocument creates an empty document for the current format version.
func NewDocument() *Document {
	return &Document{
		Version: Version,
		index:   make(map[string]int),
	}
}

// FromEntries builds a document from entries, grouping them by the order
// in which each namespace is first seen.
func FromEntries(entries []Entry) *Document {
	doc := NewDocument()
	for _, e := range entries {
		doc.Set(e)
	}
	return doc
}

// SetString adds or replaces the value for namespace/key.
func (d *Document) SetString(namespace, key, value string) *Entry {
	return d.Set(NewEntry(namespace, key, value))
}

// Set adds e to the document. An existing entry with the same namespace
// and key is overwritten in place and keeps its position.
func (d *Document) Set(e Entry) *Entry {
	if e.OccurrenceCount == 0 {
		e.OccurrenceCount = 1
	}

	ns := d.namespace(e.Namespace)
	if ns.Hash == 0 {
		ns.Hash = e.NamespaceHash
	}
	if e.NamespaceHash == 0 {
		e.NamespaceHash = ns.Hash
	}

	if i, ok := ns.index[e.Key]; ok {
		*ns.entries[i] = e
		return ns.entries[i]
	}

	entry := &e
	ns.index[e.Key] = len(ns.entries)
	ns.entries = append(ns.entries, entry)
	return entry
}

func (d *Document) namespace(name string) *Namespace {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[name]; ok {
		return d.namespaces[i]
	}
	ns := &Namespace{
		Name:  name,
		index: make(map[string]int),
	}
	d.index[name] = len(d.namespaces)
	d.namespaces = append(d.namespaces, ns)
	return ns
}

// Namespace returns the namespace with the given name.
func (d *Document) Namespace(name string) (*Namespace, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.namespaces[i], true
}

// Namespaces returns the namespaces in insertion order.
func (d *Document) Namespaces() []*Namespace {
	return d.namespaces
}

// Get returns the entry for namespace/key.
func (d *Document) Get(namespace, key string) (*Entry, bool) {
	ns, ok := d.Namespace(namespace)
	if !ok {
		return nil, false
	}
	return ns.Get(key)
}

// Entries returns every entry, namespace by namespace.
func (d *Document) Entries() []*Entry {
	entries := make([]*Entry, 0, d.Len())
	for _, ns := range d.namespaces {
		entries = append(entries, ns.entries...)
	}
	return entries
}

// Len returns the total number of entries.
func (d *Document) Len() int {
	n := 0
	for _, ns := range d.namespaces {
		n += len(ns.entries)
	}
	return n
}
