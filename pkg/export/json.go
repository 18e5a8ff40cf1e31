// Package export converts localization documents to and from text formats
// for editing outside the game.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/EchoTools/locresTools/pkg/locres"
)

type jsonDocument struct {
	Version    uint8           `json:"version"`
	Namespaces []jsonNamespace `json:"namespaces"`
}

type jsonNamespace struct {
	Name    string      `json:"name"`
	Hash    uint32      `json:"hash,omitempty"`
	Entries []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	KeyHash   uint32 `json:"key_hash,omitempty"`
	ValueHash uint32 `json:"value_hash,omitempty"`
}

// WriteJSON writes doc as indented JSON, keeping namespace and key order.
func WriteJSON(w io.Writer, doc *locres.Document) error {
	out := jsonDocument{
		Version:    doc.Version,
		Namespaces: make([]jsonNamespace, 0, len(doc.Namespaces())),
	}
	for _, ns := range doc.Namespaces() {
		jns := jsonNamespace{
			Name:    ns.Name,
			Hash:    ns.Hash,
			Entries: make([]jsonEntry, 0, ns.Len()),
		}
		for _, e := range ns.Entries() {
			jns.Entries = append(jns.Entries, jsonEntry{
				Key:       e.Key,
				Value:     e.Value,
				KeyHash:   e.KeyHash,
				ValueHash: e.ValueHash,
			})
		}
		out.Namespaces = append(out.Namespaces, jns)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ReadJSON reads a document written by WriteJSON. Missing hashes are left
// zero so the encoder computes them.
func ReadJSON(r io.Reader) (*locres.Document, error) {
	var in jsonDocument
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	doc := locres.NewDocument()
	for _, ns := range in.Namespaces {
		for _, e := range ns.Entries {
			doc.Set(locres.Entry{
				Namespace:     ns.Name,
				NamespaceHash: ns.Hash,
				Key:           e.Key,
				KeyHash:       e.KeyHash,
				Value:         e.Value,
				ValueHash:     e.ValueHash,
			})
		}
	}
	return doc, nil
}
