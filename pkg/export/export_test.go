package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/EchoTools/locresTools/pkg/locres"
)

func sampleDocument(t *testing.T) *locres.Document {
	t.Helper()
	doc := locres.NewDocument()
	doc.SetString("Menu", "Play", "Play")
	doc.SetString("Menu", "Quote", `Say "hi", then leave`)
	doc.SetString("Menu", "Multiline", "line one\nline two")
	doc.SetString("Dialog", "Greeting", "Grüße, 日本語")
	doc.SetString("Dialog", "Empty", "")

	// Encoding fills in every hash.
	if _, err := locres.Marshal(doc); err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return doc
}

func assertSameEntries(t *testing.T, got, want *locres.Document) {
	t.Helper()
	g, w := got.Entries(), want.Entries()
	if len(g) != len(w) {
		t.Fatalf("entries: got %d, want %d", len(g), len(w))
	}
	for i := range w {
		if g[i].Namespace != w[i].Namespace || g[i].Key != w[i].Key || g[i].Value != w[i].Value {
			t.Errorf("entry %d: got %s/%s=%q, want %s/%s=%q",
				i, g[i].Namespace, g[i].Key, g[i].Value, w[i].Namespace, w[i].Key, w[i].Value)
		}
		if g[i].NamespaceHash != w[i].NamespaceHash || g[i].KeyHash != w[i].KeyHash || g[i].ValueHash != w[i].ValueHash {
			t.Errorf("entry %d hashes: got %08x/%08x/%08x, want %08x/%08x/%08x", i,
				g[i].NamespaceHash, g[i].KeyHash, g[i].ValueHash,
				w[i].NamespaceHash, w[i].KeyHash, w[i].ValueHash)
		}
	}
}

func TestJSON(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		doc := sampleDocument(t)

		var buf bytes.Buffer
		if err := WriteJSON(&buf, doc); err != nil {
			t.Fatalf("write: %v", err)
		}

		got, err := ReadJSON(&buf)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		assertSameEntries(t, got, doc)
	})

	t.Run("HashesOptional", func(t *testing.T) {
		in := `{"namespaces":[{"name":"NS","entries":[{"key":"K","value":"Hi"}]}]}`
		doc, err := ReadJSON(strings.NewReader(in))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		e, ok := doc.Get("NS", "K")
		if !ok || e.Value != "Hi" || e.KeyHash != 0 {
			t.Fatalf("entry: %+v", e)
		}

		if _, err := locres.Marshal(doc); err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if e.KeyHash != locres.HashName("K") {
			t.Errorf("key hash: got %08x", e.KeyHash)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		if _, err := ReadJSON(strings.NewReader("{")); err == nil {
			t.Error("expected error for malformed json")
		}
	})
}

func TestCSV(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		doc := sampleDocument(t)

		var buf bytes.Buffer
		if err := WriteCSV(&buf, doc); err != nil {
			t.Fatalf("write: %v", err)
		}
		if !strings.HasPrefix(buf.String(), "namespace,key,value,namespace_hash,key_hash,value_hash\n") {
			t.Errorf("missing header: %q", buf.String())
		}

		got, err := ReadCSV(&buf)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		assertSameEntries(t, got, doc)
	})

	t.Run("BadHeader", func(t *testing.T) {
		in := "ns,key,value,a,b,c\n"
		if _, err := ReadCSV(strings.NewReader(in)); !errors.Is(err, ErrCSVHeader) {
			t.Errorf("expected ErrCSVHeader, got %v", err)
		}
	})

	t.Run("BadHash", func(t *testing.T) {
		in := "namespace,key,value,namespace_hash,key_hash,value_hash\nNS,K,V,zz,,\n"
		if _, err := ReadCSV(strings.NewReader(in)); err == nil {
			t.Error("expected error for invalid hash")
		}
	})

	t.Run("WrongColumnCount", func(t *testing.T) {
		in := "namespace,key,value,namespace_hash,key_hash,value_hash\nNS,K\n"
		if _, err := ReadCSV(strings.NewReader(in)); err == nil {
			t.Error("expected error for short row")
		}
	})
}
