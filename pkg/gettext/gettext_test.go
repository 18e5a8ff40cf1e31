package gettext

import (
	"testing"

	"github.com/EchoTools/locresTools/pkg/locres"
)

func TestRoundTrip(t *testing.T) {
	doc := locres.NewDocument()
	doc.SetString("Menu", "Play", "Jouer")
	doc.SetString("Menu", "Quit", "Quitter")
	doc.SetString("Dialog", "Play", "Lancer la partie")
	doc.SetString("Dialog", "Greeting", "Grüße, 日本語")

	data := Marshal(doc)
	if len(data) == 0 {
		t.Fatal("empty catalog")
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// MO catalogs are sorted by id, so compare by lookup.
	if got.Len() != doc.Len() {
		t.Errorf("Len: got %d, want %d", got.Len(), doc.Len())
	}
	for _, want := range doc.Entries() {
		e, ok := got.Get(want.Namespace, want.Key)
		if !ok {
			t.Errorf("%s/%s missing", want.Namespace, want.Key)
			continue
		}
		if e.Value != want.Value {
			t.Errorf("%s/%s: got %q, want %q", want.Namespace, want.Key, e.Value, want.Value)
		}
	}

	// The imported document is ready to encode.
	if _, err := locres.Marshal(got); err != nil {
		t.Errorf("marshal imported document: %v", err)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	if _, err := Unmarshal([]byte("not an mo file")); err == nil {
		t.Error("expected error for invalid catalog")
	}
}
