package locres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/EchoTools/locresTools/pkg/archive"
)

func sampleDocument() *Document {
	doc := NewDocument()
	doc.SetString("Menu", "Play", "Play")
	doc.SetString("Menu", "Options", "Options")
	doc.SetString("Dialog", "Confirm", "Are you sure?")
	doc.SetString("Dialog", "Play", "Play")
	return doc
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("Raw", func(t *testing.T) {
		path := filepath.Join(dir, "Game.locres")
		if err := WriteFile(path, sampleDocument()); err != nil {
			t.Fatalf("write: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read raw: %v", err)
		}
		if archive.IsArchive(data) {
			t.Error("raw file detected as archive")
		}

		doc, err := ReadFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if doc.Len() != 4 {
			t.Errorf("Len: got %d, want 4", doc.Len())
		}
	})

	for _, codec := range []archive.Codec{archive.CodecZstd, archive.CodecLZMA} {
		t.Run("Archive_"+codec.String(), func(t *testing.T) {
			path := filepath.Join(dir, "Game.locres."+codec.String())
			if err := WriteArchive(path, sampleDocument(), codec); err != nil {
				t.Fatalf("write: %v", err)
			}

			doc, err := ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if e, ok := doc.Get("Dialog", "Confirm"); !ok || e.Value != "Are you sure?" {
				t.Errorf("entry: got %+v", e)
			}
			if doc.UniqueCount != 3 {
				t.Errorf("UniqueCount: got %d, want 3", doc.UniqueCount)
			}
		})
	}

	t.Run("Missing", func(t *testing.T) {
		if _, err := ReadFile(filepath.Join(dir, "missing.locres")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		path := filepath.Join(dir, "empty.locres")
		if err := WriteFile(path, NewDocument()); err == nil {
			t.Error("expected error for empty document")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("empty document produced a file")
		}
	})
}
