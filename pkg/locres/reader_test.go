package locres

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// Offsets into the golden {NS: {K: "Hi"}} encoding.
const (
	goldenIndexPos  = 62 // string index of key K
	goldenCountPos  = 66 // string table count
	goldenLengthPos = 70 // length prefix of "Hi"
	goldenValuePos  = 74
)

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"Empty", func(b []byte) []byte { return nil }},
		{"BadMagic", func(b []byte) []byte {
			b[0] ^= 0xFF
			return b
		}},
		{"BadVersion", func(b []byte) []byte {
			b[16] = 2
			return b
		}},
		{"OffsetPastEnd", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[offsetFieldPos:], 1000)
			return b
		}},
		{"OffsetInsideHeader", func(b []byte) []byte {
			binary.LittleEndian.PutUint64(b[offsetFieldPos:], 5)
			return b
		}},
		{"HugeStringCount", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[goldenCountPos:], 0xFFFFFFFF)
			return b
		}},
		{"HugeStringLength", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[goldenLengthPos:], 0x7FFFFFFF)
			return b
		}},
		{"MinInt32StringLength", func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[goldenLengthPos:], 0x80000000)
			return b
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(golden(t))
			if _, err := Unmarshal(data); !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := golden(t)
	for n := 0; n < len(data); n++ {
		if _, err := Unmarshal(data[:n]); !errors.Is(err, ErrFormat) {
			t.Errorf("prefix %d: expected ErrFormat, got %v", n, err)
		}
	}
}

func TestMissingReference(t *testing.T) {
	data := golden(t)
	binary.LittleEndian.PutUint32(data[goldenIndexPos:], 5)

	t.Run("Lenient", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("new reader: %v", err)
		}
		doc, err := r.Read()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		e, ok := doc.Get("NS", "K")
		if !ok {
			t.Fatal("key dropped")
		}
		if e.Value != "" {
			t.Errorf("value: got %q, want empty", e.Value)
		}
		if r.MissingReferences() != 1 {
			t.Errorf("MissingReferences: got %d, want 1", r.MissingReferences())
		}
	})

	t.Run("Strict", func(t *testing.T) {
		_, err := Unmarshal(data, WithStrictReferences(true))
		if !errors.Is(err, ErrMissingReference) {
			t.Errorf("expected ErrMissingReference, got %v", err)
		}
	})
}

func TestDecodeNarrowLatin1(t *testing.T) {
	data := golden(t)
	data[goldenValuePos+1] = 0xE9

	doc, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e, _ := doc.Get("NS", "K"); e.Value != "Hé" {
		t.Errorf("value: got %q, want %q", e.Value, "Hé")
	}
}

func TestUnmarshalBinary(t *testing.T) {
	var doc Document
	if err := doc.UnmarshalBinary(golden(t)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.EntryCount != 1 || doc.UniqueCount != 1 {
		t.Errorf("counts: entries=%d unique=%d", doc.EntryCount, doc.UniqueCount)
	}

	data, err := doc.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != string(golden(t)) {
		t.Error("re-encoding differs from original")
	}
}
