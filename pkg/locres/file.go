package locres

import (
	"bytes"
	"fmt"
	"os"

	"github.com/EchoTools/locresTools/pkg/archive"
)

// ReadFile reads a localization resource from path. Both raw files and
// compressed bundles are accepted.
func ReadFile(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Load(data, opts...)
}

// Load decodes raw or bundled localization resource data.
func Load(data []byte, opts ...Option) (*Document, error) {
	if archive.IsArchive(data) {
		var err error
		data, err = archive.ReadAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("read archive: %w", err)
		}
	}

	doc, err := Unmarshal(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse locres: %w", err)
	}
	return doc, nil
}

// WriteFile writes doc to path as a raw localization resource.
func WriteFile(path string, doc *Document, opts ...Option) error {
	data, err := Marshal(doc, opts...)
	if err != nil {
		return fmt.Errorf("marshal locres: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// WriteArchive writes doc to path as a compressed bundle.
func WriteArchive(path string, doc *Document, codec archive.Codec, opts ...Option) error {
	data, err := Marshal(doc, opts...)
	if err != nil {
		return fmt.Errorf("marshal locres: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if err := archive.Encode(f, data, archive.WithCodec(codec)); err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}

	return f.Close()
}
