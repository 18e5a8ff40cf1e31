package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/EchoTools/locresTools/pkg/archive"
	"github.com/EchoTools/locresTools/pkg/export"
	"github.com/EchoTools/locresTools/pkg/gettext"
	"github.com/EchoTools/locresTools/pkg/locres"
)

var exportExtensions = map[string]string{
	"json": ".json",
	"csv":  ".csv",
	"mo":   ".mo",
}

// loadDocument decodes a raw or bundled file and reports how many keys
// referenced missing strings.
func loadDocument(path string) (*locres.Document, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read file: %w", err)
	}

	if archive.IsArchive(data) {
		if data, err = archive.ReadAll(bytes.NewReader(data)); err != nil {
			return nil, 0, fmt.Errorf("read archive: %w", err)
		}
	}

	r, err := locres.NewReader(bytes.NewReader(data), decodeOptions()...)
	if err != nil {
		return nil, 0, err
	}
	doc, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("parse locres: %w", err)
	}
	return doc, r.MissingReferences(), nil
}

func warnMissing(path string, missing int) {
	if missing > 0 {
		fmt.Printf("Warning: %s: %d keys reference missing strings\n", path, missing)
	}
}

func runExport(path string) error {
	doc, missing, err := loadDocument(path)
	if err != nil {
		return err
	}
	warnMissing(path, missing)

	dst, err := outputPath(path, exportExtensions[format])
	if err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	switch format {
	case "json":
		err = export.WriteJSON(f, doc)
	case "csv":
		err = export.WriteCSV(f, doc)
	case "mo":
		_, err = f.Write(gettext.Marshal(doc))
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}

	fmt.Printf("Exported %s (%d entries)\n", dst, doc.Len())
	return f.Close()
}

func runBuild(path string) error {
	doc, err := readText(path)
	if err != nil {
		return err
	}

	dst, err := outputPath(path, locresExt)
	if err != nil {
		return err
	}
	if err := locres.WriteFile(dst, doc, encodeOptions()...); err != nil {
		return err
	}

	fmt.Printf("Built %s: %d entries, %d unique values\n", dst, doc.EntryCount, doc.UniqueCount)
	return nil
}

// readText loads a document from an exported text file, choosing the
// format by extension.
func readText(path string) (*locres.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".mo" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return gettext.Unmarshal(data)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	switch ext {
	case ".json":
		return export.ReadJSON(f)
	case ".csv":
		return export.ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported input format %q", ext)
	}
}

func runInfo(path string) error {
	doc, missing, err := loadDocument(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s: version %d, %d namespaces, %d entries, %d unique values\n",
		path, doc.Version, len(doc.Namespaces()), doc.EntryCount, doc.UniqueCount)
	if n := doc.Len(); uint32(n) != doc.EntryCount {
		fmt.Printf("Warning: %s: header records %d entries, found %d\n", path, doc.EntryCount, n)
	}
	warnMissing(path, missing)
	return nil
}

func runPack(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	if _, err := locres.Unmarshal(data, decodeOptions()...); err != nil {
		return fmt.Errorf("parse locres: %w", err)
	}

	codec, err := archive.ParseCodec(codecName)
	if err != nil {
		return err
	}

	dst, err := outputPath(path, archiveExt)
	if err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if err := archive.Encode(f, data, archive.WithCodec(codec)); err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}

	fmt.Printf("Packed %s (%s)\n", dst, codec)
	return f.Close()
}

func runUnpack(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	data, err := archive.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}
	if _, err := locres.Unmarshal(data, decodeOptions()...); err != nil {
		return fmt.Errorf("parse locres: %w", err)
	}

	dst, err := outputPath(path, locresExt)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fmt.Printf("Unpacked %s (%d bytes)\n", dst, len(data))
	return nil
}
