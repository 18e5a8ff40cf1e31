package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	locresExt  = ".locres"
	archiveExt = ".lrz"
)

// inputExtensions lists the files each mode picks up from a directory.
var inputExtensions = map[string][]string{
	"export": {locresExt, archiveExt},
	"build":  {".json", ".csv", ".mo"},
	"info":   {locresExt, archiveExt},
	"pack":   {locresExt},
	"unpack": {archiveExt},
}

// inputRoot is the directory output paths are made relative to.
var inputRoot string

// fileOp processes one input file. Implementations share no state.
type fileOp func(path string) error

// collectInputs returns path itself when it is a file, or every file below
// it with one of exts.
func collectInputs(path string, exts []string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		inputRoot = filepath.Dir(path)
		return []string{path}, nil
	}
	inputRoot = path

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasExtension(p, exts) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// processFiles runs op over files with at most limit running at once. The
// first failure cancels files that have not started yet.
func processFiles(ctx context.Context, files []string, limit int, op fileOp) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := op(path); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// outputExtension returns the extension the current mode writes, or "" when
// it writes nothing.
func outputExtension() string {
	switch mode {
	case "export":
		return exportExtensions[format]
	case "build", "unpack":
		return locresExt
	case "pack":
		return archiveExt
	}
	return ""
}

// destination maps an input file to outputDir, keeping its location relative
// to the input root and replacing its extension with ext.
func destination(src, ext string) (string, error) {
	rel, err := filepath.Rel(inputRoot, src)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	return filepath.Join(outputDir, strings.TrimSuffix(rel, filepath.Ext(rel))+ext), nil
}

// checkCollisions fails when two inputs, such as x.locres and x.lrz, would
// be written to the same output file.
func checkCollisions(files []string, ext string) error {
	seen := make(map[string]string, len(files))
	for _, src := range files {
		dst, err := destination(src, ext)
		if err != nil {
			return err
		}
		if prev, ok := seen[dst]; ok {
			return fmt.Errorf("%s and %s both map to %s", prev, src, dst)
		}
		seen[dst] = src
	}
	return nil
}

// outputPath returns the destination for src and creates its directory.
func outputPath(src, ext string) (string, error) {
	dst, err := destination(src, ext)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return dst, nil
}
