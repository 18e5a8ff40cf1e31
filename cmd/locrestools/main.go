// Package main provides a command-line tool for working with localization
// resource files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/EchoTools/locresTools/pkg/archive"
	"github.com/EchoTools/locresTools/pkg/locres"
)

var (
	mode           string
	inputPath      string
	outputDir      string
	format         string
	codecName      string
	strictRefs     bool
	strongDedup    bool
	forceOverwrite bool
	jobs           int
)

func init() {
	flag.StringVar(&mode, "mode", "", "Operation mode: export, build, info, pack, unpack")
	flag.StringVar(&inputPath, "input", "", "Input file or directory")
	flag.StringVar(&outputDir, "output", "", "Output directory")
	flag.StringVar(&format, "format", "json", "Export format: json, csv, mo")
	flag.StringVar(&codecName, "codec", "zstd", "Archive codec for pack mode: zstd, lzma")
	flag.BoolVar(&strictRefs, "strict", false, "Fail on keys that reference missing strings")
	flag.BoolVar(&strongDedup, "strong-dedup", false, "Use 64-bit hashes to de-duplicate values when building")
	flag.BoolVar(&forceOverwrite, "force", false, "Allow non-empty output directory")
	flag.IntVar(&jobs, "jobs", runtime.NumCPU(), "Number of files processed concurrently")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := validateFlags(); err != nil {
		flag.Usage()
		return err
	}

	if mode != "info" {
		if err := prepareOutputDir(); err != nil {
			return err
		}
	}

	files, err := collectInputs(inputPath, inputExtensions[mode])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files found in %s", inputPath)
	}
	fmt.Printf("Found %d input files\n", len(files))

	if ext := outputExtension(); ext != "" {
		if err := checkCollisions(files, ext); err != nil {
			return err
		}
	}

	var op fileOp
	switch mode {
	case "export":
		op = runExport
	case "build":
		op = runBuild
	case "info":
		op = runInfo
	case "pack":
		op = runPack
	case "unpack":
		op = runUnpack
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}

	if err := processFiles(context.Background(), files, jobs, op); err != nil {
		return err
	}

	if mode != "info" {
		fmt.Printf("Complete. Output written to %s\n", outputDir)
	}
	return nil
}

func validateFlags() error {
	if mode == "" {
		return fmt.Errorf("mode is required")
	}
	if inputPath == "" {
		return fmt.Errorf("input is required")
	}
	if jobs < 1 {
		return fmt.Errorf("jobs must be at least 1")
	}

	switch mode {
	case "export":
		if _, ok := exportExtensions[format]; !ok {
			return fmt.Errorf("format must be 'json', 'csv' or 'mo'")
		}
	case "pack":
		if _, err := archive.ParseCodec(codecName); err != nil {
			return err
		}
	case "build", "info", "unpack":
	default:
		return fmt.Errorf("mode must be one of 'export', 'build', 'info', 'pack' or 'unpack'")
	}

	if mode != "info" && outputDir == "" {
		return fmt.Errorf("output directory is required")
	}

	return nil
}

func prepareOutputDir() error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if !forceOverwrite {
		empty, err := isDirEmpty(outputDir)
		if err != nil {
			return fmt.Errorf("check output directory: %w", err)
		}
		if !empty {
			return fmt.Errorf("output directory is not empty (use -force to override)")
		}
	}

	return nil
}

func isDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdir(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err
}

func decodeOptions() []locres.Option {
	return []locres.Option{locres.WithStrictReferences(strictRefs)}
}

func encodeOptions() []locres.Option {
	return []locres.Option{locres.WithStrongDedup(strongDedup)}
}
