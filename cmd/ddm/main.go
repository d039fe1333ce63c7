// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ddm-project/ddm"
)

var version = "dev"

func main() {
	var failed bool
	defer func() {
		if failed {
			os.Exit(1)
		}
	}()

	program := os.Args[0]
	var idKey, positionKey, anchorKey, patchKey, valueKey string
	var strictAnchor bool
	var outputPath string
	var outputFormat format
	var showVersion bool

	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "usage: %s [flags] FILE...\n\n", program)
		fmt.Fprintf(out, "Deterministically merges JSON, YAML, or TOML layer files: deep-merging\n")
		fmt.Fprintf(out, "objects by key, matching array items by identity, and applying any\n")
		fmt.Fprintf(out, "declared reordering and deletion directives.\n\n")
		fmt.Fprintf(out, "Example:\n")
		fmt.Fprintf(out, "  # merge env-specific overlay into common base\n")
		fmt.Fprintf(out, "  %s -out config.yaml base.yaml env.yaml\n\n", program)
		fmt.Fprintf(out, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.StringVar(&idKey, "id-key", "", `array item identity key (default "$id")`)
	flag.StringVar(&positionKey, "position-key", "", `reorder directive key (default "$position")`)
	flag.StringVar(&anchorKey, "anchor-key", "", `reorder anchor key (default "$anchor")`)
	flag.StringVar(&patchKey, "patch-key", "", `delete-directive key (default "$patch")`)
	flag.StringVar(&valueKey, "value-key", "", `typed-value wrapper key (default "$value")`)
	flag.BoolVar(&strictAnchor, "strict-anchor", true, "fail on a missing reorder anchor instead of appending to end")
	flag.StringVar(&outputPath, "out", "", "output file path (defaults to stdout)")
	flag.Var(&outputFormat, "format", `output format [json, yaml, toml] (defaults to first file's format)`)
	flag.BoolVar(&showVersion, "version", false, "show version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	files := flag.Args()
	var output io.Writer
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			failed = true
			return
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	anchor := ddm.AnchorLenient
	if strictAnchor {
		anchor = ddm.AnchorStrict
	}
	opts := ddm.Options{
		IDKey:       idKey,
		PositionKey: positionKey,
		AnchorKey:   anchorKey,
		PatchKey:    patchKey,
		ValueKey:    valueKey,
		Anchor:      anchor,
	}

	err := Run(opts, files, outputFormat, output)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		_, _ = fmt.Fprintf(os.Stderr, "usage: %s [flags] FILE...\n", program)
		failed = true
		return
	}
}

// Run merges files in order (base first) under opts and writes the result
// to output in outputFormat (or the first file's format, if unset).
func Run(opts ddm.Options, files []string, outputFormat format, output io.Writer) error {
	if len(files) == 0 {
		return fmt.Errorf("no files to merge")
	}

	m, err := ddm.NewMerger(opts)
	if err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	var layers []any
	for _, file := range files {
		layer, fileFormat, err := parseFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		layers = append(layers, layer)
		if outputFormat == "" {
			outputFormat = fileFormat
		}
	}

	merged, err := m.Merge(layers...)
	if err != nil {
		return fmt.Errorf("merge failed while processing files %v: %w", files, err)
	}

	marshaled, err := outputFormat.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to marshal result as %s: %w", outputFormat, err)
	}

	_, err = output.Write(marshaled)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func parseFile(file string) (any, format, error) {
	var f format

	contents, err := os.ReadFile(file)
	if err != nil {
		return nil, f, err
	}

	extension := strings.ToLower(filepath.Ext(file))
	var parse func([]byte) (any, error)
	switch extension {
	case ".yaml", ".yml":
		f = validFormats["yaml"]
		parse = ddm.ParseYAML
	case ".json":
		f = validFormats["json"]
		parse = ddm.ParseJSON
	case ".toml":
		f = validFormats["toml"]
		parse = ddm.ParseTOML
	}
	if parse == nil {
		return nil, f, fmt.Errorf("unsupported file format: %s", extension)
	}

	v, err := parse(contents)
	if err != nil {
		return nil, f, err
	}
	return v, f, nil
}

type format string

var validFormats = map[string]format{
	"":     format(""),
	"json": format("json"),
	"yaml": format("yaml"),
	"toml": format("toml"),
}

func (f *format) String() string {
	return string(*f)
}

func (f *format) Set(value string) error {
	value = strings.ToLower(value)
	parsed, ok := validFormats[value]
	if !ok {
		return fmt.Errorf("invalid format %q", value)
	}
	*f = parsed
	return nil
}

func (f *format) Marshal(doc any) ([]byte, error) {
	switch *f {
	case "json":
		return json.MarshalIndent(doc, "", "  ")
	case "yaml":
		return ddm.MarshalYAML(doc)
	case "toml":
		return ddm.MarshalTOML(doc)
	default:
		return nil, fmt.Errorf("invalid format %q", *f)
	}
}
