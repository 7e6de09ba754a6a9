// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package capture loads winperf capture files from disk and sorts the
// auxiliary files into their section types.
package capture

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"ifspect/internal/winperf"
)

// StdinPath selects standard input as the counter source.
const StdinPath = "-"

// A Spec names a capture and the files it is loaded from. Aux files
// are not typed; their content decides where they land.
type Spec struct {
	Name     string   `yaml:"name"`
	Counters string   `yaml:"counters"`
	Aux      []string `yaml:"aux,omitempty"`
}

// Capture is one named capture, loaded and sectioned but not parsed.
type Capture struct {
	Name     string
	Sections winperf.Sections
}

// Load reads the spec's files into a Capture. The counter file is
// mandatory. Each aux file is classified by content; files that look
// like neither an auxiliary table nor counter data are skipped with a
// warning. Aux files holding counter data are rejected, the spec
// names exactly one counter source.
func Load(spec Spec) (Capture, error) {
	c := Capture{Name: spec.Name}
	if c.Name == "" {
		c.Name = NameFromPath(spec.Counters)
	}
	counters, err := readSource(spec.Counters)
	if err != nil {
		return Capture{}, errors.Wrap(err, "loading counter data")
	}
	c.Sections.Counters = counters
	for _, auxPath := range spec.Aux {
		raw, err := readSource(auxPath)
		if err != nil {
			return Capture{}, errors.Wrapf(err, "loading auxiliary file %s", auxPath)
		}
		kind := winperf.ClassifySection(raw)
		slog.Debug("classified auxiliary file",
			slog.String("path", auxPath), slog.String("kind", kind.String()))
		switch kind {
		case winperf.SectionAdapters:
			c.Sections.Adapters = append(c.Sections.Adapters, raw)
		case winperf.SectionTeaming:
			c.Sections.Teaming = append(c.Sections.Teaming, raw)
		case winperf.SectionDHCP:
			c.Sections.DHCP = append(c.Sections.DHCP, raw)
		case winperf.SectionCounters:
			return Capture{}, errors.Errorf("auxiliary file %s holds counter data", auxPath)
		default:
			slog.Warn("skipping unrecognized auxiliary file",
				slog.String("path", auxPath))
		}
	}
	return c, nil
}

// Parse runs the winperf pipeline on the loaded sections.
func (c Capture) Parse() *winperf.Result {
	return winperf.Parse(c.Sections)
}

// NameFromPath derives a capture name from the counter file path:
// the base name without its extension, or "stdin" for standard input.
func NameFromPath(path string) string {
	if path == StdinPath {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readSource(path string) (string, error) {
	if path == StdinPath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return "", err
	}
	return string(data), nil
}
