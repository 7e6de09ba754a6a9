// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package workflow

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"ifspect/internal/app"
	"ifspect/internal/capture"
)

// capture flags
var (
	flagCountersFile string
	flagAuxFiles     []string
	flagCaptureName  string
	flagCapturesFile string
)

// capture flag names
const (
	flagCountersName     = "counters"
	flagAuxName          = "aux"
	flagCaptureNameName  = "name"
	flagCapturesFileName = "captures"
)

var captureFlags = []app.Flag{
	{Name: flagCountersName, Help: "file with winperf counter data, \"-\" reads standard input"},
	{Name: flagAuxName, Help: "file with an auxiliary agent section, may be repeated"},
	{Name: flagCaptureNameName, Help: "name for the capture, used in report file names"},
	{Name: flagCapturesFileName, Help: "file with capture(s) to load. See captures.yaml for format."},
}

func AddCaptureFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagCountersFile, flagCountersName, "", captureFlags[0].Help)
	cmd.Flags().StringSliceVar(&flagAuxFiles, flagAuxName, nil, captureFlags[1].Help)
	cmd.Flags().StringVar(&flagCaptureName, flagCaptureNameName, "", captureFlags[2].Help)
	cmd.Flags().StringVar(&flagCapturesFile, flagCapturesFileName, "", captureFlags[3].Help)

	cmd.MarkFlagsMutuallyExclusive(flagCountersName, flagCapturesFileName)
}

func GetCaptureFlagGroup() app.FlagGroup {
	return app.FlagGroup{
		GroupName: "Capture Options",
		Flags:     captureFlags,
	}
}

func ValidateCaptureFlags(cmd *cobra.Command) error {
	if flagCapturesFile != "" && flagCountersFile != "" {
		return fmt.Errorf("only one of --%s or --%s can be specified", flagCapturesFileName, flagCountersName)
	}
	if flagCapturesFile != "" && (len(flagAuxFiles) > 0 || flagCaptureName != "") {
		return fmt.Errorf("if --%s is specified, --%s and --%s must not be specified", flagCapturesFileName, flagAuxName, flagCaptureNameName)
	}
	// confirm that the captures file exists
	if flagCapturesFile != "" {
		if _, err := os.Stat(flagCapturesFile); os.IsNotExist(err) {
			return fmt.Errorf("captures file %s does not exist", flagCapturesFile)
		}
	}
	// confirm that the counter file exists
	if flagCountersFile != "" && flagCountersFile != capture.StdinPath {
		if _, err := os.Stat(flagCountersFile); os.IsNotExist(err) {
			return fmt.Errorf("counters file %s does not exist", flagCountersFile)
		}
	}
	// confirm that the auxiliary files exist
	for _, auxFile := range flagAuxFiles {
		if auxFile == capture.StdinPath {
			continue
		}
		if _, err := os.Stat(auxFile); os.IsNotExist(err) {
			return fmt.Errorf("auxiliary file %s does not exist", auxFile)
		}
	}
	return nil
}

// GetCaptureSpecs assembles the capture spec(s) based on the capture flags.
// When no counter source is given, a single capture reading standard input is
// assumed. Every returned spec carries a sanitized, non-empty name.
func GetCaptureSpecs(cmd *cobra.Command) ([]capture.Spec, error) {
	flagCapturesFile, _ := cmd.Flags().GetString(flagCapturesFileName)
	var specs []capture.Spec
	if flagCapturesFile != "" {
		var err error
		specs, err = getSpecsFromManifest(flagCapturesFile)
		if err != nil {
			return nil, err
		}
	} else {
		counters, _ := cmd.Flags().GetString(flagCountersName)
		auxFiles, _ := cmd.Flags().GetStringSlice(flagAuxName)
		name, _ := cmd.Flags().GetString(flagCaptureNameName)
		if counters == "" {
			counters = capture.StdinPath
		}
		if name == "" {
			name = capture.NameFromPath(counters)
		}
		specs = []capture.Spec{{Name: sanitizeCaptureName(name), Counters: counters, Aux: auxFiles}}
	}
	// standard input can back at most one file across all specs
	stdinUses := 0
	for _, spec := range specs {
		if spec.Counters == capture.StdinPath {
			stdinUses++
		}
		for _, auxFile := range spec.Aux {
			if auxFile == capture.StdinPath {
				stdinUses++
			}
		}
	}
	if stdinUses > 1 {
		return nil, fmt.Errorf("standard input can back only one file")
	}
	if stdinUses == 1 && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "Reading counter data from the terminal. Pipe agent output or pass --%s.\n", flagCountersName)
	}
	return specs, nil
}

type capturesFile struct {
	Captures []capture.Spec `yaml:"captures"`
}

// getSpecsFromManifest reads a captures file and returns the capture specs.
func getSpecsFromManifest(manifestPath string) ([]capture.Spec, error) {
	var capturesFile capturesFile
	// read the file into a byte array
	yamlFile, err := os.ReadFile(manifestPath) // #nosec G304
	if err != nil {
		return nil, err
	}
	// parse the file contents into a capturesFile struct
	err = yaml.Unmarshal(yamlFile, &capturesFile)
	if err != nil {
		return nil, err
	}
	if len(capturesFile.Captures) == 0 {
		return nil, fmt.Errorf("no captures found in %s", manifestPath)
	}
	specs := make([]capture.Spec, 0, len(capturesFile.Captures))
	captureNameUsed := make(map[string]bool)
	for _, spec := range capturesFile.Captures {
		if spec.Counters == "" {
			return nil, fmt.Errorf("capture %q in %s has no counters file", spec.Name, manifestPath)
		}
		// capture name is not required, but names must be unique after sanitizing
		// since they become report file names
		originalName := spec.Name
		if originalName == "" {
			originalName = capture.NameFromPath(spec.Counters)
		}
		name := sanitizeCaptureName(originalName)
		if captureNameUsed[name] {
			return nil, fmt.Errorf("duplicate capture name (after sanitized) found in captures file: original: %s, sanitized: %s", originalName, name)
		}
		captureNameUsed[name] = true
		spec.Name = name
		specs = append(specs, spec)
	}
	return specs, nil
}

// sanitizeCaptureName sanitizes the capture name by removing any invalid characters.
func sanitizeCaptureName(captureName string) string {
	// remove any invalid characters from the capture name
	// this is needed for the report file names
	// we only allow alphanumeric characters, underscores, periods, and dashes
	// everything else is replaced with an underscore
	sanitizedCaptureName := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || r == '.' {
			return r
		}
		if r >= 'a' && r <= 'z' {
			return r
		}
		if r >= 'A' && r <= 'Z' {
			return r
		}
		if r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, captureName)
	return sanitizedCaptureName
}
