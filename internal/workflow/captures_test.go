// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifspect/internal/capture"
)

func TestSanitizeCaptureName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Valid name with allowed characters",
			input:    "valid_name-123.txt",
			expected: "valid_name-123.txt",
		},
		{
			name:     "Name with invalid characters",
			input:    "invalid@name#123!",
			expected: "invalid_name_123_",
		},
		{
			name:     "Name with spaces",
			input:    "name with spaces",
			expected: "name_with_spaces",
		},
		{
			name:     "Empty name",
			input:    "",
			expected: "",
		},
		{
			name:     "Name with only invalid characters",
			input:    "@#$%^&*()",
			expected: "_________",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sanitizeCaptureName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func newCaptureCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	AddCaptureFlags(cmd)
	return cmd
}

func TestGetCaptureSpecsDefaultsToStdin(t *testing.T) {
	cmd := newCaptureCommand()
	specs, err := GetCaptureSpecs(cmd)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "stdin", specs[0].Name)
	assert.Equal(t, capture.StdinPath, specs[0].Counters)
	assert.Empty(t, specs[0].Aux)
}

func TestGetCaptureSpecsSingleCapture(t *testing.T) {
	dir := t.TempDir()
	countersPath := filepath.Join(dir, "host1.txt")
	require.NoError(t, os.WriteFile(countersPath, []byte("1630928323.48 3600\n"), 0644))

	cmd := newCaptureCommand()
	require.NoError(t, cmd.Flags().Set(flagCountersName, countersPath))
	require.NoError(t, cmd.Flags().Set(flagAuxName, filepath.Join(dir, "adapters.txt")))

	specs, err := GetCaptureSpecs(cmd)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "host1", specs[0].Name)
	assert.Equal(t, countersPath, specs[0].Counters)
	assert.Len(t, specs[0].Aux, 1)
}

func TestGetCaptureSpecsNameOverride(t *testing.T) {
	cmd := newCaptureCommand()
	require.NoError(t, cmd.Flags().Set(flagCaptureNameName, "file server"))

	specs, err := GetCaptureSpecs(cmd)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "file_server", specs[0].Name)
}

func TestGetSpecsFromManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "captures.yaml")
	content := `captures:
  - name: file server
    counters: /data/fs01.txt
    aux:
      - /data/fs01_adapters.txt
  - counters: /data/dc01.txt
`
	require.NoError(t, os.WriteFile(manifest, []byte(content), 0644))

	specs, err := getSpecsFromManifest(manifest)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "file_server", specs[0].Name)
	assert.Equal(t, "/data/fs01.txt", specs[0].Counters)
	assert.Equal(t, []string{"/data/fs01_adapters.txt"}, specs[0].Aux)
	assert.Equal(t, "dc01", specs[1].Name, "name defaults to the counter file base name")
}

func TestGetSpecsFromManifestDuplicateNames(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "captures.yaml")
	content := `captures:
  - name: host 1
    counters: /data/a.txt
  - name: host_1
    counters: /data/b.txt
`
	require.NoError(t, os.WriteFile(manifest, []byte(content), 0644))

	_, err := getSpecsFromManifest(manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate capture name")
}

func TestGetSpecsFromManifestMissingCounters(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "captures.yaml")
	content := `captures:
  - name: host1
`
	require.NoError(t, os.WriteFile(manifest, []byte(content), 0644))

	_, err := getSpecsFromManifest(manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no counters file")
}

func TestGetSpecsFromManifestEmpty(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "captures.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("captures: []\n"), 0644))

	_, err := getSpecsFromManifest(manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no captures found")
}

func TestGetCaptureSpecsStdinBacksOneFile(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "captures.yaml")
	content := `captures:
  - name: one
    counters: "-"
  - name: two
    counters: "-"
`
	require.NoError(t, os.WriteFile(manifest, []byte(content), 0644))

	cmd := newCaptureCommand()
	require.NoError(t, cmd.Flags().Set(flagCapturesFileName, manifest))

	_, err := GetCaptureSpecs(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "standard input")
}

func TestValidateCaptureFlagsMissingFiles(t *testing.T) {
	cmd := newCaptureCommand()
	require.NoError(t, cmd.Flags().Set(flagCountersName, filepath.Join(t.TempDir(), "nope.txt")))

	err := ValidateCaptureFlags(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestValidateCaptureFlagsManifestExclusions(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "captures.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("captures: []\n"), 0644))

	cmd := newCaptureCommand()
	require.NoError(t, cmd.Flags().Set(flagCapturesFileName, manifest))
	require.NoError(t, cmd.Flags().Set(flagCaptureNameName, "host1"))

	err := ValidateCaptureFlags(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be specified")
}
