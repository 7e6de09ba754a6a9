package util

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"slices"
	"testing"
)

func TestExpandUser(t *testing.T) {
	usr, err := user.Current()
	if err != nil {
		t.Fatalf("failed to get current user: %v", err)
	}
	tests := []struct {
		path     string
		expected string
	}{
		{"~", usr.HomeDir},
		{"~" + string(os.PathSeparator) + "data", filepath.Join(usr.HomeDir, "data")},
		{"/tmp/data", "/tmp/data"},
		{"relative/path", "relative/path"},
		{"~user/data", "~user/data"}, // only bare '~' is expanded
	}
	for _, test := range tests {
		if got := ExpandUser(test.path); got != test.expected {
			t.Errorf("expected %q, got %q for path %q", test.expected, got, test.path)
		}
	}
}

func TestAbsPath(t *testing.T) {
	got, err := AbsPath("/tmp/data")
	if err != nil {
		t.Fatalf("AbsPath failed: %v", err)
	}
	if got != "/tmp/data" {
		t.Errorf("expected /tmp/data, got %q", got)
	}
	got, err = AbsPath("~")
	if err != nil {
		t.Fatalf("AbsPath failed: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}

func TestDirectoryExists(t *testing.T) {
	tempDir := t.TempDir()

	exists, err := DirectoryExists(tempDir)
	if err != nil {
		t.Fatalf("DirectoryExists failed: %v", err)
	}
	if !exists {
		t.Errorf("expected %s to exist", tempDir)
	}

	exists, err = DirectoryExists(filepath.Join(tempDir, "missing"))
	if err != nil {
		t.Fatalf("DirectoryExists failed: %v", err)
	}
	if exists {
		t.Errorf("expected missing directory to not exist")
	}

	// a regular file is an error, not a directory
	filePath := filepath.Join(tempDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	if _, err := DirectoryExists(filePath); err == nil {
		t.Errorf("expected error for regular file, got nil")
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	newDir := filepath.Join(tempDir, "a", "b")

	if err := CreateDirectoryIfNotExists(newDir, 0755); err != nil {
		t.Fatalf("CreateDirectoryIfNotExists failed: %v", err)
	}
	if !FileOrDirectoryExists(newDir) {
		t.Errorf("expected %s to exist", newDir)
	}
	// second call is a no-op
	if err := CreateDirectoryIfNotExists(newDir, 0755); err != nil {
		t.Errorf("expected nil for existing directory, got %v", err)
	}
}

func TestMergeOrderedUnique(t *testing.T) {
	type testCase[T comparable] struct {
		name     string
		input    [][]T
		expected []T
	}

	stringTests := []testCase[string]{
		{
			name:     "empty input",
			input:    [][]string{},
			expected: []string{},
		},
		{
			name:     "single slice",
			input:    [][]string{{"a", "b", "c"}},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "two slices, no overlap",
			input:    [][]string{{"a", "b"}, {"c", "d"}},
			expected: []string{"a", "b", "c", "d"},
		},
		{
			name:     "two slices, some overlap",
			input:    [][]string{{"a", "b"}, {"b", "c"}},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "multiple slices, complex order",
			input:    [][]string{{"a", "b"}, {"b", "c", "d"}, {"d", "e", "f"}, {"a", "f", "g"}},
			expected: []string{"a", "b", "c", "d", "e", "f", "g"},
		},
		{
			name:     "insertion after previous",
			input:    [][]string{{"a", "b"}, {"a", "c", "b"}},
			expected: []string{"a", "c", "b"},
		},
		{
			name:     "all duplicates",
			input:    [][]string{{"a", "b"}, {"a", "b"}, {"a", "b"}},
			expected: []string{"a", "b"},
		},
		{
			name:     "empty inner slices",
			input:    [][]string{{}, {}, {}},
			expected: []string{},
		},
		{
			name:     "first slice empty, others non-empty",
			input:    [][]string{{}, {"a", "b"}, {"b", "c"}},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "second slice empty",
			input:    [][]string{{"a", "b"}, {}, {"c"}},
			expected: []string{"a", "b", "c"},
		},
	}

	intTests := []testCase[int]{
		{
			name:     "integers, no overlap",
			input:    [][]int{{1, 2}, {3, 4}},
			expected: []int{1, 2, 3, 4},
		},
		{
			name:     "integers, with overlap",
			input:    [][]int{{1, 2}, {2, 3, 4}, {4, 5}},
			expected: []int{1, 2, 3, 4, 5},
		},
		{
			name:     "integers, all duplicates",
			input:    [][]int{{1, 2}, {1, 2}, {1, 2}},
			expected: []int{1, 2},
		},
		{
			name:     "integers, insertion after previous",
			input:    [][]int{{1, 2}, {1, 3, 2}},
			expected: []int{1, 3, 2},
		},
	}

	for _, tc := range stringTests {
		t.Run("string/"+tc.name, func(t *testing.T) {
			got := MergeOrderedUnique(tc.input)
			if !slices.Equal(got, tc.expected) {
				t.Errorf("MergeOrderedUnique(%v) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}

	for _, tc := range intTests {
		t.Run("int/"+tc.name, func(t *testing.T) {
			got := MergeOrderedUnique(tc.input)
			if !slices.Equal(got, tc.expected) {
				t.Errorf("MergeOrderedUnique(%v) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestCreateFlatTGZ(t *testing.T) {
	// Create a temporary directory for test files and tarball
	tempDir := t.TempDir()

	// Create some test files with known content
	files := []string{}
	contents := []string{"hello world", "foo bar", "baz qux"}
	for i, content := range contents {
		filePath := filepath.Join(tempDir, fmt.Sprintf("file%d.txt", i))
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}
		files = append(files, filePath)
	}

	// Path for the tarball
	tarballPath := filepath.Join(tempDir, "test.tar.gz")

	// Call CreateFlatTGZ
	if err := CreateFlatTGZ(files, tarballPath); err != nil {
		t.Fatalf("CreateFlatTGZ failed: %v", err)
	}

	// Open and read the tarball, check contents
	tarball, err := os.Open(tarballPath)
	if err != nil {
		t.Fatalf("failed to open tarball: %v", err)
	}
	defer tarball.Close()

	gzipReader, err := gzip.NewReader(tarball)
	if err != nil {
		t.Fatalf("failed to create gzip reader: %v", err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)
	foundFiles := map[string]string{}
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("error reading tarball: %v", err)
		}
		data, err := io.ReadAll(tarReader)
		if err != nil {
			t.Fatalf("failed to read file from tarball: %v", err)
		}
		foundFiles[header.Name] = string(data)
	}

	// Check that all files are present and contents match
	for i, content := range contents {
		base := filepath.Base(files[i])
		got, ok := foundFiles[base]
		if !ok {
			t.Errorf("file %s not found in tarball", base)
		}
		if got != content {
			t.Errorf("file %s content mismatch: got %q, want %q", base, got, content)
		}
	}

	// Test error when file does not exist
	badTarball := filepath.Join(tempDir, "bad.tar.gz")
	err = CreateFlatTGZ([]string{filepath.Join(tempDir, "doesnotexist.txt")}, badTarball)
	if err == nil {
		t.Errorf("expected error for non-existent file, got nil")
	}

	// Test error when tarball path is invalid
	err = CreateFlatTGZ(files, "/invalid/path/to/tarball.tar.gz")
	if err == nil {
		t.Errorf("expected error for invalid tarball path, got nil")
	}
}
