package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"ifspect/internal/table"
	"ifspect/internal/winperf"
)

// RawCapture holds the unprocessed text of one capture along with the
// table names that were requested when it was taken. Re-running a
// report from a raw capture reproduces the parse exactly.
type RawCapture struct {
	CaptureName string
	TableNames  []string
	Sections    winperf.Sections
}

// CreateRawCapture creates a raw capture with the specified table
// names, section text, and capture name. It marshals the capture into
// indented JSON for readability.
func CreateRawCapture(tables []table.TableDefinition, sections winperf.Sections, captureName string) (out []byte, err error) {
	tableNames := []string{}
	for _, tbl := range tables {
		tableNames = append(tableNames, tbl.Name)
	}
	capture := RawCapture{
		CaptureName: captureName,
		TableNames:  tableNames,
		Sections:    sections,
	}
	out, err = json.MarshalIndent(capture, "", " ")
	return
}

// ReadRawCaptures reads raw captures from the specified path.
// It reads all .raw files in the directory and returns a slice of RawCapture.
// If the path is a file, it reads the single raw capture and returns it.
func ReadRawCaptures(path string) (captures []RawCapture, err error) {
	// path may be a directory or a file
	fileInfo, err := os.Stat(path)
	if err != nil {
		err = fmt.Errorf("failed to get file info: %v", err)
		return
	}
	allRawPaths := []string{}
	if fileInfo.IsDir() {
		var files []os.DirEntry
		files, err = os.ReadDir(path)
		if err != nil {
			err = fmt.Errorf("failed to read raw capture directory: %v", err)
			return
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if strings.HasSuffix(file.Name(), ".raw") {
				allRawPaths = append(allRawPaths, path+"/"+file.Name())
			}
		}
	} else {
		allRawPaths = append(allRawPaths, path)
	}
	for _, rawPath := range allRawPaths {
		var capture RawCapture
		capture, err = readRawCapture(rawPath)
		if err != nil {
			return
		}
		captures = append(captures, capture)
	}
	return
}

func readRawCapture(rawCapturePath string) (capture RawCapture, err error) {
	captureBytes, err := os.ReadFile(rawCapturePath) // #nosec G304
	if err != nil {
		err = fmt.Errorf("failed to read raw capture file (%s): %v", rawCapturePath, err)
		return
	}
	err = json.Unmarshal(captureBytes, &capture)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal raw capture JSON: %v", err)
		return
	}
	return
}
