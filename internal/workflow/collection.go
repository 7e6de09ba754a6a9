// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package workflow

import (
	"fmt"
	"log/slog"

	"ifspect/internal/app"
	"ifspect/internal/capture"
	"ifspect/internal/progress"
	"ifspect/internal/report"
	"ifspect/internal/table"
)

// outputsFromInput reads the raw capture file(s) and returns the data in the order of the raw files
func outputsFromInput(input string, tables []table.TableDefinition, summaryTableName string) ([]CaptureOutputs, error) {
	orderedCaptureOutputs := []CaptureOutputs{}
	// read the raw file(s) as JSON
	rawCaptures, err := report.ReadRawCaptures(input)
	if err != nil {
		err = fmt.Errorf("failed to read raw file(s): %w", err)
		return nil, err
	}
	for _, rawCapture := range rawCaptures {
		includedTables := []table.TableDefinition{}
		for _, tableName := range rawCapture.TableNames { // raw files may have been written with a different set of categories
			// filter out tables that we add after processing
			if tableName == app.TableNameInsights || tableName == app.TableNameIfspect || tableName == summaryTableName {
				continue
			}
			includedTable, err := findTableByName(tables, tableName)
			if err != nil {
				slog.Warn("table from raw capture not found in current tables", slog.String("table", tableName), slog.String("capture", rawCapture.CaptureName))
				continue
			}
			includedTables = append(includedTables, *includedTable)
		}
		orderedCaptureOutputs = append(orderedCaptureOutputs, CaptureOutputs{CaptureName: rawCapture.CaptureName, Sections: rawCapture.Sections, Tables: includedTables})
	}
	return orderedCaptureOutputs, nil
}

// outputsFromCaptures loads the captures and returns the data in the order of the specs.
// Captures that fail to load are reported and dropped.
func outputsFromCaptures(specs []capture.Spec, tables []table.TableDefinition, statusUpdate progress.MultiSpinnerUpdateFunc) []CaptureOutputs {
	orderedCaptureOutputs := []CaptureOutputs{}
	channelCaptureOutputs := make(chan CaptureOutputs)
	channelError := make(chan error)
	// load the captures
	for _, spec := range specs {
		go loadCapture(spec, statusUpdate, channelCaptureOutputs, channelError)
	}
	// wait for all captures to load
	var allCaptureOutputs []CaptureOutputs
	for range specs {
		select {
		case captureOutputs := <-channelCaptureOutputs:
			allCaptureOutputs = append(allCaptureOutputs, captureOutputs)
		case err := <-channelError:
			slog.Error(err.Error())
		}
	}
	// allCaptureOutputs is in the order of load completion
	// reorder to match order of specs
	for _, spec := range specs {
		for _, captureOutputs := range allCaptureOutputs {
			if captureOutputs.CaptureName == spec.Name {
				captureOutputs.Tables = tables
				orderedCaptureOutputs = append(orderedCaptureOutputs, captureOutputs)
				break
			}
		}
	}
	return orderedCaptureOutputs
}

// loadCapture loads the capture named by the spec and sends the result to the appropriate channel
func loadCapture(spec capture.Spec, statusUpdate progress.MultiSpinnerUpdateFunc, channelCaptureOutputs chan CaptureOutputs, channelError chan error) {
	if statusUpdate != nil {
		_ = statusUpdate(spec.Name, "loading capture")
	}
	loaded, err := capture.Load(spec)
	if err != nil {
		if statusUpdate != nil {
			_ = statusUpdate(spec.Name, fmt.Sprintf("error loading capture: %v", err))
		}
		err = fmt.Errorf("error loading capture %s: %v", spec.Name, err)
		channelError <- err
		return
	}
	if statusUpdate != nil {
		_ = statusUpdate(spec.Name, "capture loaded")
	}
	channelCaptureOutputs <- CaptureOutputs{CaptureName: loaded.Name, Sections: loaded.Sections}
}
