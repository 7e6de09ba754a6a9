// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package workflow

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"slices"

	"ifspect/internal/app"
	"ifspect/internal/report"
	"ifspect/internal/table"
	"ifspect/internal/util"
	"ifspect/internal/winperf"
)

// createRawCaptures writes the raw capture file(s) from the loaded data
// returns the list of files created or an error if a write failed.
func (rc *ReportingCommand) createRawCaptures(appContext app.Context, orderedCaptureOutputs []CaptureOutputs) ([]string, error) {
	var rawFiles []string
	for _, captureOutputs := range orderedCaptureOutputs {
		captureBytes, err := report.CreateRawCapture(rc.Tables, captureOutputs.Sections, captureOutputs.CaptureName)
		if err != nil {
			err = fmt.Errorf("failed to create raw capture: %w", err)
			return rawFiles, err
		}
		rawFilename := fmt.Sprintf("%s.%s", captureOutputs.CaptureName, "raw")
		rawPath := filepath.Join(appContext.OutputDir, rawFilename)
		if err = writeReport(captureBytes, rawPath); err != nil {
			err = fmt.Errorf("failed to write raw capture: %w", err)
			return rawFiles, err
		}
		rawFiles = append(rawFiles, rawPath)
	}
	return rawFiles, nil
}

// writeReport writes the report bytes to the specified path.
func writeReport(reportBytes []byte, reportPath string) error {
	err := os.WriteFile(reportPath, reportBytes, 0644) // #nosec G306
	if err != nil {
		err = fmt.Errorf("failed to write report file: %v", err)
		fmt.Fprintln(os.Stderr, err)
		slog.Error(err.Error())
		return err
	}
	return nil
}

// createReports parses the captured data and creates the requested report(s)
func (rc *ReportingCommand) createReports(appContext app.Context, orderedCaptureOutputs []CaptureOutputs, formats []string) ([]string, error) {
	reportFilePaths := []string{}
	allCapturesTableValues := make([][]table.TableValues, 0)
	for _, captureOutputs := range orderedCaptureOutputs {
		// run the parsing pipeline on the capture's sections
		result := winperf.Parse(captureOutputs.Sections)
		result.Interfaces = rc.Filter.Apply(result)
		// process the tables, i.e., get field values from the parsed result
		allTableValues, err := table.ProcessTables(captureOutputs.Tables, result)
		if err != nil {
			err = fmt.Errorf("failed to process captured data: %w", err)
			return nil, err
		}
		// special case - the summary table is built from the post-processed data, i.e., table values
		if rc.SummaryFunc != nil {
			summaryTableValues := rc.SummaryFunc(allTableValues, result)
			// insert the summary table before the table specified by SummaryBeforeTableName, otherwise append it at the end
			summaryBeforeTableFound := false
			if rc.SummaryBeforeTableName != "" {
				for i, tableValues := range allTableValues {
					if tableValues.TableDefinition.Name == rc.SummaryBeforeTableName {
						summaryBeforeTableFound = true
						// insert the summary table before this table
						allTableValues = append(allTableValues[:i], append([]table.TableValues{summaryTableValues}, allTableValues[i:]...)...)
						break
					}
				}
			}
			if !summaryBeforeTableFound {
				// append the summary table at the end
				allTableValues = append(allTableValues, summaryTableValues)
			}
		}
		// special case - add tableValues for Insights
		if rc.InsightsFunc != nil {
			insightsTableValues := rc.InsightsFunc(allTableValues, result)
			allTableValues = append(allTableValues, insightsTableValues)
		}
		// special case - add tableValues for the application version
		allTableValues = append(allTableValues, table.TableValues{
			TableDefinition: table.TableDefinition{
				Name: app.TableNameIfspect,
			},
			Fields: []table.Field{
				{Name: "Version", Values: []string{appContext.Version}},
				{Name: "Args", Values: []string{strings.Join(os.Args, " ")}},
				{Name: "OutputDir", Values: []string{appContext.OutputDir}},
			},
		})
		// create the report(s)
		for _, format := range formats {
			reportBytes, err := report.Create(format, allTableValues, captureOutputs.CaptureName, rc.BriefTableName)
			if err != nil {
				err = fmt.Errorf("failed to create report: %w", err)
				return nil, err
			}
			if len(formats) == 1 && format == report.FormatTxt {
				fmt.Printf("%s:\n", captureOutputs.CaptureName)
				fmt.Print(string(reportBytes))
			}
			reportFilename := fmt.Sprintf("%s.%s", captureOutputs.CaptureName, format)
			reportPath := filepath.Join(appContext.OutputDir, reportFilename)
			if err = writeReport(reportBytes, reportPath); err != nil {
				err = fmt.Errorf("failed to write report: %w", err)
				return nil, err
			}
			reportFilePaths = append(reportFilePaths, reportPath)
		}
		// keep all the captures' table values for combined reports
		allCapturesTableValues = append(allCapturesTableValues, allTableValues)
	}
	if len(allCapturesTableValues) > 1 {
		// list of capture names for the combined report
		// - only those that loaded successfully
		captureNames := make([]string, 0)
		for _, captureOutputs := range orderedCaptureOutputs {
			captureNames = append(captureNames, captureOutputs.CaptureName)
		}
		// merge table names from all captures maintaining the order of the tables
		mergedTableNames := util.MergeOrderedUnique(extractTableNamesFromValues(allCapturesTableValues))
		multiCaptureFormats := []string{report.FormatHtml, report.FormatXlsx}
		for _, format := range multiCaptureFormats {
			if !slices.Contains(formats, format) {
				continue
			}
			reportBytes, err := report.CreateMultiCapture(format, allCapturesTableValues, captureNames, mergedTableNames, rc.BriefTableName)
			if err != nil {
				err = fmt.Errorf("failed to create combined %s report: %w", format, err)
				return nil, err
			}
			reportFilename := fmt.Sprintf("%s.%s", "all_captures", format)
			reportPath := filepath.Join(appContext.OutputDir, reportFilename)
			if err = writeReport(reportBytes, reportPath); err != nil {
				err = fmt.Errorf("failed to write combined %s report: %w", format, err)
				return nil, err
			}
			reportFilePaths = append(reportFilePaths, reportPath)
		}
	}
	return reportFilePaths, nil
}

// extractTableNamesFromValues extracts the table names from the processed table values for each capture.
// It returns a slice of slices, where each inner slice contains the table names for a capture.
func extractTableNamesFromValues(allCapturesTableValues [][]table.TableValues) [][]string {
	captureTableNames := make([][]string, 0, len(allCapturesTableValues))
	for _, tableValues := range allCapturesTableValues {
		names := make([]string, 0, len(tableValues))
		for _, tv := range tableValues {
			names = append(names, tv.TableDefinition.Name)
		}
		captureTableNames = append(captureTableNames, names)
	}
	return captureTableNames
}

func findTableByName(tables []table.TableDefinition, name string) (*table.TableDefinition, error) {
	for _, tbl := range tables {
		if tbl.Name == name {
			return &tbl, nil
		}
	}
	return nil, fmt.Errorf("table [%s] not found", name)
}
