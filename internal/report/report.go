// Package report generates reports in various formats such as txt, json, html, xlsx.
package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"

	"ifspect/internal/table"
)

const (
	FormatHtml = "html"
	FormatXlsx = "xlsx"
	FormatJson = "json"
	FormatTxt  = "txt"
	FormatRaw  = "raw"
	FormatAll  = "all"
)

const NoDataFound = "No data found."

var FormatOptions = []string{FormatHtml, FormatXlsx, FormatJson, FormatTxt}

// Create generates a report in the specified format from the provided
// table values. The function ensures that all fields in a table have
// the same number of values before generating the report. If the
// format is not supported, the function panics.
//
// The summary table, when named, lands on a separate sheet in xlsx
// output.
func Create(format string, allTableValues []table.TableValues, captureName string, summaryTableName string) (out []byte, err error) {
	// make sure that all fields have the same number of values
	for _, tableValues := range allTableValues {
		numRows := -1
		for _, fieldValues := range tableValues.Fields {
			if numRows == -1 {
				numRows = len(fieldValues.Values)
				continue
			}
			if len(fieldValues.Values) != numRows {
				return nil, fmt.Errorf("expected %d value(s) for field, found %d", numRows, len(fieldValues.Values))
			}
		}
	}
	switch format {
	case FormatTxt:
		return createTextReport(allTableValues)
	case FormatJson:
		return createJsonReport(allTableValues)
	case FormatHtml:
		return createHtmlReport(allTableValues, captureName)
	case FormatXlsx:
		return createXlsxReport(allTableValues, summaryTableName)
	}
	panic(fmt.Sprintf("expected one of %s, got %s", strings.Join(FormatOptions, ", "), format))
}

// CreateMultiCapture generates a single report covering multiple
// captures. Only the "html" and "xlsx" formats are supported; the
// function panics on any other format.
func CreateMultiCapture(format string, allCapturesTableValues [][]table.TableValues, captureNames []string, allTableNames []string, summaryTableName string) (out []byte, err error) {
	switch format {
	case FormatHtml:
		return createHtmlReportMultiCapture(allCapturesTableValues, captureNames, allTableNames)
	case FormatXlsx:
		return createXlsxReportMultiCapture(allCapturesTableValues, captureNames, allTableNames, summaryTableName)
	}
	panic("only HTML and XLSX multi-capture reports supported currently")
}
