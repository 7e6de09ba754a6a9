package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"ifspect/internal/table"
)

// Package-level map for custom xlsx renderers
var customXlsxRenderers = map[string]table.XlsxTableRenderer{}

// getCustomXlsxRenderer returns the custom xlsx renderer for a table, or nil if no custom renderer exists
func getCustomXlsxRenderer(tableName string) table.XlsxTableRenderer {
	return customXlsxRenderers[tableName]
}

// RegisterXlsxRenderer allows external packages to register custom xlsx renderers for specific tables
func RegisterXlsxRenderer(tableName string, renderer table.XlsxTableRenderer) {
	customXlsxRenderers[tableName] = renderer
}

func cellName(col int, row int) (name string) {
	columnName, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return
	}
	name, err = excelize.JoinCellName(columnName, row)
	if err != nil {
		return
	}
	return
}

func renderXlsxTable(tableValues table.TableValues, f *excelize.File, sheetName string, row *int) {
	col := 1
	// print the table name
	tableNameStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	_ = f.SetCellValue(sheetName, cellName(col, *row), tableValues.Name)
	_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), tableNameStyle)
	*row++
	if len(tableValues.Fields) == 0 || len(tableValues.Fields[0].Values) == 0 {
		msg := NoDataFound
		if tableValues.NoDataFound != "" {
			msg = tableValues.NoDataFound
		}
		_ = f.SetCellValue(sheetName, cellName(col, *row), msg)
		*row += 2
		return
	}
	if renderer := getCustomXlsxRenderer(tableValues.Name); renderer != nil {
		renderer(tableValues, f, sheetName, row)
	} else {
		DefaultXlsxTableRendererFunc(tableValues, f, sheetName, row)
	}
	*row++
}

func renderXlsxTableMultiCapture(captureTableValues []table.TableValues, captureNames []string, f *excelize.File, sheetName string, row *int) {
	col := 1
	// print the table name
	tableNameStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	captureNameStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	fieldNameStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})

	_ = f.SetCellValue(sheetName, cellName(col, *row), captureTableValues[0].Name)
	_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), tableNameStyle)

	if !captureTableValues[0].HasRows {
		col += 2
		// print the capture names
		for _, captureName := range captureNames {
			_ = f.SetCellValue(sheetName, cellName(col, *row), captureName)
			_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), captureNameStyle)
			col++
		}
		*row++

		// print the field names and values from each capture
		for fieldIdx, field := range captureTableValues[0].Fields {
			col = 2
			_ = f.SetCellValue(sheetName, cellName(col, *row), field.Name)
			_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), fieldNameStyle)
			col++
			for captureIdx := range captureNames {
				var fieldValue string
				if len(captureTableValues[captureIdx].Fields[fieldIdx].Values) > 0 {
					fieldValue = captureTableValues[captureIdx].Fields[fieldIdx].Values[0]
				}
				_ = f.SetCellValue(sheetName, cellName(col, *row), fieldValue)
				col++
			}
			*row++
		}
	} else {
		for captureIdx, captureName := range captureNames {
			// print the capture name
			col = 2
			_ = f.SetCellValue(sheetName, cellName(col, *row), captureName)
			_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), captureNameStyle)
			*row++

			// if no data found, print a message and skip to the next capture
			if len(captureTableValues[captureIdx].Fields) == 0 || len(captureTableValues[captureIdx].Fields[0].Values) == 0 {
				msg := NoDataFound
				if captureTableValues[captureIdx].NoDataFound != "" {
					msg = captureTableValues[captureIdx].NoDataFound
				}
				_ = f.SetCellValue(sheetName, cellName(col, *row), msg)
				*row += 2
				continue
			}

			// print the field names as column headings across the top of the table
			col = 2
			for _, field := range captureTableValues[captureIdx].Fields {
				_ = f.SetCellValue(sheetName, cellName(col, *row), field.Name)
				_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), fieldNameStyle)
				col++
			}
			*row++
			// print the rows of values
			tableRows := len(captureTableValues[captureIdx].Fields[0].Values)
			for tableRow := 0; tableRow < tableRows; tableRow++ {
				col = 2
				for _, field := range captureTableValues[captureIdx].Fields {
					value := getValueForCell(field.Values[tableRow])
					_ = f.SetCellValue(sheetName, cellName(col, *row), value)
					col++
				}
				*row++
			}
			*row++
		}
	}
	*row++
}

func DefaultXlsxTableRendererFunc(tableValues table.TableValues, f *excelize.File, sheetName string, row *int) {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	alignLeft, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "left",
		},
	})
	if tableValues.HasRows {
		// print the field names as column headings across the top of the table
		col := 2
		for _, field := range tableValues.Fields {
			_ = f.SetCellValue(sheetName, cellName(col, *row), field.Name)
			_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), headerStyle)
			col++
		}
		col = 2
		*row++
		// print the rows
		tableRows := len(tableValues.Fields[0].Values)
		for tableRow := 0; tableRow < tableRows; tableRow++ {
			for _, field := range tableValues.Fields {
				value := getValueForCell(field.Values[tableRow])
				_ = f.SetCellValue(sheetName, cellName(col, *row), value)
				_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), alignLeft)
				col++
			}
			col = 2
			*row++
		}
	} else {
		// print the field name followed by its value
		col := 1
		for _, field := range tableValues.Fields {
			var fieldValue string
			if len(tableValues.Fields[0].Values) > 0 {
				fieldValue = field.Values[0]
			}
			_ = f.SetCellValue(sheetName, cellName(col, *row), field.Name)
			col++
			value := getValueForCell(fieldValue)
			_ = f.SetCellValue(sheetName, cellName(col, *row), value)
			_ = f.SetCellStyle(sheetName, cellName(col, *row), cellName(col, *row), alignLeft)
			col = 1
			*row++
		}
	}
}

const (
	XlsxPrimarySheetName = "Report"
	XlsxBriefSheetName   = "Brief"
)

func createXlsxReport(allTableValues []table.TableValues, summaryTableName string) (out []byte, err error) {
	f := excelize.NewFile()
	sheetName := XlsxPrimarySheetName
	_ = f.SetSheetName("Sheet1", sheetName)
	_ = f.SetColWidth(sheetName, "A", "A", 25)
	_ = f.SetColWidth(sheetName, "B", "L", 25)
	row := 1
	for _, tableValues := range allTableValues {
		if summaryTableName != "" && tableValues.Name == summaryTableName {
			row := 1
			sheetName := XlsxBriefSheetName
			_, _ = f.NewSheet(sheetName)
			_ = f.SetColWidth(sheetName, "A", "L", 25)
			renderXlsxTable(tableValues, f, sheetName, &row)
		} else {
			renderXlsxTable(tableValues, f, sheetName, &row)
		}
	}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	_, err = f.WriteTo(w)
	if err != nil {
		err = fmt.Errorf("failed to write xlsx report to buffer: %v", err)
		return
	}
	out = buf.Bytes()
	return
}

func createXlsxReportMultiCapture(allCapturesTableValues [][]table.TableValues, captureNames []string, allTableNames []string, summaryTableName string) (out []byte, err error) {
	f := excelize.NewFile()
	sheetName := XlsxPrimarySheetName
	_ = f.SetSheetName("Sheet1", sheetName)
	_ = f.SetColWidth(sheetName, "A", "A", 15)
	_ = f.SetColWidth(sheetName, "B", "L", 25)
	row := 1

	// render the tables in the order they were passed in
	for _, tableName := range allTableNames {
		// build list of capture names and table.TableValues for captures that have values for this table
		tableCaptures := []string{}
		tableValues := []table.TableValues{}
		for captureIndex, captureTableValues := range allCapturesTableValues {
			tableIndex := findTableIndex(captureTableValues, tableName)
			if tableIndex == -1 {
				continue
			}
			tableCaptures = append(tableCaptures, captureNames[captureIndex])
			tableValues = append(tableValues, captureTableValues[tableIndex])
		}
		if len(tableValues) == 0 {
			continue
		}
		// render the table, the summary table goes in a separate sheet
		if summaryTableName != "" && tableName == summaryTableName {
			row = 1
			sheetName := XlsxBriefSheetName
			_, _ = f.NewSheet(sheetName)
			_ = f.SetColWidth(sheetName, "A", "A", 15)
			_ = f.SetColWidth(sheetName, "B", "L", 25)
			renderXlsxTableMultiCapture(tableValues, tableCaptures, f, sheetName, &row)
		} else {
			renderXlsxTableMultiCapture(tableValues, tableCaptures, f, sheetName, &row)
		}
	}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	_, err = f.WriteTo(w)
	if err != nil {
		err = fmt.Errorf("failed to write multi-capture xlsx report to buffer: %v", err)
		return
	}
	out = buf.Bytes()
	return
}

func getValueForCell(value string) (val any) {
	intValue, err := strconv.Atoi(value)
	if err == nil {
		val = intValue
		return
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err == nil {
		val = floatValue
		return
	}
	val = value
	return
}
