// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	htmltemplate "html/template"

	"ifspect/internal/report"
	"ifspect/internal/table"
)

// statusStyles maps interface status values to the cell style used in HTML
// reports.
var statusStyles = map[string]string{
	"up":      "color:green",
	"down":    "color:red",
	"testing": "color:darkorange",
}

// interfacesHTMLTableRenderer is a custom HTML table renderer for the
// interfaces table. It colors the status column by state.
func interfacesHTMLTableRenderer(tv table.TableValues, captureName string) string {
	statusIdx, err := table.GetFieldIndex("Status", tv)
	if err != nil {
		statusIdx = -1
	}
	headers := []string{}
	for _, field := range tv.Fields {
		headers = append(headers, field.Name)
	}
	values := [][]string{}
	valuesStyles := [][]string{}
	for row := range tv.Fields[0].Values {
		rowValues := []string{}
		rowStyles := make([]string, len(tv.Fields))
		for col, field := range tv.Fields {
			rowValues = append(rowValues, htmltemplate.HTMLEscapeString(field.Values[row]))
			if col == statusIdx {
				rowStyles[col] = statusStyles[field.Values[row]]
			}
		}
		values = append(values, rowValues)
		valuesStyles = append(valuesStyles, rowStyles)
	}
	return report.RenderHTMLTable(headers, values, "pure-table pure-table-striped", valuesStyles)
}
