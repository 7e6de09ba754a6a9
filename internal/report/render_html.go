package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"html"
	htmltemplate "html/template"
	"strings"

	"ifspect/internal/table"
)

// Package-level maps for custom HTML renderers
var customHTMLRenderers = map[string]table.HTMLTableRenderer{}

var customHTMLMultiCaptureRenderers = map[string]table.HTMLMultiCaptureTableRenderer{}

// getCustomHTMLRenderer returns the custom renderer for a table, or nil if no custom renderer exists
func getCustomHTMLRenderer(tableName string) table.HTMLTableRenderer {
	return customHTMLRenderers[tableName]
}

// getCustomHTMLMultiCaptureRenderer returns the custom multi-capture renderer for a table, or nil if no custom renderer exists
func getCustomHTMLMultiCaptureRenderer(tableName string) table.HTMLMultiCaptureTableRenderer {
	return customHTMLMultiCaptureRenderers[tableName]
}

// RegisterHTMLRenderer allows external packages to register custom HTML renderers for specific tables
func RegisterHTMLRenderer(tableName string, renderer table.HTMLTableRenderer) {
	customHTMLRenderers[tableName] = renderer
}

// RegisterHTMLMultiCaptureRenderer allows external packages to register custom multi-capture HTML renderers for specific tables
func RegisterHTMLMultiCaptureRenderer(tableName string, renderer table.HTMLMultiCaptureTableRenderer) {
	customHTMLMultiCaptureRenderers[tableName] = renderer
}

func getHtmlReportBegin() string {
	var sb strings.Builder
	sb.WriteString(`<!--
 * Copyright (C) 2024 Intel Corporation
 * SPDX-License-Identifier: MIT
-->
`)
	sb.WriteString(`<!DOCTYPE html>
<html lang="en">
`)
	sb.WriteString("<head>\n")
	sb.WriteString(`    <meta charset="UTF-8">
    <title>ifspect</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
`)
	// link the style sheets
	sb.WriteString(`
	<link rel="stylesheet" href="https://unpkg.com/normalize.css@8.0.1/normalize.css" integrity="sha384-M86HUGbBFILBBZ9ykMAbT3nVb0+2C7yZlF8X2CiKNpDOQjKroMJqIeGZ/Le8N2Qp" crossorigin="anonymous" referrerpolicy="no-referrer" />
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/purecss@3.0.0/build/pure-min.css" integrity="sha384-X38yfunGUhNzHpBaEBsWLO+A0HDYOQi8ufWDkZ0k9e0eXz/tH3II7uKZ9msv++Ls" crossorigin="anonymous" referrerpolicy="no-referrer" />
	`)
	// add content class style
	sb.WriteString(`
	<style>
        .content {
            padding: 0 2em;
            line-height: 1.6em;
        }
        .content h2 {
            font-weight: 300;
            color: #888;
        }
        .content h2:before {
            content: '';
            display: block;
            position: relative;
            width: 0;
            height: 5em;
            margin-top: -5em
        }
	</style>
`)
	// add sidebar class styles
	sb.WriteString(`
	<style>
		.sidebar {
            height: 100%;
            width: 0;
            position: fixed;
            z-index: 1;
            top: 0;
            left: 0;
            background-color: #111;
            overflow-x: hidden;
            transition: 0.5s;
            padding-top: 30px;
            padding-left: 0px;
        }
        .sidebar h1 {
            position: absolute;
            top: 0;
            padding: 0px 8px 8px 35px;
            text-decoration: none;
            color: #fff;
            background-color: #1f8dd6;
            display: block;
            transition: 0.3s;
        }
		.sidebar h2 {
            padding: 8px 4px 2px 35px;
            text-decoration: none;
            color: #818181;
            display: block;
		}
        .sidebar a {
            padding: 0px 4px 2px 35px;
            text-decoration: none;
            color: #818181;
            display: block;
            transition: 0.3s;
        }
        .sidebar a:hover {
            color: #f1f1f1;
        }
        .sidebar .togglebtn {
            position: absolute;
            top: 0;
            right: 0px;
            font-size: 25px;
            padding-left: 5px;
            color: #ccc;
            background-color: #1f8dd6;
        }
        .sidebar .togglebtn:hover {
            color: #666;
        }
		.field-description {
			position: relative;
			display: inline-block;
			margin-left: 5px;
			cursor: help;
		}
		.field-description .tooltip-icon {
			color: #fff;
			font-size: 12px;
			border: 1px solid #2196F3;
			border-radius: 50%;
			width: 16px;
			height: 16px;
			text-align: center;
			line-height: 14px;
			background-color: #2196F3;
			transition: background-color 0.2s, border-color 0.2s;
		}
		.field-description:hover .tooltip-icon {
			background-color: #1976D2;
			border-color: #1976D2;
		}
		.field-description .tooltip-text {
			visibility: hidden;
			width: 250px;
			background-color: #333;
			color: #fff;
			text-align: left;
			border-radius: 6px;
			padding: 8px;
			position: absolute;
			z-index: 1000;
			bottom: 125%;
			left: 50%;
			margin-left: -125px;
			opacity: 0;
			transition: opacity 0.3s;
			font-size: 12px;
			box-shadow: 0px 0px 6px rgba(0,0,0,0.2);
		}
		.field-description .tooltip-text::after {
			content: "";
			position: absolute;
			top: 100%;
			left: 50%;
			margin-left: -5px;
			border-width: 5px;
			border-style: solid;
			border-color: #333 transparent transparent transparent;
		}
		.field-description:hover .tooltip-text {
			visibility: visible;
			opacity: 1;
		}
	</style>
	`)
	sb.WriteString("</head>\n")

	return sb.String()
}

func getHtmlReportMenu(allTableValues []table.TableValues) string {
	var sb strings.Builder
	// if none of the tables have menu labels, don't add the sidebar
	hasMenuLabels := false
	for _, tableValues := range allTableValues {
		if tableValues.MenuLabel != "" {
			hasMenuLabels = true
			break
		}
	}
	if hasMenuLabels {
		sb.WriteString("<div id=\"mySidebar\" class=\"sidebar\">\n")
		sb.WriteString("<a href=\"#\" style=\"position: absolute;top: 0; padding-left: 7px; padding-right: 117px; color: #fff; background-color: #1f8dd6\">CONTENTS</a>\n")
		sb.WriteString("<a href=\"javascript:void(0)\" class=\"togglebtn\" onclick=\"toggleNav()\">&lt;</a>\n")
		// insert menu items into sidebar
		for _, tableValues := range allTableValues {
			if tableValues.MenuLabel != "" {
				sb.WriteString(fmt.Sprintf("<a href=\"#%s\">%s</a>\n", html.EscapeString(tableValues.Name), html.EscapeString(tableValues.MenuLabel)))
			}
		}
		sb.WriteString("</div>\n") // end of sidebar
	}
	return sb.String()
}

func getHtmlReportSidebarJavascript() string {
	return `
	<script>
		const widthOpen="225px"
		const widthClosed="30px"
		function openNav() {
			document.getElementById("mySidebar").style.width = widthOpen;
			document.getElementById("myTables").style.marginLeft = widthOpen;
			document.querySelector(".togglebtn").innerHTML="<"
		}
		function closeNav() {
			document.getElementById("mySidebar").style.width = widthClosed;
			document.getElementById("myTables").style.marginLeft= widthClosed;
			document.querySelector(".togglebtn").innerHTML=">"
		}
		function toggleNav() {
			if (document.getElementById("mySidebar").style.width !== widthOpen) {
				openNav()
			} else {
				closeNav()
			}
		}
		// open on startup
		openNav()
	</script>
	`
}

func createHtmlReport(allTableValues []table.TableValues, captureName string) (out []byte, err error) {
	var sb strings.Builder
	sb.WriteString(getHtmlReportBegin())

	// body starts here
	sb.WriteString("<body>\n")
	sb.WriteString("<main class=\"content\">\n")
	// add the sidebar/menu
	sb.WriteString(getHtmlReportMenu(allTableValues))
	// add the tables
	sb.WriteString("<div id=\"myTables\">\n")
	sb.WriteString("<h1>ifspect</h1>\n")
	sb.WriteString(`
<noscript>
	<h3>JavaScript is disabled. Functionality is limited.</h3>
</noscript>
`)
	for _, tableValues := range allTableValues {
		// print the table name
		sb.WriteString(fmt.Sprintf("<h2 id=\"%[1]s\">%[1]s</h2>\n", html.EscapeString(tableValues.Name)))
		// if there's no data in the table, print a message and continue
		if len(tableValues.Fields) == 0 || len(tableValues.Fields[0].Values) == 0 {
			msg := NoDataFound
			if tableValues.NoDataFound != "" {
				msg = tableValues.NoDataFound
			}
			sb.WriteString("<p>" + msg + "</p>\n")
			continue
		}
		// render the tables
		if renderer := getCustomHTMLRenderer(tableValues.Name); renderer != nil { // custom table renderer
			sb.WriteString(renderer(tableValues, captureName))
		} else {
			sb.WriteString(DefaultHTMLTableRendererFunc(tableValues))
		}
	}
	sb.WriteString("</div>\n") // end of myTables
	sb.WriteString("</main>\n")

	// add the sidebar toggle function
	sb.WriteString(getHtmlReportSidebarJavascript())

	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")
	out = []byte(sb.String())
	return
}

func createHtmlReportMultiCapture(allCapturesTableValues [][]table.TableValues, captureNames []string, allTableNames []string) (out []byte, err error) {
	if len(allCapturesTableValues) == 0 {
		return nil, fmt.Errorf("no capture table values provided")
	}
	var sb strings.Builder
	sb.WriteString(getHtmlReportBegin())

	// body starts here
	sb.WriteString("<body>\n")
	sb.WriteString("<main class=\"content\">\n")
	// add the sidebar/menu
	sb.WriteString(getHtmlReportMenu(allCapturesTableValues[0]))
	// add the tables
	sb.WriteString("<div id=\"myTables\">\n")
	sb.WriteString("<h1>ifspect</h1>\n")
	sb.WriteString(`
<noscript>
	<h3>JavaScript is disabled. Functionality is limited.</h3>
</noscript>
`)
	// print the tables in the order they were passed in
	for _, tableName := range allTableNames {
		oneTableValuesForAllCaptures := []table.TableValues{}
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
		// loop through the captures that have values for this table
		for captureIndex, captureTableValues := range tableValues {
			captureName := tableCaptures[captureIndex]
			// if the table has rows and no custom renderer, print the table for the capture normally
			if captureTableValues.HasRows && getCustomHTMLMultiCaptureRenderer(captureTableValues.Name) == nil {
				// print the table name only one time per table
				if captureIndex == 0 {
					sb.WriteString(fmt.Sprintf("<h2 id=\"%[1]s\">%[1]s</h2>\n", html.EscapeString(captureTableValues.Name)))
				}
				// print the capture name
				sb.WriteString(fmt.Sprintf("<h3>%s</h3>\n", captureName))
				// if there's no data in the table, print a message and continue
				if len(captureTableValues.Fields) == 0 || len(captureTableValues.Fields[0].Values) == 0 {
					sb.WriteString("<p>" + NoDataFound + "</p>\n")
					continue
				}
				if renderer := getCustomHTMLRenderer(captureTableValues.Name); renderer != nil { // custom table renderer
					sb.WriteString(renderer(captureTableValues, captureName))
				} else {
					sb.WriteString(DefaultHTMLTableRendererFunc(captureTableValues))
				}
			} else { // if the table has no rows or a custom renderer, add the table to the list to render as a multi-capture table
				oneTableValuesForAllCaptures = append(oneTableValuesForAllCaptures, captureTableValues)
			}
		}
		// print the multi-capture table, if any
		if len(oneTableValuesForAllCaptures) > 0 {
			sb.WriteString(fmt.Sprintf("<h2 id=\"%[1]s\">%[1]s</h2>\n", html.EscapeString(oneTableValuesForAllCaptures[0].Name)))
			if renderer := getCustomHTMLMultiCaptureRenderer(oneTableValuesForAllCaptures[0].Name); renderer != nil {
				sb.WriteString(renderer(oneTableValuesForAllCaptures, captureNames))
			} else {
				// render the multi-capture table
				sb.WriteString(RenderMultiCaptureTableValuesAsHTML(oneTableValuesForAllCaptures, tableCaptures))
			}
		}
	}
	sb.WriteString("</div>\n") // end of myTables
	sb.WriteString("</main>\n")

	// add the sidebar toggle function
	sb.WriteString(getHtmlReportSidebarJavascript())

	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")
	out = []byte(sb.String())
	return
}

// findTableIndex
func findTableIndex(tableValues []table.TableValues, tableName string) int {
	for i, tableValue := range tableValues {
		if tableValue.Name == tableName {
			return i
		}
	}
	return -1
}

// CreateFieldNameWithDescription creates HTML for a field name with optional description tooltip
func CreateFieldNameWithDescription(fieldName, description string) string {
	if description == "" {
		return htmltemplate.HTMLEscapeString(fieldName)
	}
	return htmltemplate.HTMLEscapeString(fieldName) + `<span class="field-description"><span class="tooltip-icon">?</span><span class="tooltip-text">` + htmltemplate.HTMLEscapeString(description) + `</span></span>`
}

func RenderHTMLTable(tableHeaders []string, tableValues [][]string, class string, valuesStyle [][]string) string {
	return renderHTMLTableWithDescriptions(tableHeaders, nil, tableValues, class, valuesStyle)
}

// renderHTMLTableWithDescriptions renders an HTML table with optional header descriptions
func renderHTMLTableWithDescriptions(tableHeaders []string, headerDescriptions []string, tableValues [][]string, class string, valuesStyle [][]string) string {
	var sb strings.Builder
	sb.WriteString(`<table class="` + class + `">`)
	if len(tableHeaders) > 0 {
		sb.WriteString(`<thead>`)
		sb.WriteString(`<tr>`)
		for i, label := range tableHeaders {
			var description string
			if headerDescriptions != nil && i < len(headerDescriptions) {
				description = headerDescriptions[i]
			}
			sb.WriteString(`<th>` + CreateFieldNameWithDescription(label, description) + `</th>`)
		}
		sb.WriteString(`</tr>`)
		sb.WriteString(`</thead>`)
	}
	sb.WriteString(`<tbody>`)
	for rowIdx, rowValues := range tableValues {
		sb.WriteString(`<tr>`)
		for colIdx, value := range rowValues {
			var style string
			if len(valuesStyle) > rowIdx && len(valuesStyle[rowIdx]) > colIdx {
				style = ` style="` + valuesStyle[rowIdx][colIdx] + `"`
			}
			sb.WriteString(`<td` + style + `>` + value + `</td>`)
		}
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</tbody>`)
	sb.WriteString(`</table>`)
	return sb.String()
}

func DefaultHTMLTableRendererFunc(tableValues table.TableValues) string {
	if tableValues.HasRows { // print the field names as column headings across the top of the table
		headers := []string{}
		headerDescriptions := []string{}
		for _, field := range tableValues.Fields {
			headers = append(headers, field.Name)
			headerDescriptions = append(headerDescriptions, field.Description)
		}
		values := [][]string{}
		for row := range tableValues.Fields[0].Values {
			rowValues := []string{}
			for _, field := range tableValues.Fields {
				rowValues = append(rowValues, htmltemplate.HTMLEscapeString(field.Values[row]))
			}
			values = append(values, rowValues)
		}
		return renderHTMLTableWithDescriptions(headers, headerDescriptions, values, "pure-table pure-table-striped", [][]string{})
	} else { // print the field name followed by its value
		values := [][]string{}
		var tableValueStyles [][]string
		for _, field := range tableValues.Fields {
			rowValues := []string{}
			rowValues = append(rowValues, CreateFieldNameWithDescription(field.Name, field.Description))
			if len(field.Values) > 0 {
				rowValues = append(rowValues, htmltemplate.HTMLEscapeString(field.Values[0]))
			} else {
				rowValues = append(rowValues, "")
			}
			values = append(values, rowValues)
			tableValueStyles = append(tableValueStyles, []string{"font-weight:bold"})
		}
		return RenderHTMLTable([]string{}, values, "pure-table pure-table-striped", tableValueStyles)
	}
}

// RenderMultiCaptureTableValuesAsHTML renders a table for multiple captures
// tableValues is a slice of table.TableValues, each of which represents the same table from a single capture
func RenderMultiCaptureTableValuesAsHTML(tableValues []table.TableValues, captureNames []string) string {
	if len(tableValues) == 0 {
		return ""
	}
	values := [][]string{}
	var tableValueStyles [][]string
	for fieldIndex, field := range tableValues[0].Fields {
		rowValues := []string{}
		rowValues = append(rowValues, CreateFieldNameWithDescription(field.Name, field.Description))
		for _, captureTableValues := range tableValues {
			if len(captureTableValues.Fields) > fieldIndex && len(captureTableValues.Fields[fieldIndex].Values) > 0 {
				rowValues = append(rowValues, htmltemplate.HTMLEscapeString(captureTableValues.Fields[fieldIndex].Values[0]))
			} else {
				rowValues = append(rowValues, "")
			}
		}
		values = append(values, rowValues)
		tableValueStyles = append(tableValueStyles, []string{"font-weight:bold"})
	}
	headers := []string{""}
	headers = append(headers, captureNames...)
	return RenderHTMLTable(headers, values, "pure-table pure-table-striped", tableValueStyles)
}
