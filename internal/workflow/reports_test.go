// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package workflow

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifspect/internal/app"
	"ifspect/internal/filter"
	"ifspect/internal/report"
	"ifspect/internal/table"
	"ifspect/internal/winperf"
)

func reportTables() []table.TableDefinition {
	return []table.TableDefinition{
		app.TableDefinitions[app.SummaryTableName],
		app.TableDefinitions[app.InterfacesTableName],
	}
}

func captureOutputsFixture(names ...string) []CaptureOutputs {
	outputs := make([]CaptureOutputs, 0, len(names))
	for _, name := range names {
		outputs = append(outputs, CaptureOutputs{
			CaptureName: name,
			Sections:    winperf.Sections{Counters: counterFixture},
			Tables:      reportTables(),
		})
	}
	return outputs
}

func TestCreateRawCaptures(t *testing.T) {
	appContext := app.Context{OutputDir: t.TempDir()}
	rc := &ReportingCommand{Tables: reportTables()}

	rawFiles, err := rc.createRawCaptures(appContext, captureOutputsFixture("host1"))
	require.NoError(t, err)
	require.Len(t, rawFiles, 1)
	assert.Equal(t, "host1.raw", filepath.Base(rawFiles[0]))

	captures, err := report.ReadRawCaptures(rawFiles[0])
	require.NoError(t, err)
	require.Len(t, captures, 1)
	assert.Equal(t, counterFixture, captures[0].Sections.Counters)
}

func TestCreateReports(t *testing.T) {
	appContext := app.Context{OutputDir: t.TempDir(), Version: "1.2.3"}
	rc := &ReportingCommand{Tables: reportTables()}

	paths, err := rc.createReports(appContext, captureOutputsFixture("host1"), []string{report.FormatJson})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "host1.json", filepath.Base(paths[0]))

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), app.InterfacesTableName)
	assert.Contains(t, string(data), "Intel[R] PRO 1000 MT Network Connection")
	assert.Contains(t, string(data), "1.2.3", "application version table is appended")
}

func TestCreateReportsMultiCapture(t *testing.T) {
	appContext := app.Context{OutputDir: t.TempDir(), Version: "1.2.3"}
	rc := &ReportingCommand{Tables: reportTables()}

	paths, err := rc.createReports(appContext, captureOutputsFixture("host1", "host2"), []string{report.FormatHtml})
	require.NoError(t, err)
	require.Len(t, paths, 3, "per-capture reports plus the combined report")
	assert.Equal(t, "all_captures.html", filepath.Base(paths[2]))
}

func TestCreateReportsWithFilter(t *testing.T) {
	f, err := filter.New("in_octets > 100000")
	require.NoError(t, err)
	appContext := app.Context{OutputDir: t.TempDir(), Version: "1.2.3"}
	rc := &ReportingCommand{Tables: reportTables(), Filter: f}

	paths, err := rc.createReports(appContext, captureOutputsFixture("host1"), []string{report.FormatJson})
	require.NoError(t, err)
	require.Len(t, paths, 1)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Intel[R] PRO 1000 MT Network Connection")
	assert.NotContains(t, string(data), "QLogic BCM5709C")
}

func TestCreateReportsSummaryPlacement(t *testing.T) {
	summaryFunc := func(allTableValues []table.TableValues, result *winperf.Result) table.TableValues {
		return table.TableValues{
			TableDefinition: table.TableDefinition{Name: "Totals"},
			Fields:          []table.Field{{Name: "Total In Bytes", Values: []string{"205468"}}},
		}
	}
	appContext := app.Context{OutputDir: t.TempDir(), Version: "1.2.3"}
	rc := &ReportingCommand{
		Tables:                 reportTables(),
		SummaryFunc:            summaryFunc,
		SummaryTableName:       "Totals",
		SummaryBeforeTableName: app.InterfacesTableName,
	}

	paths, err := rc.createReports(appContext, captureOutputsFixture("host1"), []string{report.FormatTxt})
	require.NoError(t, err)
	require.Len(t, paths, 1)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	text := string(data)
	totalsIdx := strings.Index(text, "Totals")
	interfacesIdx := strings.Index(text, app.InterfacesTableName)
	require.GreaterOrEqual(t, totalsIdx, 0)
	require.GreaterOrEqual(t, interfacesIdx, 0)
	assert.Less(t, totalsIdx, interfacesIdx, "summary table is inserted before the named table")
}

func TestDefaultInsightsFunc(t *testing.T) {
	allTableValues := []table.TableValues{
		{Insights: []table.Insight{{Recommendation: "Check the link on eth0.", Justification: "Interface reports \"Disconnected\"."}}},
		{Insights: []table.Insight{{Recommendation: "Inspect eth1 for congestion.", Justification: "Counters show 3 discarded packet(s)."}}},
	}
	tv := DefaultInsightsFunc(allTableValues, nil)
	assert.Equal(t, app.TableNameInsights, tv.Name)
	require.Len(t, tv.Fields, 2)
	assert.Equal(t, []string{"Check the link on eth0.", "Inspect eth1 for congestion."}, tv.Fields[0].Values)
	require.Len(t, tv.Fields[1].Values, 2)
}

func TestFindTableByName(t *testing.T) {
	tables := reportTables()
	found, err := findTableByName(tables, app.InterfacesTableName)
	require.NoError(t, err)
	assert.Equal(t, app.InterfacesTableName, found.Name)

	_, err = findTableByName(tables, "Bogus")
	require.Error(t, err)
}
