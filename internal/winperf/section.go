// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package winperf

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Marker tokens delimiting auxiliary blocks embedded in the primary
// stream by the deprecated agent plugins.
const (
	markerTeamingStart = "[teaming_start]"
	markerTeamingEnd   = "[teaming_end]"
	markerDHCPStart    = "[dhcp_start]"
	markerDHCPEnd      = "[dhcp_end]"
)

// requiredAdapterColumns identifies an adapter (WMI) table header line
// wherever it appears.
var requiredAdapterColumns = mapset.NewSet(
	"Node", "MACAddress", "Name", "NetConnectionID", "NetConnectionStatus",
)

var (
	teamingHeaderColumns = mapset.NewSet("TeamName", "MemberDescriptions", "GUID")
	dhcpHeaderColumns    = mapset.NewSet("Description", "DHCPEnabled")
)

// SectionKind labels the content type of one capture file.
type SectionKind int

const (
	SectionUnknown SectionKind = iota
	SectionCounters
	SectionAdapters
	SectionTeaming
	SectionDHCP
)

func (k SectionKind) String() string {
	switch k {
	case SectionCounters:
		return "counters"
	case SectionAdapters:
		return "adapters"
	case SectionTeaming:
		return "teaming"
	case SectionDHCP:
		return "dhcp"
	}
	return "unknown"
}

// ClassifySection inspects the first content line of raw capture text
// and reports which section type it holds. Marker lines and table
// headers identify the auxiliary types; a timestamp line identifies
// counter data.
func ClassifySection(raw string) SectionKind {
	rows := tokenize(raw)
	if len(rows) == 0 {
		return SectionUnknown
	}
	first := rows[0]
	cols := mapset.NewSet(first...)
	switch {
	case strings.HasPrefix(first[0], markerTeamingStart), teamingHeaderColumns.IsSubset(cols):
		return SectionTeaming
	case first[0] == markerDHCPStart:
		return SectionDHCP
	case isAdapterHeader(first):
		return SectionAdapters
	case dhcpHeaderColumns.IsSubset(cols):
		return SectionDHCP
	}
	if _, ok := timestampValue(first); ok {
		return SectionCounters
	}
	return SectionUnknown
}

type primaryParse struct {
	timestamp           float64
	interfaces          []Interface
	inlineTeams         []Team
	inlineAdapters      []adapterRow
	inlineDHCP          []DHCPFact
	foundInlineAdapters bool
	foundInlineDHCP     bool
}

// parsePrimary walks the primary stream once, routing marker blocks and
// embedded legacy adapter tables to their parsers and everything else
// to the counter-table parser.
func parsePrimary(raw string) primaryParse {
	var pp primaryParse
	var cp counterParser

	lines := strings.Split(raw, "\n")
	i := 0
	for i < len(lines) {
		fields := splitFields(lines[i])
		if len(fields) == 0 {
			i++
			continue
		}
		switch {
		case strings.HasPrefix(fields[0], markerTeamingStart):
			var block [][]string
			block, i = collectMarkerBlock(lines, i+1, markerTeamingEnd)
			pp.inlineTeams = append(pp.inlineTeams, parseTeamingRows(block)...)
			pp.foundInlineAdapters = true
		case fields[0] == markerDHCPStart:
			var block [][]string
			block, i = collectMarkerBlock(lines, i+1, markerDHCPEnd)
			pp.inlineDHCP = append(pp.inlineDHCP, parseDHCPRows(block)...)
			pp.foundInlineDHCP = true
		case isAdapterHeader(fields):
			var table [][]string
			table, i = collectLegacyTable(lines, i)
			pp.inlineAdapters = append(pp.inlineAdapters, parseAdapterRows(table)...)
			pp.foundInlineAdapters = true
		default:
			cp.feed(fields)
			i++
		}
	}

	pp.timestamp = cp.timestamp
	pp.interfaces = cp.interfaces
	return pp
}

func isAdapterHeader(fields []string) bool {
	return requiredAdapterColumns.IsSubset(mapset.NewSet(fields...))
}

// collectMarkerBlock gathers tokenized rows from start until the end
// marker. A missing end marker consumes to the end of the stream. The
// returned index points past the end marker.
func collectMarkerBlock(lines []string, start int, endMarker string) ([][]string, int) {
	var rows [][]string
	i := start
	for ; i < len(lines); i++ {
		fields := splitFields(lines[i])
		if len(fields) == 0 {
			continue
		}
		if strings.HasPrefix(fields[0], endMarker) {
			i++
			break
		}
		rows = append(rows, fields)
	}
	return rows, i
}

// collectLegacyTable gathers an adapter table embedded in the primary
// stream: the header line at start plus every following line with at
// least 4 fields. The line that ends the table is not consumed; the
// returned index points at it so it is handled as counter content.
func collectLegacyTable(lines []string, start int) ([][]string, int) {
	table := [][]string{splitFields(lines[start])}
	i := start + 1
	for ; i < len(lines); i++ {
		fields := splitFields(lines[i])
		if len(fields) < 4 {
			break
		}
		table = append(table, fields)
	}
	return table, i
}

// splitFields tokenizes one line. Tab-separated producers keep spaces
// inside their values, so a line containing tabs splits on tabs only;
// everything else splits on whitespace.
func splitFields(line string) []string {
	if !strings.Contains(line, "\t") {
		return strings.Fields(line)
	}
	var fields []string
	for _, f := range strings.Split(line, "\t") {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// tokenize splits raw text into tokenized non-empty lines.
func tokenize(raw string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(raw, "\n") {
		fields := splitFields(line)
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	return rows
}

// tokenizeBlock tokenizes a standalone auxiliary table, tolerating an
// optional surrounding marker pair.
func tokenizeBlock(raw string, startMarker string, endMarker string) [][]string {
	rows := tokenize(raw)
	if len(rows) > 0 && strings.HasPrefix(rows[0][0], startMarker) {
		rows = rows[1:]
	}
	if len(rows) > 0 && strings.HasPrefix(rows[len(rows)-1][0], endMarker) {
		rows = rows[:len(rows)-1]
	}
	return rows
}
