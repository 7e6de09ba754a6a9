// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package winperf

import (
	"log/slog"
	"strings"
)

// parseDHCPRows parses a header-led DHCP table.
func parseDHCPRows(rows [][]string) []DHCPFact {
	if len(rows) < 2 {
		return nil
	}
	header := rows[0]
	var facts []DHCPFact
	for _, row := range rows[1:] {
		m := zipRow(header, repairDHCPRow(header, row))
		description, okDescr := m["Description"]
		enabled, okEnabled := m["DHCPEnabled"]
		if !okDescr || !okEnabled {
			slog.Warn("skipping truncated DHCP row",
				slog.Int("fields", len(row)), slog.Int("headerFields", len(header)))
			continue
		}
		facts = append(facts, DHCPFact{
			Index:       m["Index"],
			Description: description,
			Enabled:     strings.TrimSpace(enabled) == "TRUE",
		})
	}
	return facts
}

// repairDHCPRow joins leading excess fields into the leftmost column.
// wmic on some Windows versions cannot emit proper csv, only visual
// tables, which tokenize into more fields than the header when the
// leftmost value contains spaces. Header fields contain no spaces and
// only the leftmost column may.
func repairDHCPRow(header []string, row []string) []string {
	if len(row) <= len(header) {
		return row
	}
	keep := len(header) - 1
	repaired := []string{strings.Join(row[:len(row)-keep], " ")}
	return append(repaired, row[len(row)-keep:]...)
}
