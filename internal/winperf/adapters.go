// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package winperf

import (
	"log/slog"
	"strconv"
)

// adapterRow is one usable row of an adapter (WMI) table, reduced to
// the fields reconciliation needs.
type adapterRow struct {
	name         string // canonicalized
	alias        string // NetConnectionID
	speed        uint64 // capped, 0 when absent or implausible
	operStatus   OperStatus
	statusDetail string
	macAddress   string // raw, parsed during merge
	guid         string // empty when the producer has no GUID column
}

// parseAdapterRows parses a header-led adapter table. Rows marked
// NetConnectionStatus "4" are dropped: non-existing interfaces may
// carry the same name as an active one (seen on HP hardware), and
// matching them would shadow the real adapter.
func parseAdapterRows(rows [][]string) []adapterRow {
	if len(rows) < 2 {
		return nil
	}
	header := rows[0]
	var out []adapterRow
	for _, row := range rows[1:] {
		m := zipRow(header, row)
		name, okName := m["Name"]
		status, okStatus := m["NetConnectionStatus"]
		if !okName || !okStatus {
			slog.Warn("skipping truncated adapter row",
				slog.Int("fields", len(row)), slog.Int("headerFields", len(header)))
			continue
		}
		if status == "4" {
			continue
		}
		oper, detail := connectionState(status)
		out = append(out, adapterRow{
			name:         CanonizeName(name),
			alias:        m["NetConnectionID"],
			speed:        capSpeed(parseUintField(m["Speed"])),
			operStatus:   oper,
			statusDetail: detail,
			macAddress:   m["MACAddress"],
			guid:         m["GUID"],
		})
	}
	return out
}

// zipRow pairs header fields with row fields; excess row fields are
// dropped, missing ones stay absent.
func zipRow(header []string, row []string) map[string]string {
	m := make(map[string]string, len(header))
	for i, key := range header {
		if i >= len(row) {
			break
		}
		m[key] = row[i]
	}
	return m
}

func parseUintField(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
