// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package winperf

import (
	"reflect"
	"testing"
)

func TestRepairDHCPRow(t *testing.T) {
	header := []string{"Description", "DHCPEnabled", "Index"}
	tests := []struct {
		name     string
		row      []string
		expected []string
	}{
		{
			name:     "spaces in the leftmost value",
			row:      []string{"Intel(R)", "PRO/1000", "MT", "TRUE", "1"},
			expected: []string{"Intel(R) PRO/1000 MT", "TRUE", "1"},
		},
		{
			name:     "exact width untouched",
			row:      []string{"eth0", "TRUE", "1"},
			expected: []string{"eth0", "TRUE", "1"},
		},
		{
			name:     "short row untouched",
			row:      []string{"eth0", "TRUE"},
			expected: []string{"eth0", "TRUE"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repairDHCPRow(header, tt.row); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("repairDHCPRow(%v) = %v, expected %v", tt.row, got, tt.expected)
			}
		})
	}
}

func TestParseDHCPRows(t *testing.T) {
	rows := [][]string{
		{"Index", "Description", "DHCPEnabled"},
		{"1", "eth0", "TRUE"},
		{"2", "eth1", "FALSE"},
		{"3", "eth2", "true"},
	}
	got := parseDHCPRows(rows)
	if len(got) != 3 {
		t.Fatalf("got %d facts, expected 3", len(got))
	}
	if !got[0].Enabled || got[0].Index != "1" || got[0].Description != "eth0" {
		t.Errorf("fact = %+v", got[0])
	}
	if got[1].Enabled {
		t.Error("FALSE must read as disabled")
	}
	if got[2].Enabled {
		t.Error("wmic emits TRUE in caps, anything else reads as disabled")
	}
}

func TestParseDHCPRowsRepairsWideRows(t *testing.T) {
	rows := [][]string{
		{"Description", "DHCPEnabled", "Index"},
		{"Intel(R)", "PRO/1000", "MT", "Network", "Connection", "TRUE", "7"},
	}
	got := parseDHCPRows(rows)
	if len(got) != 1 {
		t.Fatalf("got %d facts, expected 1", len(got))
	}
	expected := DHCPFact{Index: "7", Description: "Intel(R) PRO/1000 MT Network Connection", Enabled: true}
	if got[0] != expected {
		t.Errorf("fact = %+v, expected %+v", got[0], expected)
	}
}

func TestParseDHCPRowsTruncated(t *testing.T) {
	rows := [][]string{
		{"Index", "Description", "DHCPEnabled"},
		{"1"},
	}
	if got := parseDHCPRows(rows); got != nil {
		t.Errorf("got %v, expected truncated rows dropped", got)
	}
}
