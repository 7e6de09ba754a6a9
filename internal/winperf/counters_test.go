// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package winperf

import "testing"

func TestTimestampValue(t *testing.T) {
	tests := []struct {
		name      string
		fields    []string
		expected  float64
		timestamp bool
	}{
		{
			name:      "two fields",
			fields:    []string{"1457449582.48", "510"},
			expected:  1457449582.48,
			timestamp: true,
		},
		{
			name:      "three fields with counter frequency",
			fields:    []string{"1457449582.48", "510", "2495040"},
			expected:  1457449582.48,
			timestamp: true,
		},
		{
			name:      "single-instance counter row has a count suffix",
			fields:    []string{"-246", "1099060", "bulk_count"},
			timestamp: false,
		},
		{
			name:      "large_rawcount suffix",
			fields:    []string{"10", "3600000000", "large_rawcount"},
			timestamp: false,
		},
		{
			name:      "first field not a float",
			fields:    []string{"utilization", "510"},
			timestamp: false,
		},
		{
			name:      "one field",
			fields:    []string{"1457449582.48"},
			timestamp: false,
		},
		{
			name:      "four fields",
			fields:    []string{"-246", "1099060", "279184804", "bulk_count"},
			timestamp: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := timestampValue(tt.fields)
			if ok != tt.timestamp {
				t.Fatalf("timestampValue(%v) ok = %v, expected %v", tt.fields, ok, tt.timestamp)
			}
			if ok && ts != tt.expected {
				t.Errorf("timestampValue(%v) = %v, expected %v", tt.fields, ts, tt.expected)
			}
		})
	}
}

const counterFixture = `1630928323.48 3600 10000000
2 instances: Intel[R]_PRO_1000_MT_Network_Connection QLogic_BCM5709C
-122 1099060 279184804 bulk_count
-246 201520 3948 bulk_count
14 1820 52 bulk_count
16 42 0 bulk_count
18 0 0 bulk_count
20 0 0 bulk_count
-4 94043 1233 bulk_count
26 724 11 bulk_count
28 30 0 bulk_count
30 0 0 bulk_count
32 0 0 bulk_count
34 0 0 bulk_count
10 1000000000 1000000000 large_rawcount
1086 0 0 large_rawcount
`

func TestParseCounterTable(t *testing.T) {
	r := Parse(Sections{Counters: counterFixture})
	if r.Timestamp != 1630928323.48 {
		t.Errorf("Timestamp = %v, expected 1630928323.48", r.Timestamp)
	}
	if len(r.Interfaces) != 2 {
		t.Fatalf("got %d interfaces, expected 2", len(r.Interfaces))
	}
	first := r.Interfaces[0]
	if first.Name != "Intel[R] PRO 1000 MT Network Connection" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.Index != "1" || r.Interfaces[1].Index != "2" {
		t.Errorf("indexes = %q, %q, expected 1, 2", first.Index, r.Interfaces[1].Index)
	}
	if first.Alias != first.Name {
		t.Errorf("Alias = %q, expected the name when no adapter matches", first.Alias)
	}
	if !first.OperStatus.Up() || first.StatusDetail != "Connected" {
		t.Errorf("status = %v/%q, expected up/Connected", first.OperStatus, first.StatusDetail)
	}
	if first.TypeCode != "6" {
		t.Errorf("TypeCode = %q, expected 6", first.TypeCode)
	}
	expected := Counters{
		InOctets: 201520, InUcast: 1820, InNUcast: 42,
		OutOctets: 94043, OutUcast: 724, OutNUcast: 30,
		Speed: 1000000000,
	}
	if first.Counters != expected {
		t.Errorf("counters = %+v, expected %+v", first.Counters, expected)
	}
	second := r.Interfaces[1]
	if second.Counters.InOctets != 3948 || second.Counters.OutUcast != 11 {
		t.Errorf("second instance counters = %+v", second.Counters)
	}
	if first.Speed != 1000000000 || second.Speed != 1000000000 {
		t.Errorf("speeds = %d, %d", first.Speed, second.Speed)
	}
}

func TestParseCounterTableSpeedCap(t *testing.T) {
	raw := `1630928323.48 3600
2 instances: eth0 eth1
10 2251799813685248 1125899906842624 large_rawcount
`
	r := Parse(Sections{Counters: raw})
	if len(r.Interfaces) != 2 {
		t.Fatalf("got %d interfaces, expected 2", len(r.Interfaces))
	}
	if r.Interfaces[0].Speed != 0 {
		t.Errorf("speed above 2^50 should read 0, got %d", r.Interfaces[0].Speed)
	}
	if r.Interfaces[1].Speed != 1125899906842624 {
		t.Errorf("speed of exactly 2^50 should survive, got %d", r.Interfaces[1].Speed)
	}
}

func TestParseCounterTableDuplicateLabel(t *testing.T) {
	raw := `1630928323.48 3600
1 instances: eth0
-246 100 bulk_count
-246 999 bulk_count
`
	r := Parse(Sections{Counters: raw})
	if len(r.Interfaces) != 1 {
		t.Fatalf("got %d interfaces, expected 1", len(r.Interfaces))
	}
	if got := r.Interfaces[0].Counters.InOctets; got != 100 {
		t.Errorf("InOctets = %d, expected the first row to win", got)
	}
}

func TestParseCounterTableGarbageValue(t *testing.T) {
	raw := `1630928323.48 3600
2 instances: eth0 eth1
-246 #VALUE! 3948 bulk_count
`
	r := Parse(Sections{Counters: raw})
	if got := r.Interfaces[0].Counters.InOctets; got != 0 {
		t.Errorf("InOctets = %d, expected unparseable value to read 0", got)
	}
	if got := r.Interfaces[1].Counters.InOctets; got != 3948 {
		t.Errorf("InOctets = %d, expected 3948", got)
	}
}

func TestParseCounterTableLoopback(t *testing.T) {
	raw := `1630928323.48 3600
2 instances: Software_Loopback_Interface_1 eth0
`
	r := Parse(Sections{Counters: raw})
	if got := r.Interfaces[0].TypeCode; got != "24" {
		t.Errorf("TypeCode = %q, expected 24 for a loopback instance", got)
	}
	if got := r.Interfaces[1].TypeCode; got != "6" {
		t.Errorf("TypeCode = %q, expected 6", got)
	}
}

func TestParseCounterTableRowsBeforeNames(t *testing.T) {
	raw := `-246 100 200 bulk_count
1630928323.48 3600
2 instances: eth0 eth1
-4 1 2 bulk_count
`
	r := Parse(Sections{Counters: raw})
	if len(r.Interfaces) != 2 {
		t.Fatalf("got %d interfaces, expected 2", len(r.Interfaces))
	}
	if r.Interfaces[0].Counters.InOctets != 0 {
		t.Errorf("rows before the instance-name line must be dropped")
	}
	if r.Interfaces[0].Counters.OutOctets != 1 {
		t.Errorf("OutOctets = %d, expected 1", r.Interfaces[0].Counters.OutOctets)
	}
}
