// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package winperf

import (
	"strconv"
	"strings"
)

// speedCap is the largest credible interface speed. Some interfaces
// report several exabit as bandwidth when down; anything above the cap
// is treated as unknown.
const speedCap uint64 = 1 << 50

// counterAssign maps the counter row label to the destination field.
// Rows with labels outside this vocabulary are ignored.
var counterAssign = map[string]func(*Interface, uint64){
	"10":   func(i *Interface, v uint64) { i.Counters.Speed = capSpeed(v); i.Speed = capSpeed(v) },
	"-246": func(i *Interface, v uint64) { i.Counters.InOctets = v },
	"14":   func(i *Interface, v uint64) { i.Counters.InUcast = v },
	"16":   func(i *Interface, v uint64) { i.Counters.InNUcast = v },
	"18":   func(i *Interface, v uint64) { i.Counters.InDiscards = v },
	"20":   func(i *Interface, v uint64) { i.Counters.InErrors = v },
	"-4":   func(i *Interface, v uint64) { i.Counters.OutOctets = v },
	"26":   func(i *Interface, v uint64) { i.Counters.OutUcast = v },
	"28":   func(i *Interface, v uint64) { i.Counters.OutNUcast = v },
	"30":   func(i *Interface, v uint64) { i.Counters.OutDiscards = v },
	"32":   func(i *Interface, v uint64) { i.Counters.OutErrors = v },
	"34":   func(i *Interface, v uint64) { i.Counters.OutQLen = v },
}

func capSpeed(v uint64) uint64 {
	if v > speedCap {
		return 0
	}
	return v
}

// counterParser consumes the counter portion of the primary stream
// line by line. The timestamp line and the instance-name line are
// consecutive:
//
//	1418225545.73 510
//	8 instances: NAME1 NAME2 ...
//
// Every other line is a counter row: label followed by one value per
// instance column.
type counterParser struct {
	timestamp   float64
	expectNames bool
	interfaces  []Interface
	seenLabels  map[string]bool
}

func (p *counterParser) feed(fields []string) {
	if p.expectNames {
		p.expectNames = false
		p.setNames(fields)
		return
	}
	if ts, ok := timestampValue(fields); ok {
		p.timestamp = ts
		p.expectNames = true
		return
	}
	p.assign(fields)
}

// timestampValue classifies a timestamp line: 2 or 3 fields, the last
// not a counter-type suffix such as "bulk_count", and a float first
// field.
func timestampValue(fields []string) (float64, bool) {
	if len(fields) != 2 && len(fields) != 3 {
		return 0, false
	}
	if strings.HasSuffix(fields[len(fields)-1], "count") {
		return 0, false
	}
	ts, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

func (p *counterParser) setNames(fields []string) {
	// [u'8', u'instances:', NAME1, ...]
	if len(fields) <= 2 {
		return
	}
	p.interfaces = p.interfaces[:0]
	p.seenLabels = nil
	for _, raw := range fields[2:] {
		name := CanonizeName(raw)
		p.interfaces = append(p.interfaces, Interface{
			Index:        strconv.Itoa(len(p.interfaces) + 1),
			Name:         name,
			Alias:        name,
			TypeCode:     typeCodeFor(name),
			OperStatus:   OperStatusUp,
			StatusDetail: "Connected",
		})
	}
}

func (p *counterParser) assign(fields []string) {
	if len(p.interfaces) == 0 || len(fields) < 2 {
		return
	}
	label := fields[0]
	assign, ok := counterAssign[label]
	if !ok || p.seenLabels[label] {
		return
	}
	if p.seenLabels == nil {
		p.seenLabels = make(map[string]bool)
	}
	p.seenLabels[label] = true
	for i := range p.interfaces {
		var v uint64
		if i+1 < len(fields) {
			// garbage parses to 0
			v, _ = strconv.ParseUint(fields[i+1], 10, 64)
		}
		assign(&p.interfaces[i], v)
	}
}

func typeCodeFor(name string) string {
	if strings.Contains(strings.ToLower(name), "loopback") {
		return "24"
	}
	return "6"
}
