// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

/*
Package winperf parses Windows network-interface performance captures
and reconciles them with auxiliary adapter, teaming, and DHCP tables
into one record per interface.

The primary input is the whitespace-tokenized dump of the "Network
Interface" perf counter object. Auxiliary tables either arrive as
standalone sections or embedded in the primary stream, the latter being
the layout produced by deprecated agent plugins; embedded data is still
parsed but flagged on the Result so callers can advise an upgrade.

Parsing never fails. Structural damage in the input degrades the output
(zero counters, absent enrichment) and is logged, but a Result is
always produced.
*/
package winperf

import (
	"net"
	"strconv"
)

// OperStatus holds an interface operational status code. The code
// values follow ifOperStatus, but only up, down, and testing are
// distinguished when rendering.
type OperStatus string

const (
	OperStatusUp             OperStatus = "1"
	OperStatusDown           OperStatus = "2"
	OperStatusTesting        OperStatus = "3"
	OperStatusLowerLayerDown OperStatus = "7"
)

func (s OperStatus) String() string {
	switch s {
	case OperStatusUp:
		return "up"
	case OperStatusTesting:
		return "testing"
	default:
		return "down"
	}
}

// Up reports whether the status renders as "up".
func (s OperStatus) Up() bool {
	return s == OperStatusUp
}

// Counters holds one snapshot of the per-interface counter columns.
type Counters struct {
	InOctets    uint64
	InUcast     uint64
	InNUcast    uint64
	InDiscards  uint64
	InErrors    uint64
	OutOctets   uint64
	OutUcast    uint64
	OutNUcast   uint64
	OutDiscards uint64
	OutErrors   uint64
	OutQLen     uint64
	Speed       uint64
}

// Interface is one reconciled interface record. Identity fields come
// from the counter table; Alias, MACAddress, OperStatus, StatusDetail,
// and Team are filled in from a matching adapter row when one exists.
type Interface struct {
	Index        string
	Name         string
	Alias        string
	MACAddress   net.HardwareAddr
	TypeCode     string
	Speed        uint64
	OperStatus   OperStatus
	StatusDetail string
	Team         string
	MatchedBy    string
	Counters     Counters
}

// Team is one teaming membership entry: the member adapter GUID, its
// canonicalized description, and the team it belongs to.
type Team struct {
	Name              string
	GUID              string
	MemberDescription string
}

// DHCPFact is one row of the DHCP table. Index is empty when the
// source table has no Index column.
type DHCPFact struct {
	Index       string
	Description string
	Enabled     bool
}

// Result is the outcome of parsing one capture.
type Result struct {
	Timestamp  float64
	Interfaces []Interface
	Teams      []Team
	DHCP       []DHCPFact

	// FoundInlineAdapters and FoundInlineDHCP report auxiliary tables
	// embedded in the primary stream, the layout emitted by deprecated
	// collector plugins. Teaming blocks and WMI adapter tables set the
	// former, dhcp blocks the latter.
	FoundInlineAdapters bool
	FoundInlineDHCP     bool
}

// Sections carries the raw text of one capture, split by origin. Aux
// slices hold standalone tables; anything embedded in Counters is
// discovered during the parse.
type Sections struct {
	Counters string
	Adapters []string
	Teaming  []string
	DHCP     []string
}

// Parse runs the full pipeline on one capture: sectionize the primary
// stream, parse the auxiliary tables, and reconcile. Standalone aux
// data takes precedence over data embedded in the primary stream.
func Parse(s Sections) *Result {
	pp := parsePrimary(s.Counters)

	// inline first: the GUID map is last-wins, so standalone rows
	// override inline ones
	teams := append([]Team(nil), pp.inlineTeams...)
	for _, block := range s.Teaming {
		teams = append(teams, parseTeamingRows(tokenizeBlock(block, markerTeamingStart, markerTeamingEnd))...)
	}

	var adapters []adapterRow
	for _, tbl := range s.Adapters {
		adapters = append(adapters, parseAdapterRows(tokenize(tbl))...)
	}
	adapters = append(adapters, pp.inlineAdapters...)

	var facts []DHCPFact
	for _, tbl := range s.DHCP {
		facts = append(facts, parseDHCPRows(tokenizeBlock(tbl, markerDHCPStart, markerDHCPEnd))...)
	}
	facts = append(facts, pp.inlineDHCP...)

	reconcile(pp.interfaces, adapters, teamsByGUID(teams))

	return &Result{
		Timestamp:           pp.timestamp,
		Interfaces:          pp.interfaces,
		Teams:               teams,
		DHCP:                facts,
		FoundInlineAdapters: pp.foundInlineAdapters,
		FoundInlineDHCP:     pp.foundInlineDHCP,
	}
}

// Names returns the interface names in record order. Duplicates are
// preserved.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Interfaces))
	for _, iface := range r.Interfaces {
		names = append(names, iface.Name)
	}
	return names
}

// DHCPStatus returns the DHCP fact for an interface record, or nil
// when no fact applies. A fact with a numeric Index matches by index;
// otherwise its normalized description must equal the record name.
func (r *Result) DHCPStatus(iface Interface) *DHCPFact {
	names := r.Names()
	recIdx, recErr := strconv.Atoi(iface.Index)
	for i, fact := range r.DHCP {
		var match bool
		if factIdx, err := strconv.Atoi(fact.Index); err == nil && recErr == nil {
			match = factIdx == recIdx
		} else {
			match = NormalizeName(fact.Description, names) == iface.Name
		}
		if match {
			return &r.DHCP[i]
		}
	}
	return nil
}

func teamsByGUID(teams []Team) map[string]Team {
	if len(teams) == 0 {
		return nil
	}
	byGUID := make(map[string]Team, len(teams))
	for _, team := range teams {
		byGUID[team.GUID] = team
	}
	return byGUID
}
