// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package winperf

import (
	"net"
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
)

// A matchFunc returns the index of the first unclaimed record an
// adapter name matches, or -1. Strategies must not mutate the records.
type matchFunc func(name string, recs []Interface, names []string, claimed mapset.Set[int]) int

// matchStrategies run in order; the first claim ends the cascade for
// an adapter row.
var matchStrategies = []struct {
	name string
	fn   matchFunc
}{
	{"exact", matchExact},
	{"normalized", matchNormalized},
	{"prefix", matchPrefix},
}

func matchExact(name string, recs []Interface, _ []string, claimed mapset.Set[int]) int {
	for i := range recs {
		if recs[i].Name == name && !claimed.Contains(i) {
			return i
		}
	}
	return -1
}

func matchNormalized(name string, recs []Interface, names []string, claimed mapset.Set[int]) int {
	return matchExact(NormalizeName(name, names), recs, names, claimed)
}

// matchPrefix matches records whose name extends the adapter name with
// a non-numeric suffix. The perf counter names carry suffixes the
// adapter tables lack, e.g. "Ethernetadapter der AMD-PCNET-Familie 2 -
// Paketplaner-Miniport" vs "Ethernetadapter der AMD-PCNET-Familie 2";
// the digit guard keeps "NIC 1" from claiming "NIC 10".
func matchPrefix(name string, recs []Interface, names []string, claimed mapset.Set[int]) int {
	mod := NormalizeName(name, names)
	for i := range recs {
		if claimed.Contains(i) {
			continue
		}
		rest, ok := strings.CutPrefix(recs[i].Name, mod+" ")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if rest == "" || unicode.IsDigit([]rune(rest)[0]) {
			continue
		}
		return i
	}
	return -1
}

// reconcile enriches the counter-derived records in place with the
// adapter rows. Each adapter row claims at most one record and each
// record accepts at most one row.
func reconcile(recs []Interface, adapters []adapterRow, teaming map[string]Team) {
	if len(recs) == 0 || len(adapters) == 0 {
		return
	}
	names := make([]string, 0, len(recs))
	for i := range recs {
		names = append(names, recs[i].Name)
	}
	claimed := mapset.NewSet[int]()
	for _, row := range adapters {
		name := row.name
		if team, ok := teaming[row.guid]; ok && row.guid != "" {
			// teamed members are matched by their member description
			name = team.MemberDescription
		}
		for _, strategy := range matchStrategies {
			idx := strategy.fn(name, recs, names, claimed)
			if idx < 0 {
				continue
			}
			claimed.Add(idx)
			mergeAdapter(&recs[idx], row, teaming, strategy.name)
			break
		}
	}
}

// mergeAdapter applies the adapter row's overrides in a fixed
// sequence: alias, status, MAC, team, then speed. Adapter speed 0
// means unknown and leaves the counter-derived speed alone.
func mergeAdapter(rec *Interface, row adapterRow, teaming map[string]Team, strategy string) {
	rec.Alias = row.alias
	rec.OperStatus = row.operStatus
	rec.StatusDetail = row.statusDetail
	if mac, err := net.ParseMAC(row.macAddress); err == nil {
		rec.MACAddress = mac
	} else {
		rec.MACAddress = nil
	}
	if team, ok := teaming[row.guid]; ok && row.guid != "" {
		rec.Team = team.Name
	} else {
		rec.Team = ""
	}
	if row.speed != 0 {
		rec.Speed = row.speed
	}
	rec.MatchedBy = strategy
}
