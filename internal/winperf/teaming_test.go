// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package winperf

import "testing"

func teamingTestHeader() []string {
	return []string{
		"TeamName", "TeamingMode", "LoadBalancingAlgorithm",
		"MemberMACAddresses", "MemberNames", "MemberDescriptions", "Speed", "GUID",
	}
}

func TestParseTeamingRows(t *testing.T) {
	rows := [][]string{
		teamingTestHeader(),
		{
			"LAN", "SwitchIndependent", "Dynamic",
			"38:63:BB:44:72:88;38:63:BB:44:72:89",
			"nic1;nic2",
			"HPE_Ethernet_1Gb_4-port_331i_Adapter;HPE_Ethernet_1Gb_4-port_331i_Adapter_#2",
			"2000000000",
			"{AAA};{BBB}",
		},
	}
	got := parseTeamingRows(rows)
	if len(got) != 2 {
		t.Fatalf("got %d members, expected 2", len(got))
	}
	if got[0].Name != "LAN" || got[1].Name != "LAN" {
		t.Errorf("team names = %q, %q", got[0].Name, got[1].Name)
	}
	if got[0].GUID != "{AAA}" || got[1].GUID != "{BBB}" {
		t.Errorf("GUIDs = %q, %q", got[0].GUID, got[1].GUID)
	}
	if got[0].MemberDescription != "HPE Ethernet 1Gb 4-port 331i Adapter" {
		t.Errorf("description = %q, expected it canonicalized", got[0].MemberDescription)
	}
	if got[1].MemberDescription != "HPE Ethernet 1Gb 4-port 331i Adapter #2" {
		t.Errorf("description = %q", got[1].MemberDescription)
	}
}

func TestParseTeamingRowsExcessGUIDs(t *testing.T) {
	rows := [][]string{
		teamingTestHeader(),
		{
			"LAN", "SwitchIndependent", "Dynamic",
			"38:63:BB:44:72:88;38:63:BB:44:72:89",
			"nic1;nic2",
			"only_one_descr",
			"2000000000",
			"{AAA};{BBB}",
		},
	}
	got := parseTeamingRows(rows)
	if len(got) != 1 {
		t.Fatalf("got %d members, expected the GUID without a description dropped", len(got))
	}
	if got[0].GUID != "{AAA}" || got[0].MemberDescription != "only one descr" {
		t.Errorf("member = %+v", got[0])
	}
}

func TestParseTeamingRowsTruncated(t *testing.T) {
	rows := [][]string{
		teamingTestHeader(),
		{"LAN", "SwitchIndependent", "Dynamic"},
	}
	if got := parseTeamingRows(rows); got != nil {
		t.Errorf("got %v, expected truncated rows dropped", got)
	}
}

func TestTeamsByGUIDLastWins(t *testing.T) {
	teams := []Team{
		{Name: "OLD", GUID: "{AAA}", MemberDescription: "one"},
		{Name: "NEW", GUID: "{AAA}", MemberDescription: "two"},
	}
	byGUID := teamsByGUID(teams)
	if len(byGUID) != 1 {
		t.Fatalf("got %d entries, expected 1", len(byGUID))
	}
	if byGUID["{AAA}"].Name != "NEW" {
		t.Errorf("team = %+v, expected the later entry to win", byGUID["{AAA}"])
	}
}
