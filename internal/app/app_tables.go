// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package app

// This file contains common table definitions used across multiple commands.

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ifspect/internal/table"
	"ifspect/internal/winperf"
)

// Names of the tables built from one capture.
const (
	SummaryTableName    = "Summary"
	InterfacesTableName = "Network Interfaces"
	TrafficTableName    = "Traffic"
	TeamsTableName      = "Teams"
	DHCPTableName       = "DHCP"
)

// TableDefinitions contains table definitions used across multiple commands.
var TableDefinitions = map[string]table.TableDefinition{
	SummaryTableName: {
		Name:         SummaryTableName,
		MenuLabel:    SummaryTableName,
		HasRows:      false,
		FieldsFunc:   summaryTableValues,
		InsightsFunc: summaryInsights},
	InterfacesTableName: {
		Name:         InterfacesTableName,
		MenuLabel:    InterfacesTableName,
		HasRows:      true,
		NoDataFound:  "No interfaces found in the counter data.",
		FieldsFunc:   interfacesTableValues,
		InsightsFunc: interfacesInsights},
	TrafficTableName: {
		Name:         TrafficTableName,
		MenuLabel:    TrafficTableName,
		HasRows:      true,
		NoDataFound:  "No interfaces found in the counter data.",
		FieldsFunc:   trafficTableValues,
		InsightsFunc: trafficInsights},
	TeamsTableName: {
		Name:        TeamsTableName,
		MenuLabel:   TeamsTableName,
		HasRows:     true,
		NoDataFound: "No teaming configured.",
		FieldsFunc:  teamsTableValues},
	DHCPTableName: {
		Name:         DHCPTableName,
		MenuLabel:    DHCPTableName,
		HasRows:      true,
		NoDataFound:  "No DHCP table collected.",
		FieldsFunc:   dhcpTableValues,
		InsightsFunc: dhcpInsights},
}

func summaryTableValues(result *winperf.Result) []table.Field {
	var up, testing, ports, freePorts int
	for _, iface := range result.Interfaces {
		switch iface.OperStatus {
		case winperf.OperStatusUp:
			up++
		case winperf.OperStatusTesting:
			testing++
		}
		if iface.TypeCode == "6" {
			ports++
			if iface.OperStatus == winperf.OperStatusDown {
				freePorts++
			}
		}
	}
	teams := make(map[string]bool)
	for _, team := range result.Teams {
		teams[team.Name] = true
	}
	dhcpEnabled := 0
	for _, fact := range result.DHCP {
		if fact.Enabled {
			dhcpEnabled++
		}
	}
	return []table.Field{
		{Name: "Capture Time", Values: []string{formatTimestamp(result.Timestamp)}},
		{Name: "Interfaces", Values: []string{strconv.Itoa(len(result.Interfaces))}},
		{Name: "Up", Values: []string{strconv.Itoa(up)}},
		{Name: "Down", Values: []string{strconv.Itoa(len(result.Interfaces) - up - testing)}},
		{Name: "Testing", Values: []string{strconv.Itoa(testing)}},
		{Name: "Ethernet Ports", Values: []string{strconv.Itoa(ports)}},
		{Name: "Available Ethernet Ports", Description: "ethernet ports reporting down", Values: []string{strconv.Itoa(freePorts)}},
		{Name: "Teams", Values: []string{strconv.Itoa(len(teams))}},
		{Name: "DHCP Enabled", Values: []string{fmt.Sprintf("%d of %d", dhcpEnabled, len(result.DHCP))}},
		{Name: "Legacy Adapter Data", Values: []string{yesNo(result.FoundInlineAdapters)}},
		{Name: "Legacy DHCP Data", Values: []string{yesNo(result.FoundInlineDHCP)}},
	}
}

func interfacesTableValues(result *winperf.Result) []table.Field {
	fields := []table.Field{
		{Name: "Index"},
		{Name: "Name"},
		{Name: "Alias", Description: "network connection name from the adapter table"},
		{Name: "MAC Address"},
		{Name: "Type"},
		{Name: "Speed"},
		{Name: "Status"},
		{Name: "Detail", Description: "Windows NetConnectionStatus"},
		{Name: "Team"},
		{Name: "Matched By", Description: "strategy that paired the record with an adapter row"},
		{Name: "DHCP"},
	}
	for _, iface := range result.Interfaces {
		dhcp := ""
		if fact := result.DHCPStatus(iface); fact != nil {
			dhcp = yesNo(fact.Enabled)
		}
		for i, value := range []string{
			iface.Index,
			iface.Name,
			iface.Alias,
			formatMAC(iface),
			typeLabel(iface.TypeCode),
			formatSpeed(iface.Speed),
			iface.OperStatus.String(),
			iface.StatusDetail,
			iface.Team,
			iface.MatchedBy,
			dhcp,
		} {
			fields[i].Values = append(fields[i].Values, value)
		}
	}
	return fields
}

func trafficTableValues(result *winperf.Result) []table.Field {
	fields := []table.Field{
		{Name: "Name"},
		{Name: "In Bytes"},
		{Name: "In Unicast"},
		{Name: "In Non-unicast"},
		{Name: "In Discards"},
		{Name: "In Errors"},
		{Name: "Out Bytes"},
		{Name: "Out Unicast"},
		{Name: "Out Non-unicast"},
		{Name: "Out Discards"},
		{Name: "Out Errors"},
		{Name: "Out Queue"},
	}
	for _, iface := range result.Interfaces {
		c := iface.Counters
		fields[0].Values = append(fields[0].Values, iface.Name)
		for i, value := range []uint64{
			c.InOctets,
			c.InUcast,
			c.InNUcast,
			c.InDiscards,
			c.InErrors,
			c.OutOctets,
			c.OutUcast,
			c.OutNUcast,
			c.OutDiscards,
			c.OutErrors,
			c.OutQLen,
		} {
			fields[i+1].Values = append(fields[i+1].Values, formatCount(value))
		}
	}
	return fields
}

func teamsTableValues(result *winperf.Result) []table.Field {
	fields := []table.Field{
		{Name: "Team"},
		{Name: "Member GUID"},
		{Name: "Member Description"},
	}
	for _, team := range result.Teams {
		fields[0].Values = append(fields[0].Values, team.Name)
		fields[1].Values = append(fields[1].Values, team.GUID)
		fields[2].Values = append(fields[2].Values, team.MemberDescription)
	}
	return fields
}

func dhcpTableValues(result *winperf.Result) []table.Field {
	fields := []table.Field{
		{Name: "Index"},
		{Name: "Description"},
		{Name: "DHCP Enabled"},
		{Name: "Assessment"},
	}
	for _, fact := range result.DHCP {
		assessment := "ok"
		if fact.Enabled {
			assessment = "warn"
		}
		fields[0].Values = append(fields[0].Values, fact.Index)
		fields[1].Values = append(fields[1].Values, fact.Description)
		fields[2].Values = append(fields[2].Values, yesNo(fact.Enabled))
		fields[3].Values = append(fields[3].Values, assessment)
	}
	return fields
}

func summaryInsights(result *winperf.Result, _ table.TableValues) []table.Insight {
	var insights []table.Insight
	if result.FoundInlineAdapters {
		insights = append(insights, table.Insight{
			Recommendation: "Update the agent plugin so adapter and teaming tables arrive as standalone sections.",
			Justification:  "Adapter or teaming data was found embedded in the counter stream, a layout produced by deprecated plugins.",
		})
	}
	if result.FoundInlineDHCP {
		insights = append(insights, table.Insight{
			Recommendation: "Update the agent plugin so the DHCP table arrives as a standalone section.",
			Justification:  "DHCP data was found embedded in the counter stream, a layout produced by deprecated plugins.",
		})
	}
	return insights
}

func interfacesInsights(result *winperf.Result, _ table.TableValues) []table.Insight {
	var insights []table.Insight
	for _, iface := range result.Interfaces {
		if iface.OperStatus.Up() || iface.TypeCode == "24" {
			continue
		}
		insights = append(insights, table.Insight{
			Recommendation: fmt.Sprintf("Check the link on %s.", iface.Name),
			Justification:  fmt.Sprintf("Interface reports %q.", iface.StatusDetail),
		})
		if iface.Team != "" {
			insights = append(insights, table.Insight{
				Recommendation: fmt.Sprintf("Team %s is running without %s.", iface.Team, iface.Name),
				Justification:  "A team member that is down reduces the team's redundancy and bandwidth.",
			})
		}
	}
	return insights
}

func dhcpInsights(result *winperf.Result, _ table.TableValues) []table.Insight {
	var enabled []string
	for _, fact := range result.DHCP {
		if fact.Enabled {
			enabled = append(enabled, fact.Description)
		}
	}
	if len(enabled) == 0 {
		return nil
	}
	return []table.Insight{{
		Recommendation: fmt.Sprintf("Configure static addressing on: %s.", strings.Join(enabled, ", ")),
		Justification:  "Monitored interfaces with DHCP leases can change address between captures.",
	}}
}

func trafficInsights(result *winperf.Result, _ table.TableValues) []table.Insight {
	var insights []table.Insight
	for _, iface := range result.Interfaces {
		c := iface.Counters
		if errs := c.InErrors + c.OutErrors; errs > 0 {
			insights = append(insights, table.Insight{
				Recommendation: fmt.Sprintf("Inspect %s for link errors.", iface.Name),
				Justification:  fmt.Sprintf("Counters show %s error(s).", formatCount(errs)),
			})
		}
		if discards := c.InDiscards + c.OutDiscards; discards > 0 {
			insights = append(insights, table.Insight{
				Recommendation: fmt.Sprintf("Inspect %s for congestion.", iface.Name),
				Justification:  fmt.Sprintf("Counters show %s discarded packet(s).", formatCount(discards)),
			})
		}
	}
	return insights
}

var countPrinter = message.NewPrinter(language.English)

// formatCount renders a counter value with thousands separators.
func formatCount(v uint64) string {
	return countPrinter.Sprintf("%d", v)
}

// formatSpeed renders bits per second in the customary unit, "unknown"
// when no credible speed was reported.
func formatSpeed(speed uint64) string {
	if speed == 0 {
		return "unknown"
	}
	switch {
	case speed >= 1000000000:
		return trimFloat(float64(speed)/1000000000) + " Gbps"
	case speed >= 1000000:
		return trimFloat(float64(speed)/1000000) + " Mbps"
	case speed >= 1000:
		return trimFloat(float64(speed)/1000) + " kbps"
	}
	return fmt.Sprintf("%d bps", speed)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMAC(iface winperf.Interface) string {
	if iface.MACAddress == nil {
		return ""
	}
	return strings.ToUpper(iface.MACAddress.String())
}

func typeLabel(code string) string {
	switch code {
	case "6":
		return "ethernet"
	case "24":
		return "loopback"
	}
	return code
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatTimestamp(ts float64) string {
	if ts == 0 {
		return "unknown"
	}
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC().Format(time.RFC3339)
}
