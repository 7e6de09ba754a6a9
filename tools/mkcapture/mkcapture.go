// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package main

// mkcapture fabricates Windows network-interface captures in the layout
// the report and watch commands consume: a "Network Interface" perf
// counter dump plus wmic-style adapter, teaming, and DHCP tables. Output
// is deterministic for a given seed, which makes it useful for demos and
// for parser regression inputs.

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the shape of the fabricated capture.
type Config struct {
	Interfaces int     // ethernet adapter count
	Down       int     // adapters reporting media disconnected, taken from the end
	Loopback   bool    // include the software loopback instance
	Team       string  // team the first two adapters under this name
	DHCP       bool    // emit a DHCP table
	Inline     bool    // embed the auxiliary tables in the counter stream
	Seed       int64   // counter value generator seed
	Timestamp  float64 // capture timestamp, epoch seconds
	OutDir     string  // destination directory
	Node       string  // host name for the wmic Node column
}

// The two spellings of the same device. The counter dump replaces
// spaces with underscores and parentheses with brackets; wmic keeps
// the marketing name.
const (
	counterBaseName     = "Intel[R]_PRO_1000_MT_Network_Connection"
	wmicBaseName        = "Intel(R) PRO/1000 MT Network Connection"
	loopbackCounterName = "Software_Loopback_Interface_1"
)

// implausibleSpeed is what wmic reports for adapters without link. The
// consumer treats anything that large as unknown.
const implausibleSpeed uint64 = 1<<63 - 1

// nic is one fabricated adapter.
type nic struct {
	counterName string // raw counter instance name
	wmicName    string // Win32_NetworkAdapter Name
	alias       string // NetConnectionID
	mac         string
	guid        string // set only on teamed members
	status      string // NetConnectionStatus
	loopback    bool
	counters    nicCounters
}

type nicCounters struct {
	speed       uint64
	inOctets    uint64
	inUcast     uint64
	inNUcast    uint64
	inDiscards  uint64
	inErrors    uint64
	outOctets   uint64
	outUcast    uint64
	outNUcast   uint64
	outDiscards uint64
	outErrors   uint64
	outQLen     uint64
}

func main() {
	var config Config
	flag.IntVar(&config.Interfaces, "interfaces", 2, "number of ethernet adapters")
	flag.IntVar(&config.Down, "down", 0, "adapters reporting media disconnected, taken from the end")
	flag.BoolVar(&config.Loopback, "loopback", true, "include the software loopback instance")
	flag.StringVar(&config.Team, "team", "", "team the first two adapters under this name")
	flag.BoolVar(&config.DHCP, "dhcp", false, "emit a DHCP table")
	flag.BoolVar(&config.Inline, "inline", false, "embed the auxiliary tables in the counter stream (deprecated plugin layout)")
	flag.Int64Var(&config.Seed, "seed", 1, "counter value generator seed")
	flag.Float64Var(&config.Timestamp, "timestamp", 0, "capture timestamp as epoch seconds, 0 means now")
	flag.StringVar(&config.OutDir, "outdir", "capture", "destination directory, created if needed")
	flag.StringVar(&config.Node, "node", "WINHOST01", "host name for the wmic Node column")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "USAGE: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nFabricates a Windows network-interface capture for demos and tests.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if config.Interfaces < 1 {
		fmt.Fprintf(os.Stderr, "at least one interface is required\n")
		os.Exit(1)
	}
	if config.Down > config.Interfaces {
		fmt.Fprintf(os.Stderr, "-down exceeds -interfaces\n")
		os.Exit(1)
	}
	if config.Team != "" && config.Interfaces < 2 {
		fmt.Fprintf(os.Stderr, "-team needs at least two interfaces\n")
		os.Exit(1)
	}
	if config.Timestamp == 0 {
		config.Timestamp = float64(time.Now().Unix())
	}

	if err := writeCapture(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func writeCapture(config Config) error {
	r := rand.New(rand.NewSource(config.Seed)) // #nosec G404
	nics := buildNICs(config, r)

	if err := os.MkdirAll(config.OutDir, 0755); err != nil { // #nosec G301
		return err
	}
	write := func(name string, content string) (string, error) {
		path := filepath.Join(config.OutDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
			return "", err
		}
		fmt.Printf("wrote %s\n", path)
		return path, nil
	}

	counters := counterSection(config, nics)
	if config.Inline {
		if config.Team != "" {
			counters += "[teaming_start]\n" + teamingTable(config, nics) + "[teaming_end]\n"
		}
		counters += adapterTable(config, nics)
		if config.DHCP {
			counters += "[dhcp_start]\n" + dhcpTable(nics) + "[dhcp_end]\n"
		}
	}
	countersPath, err := write("counters.txt", counters)
	if err != nil {
		return err
	}
	var auxPaths []string
	if !config.Inline {
		path, err := write("adapters.txt", adapterTable(config, nics))
		if err != nil {
			return err
		}
		auxPaths = append(auxPaths, path)
		if config.Team != "" {
			path, err := write("teaming.txt", teamingTable(config, nics))
			if err != nil {
				return err
			}
			auxPaths = append(auxPaths, path)
		}
		if config.DHCP {
			path, err := write("dhcp.txt", dhcpTable(nics))
			if err != nil {
				return err
			}
			auxPaths = append(auxPaths, path)
		}
	}
	manifestPath, err := write("captures.yaml", manifest(filepath.Base(config.OutDir), countersPath, auxPaths))
	if err != nil {
		return err
	}
	fmt.Printf("load with: ifspect report --captures %s\n", manifestPath)
	return nil
}

// buildNICs fabricates the adapters. The last Down adapters report
// media disconnected with zeroed counters.
func buildNICs(config Config, r *rand.Rand) []nic {
	nics := make([]nic, 0, config.Interfaces+1)
	for i := 1; i <= config.Interfaces; i++ {
		n := nic{
			counterName: counterBaseName,
			wmicName:    wmicBaseName,
			alias:       "Ethernet",
			mac:         fmt.Sprintf("00:1B:21:%02X:%02X:%02X", r.Intn(256), r.Intn(256), i),
			status:      "2",
		}
		if i > 1 {
			n.counterName = fmt.Sprintf("%s__%d", counterBaseName, i)
			n.wmicName = fmt.Sprintf("%s #%d", wmicBaseName, i)
			n.alias = fmt.Sprintf("Ethernet %d", i)
		}
		if config.Team != "" && i <= 2 {
			n.guid = fmt.Sprintf("{%08X-B210-4F3D-9FA1-%012X}", r.Uint32(), i)
		}
		if i > config.Interfaces-config.Down {
			n.status = "7"
		} else {
			n.counters = upCounters(r)
		}
		nics = append(nics, n)
	}
	if config.Loopback {
		inOctets := uint64(r.Int63n(1_000_000_000))
		nics = append(nics, nic{
			counterName: loopbackCounterName,
			loopback:    true,
			counters: nicCounters{
				speed:     1073741824,
				inOctets:  inOctets,
				outOctets: inOctets,
				inUcast:   inOctets / 200,
				outUcast:  inOctets / 200,
			},
		})
	}
	return nics
}

func upCounters(r *rand.Rand) nicCounters {
	c := nicCounters{
		speed:     1000000000,
		inOctets:  uint64(r.Int63n(90_000_000_000)) + 1_000_000_000,
		outOctets: uint64(r.Int63n(40_000_000_000)) + 500_000_000,
		inNUcast:  uint64(r.Int63n(50_000)),
		outNUcast: uint64(r.Int63n(20_000)),
	}
	c.inUcast = c.inOctets/800 + uint64(r.Int63n(1_000))
	c.outUcast = c.outOctets/800 + uint64(r.Int63n(1_000))
	if r.Intn(4) == 0 {
		c.inErrors = uint64(r.Int63n(4)) + 1
		c.inDiscards = uint64(r.Int63n(20))
	}
	return c
}

// counterRows lists the emitted counter rows in wire order. The
// aggregate rows at the top are not consumed downstream but appear in
// genuine agent output.
var counterRows = []struct {
	label  string
	suffix string
	value  func(c nicCounters) uint64
}{
	{"-122", "bulk_count", func(c nicCounters) uint64 { return c.inOctets + c.outOctets }},
	{"-110", "bulk_count", func(c nicCounters) uint64 { return c.inUcast + c.inNUcast + c.outUcast + c.outNUcast }},
	{"-244", "bulk_count", func(c nicCounters) uint64 { return c.inUcast + c.inNUcast }},
	{"-58", "bulk_count", func(c nicCounters) uint64 { return c.outUcast + c.outNUcast }},
	{"10", "large_rawcount", func(c nicCounters) uint64 { return c.speed }},
	{"-246", "bulk_count", func(c nicCounters) uint64 { return c.inOctets }},
	{"14", "bulk_count", func(c nicCounters) uint64 { return c.inUcast }},
	{"16", "bulk_count", func(c nicCounters) uint64 { return c.inNUcast }},
	{"18", "rawcount", func(c nicCounters) uint64 { return c.inDiscards }},
	{"20", "rawcount", func(c nicCounters) uint64 { return c.inErrors }},
	{"-4", "bulk_count", func(c nicCounters) uint64 { return c.outOctets }},
	{"26", "bulk_count", func(c nicCounters) uint64 { return c.outUcast }},
	{"28", "bulk_count", func(c nicCounters) uint64 { return c.outNUcast }},
	{"30", "rawcount", func(c nicCounters) uint64 { return c.outDiscards }},
	{"32", "rawcount", func(c nicCounters) uint64 { return c.outErrors }},
	{"34", "rawcount", func(c nicCounters) uint64 { return c.outQLen }},
	{"1086", "large_rawcount", func(c nicCounters) uint64 { return 0 }},
}

// counterSection renders the perf counter dump: timestamp line,
// instance line, one line per counter row. The trailing counter-type
// token keeps single-instance rows from reading as timestamp lines.
func counterSection(config Config, nics []nic) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("%.2f 510 2156250", config.Timestamp))
	names := make([]string, 0, len(nics))
	for _, n := range nics {
		names = append(names, n.counterName)
	}
	lines = append(lines, fmt.Sprintf("%d instances: %s", len(nics), strings.Join(names, " ")))
	for _, row := range counterRows {
		fields := []string{row.label}
		for _, n := range nics {
			fields = append(fields, fmt.Sprintf("%d", row.value(n.counters)))
		}
		fields = append(fields, row.suffix)
		lines = append(lines, strings.Join(fields, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}

// adapterTable renders the Win32_NetworkAdapter dump, tab separated
// since names contain spaces. The loopback instance has no adapter
// row, exactly as wmic omits it.
func adapterTable(config Config, nics []nic) string {
	lines := []string{strings.Join([]string{"Node", "MACAddress", "Name", "NetConnectionID", "NetConnectionStatus", "Speed", "GUID"}, "\t")}
	for _, n := range nics {
		if n.loopback {
			continue
		}
		speed := fmt.Sprintf("%d", n.counters.speed)
		if n.status != "2" {
			speed = fmt.Sprintf("%d", implausibleSpeed)
		}
		lines = append(lines, strings.Join([]string{config.Node, n.mac, n.wmicName, n.alias, n.status, speed, n.guid}, "\t"))
	}
	return strings.Join(lines, "\n") + "\n"
}

// teamingTable renders the teaming dump for the first two adapters.
// Member lists are ";" joined within their columns.
func teamingTable(config Config, nics []nic) string {
	header := strings.Join([]string{"TeamName", "TeamingMode", "LoadBalancingAlgorithm", "MemberMACAddresses", "MemberNames", "MemberDescriptions", "Speed", "GUID"}, "\t")
	var macs, names, descriptions, guids []string
	for _, n := range nics[:2] {
		macs = append(macs, n.mac)
		names = append(names, n.alias)
		descriptions = append(descriptions, n.wmicName)
		guids = append(guids, n.guid)
	}
	row := strings.Join([]string{
		config.Team,
		"SwitchIndependent",
		"Dynamic",
		strings.Join(macs, ";"),
		strings.Join(names, ";"),
		strings.Join(descriptions, ";"),
		"2000000000",
		strings.Join(guids, ";"),
	}, "\t")
	return header + "\n" + row + "\n"
}

// dhcpTable renders the wmic nicconfig dump. wmic pads a visual table,
// so columns are space separated and descriptions containing spaces
// tokenize into extra fields the consumer re-joins.
func dhcpTable(nics []nic) string {
	lines := []string{fmt.Sprintf("%-52s %-12s %s", "Description", "DHCPEnabled", "Index")}
	for i, n := range nics {
		if n.loopback {
			continue
		}
		enabled := "FALSE"
		if i == 0 {
			enabled = "TRUE"
		}
		lines = append(lines, fmt.Sprintf("%-52s %-12s %d", n.wmicName, enabled, i+1))
	}
	return strings.Join(lines, "\n") + "\n"
}

// manifest renders a captures file so the whole directory loads with a
// single --captures flag. Paths keep the output directory prefix and
// resolve from the directory mkcapture ran in.
func manifest(name string, countersPath string, auxPaths []string) string {
	lines := []string{
		"captures:",
		fmt.Sprintf("  - name: %s", name),
		fmt.Sprintf("    counters: %s", countersPath),
	}
	if len(auxPaths) > 0 {
		lines = append(lines, "    aux:")
		for _, path := range auxPaths {
			lines = append(lines, fmt.Sprintf("      - %s", path))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
