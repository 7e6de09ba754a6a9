// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package capture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCaptureFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadClassifiesAuxFiles(t *testing.T) {
	dir := t.TempDir()
	counters := writeCaptureFile(t, dir, "host1_counters.txt",
		"1630928323.48 3600\n1 instances: eth0\n-246 100 bulk_count\n")
	adapters := writeCaptureFile(t, dir, "host1_adapters.txt",
		"Node\tMACAddress\tName\tNetConnectionID\tNetConnectionStatus\tSpeed\tGUID\n"+
			"WIN\t00:0C:29:AA:BB:01\teth0\tEthernet\t2\t1000000000\t{AAA}\n")
	teaming := writeCaptureFile(t, dir, "host1_teaming.txt",
		"[teaming_start]\nTeamName TeamingMode LoadBalancingAlgorithm MemberMACAddresses MemberNames MemberDescriptions Speed GUID\n"+
			"LAN SwitchIndependent Dynamic 00:0C:29:AA:BB:01 nic1 eth0 1000000000 {AAA}\n[teaming_end]\n")
	dhcp := writeCaptureFile(t, dir, "host1_dhcp.txt",
		"Index Description DHCPEnabled\n1 eth0 TRUE\n")

	c, err := Load(Spec{
		Counters: counters,
		Aux:      []string{adapters, teaming, dhcp},
	})
	require.NoError(t, err)
	assert.Equal(t, "host1_counters", c.Name)
	assert.Len(t, c.Sections.Adapters, 1)
	assert.Len(t, c.Sections.Teaming, 1)
	assert.Len(t, c.Sections.DHCP, 1)

	r := c.Parse()
	require.Len(t, r.Interfaces, 1)
	assert.Equal(t, "Ethernet", r.Interfaces[0].Alias)
	assert.Equal(t, "LAN", r.Interfaces[0].Team)
}

func TestLoadExplicitName(t *testing.T) {
	dir := t.TempDir()
	counters := writeCaptureFile(t, dir, "c.txt", "1630928323.48 3600\n1 instances: eth0\n")
	c, err := Load(Spec{Name: "prod-web-01", Counters: counters})
	require.NoError(t, err)
	assert.Equal(t, "prod-web-01", c.Name)
}

func TestLoadSkipsUnrecognizedAux(t *testing.T) {
	dir := t.TempDir()
	counters := writeCaptureFile(t, dir, "c.txt", "1630928323.48 3600\n1 instances: eth0\n")
	junk := writeCaptureFile(t, dir, "junk.txt", "hello world\n")
	c, err := Load(Spec{Counters: counters, Aux: []string{junk}})
	require.NoError(t, err)
	assert.Empty(t, c.Sections.Adapters)
	assert.Empty(t, c.Sections.Teaming)
	assert.Empty(t, c.Sections.DHCP)
}

func TestLoadRejectsCounterDataAsAux(t *testing.T) {
	dir := t.TempDir()
	counters := writeCaptureFile(t, dir, "c.txt", "1630928323.48 3600\n1 instances: eth0\n")
	second := writeCaptureFile(t, dir, "c2.txt", "1630928400.00 3600\n1 instances: eth1\n")
	_, err := Load(Spec{Counters: counters, Aux: []string{second}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holds counter data")
}

func TestLoadMissingCounterFile(t *testing.T) {
	_, err := Load(Spec{Counters: filepath.Join(t.TempDir(), "absent.txt")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading counter data")
}

func TestNameFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/data/captures/host1_counters.txt", "host1_counters"},
		{"host1", "host1"},
		{"-", "stdin"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NameFromPath(tt.path), tt.path)
	}
}
