// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifspect/internal/winperf"
)

func testResult() *winperf.Result {
	return &winperf.Result{
		Interfaces: []winperf.Interface{
			{
				Index: "1", Name: "eth0", Alias: "Ethernet", Team: "LAN",
				OperStatus: winperf.OperStatusUp, StatusDetail: "Connected",
				Speed:    1000000000,
				Counters: winperf.Counters{InOctets: 201520, OutErrors: 0},
			},
			{
				Index: "2", Name: "eth1", Alias: "Ethernet 2", Team: "",
				OperStatus: winperf.OperStatusLowerLayerDown, StatusDetail: "Media disconnected",
				Speed:    0,
				Counters: winperf.Counters{InOctets: 3948, OutErrors: 2},
			},
		},
		DHCP: []winperf.DHCPFact{
			{Index: "1", Description: "eth0", Enabled: true},
			{Index: "2", Description: "eth1", Enabled: false},
		},
	}
}

func TestNewInvalidExpression(t *testing.T) {
	_, err := New("status == ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter expression")

	_, err = New("  ")
	require.Error(t, err)
}

func TestApplyStatus(t *testing.T) {
	f, err := New("status == 'up'")
	require.NoError(t, err)
	kept := f.Apply(testResult())
	require.Len(t, kept, 1)
	assert.Equal(t, "eth0", kept[0].Name)
}

func TestApplyUpShorthand(t *testing.T) {
	f, err := New("!up")
	require.NoError(t, err)
	kept := f.Apply(testResult())
	require.Len(t, kept, 1)
	assert.Equal(t, "eth1", kept[0].Name)
}

func TestApplyNumericComparison(t *testing.T) {
	f, err := New("speed >= 1000000000 && out_errors == 0")
	require.NoError(t, err)
	kept := f.Apply(testResult())
	require.Len(t, kept, 1)
	assert.Equal(t, "eth0", kept[0].Name)
}

func TestApplyTeamAndDHCP(t *testing.T) {
	f, err := New("team != '' && dhcp")
	require.NoError(t, err)
	kept := f.Apply(testResult())
	require.Len(t, kept, 1)
	assert.Equal(t, "eth0", kept[0].Name)
}

func TestApplyRegexMatch(t *testing.T) {
	f, err := New("alias =~ 'Ethernet'")
	require.NoError(t, err)
	kept := f.Apply(testResult())
	assert.Len(t, kept, 2)
}

func TestApplyUnknownVariableDropsRecords(t *testing.T) {
	f, err := New("bogus == 1")
	require.NoError(t, err)
	kept := f.Apply(testResult())
	assert.Empty(t, kept)
}

func TestApplyNonBooleanDropsRecords(t *testing.T) {
	f, err := New("speed")
	require.NoError(t, err)
	kept := f.Apply(testResult())
	assert.Empty(t, kept)
}

func TestNilFilterSelectsAll(t *testing.T) {
	var f *Filter
	assert.Len(t, f.Apply(testResult()), 2)
	assert.Empty(t, f.String())
}
