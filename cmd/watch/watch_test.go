// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package watch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifspect/internal/winperf"
)

func testResult() *winperf.Result {
	return &winperf.Result{
		Timestamp: 1630928323.48,
		Interfaces: []winperf.Interface{
			{
				Index: "1", Name: "intel_r__ethernet_connection_1", Alias: "Ethernet",
				OperStatus: winperf.OperStatusUp, Speed: 1000000000,
				Counters: winperf.Counters{InOctets: 201520, OutOctets: 93840, InErrors: 1, OutQLen: 3},
			},
			{
				Index: "2", Name: "wi_fi_adapter", Alias: "WLAN",
				OperStatus: winperf.OperStatusLowerLayerDown,
				Counters:   winperf.Counters{},
			},
		},
	}
}

func TestNewWatchFrame(t *testing.T) {
	frame := newWatchFrame("host1", testResult())
	assert.Equal(t, "host1", frame.Capture)
	assert.Equal(t, 1630928323.48, frame.CaptureTime)
	assert.NotEmpty(t, frame.Time)
	require.Len(t, frame.Interfaces, 2)

	first := frame.Interfaces[0]
	assert.Equal(t, "intel_r__ethernet_connection_1", first.Name)
	assert.Equal(t, "up", first.Status)
	assert.True(t, first.Up)
	assert.Equal(t, uint64(1000000000), first.SpeedBits)
	assert.Equal(t, uint64(201520), first.InOctets)
	assert.Equal(t, uint64(93840), first.OutOctets)
	assert.Equal(t, uint64(1), first.InErrors)
	assert.Equal(t, uint64(3), first.OutQLen)

	second := frame.Interfaces[1]
	assert.Equal(t, "down", second.Status)
	assert.False(t, second.Up)
}

func TestWatchFrameJSONShape(t *testing.T) {
	frame := newWatchFrame("host1", testResult())
	jsonBytes, err := json.Marshal(frame)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Equal(t, "host1", decoded["capture"])
	assert.Contains(t, decoded, "time")
	assert.Contains(t, decoded, "capture_time")
	interfaces, ok := decoded["interfaces"].([]any)
	require.True(t, ok)
	require.Len(t, interfaces, 2)
	record, ok := interfaces[0].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"name", "status", "up", "speed_bits", "in_octets", "out_octets", "out_qlen"} {
		assert.Contains(t, record, key)
	}
}

func TestSanitizeMetricName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Clean", in: "interface_up", want: "interface_up"},
		{name: "Spaces", in: "interface up", want: "interface_up"},
		{name: "Punctuation", in: "in-octets(64)", want: "in_octets_64_"},
		{name: "ColonKept", in: "ifspect:interface_up", want: "ifspect:interface_up"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeMetricName(tt.in))
		})
	}
}

func TestGaugeValuesCoversMetricDefs(t *testing.T) {
	frame := newWatchFrame("host1", testResult())
	values := gaugeValues(frame.Interfaces[0])
	require.Len(t, values, len(watchMetricDefs))
	for _, def := range watchMetricDefs {
		assert.Contains(t, values, def.Name)
	}
	assert.Equal(t, 1.0, values["interface_up"])
	assert.Equal(t, 1000000000.0, values["interface_speed_bits"])
	assert.Equal(t, 201520.0, values["interface_in_octets"])

	values = gaugeValues(frame.Interfaces[1])
	assert.Equal(t, 0.0, values["interface_up"])
}
