// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package winperf

// Windows NetConnectionStatus to ifOperStatus:
// 1 up
// 2 down
// 3 testing
// 4 unknown
// 5 dormant
// 6 notPresent
// 7 lowerLayerDown
var connectionStates = map[string]struct {
	oper   OperStatus
	detail string
}{
	"0":  {OperStatusDown, "Disconnected"},
	"1":  {OperStatusDown, "Connecting"},
	"2":  {OperStatusUp, "Connected"},
	"3":  {OperStatusDown, "Disconnecting"},
	"4":  {OperStatusDown, "Hardware not present"},
	"5":  {OperStatusDown, "Hardware disabled"},
	"6":  {OperStatusDown, "Hardware malfunction"},
	"7":  {OperStatusLowerLayerDown, "Media disconnected"},
	"8":  {OperStatusDown, "Authenticating"},
	"9":  {OperStatusDown, "Authentication succeeded"},
	"10": {OperStatusDown, "Authentication failed"},
	"11": {OperStatusDown, "Invalid address"},
	"12": {OperStatusDown, "Credentials required"},
}

// connectionState maps a NetConnectionStatus value to its operational
// status and human-readable detail. Unknown values read as
// disconnected.
func connectionState(status string) (OperStatus, string) {
	if state, ok := connectionStates[status]; ok {
		return state.oper, state.detail
	}
	return OperStatusDown, "Disconnected"
}
