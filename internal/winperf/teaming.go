// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package winperf

import (
	"log/slog"
	"strings"
)

// parseTeamingRows parses a header-led teaming table. Each row lists
// its member GUIDs and member descriptions as ";"-separated columns;
// the pairs are zipped into one Team entry per member.
func parseTeamingRows(rows [][]string) []Team {
	if len(rows) < 2 {
		return nil
	}
	header := rows[0]
	var teams []Team
	for _, row := range rows[1:] {
		m := zipRow(header, row)
		guids, okGUID := m["GUID"]
		descriptions, okDescr := m["MemberDescriptions"]
		if !okGUID || !okDescr {
			slog.Warn("skipping truncated teaming row",
				slog.Int("fields", len(row)), slog.Int("headerFields", len(header)))
			continue
		}
		descrList := strings.Split(descriptions, ";")
		for i, guid := range strings.Split(guids, ";") {
			if i >= len(descrList) {
				break
			}
			teams = append(teams, Team{
				Name:              m["TeamName"],
				GUID:              guid,
				MemberDescription: CanonizeName(descrList[i]),
			})
		}
	}
	return teams
}
