// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package winperf

import "strings"

// CanonizeName maps a raw counter instance name into its canonical
// form: underscores become spaces, one round of double-space
// collapsing, trailing spaces dropped.
func CanonizeName(name string) string {
	return strings.TrimRight(
		strings.ReplaceAll(strings.ReplaceAll(name, "_", " "), "  ", " "),
		" ",
	)
}

// The counter table and the adapter tables spell the same device
// differently:
//
//	Intel[R] PRO 1000 MT-Desktopadapter__3   (perf counter)
//	Intel(R) PRO/1000 MT-Desktopadapter 3    (wmic name)
//	Intel(R) PRO/1000 MT-Desktopadapter #3   (wmic InterfaceDescription)
var normalizeSubs = []struct{ from, to string }{
	{"/", " "},
	{"(", "["},
	{")", "]"},
	{"#", " "},
}

// NormalizeName rewrites an auxiliary-side name toward the counter
// name space. A substitution is skipped when its source character
// occurs in any of the reference names; the reference names themselves
// are never modified.
func NormalizeName(name string, names []string) string {
	mod := name
	for _, sub := range normalizeSubs {
		if anyContains(names, sub.from) {
			continue
		}
		mod = strings.ReplaceAll(strings.ReplaceAll(mod, sub.from, sub.to), "  ", " ")
	}
	return strings.TrimRight(mod, " ")
}

func anyContains(names []string, token string) bool {
	for _, n := range names {
		if strings.Contains(n, token) {
			return true
		}
	}
	return false
}
