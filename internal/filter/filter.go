// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package filter selects interface records with a boolean expression.
//
// Expressions use govaluate syntax and may reference these variables:
//
//	name, alias, team, status, detail, mac, matched, index, type -- strings
//	speed, in_octets, in_ucast, in_nucast, in_discards, in_errors,
//	out_octets, out_ucast, out_nucast, out_discards, out_errors,
//	out_qlen -- numbers
//	up, dhcp -- booleans
//
// Example: status == 'up' && speed >= 1000000000 && team != ''
package filter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/casbin/govaluate"

	"ifspect/internal/winperf"
)

// Filter holds a compiled record-selection expression. A nil Filter
// selects every record.
type Filter struct {
	expression *govaluate.EvaluableExpression
	raw        string
}

// New compiles the expression. Compilation errors surface here so the
// command can reject a bad expression before loading any captures.
func New(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}
	compiled, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return &Filter{expression: compiled, raw: expression}, nil
}

func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.raw
}

// Apply returns the records the expression selects. Records the
// expression cannot be evaluated against are dropped with a warning;
// a filter that excludes everything is not an error.
func (f *Filter) Apply(result *winperf.Result) []winperf.Interface {
	if f == nil {
		return result.Interfaces
	}
	kept := make([]winperf.Interface, 0, len(result.Interfaces))
	for _, iface := range result.Interfaces {
		ok, err := f.Match(result, iface)
		if err != nil {
			slog.Warn("filter failed for record, dropping it",
				slog.String("name", iface.Name), slog.String("error", err.Error()))
			continue
		}
		if ok {
			kept = append(kept, iface)
		}
	}
	return kept
}

// Match evaluates the expression against one record.
func (f *Filter) Match(result *winperf.Result, iface winperf.Interface) (bool, error) {
	value, err := f.expression.Evaluate(parameters(result, iface))
	if err != nil {
		return false, err
	}
	matched, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression yields %T, expected a boolean", value)
	}
	return matched, nil
}

// parameters flattens a record for the expression evaluator. Numeric
// values go in as float64, the only numeric type govaluate operates
// on.
func parameters(result *winperf.Result, iface winperf.Interface) map[string]any {
	mac := ""
	if iface.MACAddress != nil {
		mac = iface.MACAddress.String()
	}
	dhcp := false
	if fact := result.DHCPStatus(iface); fact != nil {
		dhcp = fact.Enabled
	}
	return map[string]any{
		"name":         iface.Name,
		"alias":        iface.Alias,
		"team":         iface.Team,
		"status":       iface.OperStatus.String(),
		"detail":       iface.StatusDetail,
		"mac":          mac,
		"matched":      iface.MatchedBy,
		"index":        iface.Index,
		"type":         iface.TypeCode,
		"up":           iface.OperStatus.Up(),
		"dhcp":         dhcp,
		"speed":        float64(iface.Speed),
		"in_octets":    float64(iface.Counters.InOctets),
		"in_ucast":     float64(iface.Counters.InUcast),
		"in_nucast":    float64(iface.Counters.InNUcast),
		"in_discards":  float64(iface.Counters.InDiscards),
		"in_errors":    float64(iface.Counters.InErrors),
		"out_octets":   float64(iface.Counters.OutOctets),
		"out_ucast":    float64(iface.Counters.OutUcast),
		"out_nucast":   float64(iface.Counters.OutNUcast),
		"out_discards": float64(iface.Counters.OutDiscards),
		"out_errors":   float64(iface.Counters.OutErrors),
		"out_qlen":     float64(iface.Counters.OutQLen),
	}
}
