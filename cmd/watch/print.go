package watch

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ifspect/internal/winperf"
)

// watchFrame is one snapshot of one capture. Time is when the snapshot was
// taken, CaptureTime is the timestamp recorded in the counter data itself,
// so a frame whose CaptureTime stops advancing points at a stale capture
// file.
type watchFrame struct {
	Capture     string           `json:"capture"`
	Time        string           `json:"time"`
	CaptureTime float64          `json:"capture_time"`
	Interfaces  []watchInterface `json:"interfaces"`
}

// watchInterface is one interface record flattened for printing.
type watchInterface struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Up          bool   `json:"up"`
	SpeedBits   uint64 `json:"speed_bits"`
	InOctets    uint64 `json:"in_octets"`
	InUcast     uint64 `json:"in_ucast"`
	InNUcast    uint64 `json:"in_nucast"`
	InDiscards  uint64 `json:"in_discards"`
	InErrors    uint64 `json:"in_errors"`
	OutOctets   uint64 `json:"out_octets"`
	OutUcast    uint64 `json:"out_ucast"`
	OutNUcast   uint64 `json:"out_nucast"`
	OutDiscards uint64 `json:"out_discards"`
	OutErrors   uint64 `json:"out_errors"`
	OutQLen     uint64 `json:"out_qlen"`
}

func newWatchFrame(captureName string, result *winperf.Result) watchFrame {
	frame := watchFrame{
		Capture:     captureName,
		Time:        time.Now().UTC().Format(time.RFC3339),
		CaptureTime: result.Timestamp,
	}
	for _, iface := range result.Interfaces {
		frame.Interfaces = append(frame.Interfaces, watchInterface{
			Name:        iface.Name,
			Status:      iface.OperStatus.String(),
			Up:          iface.OperStatus.Up(),
			SpeedBits:   iface.Speed,
			InOctets:    iface.Counters.InOctets,
			InUcast:     iface.Counters.InUcast,
			InNUcast:    iface.Counters.InNUcast,
			InDiscards:  iface.Counters.InDiscards,
			InErrors:    iface.Counters.InErrors,
			OutOctets:   iface.Counters.OutOctets,
			OutUcast:    iface.Counters.OutUcast,
			OutNUcast:   iface.Counters.OutNUcast,
			OutDiscards: iface.Counters.OutDiscards,
			OutErrors:   iface.Counters.OutErrors,
			OutQLen:     iface.Counters.OutQLen,
		})
	}
	return frame
}

func printFrames(frames []watchFrame) {
	switch flagFormat {
	case formatJSON:
		printFramesJSON(frames)
	default:
		printFramesTxt(frames)
	}
}

// printFramesJSON prints one JSON object per frame, one frame per line.
func printFramesJSON(frames []watchFrame) {
	for _, frame := range frames {
		jsonBytes, err := json.Marshal(frame)
		if err != nil {
			slog.Error("failed to marshal frame", slog.String("capture", frame.Capture), slog.String("error", err.Error()))
			continue
		}
		fmt.Println(string(jsonBytes))
	}
}

var countPrinter = message.NewPrinter(language.English)

func printFramesTxt(frames []watchFrame) {
	var outputLines []string
	for _, frame := range frames {
		outputLines = append(outputLines, "--------------------------------------------------------------------------------------")
		outputLines = append(outputLines, fmt.Sprintf("- %s captured at %s", frame.Capture, frame.Time))
		outputLines = append(outputLines, "--------------------------------------------------------------------------------------")
		outputLines = append(outputLines, fmt.Sprintf("%-36s %-8s %14s %14s %10s %10s", "interface", "status", "in bytes", "out bytes", "in errs", "out errs"))
		outputLines = append(outputLines, fmt.Sprintf("%-36s %-8s %14s %14s %10s %10s", "------------------------", "------", "----------", "----------", "--------", "--------"))
		for _, iface := range frame.Interfaces {
			outputLines = append(outputLines, fmt.Sprintf("%-36s %-8s %14s %14s %10s %10s",
				iface.Name,
				iface.Status,
				countPrinter.Sprintf("%d", iface.InOctets),
				countPrinter.Sprintf("%d", iface.OutOctets),
				countPrinter.Sprintf("%d", iface.InErrors),
				countPrinter.Sprintf("%d", iface.OutErrors)))
		}
	}
	if len(outputLines) > 0 {
		fmt.Println(strings.Join(outputLines, "\n"))
	}
}
