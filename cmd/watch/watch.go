// Package watch is a subcommand of the root command. It reloads capture(s) on
// an interval and prints interface snapshots, optionally serving them as
// Prometheus gauges.
package watch

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ifspect/internal/app"
	"ifspect/internal/capture"
	"ifspect/internal/filter"
	"ifspect/internal/workflow"
)

const cmdName = "watch"

var examples = []string{
	fmt.Sprintf("  Watch a capture file:           $ %s %s --counters agent.txt", app.Name, cmdName),
	fmt.Sprintf("  Ten snapshots, one per minute:  $ %s %s --counters agent.txt --interval 60 --count 10", app.Name, cmdName),
	fmt.Sprintf("  JSON frames:                    $ %s %s --counters agent.txt --format json", app.Name, cmdName),
	fmt.Sprintf("  Serve Prometheus gauges:        $ %s %s --captures captures.yaml --prometheus", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Print interface snapshots from capture(s) on an interval",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

// flag vars
var (
	flagInterval       int
	flagCount          int
	flagFormat         string
	flagFilter         string
	flagPrometheus     bool
	flagPrometheusPort int
)

// flag names
const (
	flagIntervalName       = "interval"
	flagCountName          = "count"
	flagFilterName         = "filter"
	flagPrometheusName     = "prometheus"
	flagPrometheusPortName = "prometheus-port"
)

const (
	formatTxt  = "txt"
	formatJSON = "json"
)

var formatOptions = []string{formatTxt, formatJSON}

// gFilter holds the compiled --filter expression, set during flag validation.
var gFilter *filter.Filter

func init() {
	Cmd.Flags().IntVar(&flagInterval, flagIntervalName, 5, "")
	Cmd.Flags().IntVar(&flagCount, flagCountName, 0, "")
	Cmd.Flags().StringVar(&flagFormat, app.FlagFormatName, formatTxt, "")
	Cmd.Flags().StringVar(&flagFilter, flagFilterName, "", "")
	Cmd.Flags().BoolVar(&flagPrometheus, flagPrometheusName, false, "")
	Cmd.Flags().IntVar(&flagPrometheusPort, flagPrometheusPortName, 9911, "")

	workflow.AddCaptureFlags(Cmd)

	Cmd.SetUsageFunc(usageFunc)
}

func usageFunc(cmd *cobra.Command) error {
	cmd.Printf("Usage: %s [flags]\n\n", cmd.CommandPath())
	cmd.Printf("Examples:\n%s\n\n", cmd.Example)
	cmd.Println("Flags:")
	for _, group := range getFlagGroups() {
		cmd.Printf("  %s:\n", group.GroupName)
		for _, flag := range group.Flags {
			flagDefault := ""
			if cmd.Flags().Lookup(flag.Name).DefValue != "" {
				flagDefault = fmt.Sprintf(" (default: %s)", cmd.Flags().Lookup(flag.Name).DefValue)
			}
			cmd.Printf("    --%-20s %s%s\n", flag.Name, flag.Help, flagDefault)
		}
	}
	cmd.Println("\nGlobal Flags:")
	cmd.Parent().PersistentFlags().VisitAll(func(pf *pflag.Flag) {
		flagDefault := ""
		if cmd.Parent().PersistentFlags().Lookup(pf.Name).DefValue != "" {
			flagDefault = fmt.Sprintf(" (default: %s)", cmd.Flags().Lookup(pf.Name).DefValue)
		}
		cmd.Printf("  --%-20s %s%s\n", pf.Name, pf.Usage, flagDefault)
	})
	return nil
}

func getFlagGroups() []app.FlagGroup {
	var groups []app.FlagGroup
	flags := []app.Flag{
		{
			Name: flagIntervalName,
			Help: "number of seconds between snapshots",
		},
		{
			Name: flagCountName,
			Help: "number of snapshots to print before exiting. If 0, runs until interrupted. Ctrl+c to stop.",
		},
	}
	groups = append(groups, app.FlagGroup{
		GroupName: "Collection Options",
		Flags:     flags,
	})
	flags = []app.Flag{
		{
			Name: app.FlagFormatName,
			Help: fmt.Sprintf("choose one output format from: %s", strings.Join(formatOptions, ", ")),
		},
		{
			Name: flagFilterName,
			Help: "keep only interface records matching the expression, e.g., 'up && speed >= 1000000000'",
		},
		{
			Name: flagPrometheusName,
			Help: "serve the snapshot as Prometheus gauges on /metrics",
		},
		{
			Name: flagPrometheusPortName,
			Help: "listen port for the Prometheus endpoint",
		},
	}
	groups = append(groups, app.FlagGroup{
		GroupName: "Output Options",
		Flags:     flags,
	})
	groups = append(groups, workflow.GetCaptureFlagGroup())
	return groups
}

func validateFlags(cmd *cobra.Command, args []string) error {
	// validate format option
	if !slices.Contains(formatOptions, flagFormat) {
		return workflow.FlagValidationError(cmd, fmt.Sprintf("format options are: %s", strings.Join(formatOptions, ", ")))
	}
	if flagInterval < 1 {
		return workflow.FlagValidationError(cmd, "interval must be 1 or greater")
	}
	if flagCount < 0 {
		return workflow.FlagValidationError(cmd, "count must be 0 or greater")
	}
	if flagPrometheusPort < 1 || flagPrometheusPort > 65535 {
		return workflow.FlagValidationError(cmd, fmt.Sprintf("invalid %s: %d", flagPrometheusPortName, flagPrometheusPort))
	}
	// compile the filter expression
	if flagFilter != "" {
		var err error
		gFilter, err = filter.New(flagFilter)
		if err != nil {
			return workflow.FlagValidationError(cmd, fmt.Sprintf("invalid filter expression: %v", err))
		}
	}
	if err := workflow.ValidateCaptureFlags(cmd); err != nil {
		return workflow.FlagValidationError(cmd, err.Error())
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	specs, err := workflow.GetCaptureSpecs(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	// every file is re-read on each tick, so standard input cannot back one
	for _, spec := range specs {
		if spec.Counters == capture.StdinPath || slices.Contains(spec.Aux, capture.StdinPath) {
			err := fmt.Errorf("capture %s reads standard input, watch needs re-readable files", spec.Name)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			slog.Error(err.Error())
			cmd.SilenceUsage = true
			return err
		}
	}
	if flagPrometheus {
		createPrometheusMetrics()
		startPrometheusServer(fmt.Sprintf(":%d", flagPrometheusPort))
	}
	// handle signals
	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(time.Duration(flagInterval) * time.Second)
	defer ticker.Stop()
	for snapshots := 0; ; {
		frames := loadFrames(specs)
		printFrames(frames)
		if flagPrometheus {
			updatePrometheusMetrics(frames)
		}
		snapshots++
		if flagCount > 0 && snapshots >= flagCount {
			return nil
		}
		select {
		case sig := <-sigChannel:
			slog.Info("received signal", slog.String("signal", sig.String()))
			fmt.Println()
			return nil
		case <-ticker.C:
		}
	}
}

// loadFrames loads and parses every capture. A capture that fails to load is
// logged and skipped so a partially written file does not end the watch.
func loadFrames(specs []capture.Spec) []watchFrame {
	frames := make([]watchFrame, 0, len(specs))
	for _, spec := range specs {
		c, err := capture.Load(spec)
		if err != nil {
			slog.Error("failed to load capture", slog.String("capture", spec.Name), slog.String("error", err.Error()))
			continue
		}
		result := c.Parse()
		result.Interfaces = gFilter.Apply(result)
		frames = append(frames, newWatchFrame(c.Name, result))
	}
	return frames
}
