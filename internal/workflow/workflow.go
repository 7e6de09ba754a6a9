// Package workflow implements the common flow/logic for commands that turn
// captured counter data into reports. It handles capture loading, parsing,
// and report generation.
package workflow

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"slices"

	"ifspect/internal/app"
	"ifspect/internal/filter"
	"ifspect/internal/progress"
	"ifspect/internal/report"
	"ifspect/internal/table"
	"ifspect/internal/util"
	"ifspect/internal/winperf"

	"github.com/spf13/cobra"
)

// CaptureOutputs holds the loaded sections and tables for a capture.
type CaptureOutputs struct {
	CaptureName string
	Sections    winperf.Sections
	Tables      []table.TableDefinition
}

// ReportingCommand represents a command that generates reports from captured data.
type ReportingCommand struct {
	Cmd                    *cobra.Command
	Tables                 []table.TableDefinition
	Filter                 *filter.Filter
	SummaryFunc            app.SummaryFunc
	SummaryTableName       string // the name of the table produced by SummaryFunc
	SummaryBeforeTableName string // the name of the table that the summary table should be placed before in the report
	InsightsFunc           app.InsightsFunc
	BriefTableName         string // Optional: Only affects xlsx format reports. If set, the table with this name will be used as the "Brief" sheet in the xlsx report. If empty or unset, no "Brief" sheet is generated.
	Input                  string
	Formats                []string
}

// Run is the common flow/logic for all reporting commands. The individual
// commands populate the ReportingCommand struct with the details specific to
// the command and then call this Run function.
func (rc *ReportingCommand) Run() error {
	// appContext is the application context that holds common data and resources.
	appContext := rc.Cmd.Parent().Context().Value(app.Context{}).(app.Context)
	timestamp := appContext.Timestamp
	outputDir := appContext.OutputDir
	logFilePath := appContext.LogFilePath
	// create output directory
	err := util.CreateDirectoryIfNotExists(outputDir, 0755) // #nosec G301
	if err != nil {
		err = fmt.Errorf("failed to create output directory: %w", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		rc.Cmd.SilenceUsage = true
		return err
	}

	var orderedCaptureOutputs []CaptureOutputs
	if rc.Input != "" {
		var err error
		orderedCaptureOutputs, err = outputsFromInput(rc.Input, rc.Tables, rc.SummaryTableName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			slog.Error(err.Error())
			rc.Cmd.SilenceUsage = true
			return err
		}
	} else {
		// assemble the capture specs from the capture flags
		specs, err := GetCaptureSpecs(rc.Cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			slog.Error(err.Error())
			rc.Cmd.SilenceUsage = true
			return err
		}
		// setup and start the progress indicator
		multiSpinner := progress.NewMultiSpinner()
		for _, spec := range specs {
			err := multiSpinner.AddSpinner(spec.Name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				slog.Error(err.Error())
				rc.Cmd.SilenceUsage = true
				return err
			}
		}
		multiSpinner.Start()
		// load the captures
		orderedCaptureOutputs = outputsFromCaptures(specs, rc.Tables, multiSpinner.Status)
		// stop the progress indicator
		multiSpinner.Finish()
		fmt.Println()
		// exit with error if no captures loaded
		if len(orderedCaptureOutputs) == 0 {
			err := fmt.Errorf("no successful captures found")
			slog.Error(err.Error())
			rc.Cmd.SilenceUsage = true
			return err
		}
	}
	// write the raw captures before processing the data, so that we keep the raw data even if there is an error while processing
	var rawCaptures []string
	rawCaptures, err = rc.createRawCaptures(appContext, orderedCaptureOutputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		rc.Cmd.SilenceUsage = true
		return err
	}
	// check report formats
	formats := rc.Formats
	if slices.Contains(formats, report.FormatAll) {
		formats = report.FormatOptions
	}
	// raw captures were written above, unconditionally, so raw is not
	// rendered again here
	formats = slices.DeleteFunc(slices.Clone(formats), func(format string) bool {
		return format == report.FormatRaw
	})
	// process the captured data and create the requested report(s)
	reportFilePaths, err := rc.createReports(appContext, orderedCaptureOutputs, formats)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		rc.Cmd.SilenceUsage = true
		return err
	}
	// if we are debugging, create a tgz archive with the raw captures, formatted reports, and log file
	if appContext.Debug {
		archiveFiles := append(reportFilePaths, rawCaptures...)
		if len(archiveFiles) > 0 {
			if logFilePath != "" {
				archiveFiles = append(archiveFiles, logFilePath)
			}
			err := util.CreateFlatTGZ(archiveFiles, filepath.Join(outputDir, app.Name+"_"+timestamp+".tgz"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				slog.Error(err.Error())
				rc.Cmd.SilenceUsage = true
				return err
			}
		}
	}
	// list the raw captures with the report files when the raw format was
	// requested by name
	if slices.Contains(rc.Formats, report.FormatRaw) {
		reportFilePaths = append(rawCaptures, reportFilePaths...)
	}
	if len(reportFilePaths) > 0 {
		fmt.Println("Report files:")
	}
	for _, reportFilePath := range reportFilePaths {
		fmt.Printf("  %s\n", reportFilePath)
	}
	return nil
}

// DefaultInsightsFunc returns the insights table values from the table values
func DefaultInsightsFunc(allTableValues []table.TableValues, _ *winperf.Result) table.TableValues {
	insightsTableValues := table.TableValues{
		TableDefinition: table.TableDefinition{
			Name:      app.TableNameInsights,
			HasRows:   true,
			MenuLabel: app.TableNameInsights,
		},
		Fields: []table.Field{
			{Name: "Recommendation", Values: []string{}},
			{Name: "Justification", Values: []string{}},
		},
	}
	for _, tableValues := range allTableValues {
		for _, insight := range tableValues.Insights {
			insightsTableValues.Fields[0].Values = append(insightsTableValues.Fields[0].Values, insight.Recommendation)
			insightsTableValues.Fields[1].Values = append(insightsTableValues.Fields[1].Values, insight.Justification)
		}
	}
	return insightsTableValues
}

// FlagValidationError is used to report an error with a flag
func FlagValidationError(cmd *cobra.Command, msg string) error {
	err := fmt.Errorf("%s", msg)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	fmt.Fprintf(os.Stderr, "See '%s --help' for usage details.\n", cmd.CommandPath())
	cmd.SilenceUsage = true
	return err
}
