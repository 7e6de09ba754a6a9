// Package report is a subcommand of the root command. It generates interface
// reports from capture(s).
package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ifspect/internal/app"
	"ifspect/internal/filter"
	"ifspect/internal/report"
	"ifspect/internal/table"
	"ifspect/internal/winperf"
	"ifspect/internal/workflow"
)

const cmdName = "report"

var examples = []string{
	fmt.Sprintf("  Report from agent output:       $ %s %s --counters agent.txt", app.Name, cmdName),
	fmt.Sprintf("  Report with auxiliary tables:   $ %s %s --counters agent.txt --aux adapters.txt --aux dhcp.txt", app.Name, cmdName),
	fmt.Sprintf("  Selected tables only:           $ %s %s --counters agent.txt --interfaces --traffic --format html,json", app.Name, cmdName),
	fmt.Sprintf("  Filtered report:                $ %s %s --counters agent.txt --filter 'up && speed >= 1000000000'", app.Name, cmdName),
	fmt.Sprintf("  Multiple captures:              $ %s %s --captures captures.yaml", app.Name, cmdName),
	fmt.Sprintf("  Re-render saved raw captures:   $ %s %s --input ifspect_2025-01-02_15-04-05", app.Name, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Generate interface report(s) from capture(s)",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

// flag vars
var (
	flagAll bool
	// categories
	flagInterfaces bool
	flagTraffic    bool
	flagTeams      bool
	flagDhcp       bool

	flagSummary bool
	flagFilter  string
	flagInput   string
	flagFormat  []string
)

// flag names
const (
	flagAllName = "all"
	// categories
	flagInterfacesName = "interfaces"
	flagTrafficName    = "traffic"
	flagTeamsName      = "teams"
	flagDhcpName       = "dhcp"

	flagSummaryName = "summary"
	flagFilterName  = "filter"
)

// gFilter holds the compiled --filter expression, set during flag validation.
var gFilter *filter.Filter

// categories maps flag names to tables that will be included in the report
var categories = []app.Category{
	{FlagName: flagInterfacesName, FlagVar: &flagInterfaces, Help: "Network Interfaces", Tables: []table.TableDefinition{app.TableDefinitions[app.InterfacesTableName]}},
	{FlagName: flagTrafficName, FlagVar: &flagTraffic, Help: "Traffic Counters", Tables: []table.TableDefinition{app.TableDefinitions[app.TrafficTableName]}},
	{FlagName: flagTeamsName, FlagVar: &flagTeams, Help: "Teaming Configuration", Tables: []table.TableDefinition{app.TableDefinitions[app.TeamsTableName]}},
	{FlagName: flagDhcpName, FlagVar: &flagDhcp, Help: "DHCP Status", Tables: []table.TableDefinition{app.TableDefinitions[app.DHCPTableName]}},
}

func init() {
	// set up category flags
	for _, cat := range categories {
		Cmd.Flags().BoolVar(cat.FlagVar, cat.FlagName, cat.DefaultValue, cat.Help)
	}
	// set up other flags
	Cmd.Flags().BoolVar(&flagAll, flagAllName, true, "")
	Cmd.Flags().BoolVar(&flagSummary, flagSummaryName, false, "")
	Cmd.Flags().StringVar(&flagFilter, flagFilterName, "", "")
	Cmd.Flags().StringVar(&flagInput, app.FlagInputName, "", "")
	Cmd.Flags().StringSliceVar(&flagFormat, app.FlagFormatName, []string{report.FormatAll}, "")

	workflow.AddCaptureFlags(Cmd)

	Cmd.SetUsageFunc(usageFunc)
}

// formatOptions returns the accepted --format values.
func formatOptions() []string {
	options := []string{report.FormatAll}
	options = append(options, report.FormatOptions...)
	options = append(options, report.FormatRaw)
	return options
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
			Name: flagAllName,
			Help: "report all tables",
		},
	}
	for _, cat := range categories {
		flags = append(flags, app.Flag{
			Name: cat.FlagName,
			Help: cat.Help,
		})
	}
	flags = append(flags, app.Flag{
		Name: flagSummaryName,
		Help: "Summary",
	})
	groups = append(groups, app.FlagGroup{
		GroupName: "Categories",
		Flags:     flags,
	})
	flags = []app.Flag{
		{
			Name: flagFilterName,
			Help: "keep only interface records matching the expression, e.g., 'up && speed >= 1000000000'",
		},
		{
			Name: app.FlagFormatName,
			Help: fmt.Sprintf("choose output format(s) from: %s", strings.Join(formatOptions(), ", ")),
		},
	}
	groups = append(groups, app.FlagGroup{
		GroupName: "Other Options",
		Flags:     flags,
	})
	groups = append(groups, workflow.GetCaptureFlagGroup())
	flags = []app.Flag{
		{
			Name: app.FlagInputName,
			Help: "\".raw\" file, or directory containing \".raw\" files. Will skip capture loading and use raw data for reports.",
		},
	}
	groups = append(groups, app.FlagGroup{
		GroupName: "Advanced Options",
		Flags:     flags,
	})
	return groups
}

func validateFlags(cmd *cobra.Command, args []string) error {
	// clear flagAll if any categories are selected
	if flagAll {
		if flagSummary {
			flagAll = false
		}
		for _, cat := range categories {
			if cat.FlagVar != nil && *cat.FlagVar {
				flagAll = false
				break
			}
		}
	}
	// validate format options
	for _, format := range flagFormat {
		if !slices.Contains(formatOptions(), format) {
			return workflow.FlagValidationError(cmd, fmt.Sprintf("format options are: %s", strings.Join(formatOptions(), ", ")))
		}
	}
	// compile the filter expression
	if flagFilter != "" {
		var err error
		gFilter, err = filter.New(flagFilter)
		if err != nil {
			return workflow.FlagValidationError(cmd, fmt.Sprintf("invalid filter expression: %v", err))
		}
	}
	// capture flags only apply when the data is not read from raw files
	if flagInput == "" {
		if err := workflow.ValidateCaptureFlags(cmd); err != nil {
			return workflow.FlagValidationError(cmd, err.Error())
		}
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	var tables []table.TableDefinition
	for _, cat := range categories {
		if (cat.FlagVar != nil && *cat.FlagVar) || flagAll {
			tables = append(tables, cat.Tables...)
		}
	}
	// the summary table is built from the processed table values
	var summaryFunc app.SummaryFunc
	if flagSummary || flagAll {
		summaryFunc = summaryFromTableValues
	}
	// include the insights table if all tables are selected
	var insightsFunc app.InsightsFunc
	if flagAll {
		insightsFunc = workflow.DefaultInsightsFunc
	}
	reportingCommand := workflow.ReportingCommand{
		Cmd:                    cmd,
		Tables:                 tables,
		Filter:                 gFilter,
		SummaryFunc:            summaryFunc,
		SummaryTableName:       app.SummaryTableName,
		SummaryBeforeTableName: app.InterfacesTableName,
		InsightsFunc:           insightsFunc,
		BriefTableName:         app.SummaryTableName,
		Input:                  flagInput,
		Formats:                flagFormat,
	}

	report.RegisterHTMLRenderer(app.InterfacesTableName, interfacesHTMLTableRenderer)

	return reportingCommand.Run()
}

// summaryFromTableValues builds the summary table. It runs after the regular
// tables are processed so that its insights reach the combined insights table.
func summaryFromTableValues(_ []table.TableValues, result *winperf.Result) table.TableValues {
	return table.GetValuesForTable(app.TableDefinitions[app.SummaryTableName], result)
}
