// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/localrr/rrcluster/internal/cliout"
	"github.com/localrr/rrcluster/internal/conflict"
	"github.com/localrr/rrcluster/internal/pipeline"
	"github.com/localrr/rrcluster/internal/testable"
)

// Run-specific flag values.
var runRepoPath string

// runCmd drives the pipeline over an input dataset.
var runCmd = &cobra.Command{
	Use:   "run <dataset.json>",
	Short: "Process an input dataset through the pipeline driver",
	Long: `Run reads a JSON dataset of (conflict, resolution) records and feeds
each one through the applier worker, the Assignment engine, the statistics
log, the regex generator worker, and the reclustering check, in that order.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runRepoPath, "repo", ".", "repository directory config.properties is resolved relative to")
}

func runRun(cmd *cobra.Command, args []string) error {
	paths, cfg, err := loadEngine(runRepoPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "%s", err)
	}

	data, err := os.ReadFile(args[0]) //nolint:gosec // caller-supplied dataset path
	if err != nil {
		return exitError(ExitInvalidArgs, "rrcluster: read dataset %s: %v", args[0], err)
	}

	var dataset conflict.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return exitError(ExitInvalidArgs, "rrcluster: parse dataset %s: %v", args[0], err)
	}

	p := pipeline.New(testable.DefaultExecutor(), testable.DefaultFS, paths, cfg)
	summary, err := p.Run(cmd.Context(), dataset)
	if err != nil {
		return exitError(ExitRunFailure, "rrcluster: run failed: %v", err)
	}

	printRunSummary(cmd, summary)
	return nil
}

func printRunSummary(cmd *cobra.Command, summary pipeline.Summary) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintln(w, cliout.Bold("run complete"))
	fmt.Fprintln(w)

	table := cliout.NewTable(
		cliout.Column{Header: "Metric"},
		cliout.Column{Header: "Count", Align: cliout.AlignRight},
	)
	table.AddRow("records total", strconv.Itoa(summary.RecordsTotal))
	table.AddRow("inserted", strconv.Itoa(summary.RecordsInserted))
	table.AddRow("duplicate", strconv.Itoa(summary.RecordsDuplicate))
	table.AddRow("rejected (multi-line)", strconv.Itoa(summary.RecordsRejected))
	_ = table.Render(w)

	if summary.Recluster.Attempted {
		fmt.Fprintln(w)
		outcome := "rejected"
		if summary.Recluster.Accepted {
			outcome = "accepted"
		}
		fmt.Fprintf(w, "recluster: %s (intra %.4f -> %.4f)\n",
			cliout.ColorReclusterOutcome(outcome), summary.Recluster.OldIntra, summary.Recluster.NewIntra)
	}
}

