// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	rrlog "github.com/localrr/rrcluster/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for rrcluster.
var rootCmd = &cobra.Command{
	Use:   "rrcluster",
	Short: "Cluster recorded merge-conflict resolutions and suggest replays",
	Long: `rrcluster is an experimental extension of git's recorded resolution
mechanism. It groups (conflict, resolution) pairs recorded from prior merges
into similarity clusters, delegates regex-based replay to two worker
processes, and periodically reclusters the index as it grows.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		rrlog.Setup(verbose, quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reclusterCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
