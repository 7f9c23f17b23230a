// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localrr/rrcluster/internal/clusterstore"
	"github.com/localrr/rrcluster/internal/cliout"
	"github.com/localrr/rrcluster/internal/recluster"
	"github.com/localrr/rrcluster/internal/testable"
)

// Recluster-specific flag values.
var reclusterRepoPath string

// reclusterCmd force-runs the reclustering engine, bypassing the trigger
// preconditions.
var reclusterCmd = &cobra.Command{
	Use:   "recluster",
	Short: "Force-run the reclustering engine against the persisted index",
	Long: `Recluster runs the agglomerative merge over every record in the
persisted cluster index and, if the result's average intra-similarity
strictly improves on the current index, archives the current index and
replaces it. Unlike the per-record trigger the pipeline driver checks
automatically, this command skips the growth and singleton-fraction
preconditions.`,
	Args: cobra.NoArgs,
	RunE: runRecluster,
}

func init() {
	reclusterCmd.Flags().StringVar(&reclusterRepoPath, "repo", ".", "repository directory config.properties is resolved relative to")
}

func runRecluster(cmd *cobra.Command, _ []string) error {
	paths, cfg, err := loadEngine(reclusterRepoPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "%s", err)
	}

	store := clusterstore.New(paths.ClusterIndex)
	r := recluster.New(store, paths.ReclusterState, testable.DefaultFS, cfg)

	outcome, err := r.ForceRun()
	if err != nil {
		return exitError(ExitRunFailure, "rrcluster: recluster failed: %v", err)
	}

	w := cmd.OutOrStdout()
	result := "rejected"
	if outcome.Accepted {
		result = "accepted"
	}
	fmt.Fprintf(w, "recluster %s (intra %.4f -> %.4f)\n",
		cliout.ColorReclusterOutcome(result), outcome.OldIntra, outcome.NewIntra)
	if outcome.Accepted {
		fmt.Fprintf(w, "backup written to %s\n", outcome.BackupPath)
	}
	return nil
}
