// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/localrr/rrcluster/internal/cliout"
	"github.com/localrr/rrcluster/internal/clusterstore"
	"github.com/localrr/rrcluster/internal/stats"
)

// Stats-specific flag values.
var statsRepoPath string

// statsCmd prints the current Statistics module metrics for every cluster
// in the persisted index.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print similarity statistics for every persisted cluster",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsRepoPath, "repo", ".", "repository directory config.properties is resolved relative to")
}

func runStats(cmd *cobra.Command, _ []string) error {
	paths, cfg, err := loadEngine(statsRepoPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "%s", err)
	}

	store := clusterstore.New(paths.ClusterIndex)
	idx := store.Load()

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintln(w, cliout.Bold("cluster statistics"))
	fmt.Fprintln(w)

	table := cliout.NewTable(
		cliout.Column{Header: "Cluster", Align: cliout.AlignRight},
		cliout.Column{Header: "Size", Align: cliout.AlignRight},
		cliout.Column{Header: "Avg Sim", Align: cliout.AlignRight, Color: simColor(cfg.AssignmentThreshold)},
		cliout.Column{Header: "Longest Dist", Align: cliout.AlignRight},
	)

	for _, id := range idx.IDs() {
		cluster, _ := idx.Get(id)
		s := stats.Compute(id, cluster)
		table.AddRow(
			strconv.Itoa(s.ClusterID),
			strconv.Itoa(s.ClusterSize),
			strconv.FormatFloat(s.AvgSimilarity, 'f', 4, 64),
			strconv.FormatFloat(s.LongestDistance, 'f', 4, 64),
		)
	}
	_ = table.Render(w)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "clusters: %d  intra-similarity: %.4f  singleton fraction: %s\n",
		idx.Len(), stats.IntraSimilarity(idx),
		cliout.ColorSingletonFraction(stats.SingletonFraction(idx), cfg.ReclusterSingletonFractionCeiling))
	return nil
}

// simColor renders a similarity cell colored against threshold.
func simColor(threshold float64) cliout.ColorFunc {
	return func(value string) string {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return value
		}
		return cliout.ColorSimilarity(f, threshold)
	}
}
