// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package stats computes the per-cluster similarity metrics appended to
// the statistics log after every insert.
package stats

import (
	"github.com/localrr/rrcluster/internal/conflict"
	"github.com/localrr/rrcluster/internal/similarity"
)

// Compute returns the Stats row for clusterID's current contents. A
// singleton cluster reports averages of 1.0 and distances of 0.0 by
// convention.
func Compute(clusterID int, c conflict.Cluster) conflict.Stats {
	n := len(c)
	if n <= 1 {
		return conflict.Stats{
			ClusterID:             clusterID,
			ClusterSize:           n,
			AvgSimilarity:         1.0,
			AvgSimilarityConflict: 1.0,
			AvgSimilarityResol:    1.0,
		}
	}

	var sumCombined, sumConflict, sumResol float64
	minCombined, minConflict, minResol := 1.0, 1.0, 1.0
	pairs := 0

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			jc := similarity.JaroWinkler(c[i].Conflict, c[j].Conflict)
			jr := similarity.JaroWinkler(c[i].Resolution, c[j].Resolution)
			combined := (jc + jr) / 2.0

			sumCombined += combined
			sumConflict += jc
			sumResol += jr
			pairs++

			if combined < minCombined {
				minCombined = combined
			}
			if jc < minConflict {
				minConflict = jc
			}
			if jr < minResol {
				minResol = jr
			}
		}
	}

	latestConflict, latestResol := latestToAll(c)

	return conflict.Stats{
		ClusterID:             clusterID,
		ClusterSize:           n,
		AvgSimilarity:         sumCombined / float64(pairs),
		LongestDistance:       1.0 - minCombined,
		AvgSimilarityConflict: sumConflict / float64(pairs),
		AvgSimilarityResol:    sumResol / float64(pairs),
		LongestDistConflict:   1.0 - minConflict,
		LongestDistResol:      1.0 - minResol,
		LatestToAllConflict:   latestConflict,
		LatestToAllResol:      latestResol,
	}
}

// latestToAll returns, for the most recently inserted element, the mean
// similarity against every other element on each side — computed as an
// explicit mean against the last element rather than a leftover value
// from an unrelated loop.
func latestToAll(c conflict.Cluster) (conflictMean, resolMean float64) {
	n := len(c)
	latest := c[n-1]
	others := c[:n-1]

	var sumC, sumR float64
	for _, m := range others {
		sumC += similarity.JaroWinkler(latest.Conflict, m.Conflict)
		sumR += similarity.JaroWinkler(latest.Resolution, m.Resolution)
	}
	return sumC / float64(len(others)), sumR / float64(len(others))
}

// IntraSimilarity returns the mean of the combined-projection average
// similarity across clusters of size > 1 in idx, the metric the
// Reclustering engine's acceptance rule compares before and after.
func IntraSimilarity(idx *conflict.Index) float64 {
	var sum float64
	count := 0
	for _, id := range idx.IDs() {
		c, _ := idx.Get(id)
		if len(c) <= 1 {
			continue
		}
		sum += Compute(id, c).AvgSimilarity
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// SingletonFraction returns the fraction of clusters in idx with exactly
// one member.
func SingletonFraction(idx *conflict.Index) float64 {
	if idx.Len() == 0 {
		return 0
	}
	singletons := 0
	for _, id := range idx.IDs() {
		c, _ := idx.Get(id)
		if len(c) == 1 {
			singletons++
		}
	}
	return float64(singletons) / float64(idx.Len())
}
