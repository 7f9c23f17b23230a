// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package recluster

import (
	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/conflict"
	"github.com/localrr/rrcluster/internal/similarity"
	"github.com/localrr/rrcluster/internal/stats"
)

// Population returns the total number of records across every cluster in
// idx, the figure the growth-fraction trigger is computed against.
func Population(idx *conflict.Index) int {
	n := 0
	for _, id := range idx.IDs() {
		c, _ := idx.Get(id)
		n += len(c)
	}
	return n
}

// ShouldRun reports whether the reclustering preconditions hold: low
// enough average intra-similarity, few enough singleton clusters, and
// either sufficient growth since the last recluster or enough records
// added overall.
func ShouldRun(cfg config.EngineConfig, st State, idx *conflict.Index) bool {
	if stats.IntraSimilarity(idx) > cfg.ReclusterIntraSimilarityCeiling {
		return false
	}
	if stats.SingletonFraction(idx) >= cfg.ReclusterSingletonFractionCeiling {
		return false
	}

	population := Population(idx)
	growthOK := st.BaselinePopulation > 0 &&
		float64(population-st.BaselinePopulation)/float64(st.BaselinePopulation) >= cfg.ReclusterGrowthFraction
	recordsOK := st.RecordsAddedSinceRecluster >= cfg.ReclusterMinRecordsAdded

	return growthOK || recordsOK
}

// node is one surviving or tombstoned cluster during agglomeration.
type node struct {
	pairs []conflict.Pair
	alive bool
}

// Agglomerate runs the average-linkage agglomerative merge over every
// record in idx and returns a fresh index with contiguous ids starting at
// 1. It does not consult or mutate the acceptance rule; callers compare
// intra-similarity before and after to decide whether to keep the result.
func Agglomerate(idx *conflict.Index, threshold float64) *conflict.Index {
	var records []conflict.Pair
	for _, id := range idx.IDs() {
		c, _ := idx.Get(id)
		records = append(records, c...)
	}

	n := len(records)
	nodes := make([]node, n)
	for i, r := range records {
		nodes[i] = node{pairs: []conflict.Pair{r}, alive: true}
	}

	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := interClusterSimilarity(nodes[i].pairs, nodes[j].pairs)
			sim[i][j] = s
			sim[j][i] = s
		}
	}

	for {
		bestI, bestJ, bestScore := -1, -1, threshold
		for i := 0; i < n; i++ {
			if !nodes[i].alive {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !nodes[j].alive {
					continue
				}
				if sim[i][j] > bestScore {
					bestScore = sim[i][j]
					bestI, bestJ = i, j
				}
			}
		}
		if bestI < 0 {
			break
		}

		nodes[bestI].pairs = append(nodes[bestI].pairs, nodes[bestJ].pairs...)
		nodes[bestJ].alive = false

		for k := 0; k < n; k++ {
			if !nodes[k].alive || k == bestI {
				continue
			}
			s := interClusterSimilarity(nodes[bestI].pairs, nodes[k].pairs)
			sim[bestI][k] = s
			sim[k][bestI] = s
		}
	}

	out := conflict.NewIndex()
	nextID := 1
	for i := 0; i < n; i++ {
		if !nodes[i].alive {
			continue
		}
		out.Replace(nextID, conflict.Cluster(nodes[i].pairs))
		nextID++
	}
	return out
}

// interClusterSimilarity is the mean of every inter-cluster pairwise
// (conflict+resolution)/2 Jaro-Winkler score between a and b's members.
func interClusterSimilarity(a, b []conflict.Pair) float64 {
	sum := 0.0
	count := 0
	for _, pa := range a {
		for _, pb := range b {
			jc := similarity.JaroWinkler(pa.Conflict, pb.Conflict)
			jr := similarity.JaroWinkler(pa.Resolution, pb.Resolution)
			sum += (jc + jr) / 2.0
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
