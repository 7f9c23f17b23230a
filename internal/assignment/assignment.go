// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package assignment

import (
	"strings"

	"github.com/localrr/rrcluster/internal/conflict"
	"github.com/localrr/rrcluster/internal/similarity"
)

// Outcome is the result of placing a pair against an index.
type Outcome struct {
	// GroupID is the cluster id the pair was (or would be) placed in.
	// Meaningless when AlreadyPresent is true.
	GroupID int

	// AlreadyPresent reports that the pair exactly matches an existing
	// member of its chosen cluster. The caller must suppress the write.
	AlreadyPresent bool

	// BestSimilarity is the qualifying cluster's aggregate conflict-side
	// score, reported by the MCP suggest tool. 0 for a new cluster.
	BestSimilarity float64
}

// Engine places (conflict, resolution) pairs into a ClusterIndex under a
// selectable linkage rule.
type Engine struct {
	Strategy  Strategy
	Threshold float64
}

// New returns an Engine with the given strategy and similarity threshold τ.
func New(strategy Strategy, threshold float64) *Engine {
	return &Engine{Strategy: strategy, Threshold: threshold}
}

// Assign chooses a group id for pair against idx, or reports that pair is
// already present in its best-matching cluster.
func (e *Engine) Assign(idx *conflict.Index, pair conflict.Pair) Outcome {
	if idx.Len() == 0 {
		return Outcome{GroupID: 1}
	}

	cEmpty := strings.TrimSpace(pair.Conflict) == ""
	rEmpty := strings.TrimSpace(pair.Resolution) == ""

	switch {
	case cEmpty && rEmpty:
		return e.assignBothEmpty(idx, pair)
	case cEmpty:
		return e.assignSideOnly(idx, pair, sideResolution)
	case rEmpty:
		return e.assignSideOnly(idx, pair, sideConflict)
	default:
		return e.assignGeneral(idx, pair)
	}
}

func (e *Engine) assignGeneral(idx *conflict.Index, pair conflict.Pair) Outcome {
	bestID := 0
	bestScore := -1.0

	for _, id := range idx.IDs() {
		cluster, _ := idx.Get(id)
		if len(cluster) == 0 {
			continue
		}
		for _, member := range cluster {
			if member.Equal(pair) {
				return Outcome{GroupID: id, AlreadyPresent: true}
			}
		}

		cScores := make([]float64, len(cluster))
		rScores := make([]float64, len(cluster))
		for i, member := range cluster {
			cScores[i] = similarity.JaroWinkler(pair.Conflict, member.Conflict)
			rScores[i] = similarity.JaroWinkler(pair.Resolution, member.Resolution)
		}
		avgC := e.Strategy.Aggregate(cScores)
		avgR := e.Strategy.Aggregate(rScores)

		if avgC >= e.Threshold && avgR >= e.Threshold && avgC > bestScore {
			bestID = id
			bestScore = avgC
		}
	}

	if bestID == 0 {
		return Outcome{GroupID: idx.NextID()}
	}
	return Outcome{GroupID: bestID, BestSimilarity: bestScore}
}

type side int

const (
	sideConflict side = iota
	sideResolution
)

// assignSideOnly handles the specialized variant where one side of the
// incoming pair is empty: the cluster is scored only on the non-empty
// side, against the corresponding side of its members.
func (e *Engine) assignSideOnly(idx *conflict.Index, pair conflict.Pair, s side) Outcome {
	bestID := 0
	bestScore := -1.0

	for _, id := range idx.IDs() {
		cluster, _ := idx.Get(id)
		if len(cluster) == 0 {
			continue
		}
		for _, member := range cluster {
			if member.Equal(pair) {
				return Outcome{GroupID: id, AlreadyPresent: true}
			}
		}

		scores := make([]float64, len(cluster))
		for i, member := range cluster {
			if s == sideConflict {
				scores[i] = similarity.JaroWinkler(pair.Conflict, member.Conflict)
			} else {
				scores[i] = similarity.JaroWinkler(pair.Resolution, member.Resolution)
			}
		}
		score := e.Strategy.Aggregate(scores)

		if score >= e.Threshold && score > bestScore {
			bestID = id
			bestScore = score
		}
	}

	if bestID == 0 {
		return Outcome{GroupID: idx.NextID()}
	}
	return Outcome{GroupID: bestID, BestSimilarity: bestScore}
}

// assignBothEmpty handles the empty/empty pair: it joins any cluster whose
// members are all exactly empty/empty, else starts a new cluster.
func (e *Engine) assignBothEmpty(idx *conflict.Index, pair conflict.Pair) Outcome {
	for _, id := range idx.IDs() {
		cluster, _ := idx.Get(id)
		if len(cluster) == 0 {
			continue
		}

		allEmpty := true
		hasExact := false
		for _, member := range cluster {
			if !member.Empty() {
				allEmpty = false
				break
			}
			if member.Equal(pair) {
				hasExact = true
			}
		}
		if allEmpty {
			if hasExact {
				return Outcome{GroupID: id, AlreadyPresent: true}
			}
			return Outcome{GroupID: id, BestSimilarity: 1.0}
		}
	}
	return Outcome{GroupID: idx.NextID()}
}
