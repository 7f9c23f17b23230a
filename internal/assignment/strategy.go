// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package assignment implements the Assignment engine: choosing a cluster
// id for a new (conflict, resolution) pair under a selectable linkage
// rule.
package assignment

// Strategy aggregates a set of per-member similarity scores into the single
// score a cluster is compared against the threshold with.
type Strategy interface {
	Aggregate(scores []float64) float64
	Name() string
}

// AverageLinkage aggregates by mean over members — the default rule.
type AverageLinkage struct{}

// Name returns "average".
func (AverageLinkage) Name() string { return "average" }

// Aggregate returns the mean of scores.
func (AverageLinkage) Aggregate(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// CompleteLinkage aggregates by the worst (minimum) member similarity,
// requiring every member to be close before a record joins the cluster.
type CompleteLinkage struct {
	// InvertedBug reproduces a known reference-engine quirk: the minimum
	// is initialized to 0 and updated with a >= comparison, so the
	// aggregate tracks the maximum member score instead of the minimum.
	// Never set by default; exists only for parity testing.
	InvertedBug bool
}

// Name returns "complete".
func (CompleteLinkage) Name() string { return "complete" }

// Aggregate returns the minimum of scores, or the maximum when InvertedBug
// is set.
func (c CompleteLinkage) Aggregate(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	if c.InvertedBug {
		best := 0.0
		for _, s := range scores {
			if s >= best {
				best = s
			}
		}
		return best
	}
	worst := scores[0]
	for _, s := range scores[1:] {
		if s < worst {
			worst = s
		}
	}
	return worst
}

// SingleLinkage aggregates by the best (maximum) member similarity,
// admitting a record if it is close to any single member.
type SingleLinkage struct{}

// Name returns "single".
func (SingleLinkage) Name() string { return "single" }

// Aggregate returns the maximum of scores.
func (SingleLinkage) Aggregate(scores []float64) float64 {
	best := 0.0
	for _, s := range scores {
		if s > best {
			best = s
		}
	}
	return best
}

// ForName returns the named strategy, or AverageLinkage if name is
// unrecognized.
func ForName(name string, invertedBug bool) Strategy {
	switch name {
	case "complete":
		return CompleteLinkage{InvertedBug: invertedBug}
	case "single":
		return SingleLinkage{}
	default:
		return AverageLinkage{}
	}
}
