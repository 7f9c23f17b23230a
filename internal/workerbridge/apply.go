// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package workerbridge

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/conflict"
)

// ApplyResult is the outcome of running the regex applier against a single
// record: its exit classification and, if the worker produced any
// candidates, the best-scoring one.
type ApplyResult struct {
	Exit     ExitClass
	Block    Block
	Score    float64
	HasBlock bool
}

// Apply runs the applier for rec against its own cluster's group id, then
// reads, scores, and removes the applier's output file. A missing or
// failed executable still returns a result (HasBlock false); only an
// unexpected non-missing, non-zero exit is returned as an error, matching
// the fatal/warn split the exit classification makes.
func (b *Bridge) Apply(ctx context.Context, paths config.Paths, groupID int, rec conflict.Record) (ApplyResult, error) {
	exit, err := b.RunApplier(ctx, groupID, rec.Conflict)
	if err != nil {
		return ApplyResult{Exit: exit}, err
	}
	if exit != ExitOK {
		return ApplyResult{Exit: exit}, nil
	}

	blocks, err := ParseApplierOutput(b.fs, paths.ApplierOutput)
	if err != nil {
		return ApplyResult{Exit: exit}, err
	}
	if rmErr := b.fs.Remove(paths.ApplierOutput); rmErr != nil && !os.IsNotExist(rmErr) {
		return ApplyResult{Exit: exit}, fmt.Errorf("workerbridge: remove applier output %s: %w", paths.ApplierOutput, rmErr)
	}

	best, score, has := BestBlock(blocks, rec.Resolution)
	return ApplyResult{Exit: exit, Block: best, Score: score, HasBlock: has}, nil
}

// BuildSuggestion assembles a Result CSV row from a record, the group id it
// was assigned to, the applier's result, and a serialized snapshot of the
// touched cluster.
func BuildSuggestion(rec conflict.Record, groupID string, result ApplyResult, snapshot string) conflict.Suggestion {
	s := conflict.Suggestion{
		Conflict:           rec.Conflict,
		GroupID:            groupID,
		ExpectedResolution: rec.Resolution,
		UpstreamSideB:      rec.V2,
		DevDecision:        rec.DevDecision,
		InputID:            rec.ID,
		ClusterSnapshot:    snapshot,
	}
	if result.HasBlock {
		s.BestSimilarity = result.Score
		s.Regex = result.Block.Regex
		s.Replacement = result.Block.Replacement
		s.ProducedResolution = result.Block.ProducedResolution
	}
	return s
}

// GenerateTimed runs the regex generator for groupID and returns the
// wall-clock duration of the invocation, for the performance log.
func (b *Bridge) GenerateTimed(ctx context.Context, groupID int) (ExitClass, time.Duration, error) {
	start := time.Now()
	exit, err := b.RunGenerator(ctx, groupID)
	return exit, time.Since(start), err
}
