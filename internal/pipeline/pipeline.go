// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package pipeline drives a full run: for every record in an input
// dataset, place the record via the Assignment engine, invoke the regex
// applier with the chosen group id, append statistics, invoke the regex
// generator, and optionally trigger reclustering.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/localrr/rrcluster/internal/assignment"
	"github.com/localrr/rrcluster/internal/clusterstore"
	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/conflict"
	"github.com/localrr/rrcluster/internal/recluster"
	"github.com/localrr/rrcluster/internal/resultlog"
	"github.com/localrr/rrcluster/internal/stats"
	"github.com/localrr/rrcluster/internal/testable"
	"github.com/localrr/rrcluster/internal/workerbridge"
)

// Summary totals what a single Run did, for the CLI's human-readable
// report.
type Summary struct {
	RecordsTotal     int
	RecordsRejected  int // multi-line, dropped before assignment
	RecordsDuplicate int // exact match, insert suppressed
	RecordsInserted  int
	Recluster        recluster.Outcome
}

// Pipeline wires the worker bridge, the Assignment engine, the cluster
// store, the three result logs, and the Reclusterer into one per-record
// driver.
type Pipeline struct {
	fs      testable.FileSystem
	paths   config.Paths
	cfg     config.EngineConfig
	store   *clusterstore.Store
	bridge  *workerbridge.Bridge
	assign  *assignment.Engine
	recl    *recluster.Reclusterer
	resultW *resultlog.ResultWriter
	statsW  *resultlog.StatsWriter
	perfW   *resultlog.PerformanceWriter
}

// New wires a Pipeline for the working directory described by paths and
// tuned by cfg.
func New(exec testable.CommandExecutor, fs testable.FileSystem, paths config.Paths, cfg config.EngineConfig) *Pipeline {
	if fs == nil {
		fs = testable.DefaultFS
	}
	store := clusterstore.New(paths.ClusterIndex)
	store.SetFS(fs)

	return &Pipeline{
		fs:      fs,
		paths:   paths,
		cfg:     cfg,
		store:   store,
		bridge:  workerbridge.New(exec, fs, cfg, paths.WorkDir),
		assign:  assignment.New(assignment.ForName(cfg.Linkage, cfg.MinLinkageInvertedBug), cfg.AssignmentThreshold),
		recl:    recluster.New(store, paths.ReclusterState, fs, cfg),
		resultW: resultlog.NewResultWriter(paths.ResultCSV, fs),
		statsW:  resultlog.NewStatsWriter(paths.StatisticsCSV, fs),
		perfW:   resultlog.NewPerformanceWriter(paths.PerformanceCSV, fs),
	}
}

// Run processes every record in dataset, in document order.
func (p *Pipeline) Run(ctx context.Context, dataset conflict.Dataset) (Summary, error) {
	var summary Summary
	group, groupCtx := errgroup.WithContext(ctx)

	for _, rec := range dataset.Flatten() {
		summary.RecordsTotal++

		if rec.MultiLine() {
			if err := p.reportRejected(groupCtx, rec); err != nil {
				return summary, err
			}
			summary.RecordsRejected++
			continue
		}

		inserted, reclOutcome, err := p.processRecord(groupCtx, group, rec)
		if err != nil {
			return summary, err
		}
		switch {
		case inserted:
			summary.RecordsInserted++
		default:
			summary.RecordsDuplicate++
		}
		if reclOutcome.Attempted {
			summary.Recluster = reclOutcome
		}
	}

	if err := group.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

// reportRejected runs the applier for a multi-line record that will never
// reach assignment, and still appends its result row with no group id.
func (p *Pipeline) reportRejected(ctx context.Context, rec conflict.Record) error {
	result, err := p.bridge.Apply(ctx, p.paths, 0, rec)
	if err != nil {
		return fmt.Errorf("pipeline: applier for rejected record %d: %w", rec.ID, err)
	}
	suggestion := workerbridge.BuildSuggestion(rec, "", result, "")
	return p.resultW.Append(suggestion)
}

// processRecord runs the full per-record sequence: assignment decision,
// applier (which needs the group id), store write, result row, statistics,
// generator, and optional reclustering check. It
// returns whether the record was actually inserted (false for an
// exact-duplicate match) and the reclustering outcome, if one was
// attempted.
func (p *Pipeline) processRecord(ctx context.Context, group *errgroup.Group, rec conflict.Record) (bool, recluster.Outcome, error) {
	idx := p.store.Load()
	pair := conflict.Pair{Conflict: rec.Conflict, Resolution: rec.Resolution}
	outcome := p.assign.Assign(idx, pair)

	applyResult, err := p.bridge.Apply(ctx, p.paths, outcome.GroupID, rec)
	if err != nil {
		return false, recluster.Outcome{}, fmt.Errorf("pipeline: applier for record %d: %w", rec.ID, err)
	}

	inserted := !outcome.AlreadyPresent
	if inserted {
		if err := p.store.Insert(outcome.GroupID, pair); err != nil {
			return false, recluster.Outcome{}, fmt.Errorf("pipeline: insert into cluster %d: %w", outcome.GroupID, err)
		}
		if err := p.recl.Observe(); err != nil {
			return false, recluster.Outcome{}, err
		}
	}

	snapshot, err := p.snapshot(outcome.GroupID)
	if err != nil {
		return inserted, recluster.Outcome{}, err
	}
	suggestion := workerbridge.BuildSuggestion(rec, strconv.Itoa(outcome.GroupID), applyResult, snapshot)
	if err := p.resultW.Append(suggestion); err != nil {
		return inserted, recluster.Outcome{}, err
	}

	if inserted {
		cluster, _ := p.store.Load().Get(outcome.GroupID)
		if err := p.statsW.Append(stats.Compute(outcome.GroupID, cluster)); err != nil {
			return inserted, recluster.Outcome{}, err
		}
	}

	if err := p.invokeGenerator(ctx, group, outcome.GroupID); err != nil {
		return inserted, recluster.Outcome{}, err
	}

	if !inserted {
		return inserted, recluster.Outcome{}, nil
	}
	reclOutcome, err := p.recl.MaybeRun()
	if err != nil {
		return inserted, recluster.Outcome{}, err
	}
	return inserted, reclOutcome, nil
}

// invokeGenerator runs the regex generator for groupID, synchronously
// unless AsyncGenerator is set, in which case it is dispatched into group
// and awaited only at the end of Run.
func (p *Pipeline) invokeGenerator(ctx context.Context, group *errgroup.Group, groupID int) error {
	cluster, _ := p.store.Load().Get(groupID)
	clusterSize := len(cluster)

	run := func() error {
		exit, elapsed, err := p.bridge.GenerateTimed(ctx, groupID)
		if err != nil {
			return fmt.Errorf("pipeline: generator for cluster %d: %w", groupID, err)
		}
		if exit == workerbridge.ExitMissing {
			slog.Warn("regex generator executable missing", "cluster", groupID)
		}
		return p.perfW.Append(groupID, clusterSize, elapsed.Seconds())
	}

	if p.cfg.AsyncGenerator {
		group.Go(run)
		return nil
	}
	return run()
}

// snapshot renders the touched cluster's current members as YAML, for the
// result row's cluster-snapshot column.
func (p *Pipeline) snapshot(groupID int) (string, error) {
	cluster, ok := p.store.Load().Get(groupID)
	if !ok {
		return "", nil
	}
	data, err := yaml.Marshal(cluster)
	if err != nil {
		return "", fmt.Errorf("pipeline: marshal cluster %d snapshot: %w", groupID, err)
	}
	return string(data), nil
}
