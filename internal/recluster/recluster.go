// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package recluster

import (
	"fmt"

	"github.com/localrr/rrcluster/internal/clusterstore"
	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/conflict"
	"github.com/localrr/rrcluster/internal/stats"
	"github.com/localrr/rrcluster/internal/testable"
)

// Outcome reports what a reclustering attempt did.
type Outcome struct {
	Attempted  bool
	Accepted   bool
	OldIntra   float64
	NewIntra   float64
	BackupPath string
}

// Reclusterer wires the Store, the persisted growth-tracking State, and
// the agglomerative merge (Agglomerate) into the per-insert trigger check
// and the force-run command.
type Reclusterer struct {
	store     *clusterstore.Store
	statePath string
	fs        testable.FileSystem
	cfg       config.EngineConfig
}

// New returns a Reclusterer operating on store, with its growth-tracking
// state persisted at statePath.
func New(store *clusterstore.Store, statePath string, fs testable.FileSystem, cfg config.EngineConfig) *Reclusterer {
	if fs == nil {
		fs = testable.DefaultFS
	}
	return &Reclusterer{store: store, statePath: statePath, fs: fs, cfg: cfg}
}

// Observe records that one more record was inserted, for the
// ≥250-records-added trigger. Call only for inserts that actually mutate
// the store, not for duplicate-suppressed or rejected records.
func (r *Reclusterer) Observe() error {
	st, err := LoadState(r.fs, r.statePath)
	if err != nil {
		return err
	}
	st.RecordsAddedSinceRecluster++
	return SaveState(r.fs, r.statePath, st)
}

// MaybeRun checks the trigger preconditions against the current index and,
// if they hold, runs the agglomerative merge and applies the
// strict-improvement acceptance rule. ForceRun skips the precondition
// check entirely, for the explicit `rrcluster recluster` command.
func (r *Reclusterer) MaybeRun() (Outcome, error) {
	idx := r.store.Load()
	st, err := LoadState(r.fs, r.statePath)
	if err != nil {
		return Outcome{}, err
	}
	if !ShouldRun(r.cfg, st, idx) {
		return Outcome{Attempted: false}, nil
	}
	return r.run(idx, st)
}

// ForceRun runs the agglomerative merge and acceptance rule unconditionally.
func (r *Reclusterer) ForceRun() (Outcome, error) {
	idx := r.store.Load()
	st, err := LoadState(r.fs, r.statePath)
	if err != nil {
		return Outcome{}, err
	}
	return r.run(idx, st)
}

func (r *Reclusterer) run(idx *conflict.Index, st State) (Outcome, error) {
	oldIntra := stats.IntraSimilarity(idx)
	newIdx := Agglomerate(idx, r.cfg.AssignmentThreshold)
	newIntra := stats.IntraSimilarity(newIdx)

	outcome := Outcome{Attempted: true, OldIntra: oldIntra, NewIntra: newIntra}
	if newIntra <= oldIntra {
		return outcome, nil
	}

	backupPath, err := r.store.Archive()
	if err != nil {
		return outcome, fmt.Errorf("recluster: archive before replace: %w", err)
	}
	if err := r.store.Replace(newIdx); err != nil {
		return outcome, fmt.Errorf("recluster: replace index: %w", err)
	}

	st.BaselinePopulation = Population(newIdx)
	st.RecordsAddedSinceRecluster = 0
	if err := SaveState(r.fs, r.statePath, st); err != nil {
		return outcome, err
	}

	outcome.Accepted = true
	outcome.BackupPath = backupPath
	return outcome, nil
}
