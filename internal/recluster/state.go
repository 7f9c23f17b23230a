// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package recluster implements the wholesale agglomerative reconstruction
// of the cluster index: trigger preconditions, the average-linkage merge
// procedure, and the strict-improvement acceptance rule.
package recluster

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/localrr/rrcluster/internal/testable"
)

// State is the growth-tracking baseline persisted beside the cluster
// index so the ≥10%-growth and ≥250-records-added trigger checks survive
// process restarts, unlike the reference engine's in-memory counters.
type State struct {
	BaselinePopulation         int `json:"baseline_population"`
	RecordsAddedSinceRecluster int `json:"records_added_since_recluster"`
}

// LoadState reads the state sidecar at path, returning a zero-valued State
// if it is absent.
func LoadState(fs testable.FileSystem, path string) (State, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("recluster: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return State{}, nil
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("recluster: parse %s: %w", path, err)
	}
	return st, nil
}

// SaveState writes the state sidecar at path.
func SaveState(fs testable.FileSystem, path string, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("recluster: marshal state: %w", err)
	}
	if err := fs.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("recluster: write %s: %w", path, err)
	}
	return nil
}
