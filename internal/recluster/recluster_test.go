// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package recluster

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrr/rrcluster/internal/clusterstore"
	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/conflict"
	"github.com/localrr/rrcluster/internal/testable"
)

func memFS() *testable.MockFileSystem {
	files := map[string][]byte{}
	return &testable.MockFileSystem{
		ReadFileFn: func(name string) ([]byte, error) {
			data, ok := files[name]
			if !ok {
				return nil, os.ErrNotExist
			}
			return data, nil
		},
		WriteFileFn: func(name string, data []byte, _ os.FileMode) error {
			files[name] = append([]byte{}, data...)
			return nil
		},
		RenameFn: func(oldpath, newpath string) error {
			files[newpath] = files[oldpath]
			delete(files, oldpath)
			return nil
		},
		MkdirAllFn: func(string, os.FileMode) error { return nil },
	}
}

func TestShouldRun_FalseWhenIntraSimilarityTooHigh(t *testing.T) {
	cfg := config.EngineDefaults()
	idx := conflict.NewIndex()
	idx.Insert(1, conflict.Pair{Conflict: "identical", Resolution: "identical"})
	idx.Insert(1, conflict.Pair{Conflict: "identical", Resolution: "identica1"})

	st := State{RecordsAddedSinceRecluster: cfg.ReclusterMinRecordsAdded}
	assert.False(t, ShouldRun(cfg, st, idx))
}

func TestShouldRun_FalseWhenPreconditionsDoNotHold(t *testing.T) {
	cfg := config.EngineDefaults()
	idx := conflict.NewIndex()
	for i := 1; i <= 9; i++ {
		idx.Insert(i, conflict.Pair{Conflict: "unique text", Resolution: "unique text"})
	}
	idx.Insert(10, conflict.Pair{Conflict: "a", Resolution: "a"})
	idx.Insert(10, conflict.Pair{Conflict: "a", Resolution: "a"})

	st := State{RecordsAddedSinceRecluster: 1000}
	assert.False(t, ShouldRun(cfg, st, idx))
}

func lowIntraIndex() *conflict.Index {
	idx := conflict.NewIndex()
	idx.Insert(1, conflict.Pair{Conflict: "alpha", Resolution: "one"})
	idx.Insert(1, conflict.Pair{Conflict: "zeta", Resolution: "two"})
	idx.Insert(2, conflict.Pair{Conflict: "omega", Resolution: "three"})
	idx.Insert(2, conflict.Pair{Conflict: "gamma", Resolution: "four"})
	return idx
}

func TestShouldRun_TrueWhenRecordsAddedMeetsMinimum(t *testing.T) {
	cfg := config.EngineDefaults()
	idx := lowIntraIndex()

	st := State{RecordsAddedSinceRecluster: cfg.ReclusterMinRecordsAdded}
	assert.True(t, ShouldRun(cfg, st, idx))
}

func TestShouldRun_FalseBelowRecordsAddedMinimum(t *testing.T) {
	cfg := config.EngineDefaults()
	idx := lowIntraIndex()

	st := State{RecordsAddedSinceRecluster: cfg.ReclusterMinRecordsAdded - 1}
	assert.False(t, ShouldRun(cfg, st, idx))
}

func TestAgglomerate_MergesHighlySimilarSingletons(t *testing.T) {
	idx := conflict.NewIndex()
	idx.Insert(1, conflict.Pair{Conflict: "abcdef", Resolution: "abcxyz"})
	idx.Insert(2, conflict.Pair{Conflict: "abcdeg", Resolution: "abcxyz"})

	out := Agglomerate(idx, 0.80)
	assert.Equal(t, 1, out.Len())
	c, ok := out.Get(1)
	require.True(t, ok)
	assert.Len(t, c, 2)
}

func TestAgglomerate_LeavesDissimilarRecordsApart(t *testing.T) {
	idx := conflict.NewIndex()
	idx.Insert(1, conflict.Pair{Conflict: "abcdef", Resolution: "abcxyz"})
	idx.Insert(2, conflict.Pair{Conflict: "uvwxyz", Resolution: "qrstuv"})

	out := Agglomerate(idx, 0.80)
	assert.Equal(t, 2, out.Len())
}

func TestAgglomerate_AssignsContiguousIdsStartingAtOne(t *testing.T) {
	idx := conflict.NewIndex()
	idx.Insert(5, conflict.Pair{Conflict: "abcdef", Resolution: "abcxyz"})
	idx.Insert(9, conflict.Pair{Conflict: "uvwxyz", Resolution: "qrstuv"})

	out := Agglomerate(idx, 0.80)
	assert.Equal(t, []int{1, 2}, out.IDs())
}

func TestReclusterer_MaybeRunSkipsWhenPreconditionsFail(t *testing.T) {
	fs := memFS()
	store := clusterstore.New("/work/conflict_index.json")
	store.SetFS(fs)

	idx := conflict.NewIndex()
	idx.Insert(1, conflict.Pair{Conflict: "only one cluster", Resolution: "x"})
	require.NoError(t, store.Save(idx))

	r := New(store, "/work/recluster-state.json", fs, config.EngineDefaults())
	outcome, err := r.MaybeRun()
	require.NoError(t, err)
	assert.False(t, outcome.Attempted)
}

func TestReclusterer_ForceRunAcceptsStrictImprovement(t *testing.T) {
	fs := memFS()
	store := clusterstore.New("/work/conflict_index.json")
	store.SetFS(fs)

	idx := conflict.NewIndex()
	idx.Insert(1, conflict.Pair{Conflict: "abcdef", Resolution: "abcxyz"})
	idx.Insert(2, conflict.Pair{Conflict: "abcdeg", Resolution: "abcxyz"})
	require.NoError(t, store.Save(idx))

	r := New(store, "/work/recluster-state.json", fs, config.EngineDefaults())
	outcome, err := r.ForceRun()
	require.NoError(t, err)
	assert.True(t, outcome.Attempted)
	assert.True(t, outcome.Accepted)
	assert.Greater(t, outcome.NewIntra, outcome.OldIntra)

	st, err := LoadState(fs, "/work/recluster-state.json")
	require.NoError(t, err)
	assert.Equal(t, 2, st.BaselinePopulation)
	assert.Equal(t, 0, st.RecordsAddedSinceRecluster)
}

func TestReclusterer_ForceRunRejectsNoImprovement(t *testing.T) {
	fs := memFS()
	store := clusterstore.New("/work/conflict_index.json")
	store.SetFS(fs)

	idx := conflict.NewIndex()
	idx.Insert(1, conflict.Pair{Conflict: "uvwxyz", Resolution: "qrstuv"})
	idx.Insert(2, conflict.Pair{Conflict: "abcdef", Resolution: "mnoqrp"})
	require.NoError(t, store.Save(idx))

	r := New(store, "/work/recluster-state.json", fs, config.EngineDefaults())
	outcome, err := r.ForceRun()
	require.NoError(t, err)
	assert.True(t, outcome.Attempted)
	assert.False(t, outcome.Accepted)
}

func TestReclusterer_Observe_IncrementsPersistedCounter(t *testing.T) {
	fs := memFS()
	r := New(nil, "/work/recluster-state.json", fs, config.EngineDefaults())
	require.NoError(t, r.Observe())
	require.NoError(t, r.Observe())

	st, err := LoadState(fs, "/work/recluster-state.json")
	require.NoError(t, err)
	assert.Equal(t, 2, st.RecordsAddedSinceRecluster)
}

func TestLoadState_MissingFileReturnsZeroValue(t *testing.T) {
	fs := memFS()
	st, err := LoadState(fs, "/work/recluster-state.json")
	require.NoError(t, err)
	assert.Equal(t, State{}, st)
}

func TestSaveState_RoundTrips(t *testing.T) {
	fs := memFS()
	want := State{BaselinePopulation: 42, RecordsAddedSinceRecluster: 7}
	require.NoError(t, SaveState(fs, "/work/recluster-state.json", want))

	data, err := fs.ReadFile("/work/recluster-state.json")
	require.NoError(t, err)
	var got State
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}
