// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrr/rrcluster/internal/assignment"
	"github.com/localrr/rrcluster/internal/clusterstore"
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

func TestHandleSuggest_ReportsNewClusterWhenIndexEmpty(t *testing.T) {
	fs := memFS()
	store := clusterstore.New("/work/conflict_index.json")
	store.SetFS(fs)
	engine := assignment.New(assignment.AverageLinkage{}, 0.80)

	handler := handleSuggest(store, engine)
	_, out, err := handler(context.Background(), nil, SuggestInput{Conflict: "abc", Resolution: "xyz"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.GroupID)
	assert.True(t, out.NewCluster)
	assert.False(t, out.AlreadyPresent)
}

func TestHandleSuggest_DoesNotMutateIndex(t *testing.T) {
	fs := memFS()
	store := clusterstore.New("/work/conflict_index.json")
	store.SetFS(fs)
	idx := conflict.NewIndex()
	idx.Insert(1, conflict.Pair{Conflict: "abcdef", Resolution: "abcxyz"})
	require.NoError(t, store.Save(idx))

	engine := assignment.New(assignment.AverageLinkage{}, 0.80)
	handler := handleSuggest(store, engine)
	_, out, err := handler(context.Background(), nil, SuggestInput{Conflict: "abcdeg", Resolution: "abcxyz"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.GroupID)

	reloaded := store.Load()
	cluster, _ := reloaded.Get(1)
	assert.Len(t, cluster, 1, "suggest must not insert into the persisted index")
}

func TestHandleSuggest_ReportsAlreadyPresent(t *testing.T) {
	fs := memFS()
	store := clusterstore.New("/work/conflict_index.json")
	store.SetFS(fs)
	idx := conflict.NewIndex()
	idx.Insert(1, conflict.Pair{Conflict: "abcdef", Resolution: "abcxyz"})
	require.NoError(t, store.Save(idx))

	engine := assignment.New(assignment.AverageLinkage{}, 0.80)
	handler := handleSuggest(store, engine)
	_, out, err := handler(context.Background(), nil, SuggestInput{Conflict: "abcdef", Resolution: "abcxyz"})
	require.NoError(t, err)
	assert.True(t, out.AlreadyPresent)
}

func TestHandleClusterStats_ReturnsComputedStats(t *testing.T) {
	fs := memFS()
	store := clusterstore.New("/work/conflict_index.json")
	store.SetFS(fs)
	idx := conflict.NewIndex()
	idx.Insert(1, conflict.Pair{Conflict: "abcdef", Resolution: "abcxyz"})
	idx.Insert(1, conflict.Pair{Conflict: "abcdeg", Resolution: "abcxyz"})
	require.NoError(t, store.Save(idx))

	handler := handleClusterStats(store)
	_, s, err := handler(context.Background(), nil, ClusterStatsInput{ClusterID: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, s.ClusterSize)
	assert.Greater(t, s.AvgSimilarity, 0.0)
}

func TestHandleClusterStats_ErrorsOnMissingCluster(t *testing.T) {
	fs := memFS()
	store := clusterstore.New("/work/conflict_index.json")
	store.SetFS(fs)

	handler := handleClusterStats(store)
	_, _, err := handler(context.Background(), nil, ClusterStatsInput{ClusterID: 99})
	require.Error(t, err)
}
