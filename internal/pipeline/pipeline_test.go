// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/conflict"
	"github.com/localrr/rrcluster/internal/testable"
)

func memFS() (*testable.MockFileSystem, map[string][]byte) {
	files := map[string][]byte{}
	fs := &testable.MockFileSystem{
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
		AppendFileFn: func(name string, data []byte, _ os.FileMode) error {
			files[name] = append(files[name], data...)
			return nil
		},
		RenameFn: func(oldpath, newpath string) error {
			files[newpath] = files[oldpath]
			delete(files, oldpath)
			return nil
		},
		RemoveFn: func(name string) error {
			if _, ok := files[name]; !ok {
				return os.ErrNotExist
			}
			delete(files, name)
			return nil
		},
		MkdirAllFn: func(string, os.FileMode) error { return nil },
		StatFn: func(name string) (os.FileInfo, error) {
			if _, ok := files[name]; ok {
				return nil, nil
			}
			return nil, os.ErrNotExist
		},
	}
	return fs, files
}

func parseDataset(t *testing.T, raw string) conflict.Dataset {
	t.Helper()
	var d conflict.Dataset
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	return d
}

func TestPipeline_Run_InsertsFreshRecord(t *testing.T) {
	fs, _ := memFS()
	exec := &testable.MockCommandExecutor{LookPathErr: os.ErrNotExist}
	paths := config.DerivePaths("/work")
	p := New(exec, fs, paths, config.EngineDefaults())

	dataset := parseDataset(t, `{"g1":[{"id":1,"conflict":"a.b.c","resolution":"a.b.x"}]}`)

	summary, err := p.Run(context.Background(), dataset)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RecordsTotal)
	assert.Equal(t, 1, summary.RecordsInserted)
	assert.Zero(t, summary.RecordsRejected)
	assert.Zero(t, summary.RecordsDuplicate)
}

func TestPipeline_Run_RejectsMultiLineRecordBeforeAssignment(t *testing.T) {
	fs, _ := memFS()
	exec := &testable.MockCommandExecutor{LookPathErr: os.ErrNotExist}
	paths := config.DerivePaths("/work")
	p := New(exec, fs, paths, config.EngineDefaults())

	dataset := parseDataset(t, `{"g1":[{"id":1,"conflict":"a\nb","resolution":"c"}]}`)

	summary, err := p.Run(context.Background(), dataset)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RecordsRejected)
	assert.Zero(t, summary.RecordsInserted)
}

func TestPipeline_Run_DuplicateSuppressesInsertButStillRuns(t *testing.T) {
	fs, _ := memFS()
	exec := &testable.MockCommandExecutor{LookPathErr: os.ErrNotExist}
	paths := config.DerivePaths("/work")
	p := New(exec, fs, paths, config.EngineDefaults())

	dataset := parseDataset(t, `{"g1":[
		{"id":1,"conflict":"abcdef","resolution":"abcxyz"},
		{"id":2,"conflict":"abcdef","resolution":"abcxyz"}
	]}`)

	summary, err := p.Run(context.Background(), dataset)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.RecordsInserted)
	assert.Equal(t, 1, summary.RecordsDuplicate)
}

func TestPipeline_Run_SecondSimilarRecordJoinsFirstCluster(t *testing.T) {
	fs, _ := memFS()
	exec := &testable.MockCommandExecutor{LookPathErr: os.ErrNotExist}
	paths := config.DerivePaths("/work")
	p := New(exec, fs, paths, config.EngineDefaults())

	dataset := parseDataset(t, `{"g1":[
		{"id":1,"conflict":"abcdef","resolution":"abcxyz"},
		{"id":2,"conflict":"abcdeg","resolution":"abcxyz"}
	]}`)

	_, err := p.Run(context.Background(), dataset)
	require.NoError(t, err)

	idx := p.store.Load()
	assert.Equal(t, 1, idx.Len())
	cluster, ok := idx.Get(1)
	require.True(t, ok)
	assert.Len(t, cluster, 2)
}
