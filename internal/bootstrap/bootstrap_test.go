// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrr/rrcluster/internal/config"
)

func TestRun_CreatesPropertiesAndTOML(t *testing.T) {
	dir := t.TempDir()

	result, err := Run(InitConfig{RepoPath: dir, WorkDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Actions, 3)
	assert.Equal(t, "created", result.Actions[0].Operation)
	assert.Equal(t, "created", result.Actions[1].Operation)

	props, err := config.LoadProperties(FS, filepath.Join(dir, config.PropertiesFileName))
	require.NoError(t, err)
	assert.Equal(t, dir, props.WorkDir)

	_, err = os.Stat(filepath.Join(dir, config.TOMLFileName))
	require.NoError(t, err)
}

func TestRun_SkipsExistingFilesWithoutForce(t *testing.T) {
	dir := t.TempDir()

	_, err := Run(InitConfig{RepoPath: dir, WorkDir: dir})
	require.NoError(t, err)

	result, err := Run(InitConfig{RepoPath: dir, WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "skipped", result.Actions[0].Operation)
	assert.Equal(t, "skipped", result.Actions[1].Operation)
}

func TestRun_ForceRegeneratesFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := Run(InitConfig{RepoPath: dir, WorkDir: dir})
	require.NoError(t, err)

	result, err := Run(InitConfig{RepoPath: dir, WorkDir: dir, Force: true})
	require.NoError(t, err)
	assert.Equal(t, "created", result.Actions[0].Operation)
	assert.Equal(t, "created", result.Actions[1].Operation)
}

func TestRun_DefaultsWorkDirToRepoPath(t *testing.T) {
	dir := t.TempDir()

	_, err := Run(InitConfig{RepoPath: dir})
	require.NoError(t, err)

	props, err := config.LoadProperties(FS, filepath.Join(dir, config.PropertiesFileName))
	require.NoError(t, err)
	assert.Equal(t, dir, props.WorkDir)
}
