// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/testable"
)

func TestRunInit_CreatesPropertiesAndTOML(t *testing.T) {
	dir := t.TempDir()
	initForce = false
	initWorkDir = ""

	var out bytes.Buffer
	cmd := initCmd
	cmd.SetOut(&out)
	require.NoError(t, runInit(cmd, []string{dir}))

	assert.Contains(t, out.String(), "rrcluster init complete")

	props, err := config.LoadProperties(testable.DefaultFS, filepath.Join(dir, config.PropertiesFileName))
	require.NoError(t, err)
	assert.Equal(t, dir, props.WorkDir)
}

func TestRunInit_RejectsMissingPath(t *testing.T) {
	initForce = false
	initWorkDir = ""

	var out bytes.Buffer
	cmd := initCmd
	cmd.SetOut(&out)
	err := runInit(cmd, []string{filepath.Join(t.TempDir(), "does-not-exist")})
	require.Error(t, err)

	var ece *exitCodeError
	require.ErrorAs(t, err, &ece)
	assert.Equal(t, ExitInvalidArgs, ece.ExitCode())
}
