// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_CarriesCodeAndMessage(t *testing.T) {
	err := exitError(ExitInvalidArgs, "bad path %q", "/tmp/x")
	assert.Equal(t, ExitInvalidArgs, err.ExitCode())
	assert.Equal(t, `bad path "/tmp/x"`, err.Error())
}

func TestExitError_EmptyFormatLeavesMessageBlank(t *testing.T) {
	err := exitError(ExitRunFailure, "")
	assert.Equal(t, ExitRunFailure, err.ExitCode())
	assert.Empty(t, err.Error())
}
