// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package workerbridge launches the regex applier and regex generator
// worker processes, collects their outputs, and classifies their exit
// statuses.
package workerbridge

import (
	"context"
	"fmt"
	"strconv"

	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/testable"
)

// ExitClass classifies a worker's exit status.
type ExitClass int

const (
	// ExitOK means the worker exited 0.
	ExitOK ExitClass = iota
	// ExitMissing means the worker binary could not be found (os/exec's
	// "executable file not found" or an exit status of 127), a warning.
	ExitMissing
	// ExitFailed means any other non-zero exit, fatal for the pipeline.
	ExitFailed
)

// String renders the exit class for logs and CLI output.
func (c ExitClass) String() string {
	switch c {
	case ExitOK:
		return "ok"
	case ExitMissing:
		return "missing"
	default:
		return "failed"
	}
}

// Bridge runs the applier and generator workers against a working
// directory.
type Bridge struct {
	exec    testable.CommandExecutor
	fs      testable.FileSystem
	cfg     config.EngineConfig
	workDir string
}

// New returns a Bridge configured to launch workers rooted at workDir.
func New(exec testable.CommandExecutor, fs testable.FileSystem, cfg config.EngineConfig, workDir string) *Bridge {
	if exec == nil {
		exec = testable.DefaultExecutor()
	}
	if fs == nil {
		fs = testable.DefaultFS
	}
	return &Bridge{exec: exec, fs: fs, cfg: cfg, workDir: workDir}
}

// run invokes cfg.JavaPath with the given jar and arguments, classifying
// the result. It does not distinguish stdout/stderr content; workers
// communicate only through files.
func (b *Bridge) run(ctx context.Context, jarPath string, args ...string) (ExitClass, error) {
	fullArgs := append([]string{"-jar", jarPath}, args...)
	cmd := b.exec.CommandContext(ctx, b.cfg.JavaPath, fullArgs...)

	if _, err := b.exec.LookPath(b.cfg.JavaPath); err != nil {
		return ExitMissing, nil
	}

	err := cmd.Run()
	if err == nil {
		return ExitOK, nil
	}

	if exitErr, ok := asExitError(err); ok {
		if exitErr.ExitCode() == 127 {
			return ExitMissing, nil
		}
		return ExitFailed, fmt.Errorf("workerbridge: %s exited %d: %w", jarPath, exitErr.ExitCode(), err)
	}
	return ExitFailed, fmt.Errorf("workerbridge: %s: %w", jarPath, err)
}

// RunApplier invokes the regex applier for a single record: (workdir,
// group id, conflict text).
func (b *Bridge) RunApplier(ctx context.Context, groupID int, conflictText string) (ExitClass, error) {
	return b.run(ctx, b.cfg.ApplierPath, b.workDir, strconv.Itoa(groupID), conflictText)
}

// RunGenerator invokes the regex generator for a cluster: (workdir, group
// id). Exit 0 is success, 127 is a missing executable (warn), any other
// non-zero is fatal.
func (b *Bridge) RunGenerator(ctx context.Context, groupID int) (ExitClass, error) {
	return b.run(ctx, b.cfg.GeneratorPath, b.workDir, strconv.Itoa(groupID))
}
