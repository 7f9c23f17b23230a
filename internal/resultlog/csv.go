// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package resultlog writes the three append-only CSV artifacts the
// pipeline driver produces: the result log, the statistics log, and the
// performance log.
package resultlog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/localrr/rrcluster/internal/conflict"
	"github.com/localrr/rrcluster/internal/testable"
)

// escapeField wraps value in double quotes and doubles every embedded
// double quote, the scheme every column in every CSV artifact here uses.
func escapeField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func row(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = escapeField(f)
	}
	return strings.Join(escaped, ",") + "\n"
}

// ResultWriter appends Suggestion rows to the result CSV.
type ResultWriter struct {
	path string
	fs   testable.FileSystem
}

// NewResultWriter returns a ResultWriter for the result log at path.
func NewResultWriter(path string, fs testable.FileSystem) *ResultWriter {
	if fs == nil {
		fs = testable.DefaultFS
	}
	return &ResultWriter{path: path, fs: fs}
}

// Append writes s as a single appended row. No header is written: the
// result log's columns are fixed and documented, not discovered at
// runtime.
func (w *ResultWriter) Append(s conflict.Suggestion) error {
	line := row(
		s.Conflict,
		s.GroupID,
		strconv.FormatFloat(s.BestSimilarity, 'f', -1, 64),
		s.Regex,
		s.Replacement,
		s.ExpectedResolution,
		s.ProducedResolution,
		s.UpstreamSideB,
		s.DevDecision,
		strconv.Itoa(s.InputID),
		s.ClusterSnapshot,
	)
	if err := w.fs.AppendFile(w.path, []byte(line), 0o644); err != nil {
		return fmt.Errorf("resultlog: append %s: %w", w.path, err)
	}
	return nil
}

// statsHeader enumerates the ten metrics the statistics log reports.
var statsHeader = row(
	"Cluster", "Cluster Size",
	"Avg Similarity", "Longest Distance",
	"Avg Similarity Conflict", "Avg Similarity Resolution",
	"Longest Distance Conflict", "Longest Distance Resolution",
	"Latest To All Conflict", "Latest To All Resolution",
)

// StatsWriter appends Stats rows to the statistics log, writing the header
// once if the file is absent.
type StatsWriter struct {
	path string
	fs   testable.FileSystem
}

// NewStatsWriter returns a StatsWriter for the statistics log at path.
func NewStatsWriter(path string, fs testable.FileSystem) *StatsWriter {
	if fs == nil {
		fs = testable.DefaultFS
	}
	return &StatsWriter{path: path, fs: fs}
}

// Append writes s as a single appended row, initializing the header first
// if the file does not yet exist.
func (w *StatsWriter) Append(s conflict.Stats) error {
	if err := ensureHeader(w.fs, w.path, statsHeader); err != nil {
		return err
	}
	line := row(
		strconv.Itoa(s.ClusterID),
		strconv.Itoa(s.ClusterSize),
		strconv.FormatFloat(s.AvgSimilarity, 'f', -1, 64),
		strconv.FormatFloat(s.LongestDistance, 'f', -1, 64),
		strconv.FormatFloat(s.AvgSimilarityConflict, 'f', -1, 64),
		strconv.FormatFloat(s.AvgSimilarityResol, 'f', -1, 64),
		strconv.FormatFloat(s.LongestDistConflict, 'f', -1, 64),
		strconv.FormatFloat(s.LongestDistResol, 'f', -1, 64),
		strconv.FormatFloat(s.LatestToAllConflict, 'f', -1, 64),
		strconv.FormatFloat(s.LatestToAllResol, 'f', -1, 64),
	)
	if err := w.fs.AppendFile(w.path, []byte(line), 0o644); err != nil {
		return fmt.Errorf("resultlog: append %s: %w", w.path, err)
	}
	return nil
}

var performanceHeader = row("Cluster", "Cluster Size", "Execution time [s]")

// PerformanceWriter appends one row per regex-generator invocation,
// writing the header once if the file is absent.
type PerformanceWriter struct {
	path string
	fs   testable.FileSystem
}

// NewPerformanceWriter returns a PerformanceWriter for the performance log
// at path.
func NewPerformanceWriter(path string, fs testable.FileSystem) *PerformanceWriter {
	if fs == nil {
		fs = testable.DefaultFS
	}
	return &PerformanceWriter{path: path, fs: fs}
}

// Append records a single generator invocation's duration.
func (w *PerformanceWriter) Append(clusterID, clusterSize int, seconds float64) error {
	if err := ensureHeader(w.fs, w.path, performanceHeader); err != nil {
		return err
	}
	line := row(
		strconv.Itoa(clusterID),
		strconv.Itoa(clusterSize),
		strconv.FormatFloat(seconds, 'f', -1, 64),
	)
	if err := w.fs.AppendFile(w.path, []byte(line), 0o644); err != nil {
		return fmt.Errorf("resultlog: append %s: %w", w.path, err)
	}
	return nil
}

// ensureHeader writes header to path if path does not already exist.
func ensureHeader(fs testable.FileSystem, path, header string) error {
	if _, err := fs.Stat(path); err == nil {
		return nil
	}
	if err := fs.WriteFile(path, []byte(header), 0o644); err != nil {
		return fmt.Errorf("resultlog: init %s: %w", path, err)
	}
	return nil
}
