// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package integration builds the rrcluster binary and exercises it
// end-to-end against temporary repository fixtures: init, run, recluster,
// and stats wired together the way a real working tree would invoke them.
package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoRoot returns the module root directory.
func repoRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	// test/integration/scan_test.go -> repo root
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

// buildBinary compiles rrcluster into a temp directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binary := filepath.Join(t.TempDir(), "rrcluster-test")
	cmd := exec.Command("go", "build", "-o", binary, "./cmd/rrcluster") //nolint:gosec // test helper
	cmd.Dir = repoRoot(t)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed:\n%s", out)
	return binary
}

// writeDataset writes a small JSON dataset of (conflict, resolution)
// records to dir and returns its path.
func writeDataset(t *testing.T, dir string) string {
	t.Helper()
	dataset := `{
		"group-a": [
			{"id": 1, "conflict": "import foo vs import bar", "resolution": "import foo"},
			{"id": 2, "conflict": "import foo vs import baz", "resolution": "import foo"},
			{"id": 3, "conflict": "return nil vs return err", "resolution": "return err"}
		]
	}`
	path := filepath.Join(dir, "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o600))
	return path
}

func TestRun_InitThenRunProducesResultLog(t *testing.T) {
	binary := buildBinary(t)
	dir := t.TempDir()

	initOut, err := exec.Command(binary, "init", dir).CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err, "init failed:\n%s", initOut)
	assert.Contains(t, string(initOut), "rrcluster init complete")

	_, err = os.Stat(filepath.Join(dir, "config.properties"))
	require.NoError(t, err, "config.properties should exist after init")
	_, err = os.Stat(filepath.Join(dir, "rrcluster.toml"))
	require.NoError(t, err, "rrcluster.toml should exist after init")

	datasetPath := writeDataset(t, dir)

	runOut, err := exec.Command(binary, "run", datasetPath, "--repo", dir).CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err, "run failed:\n%s", runOut)
	assert.Contains(t, string(runOut), "run complete")

	resultCSV := filepath.Join(dir, "result.csv")
	data, err := os.ReadFile(resultCSV) //nolint:gosec // test fixture
	require.NoError(t, err, "reading result.csv")

	// the result log has no header row, one CSV record per input record;
	// the quoted YAML cluster-snapshot field spans several physical lines
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err, "parsing result.csv")
	assert.Equal(t, 3, len(rows), "expected one result row per record")
}

func TestRun_IsIdempotentForDuplicateRecords(t *testing.T) {
	binary := buildBinary(t)
	dir := t.TempDir()

	_, err := exec.Command(binary, "init", dir).CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err)

	datasetPath := writeDataset(t, dir)

	out1, err := exec.Command(binary, "run", datasetPath, "--repo", dir).CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err, "first run failed:\n%s", out1)

	indexPath := filepath.Join(dir, "conflict_index.json")
	before, err := os.ReadFile(indexPath) //nolint:gosec // test fixture
	require.NoError(t, err)

	out2, err := exec.Command(binary, "run", datasetPath, "--repo", dir).CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err, "second run failed:\n%s", out2)

	after, err := os.ReadFile(indexPath) //nolint:gosec // test fixture
	require.NoError(t, err)

	var beforeJSON, afterJSON interface{}
	require.NoError(t, json.Unmarshal(before, &beforeJSON))
	require.NoError(t, json.Unmarshal(after, &afterJSON))
	assert.Equal(t, beforeJSON, afterJSON, "re-running the same dataset should not grow the cluster index")
}

func TestStats_ReportsClustersAfterRun(t *testing.T) {
	binary := buildBinary(t)
	dir := t.TempDir()

	_, err := exec.Command(binary, "init", dir).CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err)

	datasetPath := writeDataset(t, dir)
	_, err = exec.Command(binary, "run", datasetPath, "--repo", dir).CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err)

	statsOut, err := exec.Command(binary, "stats", "--repo", dir).CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err, "stats failed:\n%s", statsOut)
	assert.Contains(t, string(statsOut), "cluster statistics")
}

func TestRecluster_ForceRunAgainstPersistedIndex(t *testing.T) {
	binary := buildBinary(t)
	dir := t.TempDir()

	_, err := exec.Command(binary, "init", dir).CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err)

	datasetPath := writeDataset(t, dir)
	_, err = exec.Command(binary, "run", datasetPath, "--repo", dir).CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err)

	reclusterOut, err := exec.Command(binary, "recluster", "--repo", dir).CombinedOutput() //nolint:gosec // test helper
	require.NoError(t, err, "recluster failed:\n%s", reclusterOut)
	assert.Regexp(t, "accepted|rejected", string(reclusterOut))
}

func TestRun_ErrorsWithoutInit(t *testing.T) {
	binary := buildBinary(t)
	dir := t.TempDir()
	datasetPath := writeDataset(t, dir)

	out, err := exec.Command(binary, "run", datasetPath, "--repo", dir).CombinedOutput() //nolint:gosec // test helper
	require.Error(t, err, "run should fail without config.properties")
	assert.Contains(t, string(out), "rrcluster init")
}
