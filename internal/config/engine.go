// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/localrr/rrcluster/internal/testable"
)

// TOMLFileName is the optional sibling of config.properties that exposes
// the engine's tunable constants. Absent entirely, the engine falls back
// to EngineDefaults.
const TOMLFileName = "rrcluster.toml"

// EngineConfig tunes the Assignment and Reclustering engines and the
// worker bridge. Every field has a default; the toml file only needs to
// name the fields it overrides.
type EngineConfig struct {
	// Linkage selects the Assignment engine's aggregation rule: "average"
	// (default), "complete", or "single".
	Linkage string `toml:"linkage"`

	// MinLinkageInvertedBug reproduces a known reference-engine quirk in
	// the minimum-linkage variant (it tracks the maximum, not the
	// minimum) for parity testing. Never the default.
	MinLinkageInvertedBug bool `toml:"min_linkage_inverted_bug"`

	// AssignmentThreshold is τ, the similarity threshold both the
	// Assignment and Reclustering engines compare against.
	AssignmentThreshold float64 `toml:"assignment_threshold"`

	// ReclusterIntraSimilarityCeiling: reclustering is only attempted
	// when the index's current average intra-similarity is at or below
	// this value.
	ReclusterIntraSimilarityCeiling float64 `toml:"recluster_intra_similarity_ceiling"`

	// ReclusterSingletonFractionCeiling: reclustering is only attempted
	// when the fraction of singleton clusters is below this value.
	ReclusterSingletonFractionCeiling float64 `toml:"recluster_singleton_fraction_ceiling"`

	// ReclusterGrowthFraction: reclustering is attempted once the
	// population has grown by at least this fraction since the last
	// recluster.
	ReclusterGrowthFraction float64 `toml:"recluster_growth_fraction"`

	// ReclusterMinRecordsAdded: reclustering is attempted once at least
	// this many records have been added, regardless of growth fraction.
	// The count is persisted across runs and reset to zero only when a
	// recluster is accepted; it is not limited to the current process.
	ReclusterMinRecordsAdded int `toml:"recluster_min_records_added"`

	// ApplierPath and GeneratorPath are passed to /usr/bin/java as -jar
	// arguments by the worker bridge.
	ApplierPath   string `toml:"applier_jar_path"`
	GeneratorPath string `toml:"generator_jar_path"`

	// JavaPath overrides the applier/generator interpreter; the default
	// is /usr/bin/java.
	JavaPath string `toml:"java_path"`

	// AsyncGenerator runs the regex generator invocation without
	// blocking the pipeline on its completion, an experimental policy
	// that is never the default.
	AsyncGenerator bool `toml:"async_generator"`
}

// EngineDefaults mirrors the reference engine's compiled-in constants.
func EngineDefaults() EngineConfig {
	return EngineConfig{
		Linkage:                           "average",
		AssignmentThreshold:               0.80,
		ReclusterIntraSimilarityCeiling:   0.90,
		ReclusterSingletonFractionCeiling: 0.77,
		ReclusterGrowthFraction:           0.10,
		ReclusterMinRecordsAdded:          250,
		ApplierPath:                       "RegexReplacement.jar",
		GeneratorPath:                     "RandomSearchReplaceTurtle.jar",
		JavaPath:                          "/usr/bin/java",
		AsyncGenerator:                    false,
	}
}

// LoadEngineConfig reads rrcluster.toml if present, layering its fields
// over EngineDefaults. A missing file is not an error.
func LoadEngineConfig(fs testable.FileSystem, path string) (EngineConfig, error) {
	cfg := EngineDefaults()

	data, err := fs.ReadFile(path)
	if err != nil {
		return cfg, nil
	}

	var overrides EngineConfig
	if _, err := toml.Decode(string(data), &overrides); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	applyOverrides(&cfg, overrides)
	return cfg, nil
}

// applyOverrides copies non-zero-valued fields from overrides onto cfg.
// A zero value in overrides means "not set in the file" for every field
// the engine uses, since none of the defaults are legitimately zero.
func applyOverrides(cfg *EngineConfig, overrides EngineConfig) {
	if overrides.Linkage != "" {
		cfg.Linkage = overrides.Linkage
	}
	cfg.MinLinkageInvertedBug = overrides.MinLinkageInvertedBug
	if overrides.AssignmentThreshold != 0 {
		cfg.AssignmentThreshold = overrides.AssignmentThreshold
	}
	if overrides.ReclusterIntraSimilarityCeiling != 0 {
		cfg.ReclusterIntraSimilarityCeiling = overrides.ReclusterIntraSimilarityCeiling
	}
	if overrides.ReclusterSingletonFractionCeiling != 0 {
		cfg.ReclusterSingletonFractionCeiling = overrides.ReclusterSingletonFractionCeiling
	}
	if overrides.ReclusterGrowthFraction != 0 {
		cfg.ReclusterGrowthFraction = overrides.ReclusterGrowthFraction
	}
	if overrides.ReclusterMinRecordsAdded != 0 {
		cfg.ReclusterMinRecordsAdded = overrides.ReclusterMinRecordsAdded
	}
	if overrides.ApplierPath != "" {
		cfg.ApplierPath = overrides.ApplierPath
	}
	if overrides.GeneratorPath != "" {
		cfg.GeneratorPath = overrides.GeneratorPath
	}
	if overrides.JavaPath != "" {
		cfg.JavaPath = overrides.JavaPath
	}
	cfg.AsyncGenerator = overrides.AsyncGenerator
}

// WriteDefaultTOML writes a commented rrcluster.toml scaffold, for
// `rrcluster init`.
func WriteDefaultTOML(fs testable.FileSystem, path string) error {
	const scaffold = `# rrcluster engine configuration. Every field is optional; unset fields
# fall back to the engine's built-in defaults.

linkage = "average"
assignment_threshold = 0.80
recluster_intra_similarity_ceiling = 0.90
recluster_singleton_fraction_ceiling = 0.77
recluster_growth_fraction = 0.10
recluster_min_records_added = 250
java_path = "/usr/bin/java"
applier_jar_path = "RegexReplacement.jar"
generator_jar_path = "RandomSearchReplaceTurtle.jar"
async_generator = false
`
	return fs.WriteFile(path, []byte(scaffold), 0o644)
}
