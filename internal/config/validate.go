// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"
)

// Validate checks an EngineConfig and returns all violations at once.
func Validate(cfg EngineConfig) error {
	var errs []string

	switch cfg.Linkage {
	case "average", "complete", "single":
		// valid
	default:
		errs = append(errs, fmt.Sprintf("linkage: invalid value %q (must be average, complete, or single)", cfg.Linkage))
	}

	if cfg.AssignmentThreshold < 0 || cfg.AssignmentThreshold > 1 {
		errs = append(errs, fmt.Sprintf("assignment_threshold: must be between 0.0 and 1.0, got %g", cfg.AssignmentThreshold))
	}

	if cfg.ReclusterIntraSimilarityCeiling < 0 || cfg.ReclusterIntraSimilarityCeiling > 1 {
		errs = append(errs, fmt.Sprintf("recluster_intra_similarity_ceiling: must be between 0.0 and 1.0, got %g", cfg.ReclusterIntraSimilarityCeiling))
	}

	if cfg.ReclusterSingletonFractionCeiling < 0 || cfg.ReclusterSingletonFractionCeiling > 1 {
		errs = append(errs, fmt.Sprintf("recluster_singleton_fraction_ceiling: must be between 0.0 and 1.0, got %g", cfg.ReclusterSingletonFractionCeiling))
	}

	if cfg.ReclusterGrowthFraction < 0 {
		errs = append(errs, fmt.Sprintf("recluster_growth_fraction: must be non-negative, got %g", cfg.ReclusterGrowthFraction))
	}

	if cfg.ReclusterMinRecordsAdded < 0 {
		errs = append(errs, fmt.Sprintf("recluster_min_records_added: must be non-negative, got %d", cfg.ReclusterMinRecordsAdded))
	}

	if cfg.JavaPath == "" {
		errs = append(errs, "java_path: must not be empty")
	}
	if cfg.ApplierPath == "" {
		errs = append(errs, "applier_jar_path: must not be empty")
	}
	if cfg.GeneratorPath == "" {
		errs = append(errs, "generator_jar_path: must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
