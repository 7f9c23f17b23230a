// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"path/filepath"

	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/repo"
	"github.com/localrr/rrcluster/internal/testable"
)

// loadEngine resolves config.properties relative to the nearest repository
// root containing dir, then layers rrcluster.toml over the engine defaults
// from that same directory.
func loadEngine(dir string) (config.Paths, config.EngineConfig, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return config.Paths{}, config.EngineConfig{}, fmt.Errorf("rrcluster: resolve path %q: %w", dir, err)
	}

	propsPath := repo.PropertiesPath(testable.DefaultGitOpener, absDir, config.PropertiesFileName)
	props, err := config.LoadProperties(testable.DefaultFS, propsPath)
	if err != nil {
		return config.Paths{}, config.EngineConfig{}, fmt.Errorf("rrcluster: %w (run `rrcluster init` first)", err)
	}

	paths := config.DerivePaths(props.WorkDir)

	tomlPath := filepath.Join(filepath.Dir(propsPath), config.TOMLFileName)
	cfg, err := config.LoadEngineConfig(testable.DefaultFS, tomlPath)
	if err != nil {
		return config.Paths{}, config.EngineConfig{}, err
	}

	return paths, cfg, nil
}
