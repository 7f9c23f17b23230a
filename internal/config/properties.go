// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package config loads rrcluster's two configuration layers: the
// mandatory config.properties workdir declaration, and the optional
// rrcluster.toml engine tuning file.
package config

import (
	"fmt"
	"strings"

	"github.com/localrr/rrcluster/internal/testable"
)

// PropertiesFileName is the expected config file name, resolved relative
// to the nearest repository root.
const PropertiesFileName = "config.properties"

// Properties holds the contents of config.properties.
type Properties struct {
	// WorkDir is the directory all derived artifact paths are rooted at.
	WorkDir string
}

// LoadProperties reads and parses a config.properties file. The format is
// a single line `workdir=<path>`; a trailing newline is stripped. No
// ecosystem library parses Java-style .properties files, and the format
// is one line, so a dependency-free parser is used here.
func LoadProperties(fs testable.FileSystem, path string) (*Properties, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	props := &Properties{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "workdir" {
			props.WorkDir = value
		}
	}

	if props.WorkDir == "" {
		return nil, fmt.Errorf("config: %s: missing workdir= line", path)
	}
	return props, nil
}

// WriteProperties writes a config.properties file containing a single
// workdir= line, for `rrcluster init`.
func WriteProperties(fs testable.FileSystem, path string, workDir string) error {
	content := "workdir=" + workDir + "\n"
	return fs.WriteFile(path, []byte(content), 0o644)
}
