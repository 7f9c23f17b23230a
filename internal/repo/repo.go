// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package repo locates the repository root config.properties is resolved
// relative to, the way `git rerere` itself is scoped to a .git directory
// rather than always relative to the current working directory.
package repo

import (
	"fmt"
	"path/filepath"

	"github.com/localrr/rrcluster/internal/testable"
)

// Root returns the root of the git repository containing dir, searching
// parent directories for a .git entry. If dir is not inside a repository,
// it returns dir itself unchanged — config.properties is then resolved
// relative to the current directory, matching a bare working-directory
// invocation.
func Root(opener testable.GitOpener, dir string) string {
	if opener == nil {
		opener = testable.DefaultGitOpener
	}
	root, err := opener.PlainOpenWithDetection(dir)
	if err != nil {
		return dir
	}
	return root
}

// PropertiesPath returns the config.properties path resolved relative to
// the nearest repository root containing dir.
func PropertiesPath(opener testable.GitOpener, dir, fileName string) string {
	return filepath.Join(Root(opener, dir), fileName)
}

// Abs returns the absolute form of path.
func Abs(fs testable.FileSystem, path string) (string, error) {
	abs, err := fs.Abs(path)
	if err != nil {
		return "", fmt.Errorf("repo: resolve %s: %w", path, err)
	}
	return abs, nil
}
