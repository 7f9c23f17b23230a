// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package bootstrap implements the `rrcluster init` command: writing
// config.properties and the optional rrcluster.toml scaffold into a
// repository, and registering rrcluster as an MCP server when Claude Code
// is detected.
package bootstrap

import (
	"os"
	"path/filepath"

	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/testable"
)

// FS is the file system implementation used by this package. Override in
// tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// InitConfig holds the inputs for the init command.
type InitConfig struct {
	RepoPath string
	WorkDir  string
	Force    bool
}

// Action records a single file operation performed during init.
type Action struct {
	File        string // e.g. "config.properties", "rrcluster.toml"
	Operation   string // "created", "skipped"
	Description string
}

// InitResult holds the outcome of an init run.
type InitResult struct {
	Actions []Action
}

// Run writes config.properties and rrcluster.toml into cfg.RepoPath, then
// registers the rrcluster MCP server in .mcp.json if Claude Code is
// detected. Existing files are left untouched unless cfg.Force is set.
func Run(cfg InitConfig) (*InitResult, error) {
	result := &InitResult{}

	propsAction, err := writeProperties(cfg)
	if err != nil {
		return nil, err
	}
	result.Actions = append(result.Actions, propsAction)

	tomlAction, err := writeEngineTOML(cfg)
	if err != nil {
		return nil, err
	}
	result.Actions = append(result.Actions, tomlAction)

	mcpAction, err := GenerateMCPConfig(cfg.RepoPath)
	if err != nil {
		return nil, err
	}
	result.Actions = append(result.Actions, mcpAction)

	return result, nil
}

func writeProperties(cfg InitConfig) (Action, error) {
	path := filepath.Join(cfg.RepoPath, config.PropertiesFileName)
	if exists(path) && !cfg.Force {
		return Action{File: config.PropertiesFileName, Operation: "skipped", Description: "already exists"}, nil
	}

	workDir := cfg.WorkDir
	if workDir == "" {
		workDir = cfg.RepoPath
	}
	if err := config.WriteProperties(FS, path, workDir); err != nil {
		return Action{}, err
	}
	return Action{File: config.PropertiesFileName, Operation: "created", Description: "workdir=" + workDir}, nil
}

func writeEngineTOML(cfg InitConfig) (Action, error) {
	path := filepath.Join(cfg.RepoPath, config.TOMLFileName)
	if exists(path) && !cfg.Force {
		return Action{File: config.TOMLFileName, Operation: "skipped", Description: "already exists"}, nil
	}

	if err := config.WriteDefaultTOML(FS, path); err != nil {
		return Action{}, err
	}
	return Action{File: config.TOMLFileName, Operation: "created", Description: "default engine tuning scaffold"}, nil
}

func exists(path string) bool {
	_, err := FS.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
