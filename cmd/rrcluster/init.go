// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/localrr/rrcluster/internal/bootstrap"
	"github.com/localrr/rrcluster/internal/cliout"
)

// Init-specific flag values.
var (
	initForce   bool
	initWorkDir string
)

// initCmd bootstraps config.properties and rrcluster.toml in a repository.
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Bootstrap rrcluster in a repository",
	Long: `Init writes config.properties, declaring the working directory
artifacts are stored under, and a commented rrcluster.toml scaffold for
tuning the Assignment and Reclustering engines. It also registers
rrcluster as an MCP server in .mcp.json when Claude Code is detected.

This command is non-destructive by default: it skips files that already
exist. Use --force to regenerate them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config.properties and rrcluster.toml")
	initCmd.Flags().StringVar(&initWorkDir, "workdir", "", "working directory artifacts are stored under (default: the repository path)")
}

func runInit(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "rrcluster: cannot resolve path %q: %v", repoPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return exitError(ExitInvalidArgs, "rrcluster: path %q does not exist", repoPath)
	}
	if !info.IsDir() {
		return exitError(ExitInvalidArgs, "rrcluster: %q is not a directory", repoPath)
	}

	workDir := initWorkDir
	if workDir != "" {
		workDir, err = filepath.Abs(workDir)
		if err != nil {
			return exitError(ExitInvalidArgs, "rrcluster: cannot resolve workdir %q: %v", initWorkDir, err)
		}
	}

	result, err := bootstrap.Run(bootstrap.InitConfig{
		RepoPath: absPath,
		WorkDir:  workDir,
		Force:    initForce,
	})
	if err != nil {
		return exitError(ExitRunFailure, "rrcluster: init failed: %v", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintln(w, cliout.Bold("rrcluster init complete"))
	fmt.Fprintln(w)

	for _, a := range result.Actions {
		fmt.Fprintf(w, "  %-20s %-8s %s\n", a.File, a.Operation, a.Description)
	}
	fmt.Fprintln(w)
	return nil
}
