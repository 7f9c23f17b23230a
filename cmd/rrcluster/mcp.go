// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/localrr/rrcluster/internal/mcpserver"
	"github.com/localrr/rrcluster/internal/testable"
)

// Mcp-specific flag values.
var mcpRepoPath string

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running rrcluster as an MCP server, exposing read-only query tools to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing rrcluster's read-only
query tools:
  - suggest:       score a conflict/resolution pair against the persisted
                   cluster index without mutating it
  - cluster_stats: report the Statistics module's metrics for a cluster id

The server communicates using the Model Context Protocol (MCP) over stdio
transport, enabling AI agents to query the cluster index directly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		paths, cfg, err := loadEngine(mcpRepoPath)
		if err != nil {
			return exitError(ExitInvalidArgs, "%s", err)
		}
		return mcpserver.Run(cmd.Context(), Version, paths, cfg, testable.DefaultFS, &mcp.StdioTransport{})
	},
}

func init() {
	mcpServeCmd.Flags().StringVar(&mcpRepoPath, "repo", ".", "repository directory config.properties is resolved relative to")
	mcpCmd.AddCommand(mcpServeCmd)
}
