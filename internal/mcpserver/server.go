// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package mcpserver exposes rrcluster's read-only queries as MCP (Model
// Context Protocol) tools over stdio transport: scoring a conflict against
// the persisted cluster index, and reporting a cluster's statistics.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/testable"
)

// New creates an MCP server with rrcluster's read-only tools registered
// against the cluster index and engine config loaded from paths.
func New(version string, paths config.Paths, cfg config.EngineConfig, fs testable.FileSystem) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "rrcluster",
		Title:   "rrcluster — recorded conflict resolution clustering",
		Version: version,
	}, nil)

	registerTools(server, paths, cfg, fs)
	return server
}

// Run creates an MCP server and runs it on the given transport. It blocks
// until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, paths config.Paths, cfg config.EngineConfig, fs testable.FileSystem, transport mcp.Transport) error {
	server := New(version, paths, cfg, fs)
	return server.Run(ctx, transport)
}
