// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/localrr/rrcluster/internal/assignment"
	"github.com/localrr/rrcluster/internal/clusterstore"
	"github.com/localrr/rrcluster/internal/config"
	"github.com/localrr/rrcluster/internal/conflict"
	"github.com/localrr/rrcluster/internal/stats"
	"github.com/localrr/rrcluster/internal/testable"
)

// SuggestInput is the input schema for the suggest tool.
type SuggestInput struct {
	Conflict   string `json:"conflict" jsonschema:"The conflicting text to score against the persisted cluster index"`
	Resolution string `json:"resolution,omitempty" jsonschema:"The known resolution, if any, for the conflicting text"`
}

// SuggestOutput reports where conflict would be placed, without mutating
// the index.
type SuggestOutput struct {
	GroupID        int     `json:"group_id"`
	NewCluster     bool    `json:"new_cluster"`
	AlreadyPresent bool    `json:"already_present"`
	BestSimilarity float64 `json:"best_similarity"`
}

// ClusterStatsInput is the input schema for the cluster_stats tool.
type ClusterStatsInput struct {
	ClusterID int `json:"cluster_id" jsonschema:"The cluster id to report statistics for"`
}

// boolPtr returns a pointer to b.
func boolPtr(b bool) *bool { return &b }

// registerTools adds rrcluster's two read-only tools to server.
func registerTools(server *mcp.Server, paths config.Paths, cfg config.EngineConfig, fs testable.FileSystem) {
	store := clusterstore.New(paths.ClusterIndex)
	store.SetFS(fs)
	engine := assignment.New(assignment.ForName(cfg.Linkage, cfg.MinLinkageInvertedBug), cfg.AssignmentThreshold)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "suggest",
		Description: "Score a conflict/resolution pair against the persisted cluster index and report which cluster it would join, without mutating the index.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleSuggest(store, engine))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cluster_stats",
		Description: "Report the similarity statistics for a cluster id in the persisted cluster index.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleClusterStats(store))
}

func handleSuggest(store *clusterstore.Store, engine *assignment.Engine) func(context.Context, *mcp.CallToolRequest, SuggestInput) (*mcp.CallToolResult, SuggestOutput, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SuggestInput) (*mcp.CallToolResult, SuggestOutput, error) {
		idx := store.Load()
		wasEmpty := idx.Len() == 0
		outcome := engine.Assign(idx, conflict.Pair{Conflict: input.Conflict, Resolution: input.Resolution})

		out := SuggestOutput{
			GroupID:        outcome.GroupID,
			NewCluster:     !outcome.AlreadyPresent && (wasEmpty || outcome.BestSimilarity == 0),
			AlreadyPresent: outcome.AlreadyPresent,
			BestSimilarity: outcome.BestSimilarity,
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(
				"group %d (new=%v already_present=%v similarity=%.4f)",
				out.GroupID, out.NewCluster, out.AlreadyPresent, out.BestSimilarity)},
			},
		}, out, nil
	}
}

func handleClusterStats(store *clusterstore.Store) func(context.Context, *mcp.CallToolRequest, ClusterStatsInput) (*mcp.CallToolResult, conflict.Stats, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ClusterStatsInput) (*mcp.CallToolResult, conflict.Stats, error) {
		idx := store.Load()
		cluster, ok := idx.Get(input.ClusterID)
		if !ok {
			return nil, conflict.Stats{}, fmt.Errorf("cluster_stats: cluster %d not found", input.ClusterID)
		}

		s := stats.Compute(input.ClusterID, cluster)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(
				"cluster %d: size=%d avg_similarity=%.4f longest_distance=%.4f",
				s.ClusterID, s.ClusterSize, s.AvgSimilarity, s.LongestDistance)},
			},
		}, s, nil
	}
}
