// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides generate_graph and integration_health tools for agents
package handlers

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/drylogics/marketingos/hub"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/drylogics/marketingos/viz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VizHandlers struct {
	data *seed.Data
}

func NewVizHandlers(data *seed.Data) *VizHandlers {
	return &VizHandlers{data: data}
}

type GenerateGraphInput struct {
	Category string `json:"category,omitempty" jsonschema:"Only graph integrations in this category (default all)"`
}

type GenerateGraphOutput struct {
	Category  string `json:"category"`
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateGraph(ctx context.Context, request *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	category := input.Category
	if category == "" {
		category = hub.CategoryAll
	}
	if !slices.Contains(hub.CategoryFilters(), category) {
		return nil, GenerateGraphOutput{}, fmt.Errorf("unknown category: %s (valid: %s)", category, strings.Join(hub.CategoryFilters(), ", "))
	}

	generator := viz.NewGraphGenerator(h.data.Hub.Integrations)
	dot, err := generator.GenerateIntegrationGraph(ctx, category)
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	// Hub node, one node per category, one per integration; every node but
	// the hub has exactly one incoming edge.
	items := hub.Filter(h.data.Hub.Integrations, "", category)
	categories := make(map[models.Category]bool)
	for _, it := range items {
		categories[it.Category] = true
	}
	edgeCount := len(categories) + len(items)
	nodeCount := edgeCount + 1

	return nil, GenerateGraphOutput{
		Category:  category,
		DOTSource: dot,
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}, nil
}

type IntegrationHealthInput struct{}

type IntegrationHealthOutput struct {
	Stats  *viz.DashboardStats `json:"stats"`
	Report string              `json:"report"`
}

func (h *VizHandlers) IntegrationHealth(_ context.Context, request *mcp.CallToolRequest, _ IntegrationHealthInput) (*mcp.CallToolResult, IntegrationHealthOutput, error) {
	stats := viz.GenerateDashboardStats(h.data.Hub.Integrations)
	return nil, IntegrationHealthOutput{
		Stats:  stats,
		Report: viz.RenderDashboard(stats),
	}, nil
}
