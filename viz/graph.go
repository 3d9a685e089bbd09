// ABOUTME: GraphViz generation for the integration map
// ABOUTME: Renders hub, category and integration nodes with sync-direction edges as DOT
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/drylogics/marketingos/hub"
	"github.com/drylogics/marketingos/models"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

const hubNodeName = "marketing_os"

type GraphGenerator struct {
	integrations []models.Integration
}

func NewGraphGenerator(integrations []models.Integration) *GraphGenerator {
	return &GraphGenerator{integrations: integrations}
}

// GenerateIntegrationGraph draws every integration in category, or all
// of them when category is "all" or empty.
func (g *GraphGenerator) GenerateIntegrationGraph(ctx context.Context, category string) (string, error) {
	if category == "" {
		category = hub.CategoryAll
	}
	items := hub.Filter(g.integrations, "", category)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel("Marketing OS Integrations")
	graph.SetRankDir(cgraph.LRRank)

	root, err := graph.CreateNodeByName(hubNodeName)
	if err != nil {
		return "", fmt.Errorf("failed to create hub node: %w", err)
	}
	root.SetLabel("Marketing OS")
	root.SetShape("doublecircle")
	root.SetStyle("filled")
	root.SetFillColor("lightblue")

	categoryNodes := make(map[models.Category]*cgraph.Node)
	for _, it := range items {
		catNode, ok := categoryNodes[it.Category]
		if !ok {
			catNode, err = graph.CreateNodeByName("category_" + string(it.Category))
			if err != nil {
				return "", fmt.Errorf("failed to create category node: %w", err)
			}
			catNode.SetLabel(it.Category.Label())
			catNode.SetShape("box")
			categoryNodes[it.Category] = catNode

			if _, err := graph.CreateEdgeByName("has_"+string(it.Category), root, catNode); err != nil {
				return "", fmt.Errorf("failed to create category edge: %w", err)
			}
		}

		node, err := graph.CreateNodeByName(it.ID)
		if err != nil {
			return "", fmt.Errorf("failed to create integration node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s", it.Name, it.LastSync))
		node.SetShape("ellipse")
		node.SetStyle("filled")
		node.SetFillColor(statusColor(it.Status))

		edge, err := graph.CreateEdgeByName("sync_"+it.ID, catNode, node)
		if err != nil {
			return "", fmt.Errorf("failed to create sync edge: %w", err)
		}
		edge.SetLabel(it.Settings.SyncDirection)
		if it.Settings.SyncDirection == models.SyncBidirectional {
			edge.SetDir("both")
		}
		if it.Status != models.StatusConnected {
			edge.SetStyle("dashed")
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}

func statusColor(s models.ConnectionStatus) string {
	switch s {
	case models.StatusConnected:
		return "lightgreen"
	case models.StatusNeedsRefresh:
		return "lightyellow"
	default:
		return "lightpink"
	}
}
