// ABOUTME: MCP server assembly
// ABOUTME: Registers every Marketing OS tool, resource and prompt on one server
package handlers

import (
	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/seed"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func NewServer(data *seed.Data, logger *log.Logger, version string) *mcp.Server {
	integrationHandlers := NewIntegrationHandlers(data, logger)
	campaignHandlers := NewCampaignHandlers(data)
	vizHandlers := NewVizHandlers(data)
	resourceHandlers := NewResourceHandlers(data)
	promptHandlers := NewPromptHandlers(data)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "marketingos",
		Version: version,
	}, nil)

	// Register tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_integrations",
		Description: "Search connection hub integrations by name and category",
	}, integrationHandlers.ListIntegrations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_integration",
		Description: "Get one integration with its status, sync settings and sync log",
	}, integrationHandlers.GetIntegration)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_integration_tools",
		Description: "List the tools, data types, sync frequencies and auth methods offered when adding an integration",
	}, integrationHandlers.ListIntegrationTools)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_integration",
		Description: "Preview the review step of the add-integration wizard, including the OAuth consent URL when available. Nothing is connected",
	}, integrationHandlers.PreviewIntegration)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_campaign_assistant",
		Description: "Ask the campaign review assistant a question",
	}, campaignHandlers.AskCampaignAssistant)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_campaign_review",
		Description: "Get the campaign summary with flagged issues and AI suggestions",
	}, campaignHandlers.GetCampaignReview)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Generate a GraphViz DOT map of integrations, optionally for one category",
	}, vizHandlers.GenerateGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "integration_health",
		Description: "Summarize connection health across every integration",
	}, vizHandlers.IntegrationHealth)

	// Register resources
	for _, r := range resourceHandlers.Resources() {
		server.AddResource(r, resourceHandlers.ReadResource)
	}
	for _, t := range resourceHandlers.ResourceTemplates() {
		server.AddResourceTemplate(t, resourceHandlers.ReadResource)
	}

	// Register prompts
	for _, p := range promptHandlers.Prompts() {
		server.AddPrompt(p, promptHandlers.GetPrompt)
	}

	return server
}
