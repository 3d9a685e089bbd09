// ABOUTME: MCP prompt handlers for reusable marketing workflow templates
// ABOUTME: Provides prompts for integration triage, integration setup and brief review
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	data *seed.Data
}

func NewPromptHandlers(data *seed.Data) *PromptHandlers {
	return &PromptHandlers{data: data}
}

// Prompts lists the prompt templates for registration.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{
			Name:        "integration-triage",
			Description: "Explain which connections need attention and what to do about them",
		},
		{
			Name:        "integration-setup",
			Description: "Plan the setup of a new integration",
			Arguments: []*mcp.PromptArgument{
				{Name: "tool_id", Description: "Tool ID from list_integration_tools", Required: true},
			},
		},
		{
			Name:        "campaign-brief-review",
			Description: "Review the campaign brief findings and suggest fixes",
		},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := request.Params.Name
	arguments := request.Params.Arguments
	switch name {
	case "integration-triage":
		return h.getIntegrationTriagePrompt()
	case "integration-setup":
		return h.getIntegrationSetupPrompt(arguments)
	case "campaign-brief-review":
		return h.getCampaignBriefReviewPrompt()
	default:
		return nil, fmt.Errorf("unknown prompt: %s", name)
	}
}

func (h *PromptHandlers) getIntegrationTriagePrompt() (*mcp.GetPromptResult, error) {
	var promptText strings.Builder
	promptText.WriteString("These marketing integrations are not fully connected:\n\n")

	count := 0
	for _, it := range h.data.Hub.Integrations {
		if it.Status == models.StatusConnected {
			continue
		}
		count++
		promptText.WriteString(fmt.Sprintf("## %s (%s)\n", it.Name, it.Category))
		promptText.WriteString(fmt.Sprintf("Status: %s\n", it.Status.Badge()))
		if it.LastSync != "" {
			promptText.WriteString(fmt.Sprintf("Last sync: %s\n", it.LastSync))
		}
		if it.Errors != "" {
			promptText.WriteString(fmt.Sprintf("Errors: %s\n", it.Errors))
		}
		for _, l := range it.Logs {
			if l.Outcome != "Success" {
				promptText.WriteString(fmt.Sprintf("- %s %s %s: %s\n", l.Timestamp, l.Direction, l.Action, l.Outcome))
			}
		}
		promptText.WriteString("\n")
	}
	if count == 0 {
		promptText.WriteString("(none, every integration is connected)\n\n")
	}

	promptText.WriteString("Please provide:")
	promptText.WriteString("\n1. The most urgent connection to fix and why")
	promptText.WriteString("\n2. Which quick action (refresh sync, re-authenticate, test connection, disconnect) fits each one")
	promptText.WriteString("\n3. Campaigns that may be affected while they stay broken")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Triage for %d connections", count),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) getIntegrationSetupPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	toolID, ok := args["tool_id"]
	if !ok || toolID == "" {
		return nil, fmt.Errorf("tool_id is required")
	}
	tool, ok := h.data.Tool(toolID)
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}

	var promptText strings.Builder
	promptText.WriteString(fmt.Sprintf("I want to connect %s (%s) to Marketing OS.\n\n", tool.Name, tool.Category))

	promptText.WriteString("Data types available:\n")
	for _, o := range h.data.Wizard.DataTypes {
		promptText.WriteString(fmt.Sprintf("- %s: %s\n", o.Name, o.Description))
	}
	promptText.WriteString("\nSync frequencies:\n")
	for _, o := range h.data.Wizard.Frequencies {
		promptText.WriteString(fmt.Sprintf("- %s: %s\n", o.Name, o.Description))
	}
	if tool.AuthURL != "" {
		promptText.WriteString("\nThis tool supports OAuth 2.0.\n")
	}

	promptText.WriteString("\nRecommend which data types and sync frequency to choose, ")
	promptText.WriteString("then call preview_integration with those choices.")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Setup plan for %s", tool.Name),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) getCampaignBriefReviewPrompt() (*mcp.GetPromptResult, error) {
	c := h.data.Confirmation.Campaign

	var promptText strings.Builder
	promptText.WriteString("Review this campaign brief:\n\n")
	promptText.WriteString(fmt.Sprintf("Name: %s\n", c.Name))
	promptText.WriteString(fmt.Sprintf("Objective: %s\n", c.Objective))
	promptText.WriteString(fmt.Sprintf("Timeline: %s\n", c.Timeline))
	promptText.WriteString(fmt.Sprintf("Budget: %s\n", c.Budget))
	promptText.WriteString(fmt.Sprintf("Channels: %s\n", c.Channels))

	if flags := h.data.Review.Flags; len(flags) > 0 {
		promptText.WriteString("\nFlagged issues:\n")
		for _, f := range flags {
			promptText.WriteString(fmt.Sprintf("- [%s] %s: %s\n", f.Severity, f.Title, f.Description))
		}
	}

	promptText.WriteString("\nFor each issue, suggest a concrete fix and say whether it blocks submission.")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Brief review for %s", c.Name),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}
