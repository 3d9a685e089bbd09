// ABOUTME: MCP handlers for the campaign workflow
// ABOUTME: Answers assistant questions and exposes the review findings
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/drylogics/marketingos/campaign"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type CampaignHandlers struct {
	data *seed.Data
}

func NewCampaignHandlers(data *seed.Data) *CampaignHandlers {
	return &CampaignHandlers{data: data}
}

type AskCampaignAssistantInput struct {
	Question string `json:"question" jsonschema:"Question for the campaign review assistant"`
}

type AskCampaignAssistantOutput struct {
	Question string `json:"question"`
	Reply    string `json:"reply"`
}

// AskCampaignAssistant answers with the same canned replies as the review
// step chat, without the typing delay.
func (h *CampaignHandlers) AskCampaignAssistant(_ context.Context, request *mcp.CallToolRequest, input AskCampaignAssistantInput) (*mcp.CallToolResult, AskCampaignAssistantOutput, error) {
	q := strings.TrimSpace(input.Question)
	if q == "" {
		return nil, AskCampaignAssistantOutput{}, fmt.Errorf("question is required")
	}
	return nil, AskCampaignAssistantOutput{
		Question: q,
		Reply:    campaign.Reply(h.data.Review, q),
	}, nil
}

type GetCampaignReviewInput struct {
	Severity string `json:"severity,omitempty" jsonschema:"Only return flags with this severity (high, medium or low)"`
}

type GetCampaignReviewOutput struct {
	Campaign    models.CampaignSummary `json:"campaign"`
	Flags       []models.ReviewFlag    `json:"flags"`
	Suggestions []models.Suggestion    `json:"suggestions"`
	OpenIssues  []string               `json:"open_issues"`
}

func (h *CampaignHandlers) GetCampaignReview(_ context.Context, request *mcp.CallToolRequest, input GetCampaignReviewInput) (*mcp.CallToolResult, GetCampaignReviewOutput, error) {
	review := h.data.Review
	conf := h.data.Confirmation

	out := GetCampaignReviewOutput{
		Campaign:    conf.Campaign,
		Flags:       []models.ReviewFlag{},
		Suggestions: review.Suggestions,
		OpenIssues:  conf.OpenIssues,
	}
	for _, f := range review.Flags {
		if input.Severity != "" && !strings.EqualFold(f.Severity, input.Severity) {
			continue
		}
		out.Flags = append(out.Flags, f)
	}
	return nil, out, nil
}
