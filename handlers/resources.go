// ABOUTME: MCP resource handlers for exposing marketing data
// ABOUTME: Provides read-only access to integrations, the tool catalog and the campaign summary via URI
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/drylogics/marketingos/seed"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceScheme = "mos://"

// Resource URIs served by ReadResource.
const (
	IntegrationsURI = resourceScheme + "integrations"
	ToolsURI        = resourceScheme + "tools"
	CampaignURI     = resourceScheme + "campaign"
)

type ResourceHandlers struct {
	data *seed.Data
}

func NewResourceHandlers(data *seed.Data) *ResourceHandlers {
	return &ResourceHandlers{data: data}
}

// Resources lists the static resources for registration.
func (h *ResourceHandlers) Resources() []*mcp.Resource {
	return []*mcp.Resource{
		{URI: IntegrationsURI, Name: "integrations", Description: "Every integration in the connection hub", MIMEType: "application/json"},
		{URI: ToolsURI, Name: "tools", Description: "Tools that can be connected with the add-integration wizard", MIMEType: "application/json"},
		{URI: CampaignURI, Name: "campaign", Description: "Campaign summary shown on the confirmation step", MIMEType: "application/json"},
	}
}

// ResourceTemplates lists the parameterized resources for registration.
func (h *ResourceHandlers) ResourceTemplates() []*mcp.ResourceTemplate {
	return []*mcp.ResourceTemplate{
		{URITemplate: IntegrationsURI + "/{id}", Name: "integration", Description: "One integration with its settings and sync log", MIMEType: "application/json"},
	}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	path := strings.TrimPrefix(uri, resourceScheme)
	parts := strings.Split(path, "/")

	switch parts[0] {
	case "integrations":
		if len(parts) == 1 {
			return jsonResource(uri, h.data.Hub.Integrations)
		}
		it, ok := h.data.Integration(parts[1])
		if !ok {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return jsonResource(uri, it)

	case "tools":
		return jsonResource(uri, h.data.Wizard.Tools)

	case "campaign":
		return jsonResource(uri, h.data.Confirmation)

	default:
		return nil, mcp.ResourceNotFoundError(uri)
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
