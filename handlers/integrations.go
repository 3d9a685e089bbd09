// ABOUTME: MCP handlers for the connection hub
// ABOUTME: Lists and inspects integrations and previews the add-integration wizard
package handlers

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/hub"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type IntegrationHandlers struct {
	data   *seed.Data
	logger *log.Logger
}

func NewIntegrationHandlers(data *seed.Data, logger *log.Logger) *IntegrationHandlers {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &IntegrationHandlers{data: data, logger: logger}
}

type ListIntegrationsInput struct {
	Query    string `json:"query,omitempty" jsonschema:"Case-insensitive substring of the integration name"`
	Category string `json:"category,omitempty" jsonschema:"Category filter: all or one of the integration categories (default all)"`
}

type IntegrationSummary struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Category models.Category         `json:"category"`
	Status   models.ConnectionStatus `json:"status"`
	LastSync string                  `json:"last_sync"`
}

type ListIntegrationsOutput struct {
	Integrations []IntegrationSummary `json:"integrations"`
	Count        int                  `json:"count"`
	Health       string               `json:"health"`
}

func (h *IntegrationHandlers) ListIntegrations(_ context.Context, request *mcp.CallToolRequest, input ListIntegrationsInput) (*mcp.CallToolResult, ListIntegrationsOutput, error) {
	category := input.Category
	if category == "" {
		category = hub.CategoryAll
	}
	if !slices.Contains(hub.CategoryFilters(), category) {
		return nil, ListIntegrationsOutput{}, fmt.Errorf("unknown category: %s (valid: %s)", category, strings.Join(hub.CategoryFilters(), ", "))
	}

	dir := hub.NewDirectory(h.data.Hub, h.logger)
	dir.SetQuery(input.Query)
	dir.SetCategory(category)

	out := ListIntegrationsOutput{
		Integrations: []IntegrationSummary{},
		Health:       dir.HealthSummary(),
	}
	for _, it := range dir.Filtered() {
		out.Integrations = append(out.Integrations, IntegrationSummary{
			ID:       it.ID,
			Name:     it.Name,
			Category: it.Category,
			Status:   it.Status,
			LastSync: it.LastSync,
		})
	}
	out.Count = len(out.Integrations)
	return nil, out, nil
}

type GetIntegrationInput struct {
	ID string `json:"id" jsonschema:"Integration ID, for example salesforce"`
}

type GetIntegrationOutput struct {
	Integration models.Integration `json:"integration"`
	Actions     []string           `json:"actions"`
}

func (h *IntegrationHandlers) GetIntegration(_ context.Context, request *mcp.CallToolRequest, input GetIntegrationInput) (*mcp.CallToolResult, GetIntegrationOutput, error) {
	if input.ID == "" {
		return nil, GetIntegrationOutput{}, fmt.Errorf("id is required")
	}

	dir := hub.NewDirectory(h.data.Hub, h.logger)
	it, err := dir.Get(input.ID)
	if err != nil {
		return nil, GetIntegrationOutput{}, fmt.Errorf("failed to get integration: %w", err)
	}

	out := GetIntegrationOutput{Integration: it}
	for _, a := range hub.Actions {
		out.Actions = append(out.Actions, string(a))
	}
	return nil, out, nil
}

type ListIntegrationToolsInput struct {
	Category string `json:"category,omitempty" jsonschema:"Only list tools in this category, for example CRM or DAM"`
}

type ListIntegrationToolsOutput struct {
	Tools       []models.Tool   `json:"tools"`
	DataTypes   []models.Option `json:"data_types"`
	Frequencies []models.Option `json:"frequencies"`
	AuthMethods []models.Option `json:"auth_methods"`
}

// ListIntegrationTools returns the add-integration catalog with every choice
// preview_integration accepts.
func (h *IntegrationHandlers) ListIntegrationTools(_ context.Context, request *mcp.CallToolRequest, input ListIntegrationToolsInput) (*mcp.CallToolResult, ListIntegrationToolsOutput, error) {
	category := input.Category
	if strings.EqualFold(category, hub.CategoryAll) {
		category = ""
	}
	if category != "" && !slices.ContainsFunc(hub.CategoryFilters(), func(c string) bool { return strings.EqualFold(c, category) }) {
		return nil, ListIntegrationToolsOutput{}, fmt.Errorf("unknown category: %s (valid: %s)", category, strings.Join(hub.CategoryFilters(), ", "))
	}

	w := h.data.Wizard
	out := ListIntegrationToolsOutput{
		Tools:       []models.Tool{},
		DataTypes:   w.DataTypes,
		Frequencies: w.Frequencies,
		AuthMethods: w.AuthMethods,
	}
	for _, t := range w.Tools {
		if category != "" && !strings.EqualFold(string(t.Category), category) {
			continue
		}
		out.Tools = append(out.Tools, t)
	}
	return nil, out, nil
}

type PreviewIntegrationInput struct {
	ToolID      string   `json:"tool_id" jsonschema:"Tool ID from list_integration_tools"`
	DataTypes   []string `json:"data_types,omitempty" jsonschema:"Data type IDs to sync"`
	Frequency   string   `json:"frequency,omitempty" jsonschema:"Sync frequency ID (default hourly)"`
	AuthMethod  string   `json:"auth_method,omitempty" jsonschema:"Auth method ID (default oauth)"`
	ClientID    string   `json:"client_id,omitempty" jsonschema:"OAuth client ID, needed for the consent URL"`
	RedirectURI string   `json:"redirect_uri,omitempty" jsonschema:"OAuth redirect URI"`
}

type PreviewIntegrationOutput struct {
	Tool         models.Tool     `json:"tool"`
	DataTypes    []models.Option `json:"data_types"`
	Frequency    models.Option   `json:"frequency"`
	AuthMethod   models.Option   `json:"auth_method"`
	AuthorizeURL string          `json:"authorize_url,omitempty"`
	Note         string          `json:"note,omitempty"`
}

// PreviewIntegration walks the wizard with the given choices and returns the
// review step. Nothing is connected.
func (h *IntegrationHandlers) PreviewIntegration(_ context.Context, request *mcp.CallToolRequest, input PreviewIntegrationInput) (*mcp.CallToolResult, PreviewIntegrationOutput, error) {
	if input.ToolID == "" {
		return nil, PreviewIntegrationOutput{}, fmt.Errorf("tool_id is required")
	}

	w := hub.NewAddWizard(h.data.Wizard, h.logger)
	defer w.Close()

	if err := w.SelectTool(input.ToolID); err != nil {
		return nil, PreviewIntegrationOutput{}, fmt.Errorf("failed to select tool: %w", err)
	}
	for _, id := range input.DataTypes {
		// A repeated id must not toggle the type back off.
		if slices.Contains(w.DataTypes(), id) {
			continue
		}
		if err := w.ToggleDataType(id); err != nil {
			return nil, PreviewIntegrationOutput{}, fmt.Errorf("failed to select data type: %w", err)
		}
	}
	if input.Frequency != "" {
		if err := w.SetFrequency(input.Frequency); err != nil {
			return nil, PreviewIntegrationOutput{}, fmt.Errorf("failed to set frequency: %w", err)
		}
	}

	a := w.Auth()
	if input.AuthMethod != "" {
		a.Method = input.AuthMethod
	}
	if input.ClientID != "" {
		a.ClientID = input.ClientID
	}
	if input.RedirectURI != "" {
		a.RedirectURI = input.RedirectURI
	}
	if err := w.SetAuth(a); err != nil {
		return nil, PreviewIntegrationOutput{}, fmt.Errorf("failed to set auth: %w", err)
	}

	for w.Step() < hub.LastStep {
		w.Next()
	}

	sum := w.Summary()
	out := PreviewIntegrationOutput{
		Tool:       sum.Tool,
		DataTypes:  append([]models.Option{}, sum.DataTypes...),
		Frequency:  sum.Frequency,
		AuthMethod: sum.AuthMethod,
	}
	if url, err := w.AuthorizeURL(); err == nil {
		out.AuthorizeURL = url
	} else {
		out.Note = err.Error()
	}
	return nil, out, nil
}
