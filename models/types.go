// ABOUTME: Data models for campaign authoring and integration console entities
// ABOUTME: Defines Integration, Tool, UploadedFile, ImportedDataRow, ChatMessage and Brief structs
package models

import (
	"time"
)

// Category is an integration's tool family.
type Category string

const (
	CategoryCRM        Category = "CRM"
	CategoryCDP        Category = "CDP"
	CategoryDAM        Category = "DAM"
	CategoryCMP        Category = "CMP"
	CategoryCMS        Category = "CMS"
	CategoryAdPlatform Category = "AdPlatform"
)

// Categories lists the console filter order.
var Categories = []Category{
	CategoryCMP,
	CategoryCDP,
	CategoryCRM,
	CategoryCMS,
	CategoryDAM,
	CategoryAdPlatform,
}

// Icon returns the glyph shown next to a category chip.
func (c Category) Icon() string {
	switch c {
	case CategoryCMP:
		return "📄"
	case CategoryCDP:
		return "🧠"
	case CategoryCRM:
		return "🎯"
	case CategoryCMS:
		return "🌐"
	case CategoryDAM:
		return "🎨"
	case CategoryAdPlatform:
		return "📢"
	}
	return "🔧"
}

// Label is the human name used on filter buttons.
func (c Category) Label() string {
	if c == CategoryAdPlatform {
		return "Ad Platforms"
	}
	return string(c)
}

// ConnectionStatus is the health of an integration connection.
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "connected"
	StatusNeedsRefresh ConnectionStatus = "needs_refresh"
	StatusDisconnected ConnectionStatus = "disconnected"
)

// Badge returns the status chip text.
func (s ConnectionStatus) Badge() string {
	switch s {
	case StatusConnected:
		return "🟢 Active"
	case StatusNeedsRefresh:
		return "🟡 Needs Refresh"
	case StatusDisconnected:
		return "🔴 Disconnected"
	}
	return "⚪ Unknown"
}

// Sync direction and conflict resolution values for integration settings.
const (
	SyncOneWay        = "one-way"
	SyncBidirectional = "bi-directional"

	ConflictLastUpdated   = "last_updated"
	ConflictSourceOfTruth = "source_of_truth"
)

type Integration struct {
	ID          string              `json:"id" yaml:"id"`
	Name        string              `json:"name" yaml:"name"`
	Category    Category            `json:"category" yaml:"category"`
	Status      ConnectionStatus    `json:"status" yaml:"status"`
	ConnectedAs string              `json:"connected_as,omitempty" yaml:"connected_as"`
	LastSync    string              `json:"last_sync,omitempty" yaml:"last_sync"`
	Latency     string              `json:"latency_ms,omitempty" yaml:"latency"`
	Throughput  string              `json:"throughput,omitempty" yaml:"throughput"`
	Errors      string              `json:"errors,omitempty" yaml:"errors"`
	Dashboard   IntegrationActivity `json:"dashboard" yaml:"dashboard"`
	Settings    SyncSettings        `json:"settings" yaml:"settings"`
	Logs        []SyncLogEntry      `json:"logs,omitempty" yaml:"logs"`
}

// IntegrationActivity is the mini dashboard shown on the overview tab.
type IntegrationActivity struct {
	Campaigns   int    `json:"campaigns" yaml:"campaigns"`
	Description string `json:"description,omitempty" yaml:"description"`
}

type SyncSettings struct {
	SyncDirection      string      `json:"sync_direction" yaml:"sync_direction"`
	ConflictResolution string      `json:"conflict_resolution" yaml:"conflict_resolution"`
	Alerts             AlertToggle `json:"alerts" yaml:"alerts"`
}

type AlertToggle struct {
	SyncLatency    bool `json:"sync_latency" yaml:"sync_latency"`
	AuthExpiration bool `json:"auth_expiration" yaml:"auth_expiration"`
	DataError      bool `json:"data_error" yaml:"data_error"`
}

type SyncLogEntry struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Direction string `json:"direction" yaml:"direction"`
	Action    string `json:"action" yaml:"action"`
	Volume    string `json:"volume" yaml:"volume"`
	Outcome   string `json:"outcome" yaml:"outcome"`
}

// Clone returns a deep copy so callers can mutate logs and settings freely.
func (i Integration) Clone() Integration {
	out := i
	if i.Logs != nil {
		out.Logs = append([]SyncLogEntry(nil), i.Logs...)
	}
	return out
}

// Tool is an entry in the add-integration catalog.
type Tool struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
	Logo     string   `json:"logo" yaml:"logo"`
	AuthURL  string   `json:"auth_url,omitempty" yaml:"auth_url"`
	TokenURL string   `json:"token_url,omitempty" yaml:"token_url"`
	Scopes   []string `json:"scopes,omitempty" yaml:"scopes"`
}

// Option is a selectable value with a display label.
type Option struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// File types for uploaded and past assets.
const (
	FileTypePDF    = "pdf"
	FileTypeImage  = "image"
	FileTypeVideo  = "video"
	FileTypeZip    = "zip"
	FileTypeDesign = "design"
)

type UploadedFile struct {
	ID       int           `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Type     string        `json:"type" yaml:"type"`
	Size     string        `json:"size" yaml:"size"`
	Progress int           `json:"progress" yaml:"progress"`
	Metadata AssetMetadata `json:"metadata" yaml:"metadata"`
	Tags     []string      `json:"tags" yaml:"tags"`
}

// Clone returns a copy with its own tag slice.
func (f UploadedFile) Clone() UploadedFile {
	out := f
	out.Tags = append([]string{}, f.Tags...)
	return out
}

type AssetMetadata struct {
	AssetType string `json:"asset_type,omitempty" yaml:"asset_type"`
	UseCase   string `json:"use_case,omitempty" yaml:"use_case"`
	TeamOwner string `json:"team_owner,omitempty" yaml:"team_owner"`
}

type PastAsset struct {
	ID       int      `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type"`
	Size     string   `json:"size" yaml:"size"`
	LastUsed string   `json:"last_used" yaml:"last_used"`
	Tags     []string `json:"tags" yaml:"tags"`
}

type ImportedDataRow struct {
	Field      string `json:"field" yaml:"field"`
	Value      string `json:"value" yaml:"value"`
	Synced     bool   `json:"synced" yaml:"synced"`
	Overridden bool   `json:"overridden" yaml:"overridden"`
}

// Chat senders.
const (
	SenderAI   = "ai"
	SenderUser = "user"
)

type ChatMessage struct {
	ID     string    `json:"id"`
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Brief is the campaign brief record edited on the first workflow step.
type Brief struct {
	CampaignName string `json:"campaign_name"`
	Description  string `json:"description,omitempty"`
	Objective    string `json:"objective"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Budget       string `json:"budget"`
	Products     []int  `json:"products"`
	Notes        string `json:"notes,omitempty"`
}

type Product struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Severity levels for review flags and brief hints.
const (
	SeverityHigh    = "high"
	SeverityMedium  = "medium"
	SeverityLow     = "low"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
	SeveritySuccess = "success"
)

type ReviewFlag struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Severity    string `json:"severity" yaml:"severity"`
	Description string `json:"description" yaml:"description"`
	Action      string `json:"action" yaml:"action"`
}

type Suggestion struct {
	ID         int    `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Content    string `json:"content" yaml:"content"`
	Confidence int    `json:"confidence" yaml:"confidence"`
}

// Hint is a sidebar alert on the brief builder.
type Hint struct {
	Severity string `json:"severity" yaml:"severity"`
	Title    string `json:"title" yaml:"title"`
	Body     string `json:"body" yaml:"body"`
	Action   string `json:"action" yaml:"action"`
}

// HistoryEntry is one line of the brief's version history card.
type HistoryEntry struct {
	Label string `json:"label" yaml:"label"`
	When  string `json:"when" yaml:"when"`
}

// CampaignSummary is the read-only campaign card on the confirmation step.
type CampaignSummary struct {
	Name      string `json:"name" yaml:"name"`
	Owner     string `json:"owner" yaml:"owner"`
	Timeline  string `json:"timeline" yaml:"timeline"`
	Objective string `json:"objective" yaml:"objective"`
	Product   string `json:"product" yaml:"product"`
	Budget    string `json:"budget" yaml:"budget"`
	Target    string `json:"target" yaml:"target"`
	Channels  string `json:"channels" yaml:"channels"`
}

type AttachedAsset struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Size string `json:"size" yaml:"size"`
}

// ImportedField is a value pulled from an external tool, with its source.
type ImportedField struct {
	Field  string `json:"field" yaml:"field"`
	Value  string `json:"value" yaml:"value"`
	Source string `json:"source" yaml:"source"`
}

type Recommendation struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Status string `json:"status" yaml:"status"`
}
