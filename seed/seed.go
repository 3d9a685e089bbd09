// ABOUTME: Embedded mock data for the campaign workflow and integration console
// ABOUTME: Decodes a fresh copy of the YAML seed on every Load so components never share state
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/drylogics/marketingos/models"
	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var raw []byte

// ErrEmpty is returned when a seed document carries no integrations or tools.
var ErrEmpty = errors.New("seed document is empty")

type Data struct {
	Workflow     Workflow     `yaml:"workflow"`
	Brief        BriefSeed    `yaml:"brief"`
	Assets       AssetSeed    `yaml:"assets"`
	ToolSync     ToolSyncSeed `yaml:"tool_sync"`
	Review       ReviewSeed   `yaml:"review"`
	Confirmation Confirmation `yaml:"confirmation"`
	Hub          HubSeed      `yaml:"hub"`
	Wizard       WizardSeed   `yaml:"wizard"`
}

type Workflow struct {
	Tabs   []string `yaml:"tabs"`
	Stages []string `yaml:"stages"`
}

type BriefSeed struct {
	Objectives []models.Option       `yaml:"objectives"`
	Products   []models.Product      `yaml:"products"`
	Approvers  []models.Option       `yaml:"approvers"`
	Hints      []models.Hint         `yaml:"hints"`
	History    []models.HistoryEntry `yaml:"history"`
}

type AssetSeed struct {
	Uploaded      []models.UploadedFile `yaml:"uploaded"`
	AssetTypes    []string              `yaml:"asset_types"`
	UseCases      []string              `yaml:"use_cases"`
	Teams         []string              `yaml:"teams"`
	SuggestedTags []string              `yaml:"suggested_tags"`
	Past          []models.PastAsset    `yaml:"past"`
}

type ToolSyncSeed struct {
	CMPOptions []models.Option          `yaml:"cmp_options"`
	CRMOptions []models.Option          `yaml:"crm_options"`
	Imported   []models.ImportedDataRow `yaml:"imported"`
}

type ReviewSeed struct {
	Greeting      string              `yaml:"greeting"`
	Flags         []models.ReviewFlag `yaml:"flags"`
	Suggestions   []models.Suggestion `yaml:"suggestions"`
	LeadGenReply  string              `yaml:"lead_gen_reply"`
	FallbackReply string              `yaml:"fallback_reply"`
}

type Confirmation struct {
	Campaign        models.CampaignSummary  `yaml:"campaign"`
	Assets          []models.AttachedAsset  `yaml:"assets"`
	Imported        []models.ImportedField  `yaml:"imported"`
	Recommendations []models.Recommendation `yaml:"recommendations"`
	OpenIssues      []string                `yaml:"open_issues"`
	Approvers       []models.Option         `yaml:"approvers"`
	Status          string                  `yaml:"status"`
	Next            string                  `yaml:"next"`
}

type HubSeed struct {
	HealthSummary string               `yaml:"health_summary"`
	Integrations  []models.Integration `yaml:"integrations"`
}

type WizardSeed struct {
	Steps       []string        `yaml:"steps"`
	Tools       []models.Tool   `yaml:"tools"`
	DataTypes   []models.Option `yaml:"data_types"`
	Frequencies []models.Option `yaml:"frequencies"`
	AuthMethods []models.Option `yaml:"auth_methods"`
}

// Load decodes the embedded seed document.
func Load() (*Data, error) {
	return Decode(bytes.NewReader(raw))
}

// MustLoad is Load for callers that cannot proceed without seed data.
func MustLoad() *Data {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

// Decode reads a seed document from r.
func Decode(r io.Reader) (*Data, error) {
	var d Data
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	if len(d.Hub.Integrations) == 0 && len(d.Wizard.Tools) == 0 {
		return nil, ErrEmpty
	}
	for i := range d.Assets.Uploaded {
		if d.Assets.Uploaded[i].Tags == nil {
			d.Assets.Uploaded[i].Tags = []string{}
		}
	}
	return &d, nil
}

// Integration looks up a seeded integration by ID.
func (d *Data) Integration(id string) (models.Integration, bool) {
	for _, i := range d.Hub.Integrations {
		if i.ID == id {
			return i.Clone(), true
		}
	}
	return models.Integration{}, false
}

// Tool looks up a catalog tool by ID.
func (d *Data) Tool(id string) (models.Tool, bool) {
	for _, t := range d.Wizard.Tools {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tool{}, false
}
