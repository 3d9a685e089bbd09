package campaign

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
)

// Section is a collapsible block of the confirmation summary.
type Section string

const (
	SectionCampaignDetails   Section = "campaignDetails"
	SectionAttachedAssets    Section = "attachedAssets"
	SectionImportedData      Section = "importedData"
	SectionAIRecommendations Section = "aiRecommendations"
)

// Sections lists the confirmation blocks in display order.
var Sections = []Section{
	SectionCampaignDetails,
	SectionAttachedAssets,
	SectionImportedData,
	SectionAIRecommendations,
}

func (s Section) Title() string {
	switch s {
	case SectionCampaignDetails:
		return "Campaign Details"
	case SectionAttachedAssets:
		return "Attached Assets"
	case SectionImportedData:
		return "Imported Data"
	case SectionAIRecommendations:
		return "AI Recommendations"
	}
	return string(s)
}

// Confirmation is step 4: read-only summary and submission.
type Confirmation struct {
	mu       sync.Mutex
	expanded map[Section]bool
	approver string

	seed     seed.Confirmation
	nav      Nav
	logger   *log.Logger
	onChange func()
}

func NewConfirmation(data seed.Confirmation, nav Nav, opts Options) *Confirmation {
	opts = opts.withDefaults()
	return &Confirmation{
		expanded: map[Section]bool{SectionCampaignDetails: true},
		seed:     data,
		nav:      nav,
		logger:   opts.Logger,
		onChange: opts.OnChange,
	}
}

func (c *Confirmation) ID() PanelID { return PanelConfirmation }

// Stop is a no-op: this panel schedules no deferred work.
func (c *Confirmation) Stop() {}

func (c *Confirmation) Expanded(s Section) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded[s]
}

func (c *Confirmation) ToggleSection(s Section) {
	c.mu.Lock()
	c.expanded[s] = !c.expanded[s]
	c.mu.Unlock()
	c.onChange()
}

func (c *Confirmation) Approver() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.approver
}

func (c *Confirmation) SetApprover(id string) {
	c.mu.Lock()
	c.approver = id
	c.mu.Unlock()
	c.onChange()
}

func (c *Confirmation) Approvers() []models.Option     { return c.seed.Approvers }
func (c *Confirmation) OpenIssues() []string           { return c.seed.OpenIssues }
func (c *Confirmation) Status() (current, next string) { return c.seed.Status, c.seed.Next }

// Submit is a placeholder for the planning hand-off; it only logs.
func (c *Confirmation) Submit() {
	c.logger.Info("campaign submitted for planning",
		"campaign", c.seed.Campaign.Name,
		"approver", c.Approver())
}

// Backward is the "Back" button. Like every panel it returns to the start.
func (c *Confirmation) Backward() { c.nav.Backward() }

// Markdown renders the expanded sections as a markdown document.
func (c *Confirmation) Markdown() string {
	c.mu.Lock()
	expanded := make(map[Section]bool, len(c.expanded))
	for k, v := range c.expanded {
		expanded[k] = v
	}
	c.mu.Unlock()

	var b strings.Builder
	b.WriteString("# Campaign Summary\n\n")
	for _, s := range Sections {
		marker := "▸"
		if expanded[s] {
			marker = "▾"
		}
		fmt.Fprintf(&b, "## %s %s\n\n", marker, s.Title())
		if !expanded[s] {
			continue
		}
		c.writeSection(&b, s)
		b.WriteString("\n")
	}

	if len(c.seed.OpenIssues) > 0 {
		b.WriteString("## Open Issues\n\n")
		for _, issue := range c.seed.OpenIssues {
			fmt.Fprintf(&b, "- ⚠️ %s\n", issue)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "**%s** · %s\n", c.seed.Status, c.seed.Next)
	return b.String()
}

func (c *Confirmation) writeSection(b *strings.Builder, s Section) {
	switch s {
	case SectionCampaignDetails:
		d := c.seed.Campaign
		b.WriteString("| Field | Value |\n|---|---|\n")
		for _, row := range [][2]string{
			{"Campaign Name", d.Name},
			{"Owner", d.Owner},
			{"Timeline", d.Timeline},
			{"Objective", d.Objective},
			{"Product", d.Product},
			{"Budget", d.Budget},
			{"Target Audience", d.Target},
			{"Channels", d.Channels},
		} {
			fmt.Fprintf(b, "| %s | %s |\n", row[0], row[1])
		}
	case SectionAttachedAssets:
		for _, a := range c.seed.Assets {
			fmt.Fprintf(b, "- `%s` (%s, %s)\n", a.Name, a.Type, a.Size)
		}
	case SectionImportedData:
		b.WriteString("| Field | Value | Source |\n|---|---|---|\n")
		for _, f := range c.seed.Imported {
			fmt.Fprintf(b, "| %s | %s | %s |\n", f.Field, f.Value, f.Source)
		}
	case SectionAIRecommendations:
		for _, r := range c.seed.Recommendations {
			fmt.Fprintf(b, "- **%s:** %s (%s)\n", r.Kind, r.Text, r.Status)
		}
	}
}
