package campaign

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/seed"
	"github.com/stretchr/testify/assert"
)

func TestConfirmationSections(t *testing.T) {
	opts, _ := testOptions(t)
	c := NewConfirmation(seed.MustLoad().Confirmation, Nav{}, opts)
	defer c.Stop()

	assert.True(t, c.Expanded(SectionCampaignDetails))
	assert.False(t, c.Expanded(SectionAttachedAssets))
	assert.False(t, c.Expanded(SectionImportedData))
	assert.False(t, c.Expanded(SectionAIRecommendations))

	md := c.Markdown()
	assert.Contains(t, md, "Q2 Product Launch - Enterprise Focus")
	assert.NotContains(t, md, "MKT-2025-Q2-105")

	c.ToggleSection(SectionImportedData)
	c.ToggleSection(SectionCampaignDetails)
	md = c.Markdown()
	assert.Contains(t, md, "MKT-2025-Q2-105")
	assert.NotContains(t, md, "Jane Smith")
	assert.Contains(t, md, "Success metrics need to be defined")
	assert.True(t, strings.HasSuffix(md, "Next: Step 2 - Target\n"))
}

func TestConfirmationSubmitOnlyLogs(t *testing.T) {
	var buf bytes.Buffer
	opts, _ := testOptions(t)
	opts.Logger = log.New(&buf)
	c := NewConfirmation(seed.MustLoad().Confirmation, Nav{}, opts)
	defer c.Stop()

	c.SetApprover("brand-manager")
	c.Submit()

	assert.Equal(t, "brand-manager", c.Approver())
	assert.Contains(t, buf.String(), "campaign submitted for planning")
	assert.Contains(t, buf.String(), "brand-manager")
}

func TestConfirmationBackGoesToStart(t *testing.T) {
	s, _ := newTestShell(t)
	s.SetActiveTab(4)

	s.Current().(*Confirmation).Backward()

	assert.Equal(t, StepStart, s.ActiveTab())
	assert.Equal(t, PanelBrief, s.Panel())
}
