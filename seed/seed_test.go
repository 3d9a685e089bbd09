package seed

import (
	"errors"
	"strings"
	"testing"

	"github.com/drylogics/marketingos/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	assert.Len(t, d.Workflow.Tabs, 5)
	assert.Len(t, d.Workflow.Stages, 8)
	assert.Len(t, d.Hub.Integrations, 5)
	assert.Len(t, d.Wizard.Tools, 12)
	assert.Len(t, d.Wizard.Steps, 5)
	assert.Equal(t, "Salesforce", d.Hub.Integrations[0].Name)
	assert.Equal(t, models.CategoryAdPlatform, d.Hub.Integrations[3].Category)
	assert.Equal(t, models.StatusNeedsRefresh, d.Hub.Integrations[1].Status)
	assert.Equal(t, []string{"hero", "product-x"}, d.Assets.Uploaded[1].Tags)
	assert.Equal(t, "2025", d.Assets.Uploaded[0].Tags[2])
}

func TestLoadReturnsIndependentCopies(t *testing.T) {
	a, err := Load()
	require.NoError(t, err)
	b, err := Load()
	require.NoError(t, err)

	a.Assets.Uploaded[0].Tags = append(a.Assets.Uploaded[0].Tags, "extra")
	a.Hub.Integrations[0].Name = "Changed"

	assert.NotContains(t, b.Assets.Uploaded[0].Tags, "extra")
	assert.Equal(t, "Salesforce", b.Hub.Integrations[0].Name)
}

func TestDecodeFixture(t *testing.T) {
	doc := `
hub:
  integrations:
    - id: only
      name: Only One
      category: CMS
      status: connected
assets:
  uploaded:
    - id: 9
      name: blank.pdf
`
	d, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, d.Hub.Integrations, 1)

	i, ok := d.Integration("only")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryCMS, i.Category)
	assert.NotNil(t, d.Assets.Uploaded[0].Tags, "missing tags decode to an empty set")

	_, ok = d.Integration("missing")
	assert.False(t, ok)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("hub: [not, a, map"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("workflow:\n  tabs: [a]\n"))
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestToolLookup(t *testing.T) {
	d := MustLoad()

	tool, ok := d.Tool("google-ads")
	require.True(t, ok)
	assert.Equal(t, "GA", tool.Logo)
	assert.NotEmpty(t, tool.AuthURL)

	_, ok = d.Tool("nope")
	assert.False(t, ok)
}
