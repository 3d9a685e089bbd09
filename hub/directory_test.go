package hub

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []models.Integration) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	items := seed.MustLoad().Hub.Integrations

	tests := []struct {
		name     string
		query    string
		category string
		want     []string
	}{
		{"crm and sales", "sales", "CRM", []string{"Salesforce"}},
		{"everything", "", CategoryAll, []string{"Salesforce", "Segment", "Adobe DAM", "Meta Ads", "Workfront"}},
		{"case insensitive", "SEG", CategoryAll, []string{"Segment"}},
		{"category only", "", "AdPlatform", []string{"Meta Ads"}},
		{"category mismatch", "sales", "CDP", []string{}},
		{"no category match", "", "CMS", []string{}},
		{"substring", "o", CategoryAll, []string{"Salesforce", "Adobe DAM", "Workfront"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(items, tt.query, tt.category)))
		})
	}
}

func TestCategoryFilters(t *testing.T) {
	assert.Equal(t, []string{"all", "CMP", "CDP", "CRM", "CMS", "DAM", "AdPlatform"}, CategoryFilters())
}

func TestDirectorySelection(t *testing.T) {
	d := NewDirectory(seed.MustLoad().Hub, nil)

	sel, ok := d.Selected()
	require.True(t, ok)
	assert.Equal(t, "salesforce", sel.ID)

	require.NoError(t, d.Select("meta"))
	sel, _ = d.Selected()
	assert.Equal(t, "Meta Ads", sel.Name)

	err := d.Select("nope")
	assert.ErrorIs(t, err, ErrUnknownIntegration)
	sel, _ = d.Selected()
	assert.Equal(t, "meta", sel.ID)
}

func TestSelectionSurvivesFiltering(t *testing.T) {
	d := NewDirectory(seed.MustLoad().Hub, nil)
	require.NoError(t, d.Select("segment"))

	d.SetCategory("CRM")
	d.SetQuery("sales")
	assert.Equal(t, []string{"Salesforce"}, names(d.Filtered()))

	sel, ok := d.Selected()
	require.True(t, ok)
	assert.Equal(t, "segment", sel.ID)
}

func TestSetCategoryIgnoresEmpty(t *testing.T) {
	d := NewDirectory(seed.MustLoad().Hub, nil)
	assert.Equal(t, CategoryAll, d.Category())

	d.SetCategory("DAM")
	d.SetCategory("")
	assert.Equal(t, "DAM", d.Category())
	assert.Equal(t, []string{"Adobe DAM"}, names(d.Filtered()))
}

func TestNeedingAttention(t *testing.T) {
	d := NewDirectory(seed.MustLoad().Hub, nil)

	assert.Equal(t, []string{"Segment", "Adobe DAM"}, names(d.NeedingAttention()))
	assert.Equal(t, "Last sync stable. 2 integrations need auth refresh.", d.HealthSummary())
}

func TestDirectoryReturnsCopies(t *testing.T) {
	d := NewDirectory(seed.MustLoad().Hub, nil)

	all := d.All()
	all[0].Logs[0].Outcome = "Failed"

	it, err := d.Get("salesforce")
	require.NoError(t, err)
	assert.Equal(t, "Success", it.Logs[0].Outcome)
}

func TestRefreshAllLogs(t *testing.T) {
	var buf bytes.Buffer
	d := NewDirectory(seed.MustLoad().Hub, log.New(&buf))

	d.RefreshAll()
	assert.Contains(t, buf.String(), "refresh all connections requested")
	assert.Contains(t, buf.String(), "adobe-dam")
}
