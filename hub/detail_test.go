package hub

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailTabs(t *testing.T) {
	d := NewDetail(nil)
	assert.Equal(t, TabOverview, d.Tab())

	require.NoError(t, d.SetTab(TabSettings))
	assert.Equal(t, TabSettings, d.Tab())

	assert.ErrorIs(t, d.SetTab("billing"), ErrUnknownTab)
	assert.Equal(t, TabSettings, d.Tab())

	d.CycleTab(1)
	assert.Equal(t, TabOverview, d.Tab())
	d.CycleTab(-1)
	assert.Equal(t, TabSettings, d.Tab())
}

func TestDetailTabSurvivesSelectionChange(t *testing.T) {
	dir := NewDirectory(seed.MustLoad().Hub, nil)
	d := NewDetail(nil)

	require.NoError(t, d.SetTab(TabSyncLogs))
	require.NoError(t, dir.Select("workfront"))

	assert.Equal(t, TabSyncLogs, d.Tab())
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabOverview, tab)

	tab, err = ParseTab("sync-logs")
	require.NoError(t, err)
	assert.Equal(t, "Sync Logs", tab.Title())

	_, err = ParseTab("logs")
	assert.ErrorIs(t, err, ErrUnknownTab)
}

func TestTriggerLogsOnly(t *testing.T) {
	var buf bytes.Buffer
	d := NewDetail(log.New(&buf))

	d.Trigger(ActionDisconnect, models.Integration{ID: "meta"})
	assert.Contains(t, buf.String(), "disconnect")
	assert.Contains(t, buf.String(), "meta")
}

func TestExportLogs(t *testing.T) {
	it, ok := seed.MustLoad().Integration("salesforce")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, ExportLogs(&buf, it))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "timestamp,direction,action,volume,outcome", lines[0])
	assert.Equal(t, `10:22 AM,Pull,Contacts from Salesforce,"2,137",Success`, lines[1])
}
