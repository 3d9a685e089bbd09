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

func TestSettingsDraftEdits(t *testing.T) {
	it, _ := seed.MustLoad().Integration("segment")
	s := NewSettingsDraft(it, nil)
	assert.False(t, s.Dirty())

	require.NoError(t, s.SetSyncDirection(models.SyncBidirectional))
	require.NoError(t, s.SetConflictResolution(models.ConflictLastUpdated))
	require.NoError(t, s.ToggleAlert(AlertAuthExpiration))

	got := s.Settings()
	assert.Equal(t, models.SyncBidirectional, got.SyncDirection)
	assert.Equal(t, models.ConflictLastUpdated, got.ConflictResolution)
	assert.True(t, got.Alerts.AuthExpiration)
	assert.True(t, s.Dirty())

	assert.ErrorIs(t, s.SetSyncDirection("sideways"), ErrInvalidSetting)
	assert.ErrorIs(t, s.SetConflictResolution("coin-flip"), ErrInvalidSetting)
	assert.ErrorIs(t, s.ToggleAlert("pager"), ErrInvalidSetting)

	s.Cancel()
	assert.Equal(t, it.Settings, s.Settings())
	assert.False(t, s.Dirty())
}

func TestSettingsMappings(t *testing.T) {
	it, _ := seed.MustLoad().Integration("segment")
	s := NewSettingsDraft(it, nil)

	require.Len(t, s.Mappings(), 1)
	assert.Equal(t, "segment_audience_id", s.Mappings()[0].Source)

	s.AddMapping()
	require.NoError(t, s.SetMapping(1, FieldMapping{Source: "email", Target: "contact_email"}))
	assert.ErrorIs(t, s.SetMapping(5, FieldMapping{}), ErrInvalidSetting)
	assert.Len(t, s.Mappings(), 2)
	assert.True(t, s.Dirty())
}

func TestSettingsSaveDoesNotWriteBack(t *testing.T) {
	var buf bytes.Buffer
	dir := NewDirectory(seed.MustLoad().Hub, nil)
	it, err := dir.Get("workfront")
	require.NoError(t, err)

	s := NewSettingsDraft(it, log.New(&buf))
	require.NoError(t, s.SetSyncDirection(models.SyncBidirectional))
	saved := s.Save()

	assert.Equal(t, models.SyncBidirectional, saved.SyncDirection)
	assert.Contains(t, buf.String(), "integration settings saved")

	again, _ := dir.Get("workfront")
	assert.Equal(t, models.SyncOneWay, again.Settings.SyncDirection)
}
