package hub

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard(t *testing.T) *AddWizard {
	t.Helper()
	return NewAddWizard(seed.MustLoad().Wizard, nil)
}

func TestWizardNextNeedsTool(t *testing.T) {
	w := newTestWizard(t)
	assert.Equal(t, 1, w.Step())
	assert.False(t, w.CanAdvance())

	w.Next()
	assert.Equal(t, 1, w.Step(), "next without a tool is a no-op")

	require.NoError(t, w.SelectTool("hubspot"))
	assert.True(t, w.CanAdvance())
	w.Next()
	assert.Equal(t, 2, w.Step())
}

func TestWizardStepIsClamped(t *testing.T) {
	w := newTestWizard(t)
	require.NoError(t, w.SelectTool("segment"))

	for i := 0; i < 10; i++ {
		w.Next()
		assert.LessOrEqual(t, w.Step(), LastStep)
	}
	assert.Equal(t, LastStep, w.Step())
	assert.Equal(t, "Connect & Save", w.PrimaryLabel())
	assert.Equal(t, "Back", w.SecondaryLabel())

	for i := 0; i < 10; i++ {
		w.Back()
		assert.GreaterOrEqual(t, w.Step(), FirstStep)
	}
	assert.Equal(t, FirstStep, w.Step())
	assert.Equal(t, "Next", w.PrimaryLabel())
	assert.Equal(t, "Cancel", w.SecondaryLabel())
}

func TestWizardSelections(t *testing.T) {
	w := newTestWizard(t)

	assert.ErrorIs(t, w.SelectTool("myspace"), ErrUnknownTool)
	_, ok := w.Tool()
	assert.False(t, ok)

	assert.Equal(t, "hourly", w.Frequency())
	require.NoError(t, w.SetFrequency("daily"))
	assert.ErrorIs(t, w.SetFrequency("fortnightly"), ErrUnknownFrequency)
	assert.Equal(t, "daily", w.Frequency())

	require.NoError(t, w.ToggleDataType("contacts"))
	require.NoError(t, w.ToggleDataType("audiences"))
	require.NoError(t, w.ToggleDataType("contacts"))
	assert.ErrorIs(t, w.ToggleDataType("invoices"), ErrUnknownDataType)
	assert.Equal(t, []string{"audiences"}, w.DataTypes())

	assert.Equal(t, AuthOAuth, w.Auth().Method)
	assert.ErrorIs(t, w.SetAuth(AuthSettings{Method: "kerberos"}), ErrUnknownAuthMethod)
	require.NoError(t, w.SetAuth(AuthSettings{Method: AuthAPIKey}))
	assert.Equal(t, AuthAPIKey, w.Auth().Method)
}

func TestWizardSummary(t *testing.T) {
	w := newTestWizard(t)
	require.NoError(t, w.SelectTool("bynder"))
	require.NoError(t, w.ToggleDataType("creative-assets"))
	require.NoError(t, w.SetFrequency("realtime"))

	s := w.Summary()
	assert.Equal(t, "Bynder", s.Tool.Name)
	require.Len(t, s.DataTypes, 1)
	assert.Equal(t, "Images, videos, and design files", s.DataTypes[0].Description)
	assert.Equal(t, "Real-time", s.Frequency.Name)
	assert.Equal(t, "OAuth 2.0", s.AuthMethod.Name)
}

func TestConnectAndSaveLogsAndCloses(t *testing.T) {
	var buf bytes.Buffer
	w := NewAddWizard(seed.MustLoad().Wizard, log.New(&buf))
	require.NoError(t, w.SelectTool("wordpress"))
	require.NoError(t, w.ToggleDataType("products"))

	req := w.ConnectAndSave()
	assert.True(t, w.Closed())
	assert.Equal(t, "wordpress", req.Tool.ID)
	assert.Equal(t, []string{"products"}, req.DataTypes)
	assert.Equal(t, "hourly", req.Frequency)
	assert.Contains(t, buf.String(), "creating integration")
}

func TestFreshWizardOnReopen(t *testing.T) {
	data := seed.MustLoad().Wizard
	w := NewAddWizard(data, nil)
	require.NoError(t, w.SelectTool("meta"))
	w.Next()
	w.Close()

	reopened := NewAddWizard(data, nil)
	assert.Equal(t, FirstStep, reopened.Step())
	_, ok := reopened.Tool()
	assert.False(t, ok)
	assert.NotEqual(t, w.State(), reopened.State())
}

func TestAuthorizeURL(t *testing.T) {
	w := newTestWizard(t)

	_, err := w.AuthorizeURL()
	assert.ErrorIs(t, err, ErrOAuthUnavailable)

	require.NoError(t, w.SelectTool("segment"))
	_, err = w.AuthorizeURL()
	assert.ErrorIs(t, err, ErrOAuthUnavailable, "segment has no oauth endpoint")

	require.NoError(t, w.SelectTool("salesforce"))
	_, err = w.AuthorizeURL()
	assert.ErrorIs(t, err, ErrOAuthUnavailable, "client id required")

	require.NoError(t, w.SetAuth(AuthSettings{
		Method:      AuthOAuth,
		ClientID:    "abc123",
		RedirectURI: "https://example.com/callback",
	}))
	raw, err := w.AuthorizeURL()
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "login.salesforce.com", u.Host)
	q := u.Query()
	assert.Equal(t, "abc123", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "https://example.com/callback", q.Get("redirect_uri"))
	assert.Equal(t, "api refresh_token", q.Get("scope"))
	assert.Equal(t, w.State(), q.Get("state"))
	assert.Equal(t, "offline", q.Get("access_type"))

	require.NoError(t, w.SetAuth(AuthSettings{Method: AuthSSO, ClientID: "abc123"}))
	_, err = w.AuthorizeURL()
	assert.ErrorIs(t, err, ErrOAuthUnavailable)
}
