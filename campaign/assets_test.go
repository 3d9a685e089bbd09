package campaign

import (
	"testing"

	"github.com/drylogics/marketingos/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T) *AssetBoard {
	t.Helper()
	opts, _ := testOptions(t)
	a := NewAssetBoard(seed.MustLoad().Assets, Nav{}, opts)
	t.Cleanup(a.Stop)
	return a
}

func tagsOf(t *testing.T, a *AssetBoard) []string {
	t.Helper()
	f, ok := a.Selected()
	require.True(t, ok)
	return f.Tags
}

func TestToggleTagIdempotence(t *testing.T) {
	a := newTestBoard(t)
	a.Select(2)
	require.Equal(t, []string{"hero", "product-x"}, tagsOf(t, a))

	a.ToggleTag("hero")
	assert.Equal(t, []string{"product-x"}, tagsOf(t, a))

	a.ToggleTag("hero")
	assert.Equal(t, []string{"product-x", "hero"}, tagsOf(t, a))
}

func TestAddTag(t *testing.T) {
	a := newTestBoard(t)
	a.Select(3)

	a.AddTag("  launch  ")
	a.AddTag("launch")
	a.AddTag("   ")
	assert.Equal(t, []string{"launch"}, tagsOf(t, a))
}

func TestTagEditsNeedSelection(t *testing.T) {
	a := newTestBoard(t)
	before := a.Files()

	a.ToggleTag("hero")
	a.AddTag("new")
	require.NoError(t, a.SetMetadata(MetaUseCase, "Social"))

	assert.Equal(t, before, a.Files())
}

func TestSelectToggles(t *testing.T) {
	a := newTestBoard(t)

	a.Select(1)
	f, ok := a.Selected()
	require.True(t, ok)
	assert.Equal(t, "brand_guidelines_2025.pdf", f.Name)

	a.Select(1)
	_, ok = a.Selected()
	assert.False(t, ok)

	a.Select(404)
	_, ok = a.Selected()
	assert.False(t, ok, "unknown ids are not selectable")
}

func TestRemoveClearsSelection(t *testing.T) {
	a := newTestBoard(t)
	a.Select(2)

	a.Remove(2)
	assert.Len(t, a.Files(), 2)
	_, ok := a.Selected()
	assert.False(t, ok)

	a.Select(1)
	a.Remove(3)
	_, ok = a.Selected()
	assert.True(t, ok, "removing another file keeps the selection")
}

func TestSetMetadata(t *testing.T) {
	a := newTestBoard(t)
	a.Select(3)

	require.NoError(t, a.SetMetadata(MetaAssetType, "Video"))
	require.NoError(t, a.SetMetadata(MetaTeamOwner, "Product"))
	assert.ErrorIs(t, a.SetMetadata("color", "red"), ErrUnknownField)

	f, _ := a.Selected()
	assert.Equal(t, "Video", f.Metadata.AssetType)
	assert.Equal(t, "Product", f.Metadata.TeamOwner)
	assert.Empty(t, f.Metadata.UseCase)
	assert.Contains(t, a.MetadataOptions(MetaUseCase), "Banner")
}

func TestViewModeAndPastAssets(t *testing.T) {
	a := newTestBoard(t)

	assert.Equal(t, ViewGrid, a.ViewMode())
	a.SetViewMode(ViewList)
	assert.Equal(t, ViewList, a.ViewMode())

	assert.False(t, a.ShowPast())
	a.TogglePast()
	assert.True(t, a.ShowPast())
	assert.Len(t, a.PastAssets(), 4)
	assert.Len(t, a.SuggestedTags(), 10)
}

func TestBoardDoesNotMutateSeed(t *testing.T) {
	data := seed.MustLoad()
	opts, _ := testOptions(t)
	a := NewAssetBoard(data.Assets, Nav{}, opts)
	defer a.Stop()

	a.Select(2)
	a.ToggleTag("hero")

	assert.Equal(t, []string{"hero", "product-x"}, data.Assets.Uploaded[1].Tags)
}
