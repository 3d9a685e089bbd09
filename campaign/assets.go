package campaign

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
)

// Asset metadata field names.
const (
	MetaAssetType = "assetType"
	MetaUseCase   = "useCase"
	MetaTeamOwner = "teamOwner"
)

// ViewMode is the asset list layout.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// AssetBoard is step 1: uploaded files, their tags and metadata.
type AssetBoard struct {
	mu       sync.Mutex
	files    []models.UploadedFile
	selected int
	hasSel   bool
	viewMode ViewMode
	showPast bool

	seed     seed.AssetSeed
	nav      Nav
	logger   *log.Logger
	onChange func()
}

func NewAssetBoard(data seed.AssetSeed, nav Nav, opts Options) *AssetBoard {
	opts = opts.withDefaults()
	files := make([]models.UploadedFile, len(data.Uploaded))
	for i, f := range data.Uploaded {
		files[i] = f.Clone()
	}
	return &AssetBoard{
		files:    files,
		viewMode: ViewGrid,
		seed:     data,
		nav:      nav,
		logger:   opts.Logger,
		onChange: opts.OnChange,
	}
}

func (a *AssetBoard) ID() PanelID { return PanelAssets }

// Stop is a no-op: this panel schedules no deferred work.
func (a *AssetBoard) Stop() {}

// Files returns copies of the uploaded files in display order.
func (a *AssetBoard) Files() []models.UploadedFile {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.UploadedFile, len(a.files))
	for i, f := range a.files {
		out[i] = f.Clone()
	}
	return out
}

// Selected returns the selected file, if any.
func (a *AssetBoard) Selected() (models.UploadedFile, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := a.selectedIndex()
	if i < 0 {
		return models.UploadedFile{}, false
	}
	return a.files[i].Clone(), true
}

// Select toggles the selection: choosing the selected file clears it.
func (a *AssetBoard) Select(id int) {
	a.mu.Lock()
	if a.hasSel && a.selected == id {
		a.hasSel = false
	} else if a.indexOf(id) >= 0 {
		a.selected, a.hasSel = id, true
	}
	a.mu.Unlock()
	a.onChange()
}

// Remove drops a file and clears the selection if it pointed at it.
func (a *AssetBoard) Remove(id int) {
	a.mu.Lock()
	a.files = slices.DeleteFunc(a.files, func(f models.UploadedFile) bool { return f.ID == id })
	if a.hasSel && a.selected == id {
		a.hasSel = false
	}
	a.mu.Unlock()
	a.logger.Debug("asset removed", "id", id)
	a.onChange()
}

// ToggleTag adds or removes a tag on the selected file.
func (a *AssetBoard) ToggleTag(tag string) {
	a.mu.Lock()
	if i := a.selectedIndex(); i >= 0 {
		a.files[i].Tags = toggle(a.files[i].Tags, tag)
	}
	a.mu.Unlock()
	a.onChange()
}

// AddTag appends a trimmed custom tag to the selected file if absent.
func (a *AssetBoard) AddTag(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	a.mu.Lock()
	if i := a.selectedIndex(); i >= 0 {
		a.files[i].Tags = addOnce(a.files[i].Tags, tag)
	}
	a.mu.Unlock()
	a.onChange()
}

// SetMetadata sets one metadata field on the selected file.
func (a *AssetBoard) SetMetadata(field, value string) error {
	a.mu.Lock()
	i := a.selectedIndex()
	if i < 0 {
		a.mu.Unlock()
		return nil
	}
	md := &a.files[i].Metadata
	switch field {
	case MetaAssetType:
		md.AssetType = value
	case MetaUseCase:
		md.UseCase = value
	case MetaTeamOwner:
		md.TeamOwner = value
	default:
		a.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	a.mu.Unlock()
	a.onChange()
	return nil
}

func (a *AssetBoard) ViewMode() ViewMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.viewMode
}

func (a *AssetBoard) SetViewMode(m ViewMode) {
	a.mu.Lock()
	a.viewMode = m
	a.mu.Unlock()
	a.onChange()
}

func (a *AssetBoard) ShowPast() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.showPast
}

// TogglePast shows or hides the past-assets drawer.
func (a *AssetBoard) TogglePast() {
	a.mu.Lock()
	a.showPast = !a.showPast
	a.mu.Unlock()
	a.onChange()
}

func (a *AssetBoard) PastAssets() []models.PastAsset { return a.seed.Past }
func (a *AssetBoard) SuggestedTags() []string        { return a.seed.SuggestedTags }

// MetadataOptions returns the choices offered for a metadata field.
func (a *AssetBoard) MetadataOptions(field string) []string {
	switch field {
	case MetaAssetType:
		return a.seed.AssetTypes
	case MetaUseCase:
		return a.seed.UseCases
	case MetaTeamOwner:
		return a.seed.Teams
	}
	return nil
}

func (a *AssetBoard) Next()     { a.nav.Next() }
func (a *AssetBoard) Backward() { a.nav.Backward() }

func (a *AssetBoard) selectedIndex() int {
	if !a.hasSel {
		return -1
	}
	return a.indexOf(a.selected)
}

func (a *AssetBoard) indexOf(id int) int {
	return slices.IndexFunc(a.files, func(f models.UploadedFile) bool { return f.ID == id })
}
