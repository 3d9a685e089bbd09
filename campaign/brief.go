package campaign

import (
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
)

// Brief form field names.
const (
	FieldCampaignName = "campaignName"
	FieldDescription  = "description"
	FieldObjective    = "objective"
	FieldStartDate    = "startDate"
	FieldEndDate      = "endDate"
	FieldBudget       = "budget"
	FieldNotes        = "notes"
)

// BriefFields lists the editable text fields in form order.
var BriefFields = []string{
	FieldCampaignName,
	FieldDescription,
	FieldObjective,
	FieldStartDate,
	FieldEndDate,
	FieldBudget,
	FieldNotes,
}

var requiredFields = []struct {
	field string
	label string
}{
	{FieldCampaignName, "Campaign Name"},
	{FieldObjective, "Campaign Objective"},
	{FieldStartDate, "Start Date"},
	{FieldEndDate, "End Date"},
	{FieldBudget, "Budget"},
}

// BriefBuilder is step 0: the campaign brief form and its AI sidebar.
type BriefBuilder struct {
	mu              sync.Mutex
	brief           models.Brief
	showSuggestions bool
	approver        string

	seed     seed.BriefSeed
	autosave *Autosave
	nav      Nav
	logger   *log.Logger
	onChange func()
}

func NewBriefBuilder(data seed.BriefSeed, autosave *Autosave, nav Nav, opts Options) *BriefBuilder {
	opts = opts.withDefaults()
	return &BriefBuilder{
		brief:           models.Brief{Products: []int{}},
		showSuggestions: true,
		seed:            data,
		autosave:        autosave,
		nav:             nav,
		logger:          opts.Logger,
		onChange:        opts.OnChange,
	}
}

func (b *BriefBuilder) ID() PanelID { return PanelBrief }

// Stop is a no-op: this panel schedules no deferred work.
func (b *BriefBuilder) Stop() {}

// Brief returns a copy of the current record.
func (b *BriefBuilder) Brief() models.Brief {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.brief
	out.Products = slices.Clone(b.brief.Products)
	return out
}

// Field returns the value of a text field.
func (b *BriefBuilder) Field(name string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, err := fieldPtr(&b.brief, name)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// SetField replaces one field of the record and triggers autosave.
func (b *BriefBuilder) SetField(name, value string) error {
	b.mu.Lock()
	next := b.brief
	next.Products = slices.Clone(b.brief.Products)
	p, err := fieldPtr(&next, name)
	if err != nil {
		b.mu.Unlock()
		return err
	}
	*p = value
	b.brief = next
	b.mu.Unlock()

	b.autosave.Trigger()
	return nil
}

// ToggleProduct adds or removes a linked product and triggers autosave.
func (b *BriefBuilder) ToggleProduct(id int) {
	b.mu.Lock()
	b.brief.Products = toggle(b.brief.Products, id)
	b.mu.Unlock()

	b.autosave.Trigger()
}

// HasProduct reports whether a product is linked to the brief.
func (b *BriefBuilder) HasProduct(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Contains(b.brief.Products, id)
}

// ShowSuggestions reports whether the AI suggestions card is visible.
func (b *BriefBuilder) ShowSuggestions() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.showSuggestions
}

// DismissSuggestions hides the AI suggestions card for this mount.
func (b *BriefBuilder) DismissSuggestions() {
	b.mu.Lock()
	b.showSuggestions = false
	b.mu.Unlock()
	b.onChange()
}

func (b *BriefBuilder) Approver() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.approver
}

// SetApprover selects a campaign approver. Empty clears the choice.
func (b *BriefBuilder) SetApprover(id string) {
	b.mu.Lock()
	b.approver = id
	b.mu.Unlock()
	b.onChange()
}

// MissingRequired lists labels of required fields that are still blank.
// It is advisory only and never blocks Next.
func (b *BriefBuilder) MissingRequired() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var missing []string
	for _, r := range requiredFields {
		p, _ := fieldPtr(&b.brief, r.field)
		if *p == "" {
			missing = append(missing, r.label)
		}
	}
	return missing
}

// SaveDraft logs the current record.
func (b *BriefBuilder) SaveDraft() {
	brief := b.Brief()
	b.logger.Info("brief draft saved", "campaign", brief.CampaignName, "products", brief.Products)
	b.autosave.Trigger()
}

func (b *BriefBuilder) Objectives() []models.Option    { return b.seed.Objectives }
func (b *BriefBuilder) Products() []models.Product     { return b.seed.Products }
func (b *BriefBuilder) Approvers() []models.Option     { return b.seed.Approvers }
func (b *BriefBuilder) Hints() []models.Hint           { return b.seed.Hints }
func (b *BriefBuilder) History() []models.HistoryEntry { return b.seed.History }

// Next moves to the assets step regardless of form completeness.
func (b *BriefBuilder) Next() { b.nav.Next() }

func fieldPtr(brief *models.Brief, name string) (*string, error) {
	switch name {
	case FieldCampaignName:
		return &brief.CampaignName, nil
	case FieldDescription:
		return &brief.Description, nil
	case FieldObjective:
		return &brief.Objective, nil
	case FieldStartDate:
		return &brief.StartDate, nil
	case FieldEndDate:
		return &brief.EndDate, nil
	case FieldBudget:
		return &brief.Budget, nil
	case FieldNotes:
		return &brief.Notes, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
}
