// ABOUTME: Integration console state: searchable directory, selection and health summary
// ABOUTME: Filtering is recomputed on every read from the seeded integration list
package hub

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
)

// CategoryAll matches every integration category.
const CategoryAll = "all"

var ErrUnknownIntegration = errors.New("unknown integration")

// Filter keeps integrations whose name contains query (case-insensitive)
// and whose category equals category, unless category is "all".
func Filter(items []models.Integration, query, category string) []models.Integration {
	q := strings.ToLower(query)
	out := make([]models.Integration, 0, len(items))
	for _, it := range items {
		if !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		if category != CategoryAll && string(it.Category) != category {
			continue
		}
		out = append(out, it.Clone())
	}
	return out
}

// CategoryFilters lists the filter chips in display order.
func CategoryFilters() []string {
	out := []string{CategoryAll}
	for _, c := range models.Categories {
		out = append(out, string(c))
	}
	return out
}

// Directory is the left-hand integration list of the console.
type Directory struct {
	mu       sync.Mutex
	items    []models.Integration
	query    string
	category string
	selected string
	health   string
	logger   *log.Logger
}

// NewDirectory selects the first seeded integration.
func NewDirectory(data seed.HubSeed, logger *log.Logger) *Directory {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	items := make([]models.Integration, len(data.Integrations))
	for i, it := range data.Integrations {
		items[i] = it.Clone()
	}
	d := &Directory{
		items:    items,
		category: CategoryAll,
		health:   data.HealthSummary,
		logger:   logger,
	}
	if len(items) > 0 {
		d.selected = items[0].ID
	}
	return d
}

func (d *Directory) Query() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query
}

func (d *Directory) SetQuery(q string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.query = q
}

func (d *Directory) Category() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.category
}

// SetCategory changes the category filter. An empty value is ignored,
// matching a toggle group that refuses to deselect.
func (d *Directory) SetCategory(c string) {
	if c == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.category = c
}

// Filtered applies the current query and category.
func (d *Directory) Filtered() []models.Integration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Filter(d.items, d.query, d.category)
}

// All returns every integration regardless of filters.
func (d *Directory) All() []models.Integration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Filter(d.items, "", CategoryAll)
}

// Get looks up an integration by ID.
func (d *Directory) Get(id string) (models.Integration, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, it := range d.items {
		if it.ID == id {
			return it.Clone(), nil
		}
	}
	return models.Integration{}, fmt.Errorf("%w: %q", ErrUnknownIntegration, id)
}

// Select points the detail panel at an integration. The selection is
// independent of the filters and survives entries being filtered out.
func (d *Directory) Select(id string) error {
	if _, err := d.Get(id); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = id
	return nil
}

// Selected returns the integration shown in the detail panel.
func (d *Directory) Selected() (models.Integration, bool) {
	d.mu.Lock()
	id := d.selected
	d.mu.Unlock()
	it, err := d.Get(id)
	return it, err == nil
}

// NeedingAttention lists integrations that are not connected.
func (d *Directory) NeedingAttention() []models.Integration {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []models.Integration
	for _, it := range d.items {
		if it.Status != models.StatusConnected {
			out = append(out, it.Clone())
		}
	}
	return out
}

// HealthSummary is the text of the AI health bar.
func (d *Directory) HealthSummary() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.health
}

// RefreshAll is the health bar action. Connections are mock data, so it only logs.
func (d *Directory) RefreshAll() {
	ids := make([]string, 0)
	for _, it := range d.NeedingAttention() {
		ids = append(ids, it.ID)
	}
	d.logger.Info("refresh all connections requested", "needs_attention", ids)
}
