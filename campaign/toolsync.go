package campaign

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/drylogics/marketingos/task"
)

// SyncStatus is the state of the simulated import.
type SyncStatus string

const (
	SyncIdle      SyncStatus = "idle"
	SyncSyncing   SyncStatus = "syncing"
	SyncCompleted SyncStatus = "completed"
)

// ToolSync is step 2: pick a CMP and CRM, connect, then pull fields.
type ToolSync struct {
	mu        sync.Mutex
	cmp       string
	crm       string
	connected bool
	status    SyncStatus
	rows      []models.ImportedDataRow

	seed         seed.ToolSyncSeed
	connectDelay time.Duration
	syncDelay    time.Duration
	nav          Nav
	group        *task.Group
	logger       *log.Logger
	onChange     func()
}

func NewToolSync(data seed.ToolSyncSeed, nav Nav, opts Options) *ToolSync {
	opts = opts.withDefaults()
	rows := make([]models.ImportedDataRow, len(data.Imported))
	copy(rows, data.Imported)
	return &ToolSync{
		status:       SyncIdle,
		rows:         rows,
		seed:         data,
		connectDelay: opts.Delays.Connect,
		syncDelay:    opts.Delays.Sync,
		nav:          nav,
		group:        task.NewGroup(opts.Clock),
		logger:       opts.Logger,
		onChange:     opts.OnChange,
	}
}

func (t *ToolSync) ID() PanelID { return PanelToolSync }

func (t *ToolSync) Stop() { t.group.Stop() }

func (t *ToolSync) SelectCMP(id string) {
	t.mu.Lock()
	t.cmp = id
	t.mu.Unlock()
	t.onChange()
}

func (t *ToolSync) SelectCRM(id string) {
	t.mu.Lock()
	t.crm = id
	t.mu.Unlock()
	t.onChange()
}

// CanConnect reports whether both source tools are chosen.
func (t *ToolSync) CanConnect() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cmp != "" && t.crm != ""
}

// Connect simulates linking both tools. It is a no-op until a CMP and
// a CRM are selected.
func (t *ToolSync) Connect() {
	t.mu.Lock()
	if t.cmp == "" || t.crm == "" {
		t.mu.Unlock()
		return
	}
	t.status = SyncSyncing
	cmp, crm := t.cmp, t.crm
	t.mu.Unlock()

	t.logger.Info("connecting sync sources", "cmp", cmp, "crm", crm)
	t.group.After(t.connectDelay, func() {
		t.mu.Lock()
		t.connected = true
		t.status = SyncCompleted
		t.mu.Unlock()
		t.onChange()
	})
	t.onChange()
}

// Sync simulates a pull. It needs a connection and no sync in flight.
func (t *ToolSync) Sync() {
	t.mu.Lock()
	if !t.connected || t.status == SyncSyncing {
		t.mu.Unlock()
		return
	}
	t.status = SyncSyncing
	t.mu.Unlock()

	t.group.After(t.syncDelay, func() {
		t.mu.Lock()
		t.status = SyncCompleted
		t.mu.Unlock()
		t.onChange()
	})
	t.onChange()
}

func (t *ToolSync) Status() SyncStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *ToolSync) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

// Selection returns the chosen CMP and CRM ids.
func (t *ToolSync) Selection() (cmp, crm string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cmp, t.crm
}

// Rows returns a copy of the imported field table.
func (t *ToolSync) Rows() []models.ImportedDataRow {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.ImportedDataRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// ToggleOverride flips manual override on a row.
func (t *ToolSync) ToggleOverride(i int) {
	t.mu.Lock()
	if i >= 0 && i < len(t.rows) {
		t.rows[i].Overridden = !t.rows[i].Overridden
	}
	t.mu.Unlock()
	t.onChange()
}

// SetValue edits a row, but only while it is overridden.
func (t *ToolSync) SetValue(i int, v string) {
	t.mu.Lock()
	if i >= 0 && i < len(t.rows) && t.rows[i].Overridden {
		t.rows[i].Value = v
	}
	t.mu.Unlock()
	t.onChange()
}

// Progress counts rows with a non-empty value.
func (t *ToolSync) Progress() (filled, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.rows {
		if r.Value != "" {
			filled++
		}
	}
	return filled, len(t.rows)
}

func (t *ToolSync) CMPOptions() []models.Option { return t.seed.CMPOptions }
func (t *ToolSync) CRMOptions() []models.Option { return t.seed.CRMOptions }

func (t *ToolSync) Next()     { t.nav.Next() }
func (t *ToolSync) Backward() { t.nav.Backward() }
