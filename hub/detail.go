package hub

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
)

// Tab is a detail sub-view.
type Tab string

const (
	TabOverview Tab = "overview"
	TabSyncLogs Tab = "sync-logs"
	TabSettings Tab = "settings"
)

var Tabs = []Tab{TabOverview, TabSyncLogs, TabSettings}

var ErrUnknownTab = errors.New("unknown detail tab")

func (t Tab) Title() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabSyncLogs:
		return "Sync Logs"
	case TabSettings:
		return "Settings & Rules"
	}
	return string(t)
}

// ParseTab validates a tab name. Empty means overview.
func ParseTab(s string) (Tab, error) {
	if s == "" {
		return TabOverview, nil
	}
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Action is one of the overview quick actions.
type Action string

const (
	ActionRefreshSync    Action = "refresh-sync"
	ActionReauthenticate Action = "re-authenticate"
	ActionTestConnection Action = "test-connection"
	ActionDisconnect     Action = "disconnect"
)

var Actions = []Action{ActionRefreshSync, ActionReauthenticate, ActionTestConnection, ActionDisconnect}

// Detail holds the tab of the detail panel. The tab survives changes
// of the selected integration.
type Detail struct {
	mu     sync.Mutex
	tab    Tab
	logger *log.Logger
}

func NewDetail(logger *log.Logger) *Detail {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Detail{tab: TabOverview, logger: logger}
}

func (d *Detail) Tab() Tab {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tab
}

func (d *Detail) SetTab(t Tab) error {
	if _, err := ParseTab(string(t)); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tab = t
	return nil
}

// CycleTab moves to the next tab, wrapping around.
func (d *Detail) CycleTab(delta int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := 0
	for j, t := range Tabs {
		if t == d.tab {
			i = j
		}
	}
	n := len(Tabs)
	d.tab = Tabs[((i+delta)%n+n)%n]
}

// Trigger runs a quick action. The connections are mock data, so it only logs.
func (d *Detail) Trigger(a Action, it models.Integration) {
	d.logger.Info("integration action requested", "action", a, "integration", it.ID)
}

// ExportLogs writes the integration's sync log as CSV.
func ExportLogs(w io.Writer, it models.Integration) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "direction", "action", "volume", "outcome"}); err != nil {
		return fmt.Errorf("failed to write log header: %w", err)
	}
	for _, l := range it.Logs {
		if err := cw.Write([]string{l.Timestamp, l.Direction, l.Action, l.Volume, l.Outcome}); err != nil {
			return fmt.Errorf("failed to write log row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush logs: %w", err)
	}
	return nil
}
