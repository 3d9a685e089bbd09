package hub

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
)

var ErrInvalidSetting = errors.New("invalid setting")

// Alert toggle names.
const (
	AlertSyncLatency    = "sync_latency"
	AlertAuthExpiration = "auth_expiration"
	AlertDataError      = "data_error"
)

// FieldMapping maps an external field to an internal one.
type FieldMapping struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

var defaultMappings = []FieldMapping{{Source: "segment_audience_id", Target: "internal_segment_code"}}

// SettingsDraft is an editable copy of an integration's sync rules.
// Save never writes back to the directory.
type SettingsDraft struct {
	mu            sync.Mutex
	integrationID string
	original      models.SyncSettings
	settings      models.SyncSettings
	mappings      []FieldMapping
	logger        *log.Logger
}

func NewSettingsDraft(it models.Integration, logger *log.Logger) *SettingsDraft {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SettingsDraft{
		integrationID: it.ID,
		original:      it.Settings,
		settings:      it.Settings,
		mappings:      slices.Clone(defaultMappings),
		logger:        logger,
	}
}

// IntegrationID is the integration the draft was opened for.
func (s *SettingsDraft) IntegrationID() string {
	return s.integrationID
}

func (s *SettingsDraft) Settings() models.SyncSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *SettingsDraft) SetSyncDirection(v string) error {
	if v != models.SyncOneWay && v != models.SyncBidirectional {
		return fmt.Errorf("%w: sync direction %q", ErrInvalidSetting, v)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.SyncDirection = v
	return nil
}

func (s *SettingsDraft) SetConflictResolution(v string) error {
	if v != models.ConflictLastUpdated && v != models.ConflictSourceOfTruth {
		return fmt.Errorf("%w: conflict resolution %q", ErrInvalidSetting, v)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.ConflictResolution = v
	return nil
}

// ToggleAlert flips one of the notification toggles.
func (s *SettingsDraft) ToggleAlert(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &s.settings.Alerts
	switch name {
	case AlertSyncLatency:
		a.SyncLatency = !a.SyncLatency
	case AlertAuthExpiration:
		a.AuthExpiration = !a.AuthExpiration
	case AlertDataError:
		a.DataError = !a.DataError
	default:
		return fmt.Errorf("%w: alert %q", ErrInvalidSetting, name)
	}
	return nil
}

func (s *SettingsDraft) Mappings() []FieldMapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.mappings)
}

// AddMapping appends an empty mapping row.
func (s *SettingsDraft) AddMapping() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings = append(s.mappings, FieldMapping{})
}

func (s *SettingsDraft) SetMapping(i int, m FieldMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.mappings) {
		return fmt.Errorf("%w: mapping %d", ErrInvalidSetting, i)
	}
	s.mappings[i] = m
	return nil
}

// Dirty reports whether the draft differs from the integration.
func (s *SettingsDraft) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings != s.original || !slices.Equal(s.mappings, defaultMappings)
}

// Cancel discards every edit.
func (s *SettingsDraft) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = s.original
	s.mappings = slices.Clone(defaultMappings)
}

// Save logs the draft. Settings stay display-only until save wiring exists.
func (s *SettingsDraft) Save() models.SyncSettings {
	settings := s.Settings()
	s.logger.Info("integration settings saved",
		"integration", s.integrationID,
		"sync_direction", settings.SyncDirection,
		"conflict_resolution", settings.ConflictResolution,
		"alerts", settings.Alerts,
		"mappings", s.Mappings())
	return settings
}
