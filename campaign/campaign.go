// ABOUTME: Campaign setup workflow: shell, step panels and their simulated async work
// ABOUTME: Holds shared panel identifiers, delays and construction options
package campaign

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
)

// StepStart is the index the shell jumps to on Backward. It renders the brief.
const StepStart = -1

// PanelID identifies one of the five workflow panels.
type PanelID int

const (
	PanelBrief PanelID = iota
	PanelAssets
	PanelToolSync
	PanelReview
	PanelConfirmation
)

// PanelCount is the number of workflow steps.
const PanelCount = 5

func (p PanelID) String() string {
	switch p {
	case PanelBrief:
		return "brief"
	case PanelAssets:
		return "assets"
	case PanelToolSync:
		return "tool-sync"
	case PanelReview:
		return "review"
	case PanelConfirmation:
		return "confirmation"
	}
	return "unknown"
}

// Dispatch maps a raw tab index to the panel it renders.
// Anything outside 0..4 falls back to the brief.
func Dispatch(index int) PanelID {
	if index < 0 || index >= PanelCount {
		return PanelBrief
	}
	return PanelID(index)
}

// ErrUnknownField is returned when a form field name is not recognised.
var ErrUnknownField = errors.New("unknown field")

// Delays are the simulated latencies of the workflow.
type Delays struct {
	Autosave time.Duration
	Connect  time.Duration
	Sync     time.Duration
	Chat     time.Duration
}

// DefaultDelays returns the stock prototype timings.
func DefaultDelays() Delays {
	return Delays{
		Autosave: 1500 * time.Millisecond,
		Connect:  1500 * time.Millisecond,
		Sync:     2 * time.Second,
		Chat:     time.Second,
	}
}

// Options configure the shell and every panel it mounts.
type Options struct {
	Clock    clockwork.Clock
	Delays   Delays
	Logger   *log.Logger
	OnChange func()
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	def := DefaultDelays()
	if o.Delays.Autosave <= 0 {
		o.Delays.Autosave = def.Autosave
	}
	if o.Delays.Connect <= 0 {
		o.Delays.Connect = def.Connect
	}
	if o.Delays.Sync <= 0 {
		o.Delays.Sync = def.Sync
	}
	if o.Delays.Chat <= 0 {
		o.Delays.Chat = def.Chat
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.OnChange == nil {
		o.OnChange = func() {}
	}
	return o
}

// Panel is a mounted workflow step. Stop cancels its pending work.
type Panel interface {
	ID() PanelID
	Stop()
}
