package campaign

import (
	"sync"
	"time"

	"github.com/drylogics/marketingos/task"
)

const (
	StatusSaved  = "All changes saved"
	StatusSaving = "Saving changes..."
)

// Autosave is the header save indicator. Every Trigger schedules its own
// reset; there is no debounce, so the first reset to fire clears the label.
type Autosave struct {
	mu       sync.Mutex
	status   string
	delay    time.Duration
	group    *task.Group
	onChange func()
}

func NewAutosave(group *task.Group, delay time.Duration, onChange func()) *Autosave {
	if onChange == nil {
		onChange = func() {}
	}
	return &Autosave{
		status:   StatusSaved,
		delay:    delay,
		group:    group,
		onChange: onChange,
	}
}

// Trigger marks the draft as saving and schedules the reset.
func (a *Autosave) Trigger() {
	a.mu.Lock()
	a.status = StatusSaving
	a.mu.Unlock()

	a.group.After(a.delay, func() {
		a.mu.Lock()
		a.status = StatusSaved
		a.mu.Unlock()
		a.onChange()
	})
	a.onChange()
}

func (a *Autosave) Status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}
