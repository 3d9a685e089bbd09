package campaign

import (
	"testing"
	"time"

	"github.com/drylogics/marketingos/task"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestAutosaveResetsAfterDelay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := task.NewGroup(clock)
	defer g.Stop()
	a := NewAutosave(g, 1500*time.Millisecond, nil)

	a.Trigger()
	assert.Equal(t, StatusSaving, a.Status())

	clock.Advance(1499 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, StatusSaving, a.Status())

	clock.Advance(time.Millisecond)
	assert.Eventually(t, func() bool { return a.Status() == StatusSaved }, waitFor, tick)
}

func TestAutosaveHasNoDebounce(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := task.NewGroup(clock)
	defer g.Stop()
	a := NewAutosave(g, 1500*time.Millisecond, nil)

	a.Trigger()
	clock.Advance(time.Second)
	a.Trigger()
	assert.Equal(t, 2, g.Pending())

	// the first reset fires even though a newer edit is still "saving"
	clock.Advance(500 * time.Millisecond)
	assert.Eventually(t, func() bool { return a.Status() == StatusSaved }, waitFor, tick)
	assert.Eventually(t, func() bool { return g.Pending() == 1 }, waitFor, tick)
}

func TestAutosaveStopLeavesStatus(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := task.NewGroup(clock)
	a := NewAutosave(g, time.Second, nil)

	a.Trigger()
	g.Stop()
	clock.Advance(2 * time.Second)
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, StatusSaving, a.Status())
	assert.Equal(t, 0, g.Pending())
}

func TestBriefEditsTriggerAutosave(t *testing.T) {
	s, clock := newTestShell(t)
	brief := s.Current().(*BriefBuilder)

	assert.NoError(t, brief.SetField(FieldBudget, "5000"))
	assert.Equal(t, StatusSaving, s.Autosave().Status())

	clock.Advance(DefaultDelays().Autosave)
	assert.Eventually(t, func() bool { return s.Autosave().Status() == StatusSaved }, waitFor, tick)

	brief.ToggleProduct(1)
	assert.Equal(t, StatusSaving, s.Autosave().Status())
}
