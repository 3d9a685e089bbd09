package campaign

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/drylogics/marketingos/seed"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

func testOptions(t *testing.T) (Options, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	return Options{Clock: clock, Delays: DefaultDelays()}, clock
}

func newTestShell(t *testing.T) (*Shell, *clockwork.FakeClock) {
	t.Helper()
	opts, clock := testOptions(t)
	s := NewShell(seed.MustLoad(), opts)
	t.Cleanup(s.Close)
	return s, clock
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		index int
		want  PanelID
	}{
		{StepStart, PanelBrief},
		{-7, PanelBrief},
		{0, PanelBrief},
		{1, PanelAssets},
		{2, PanelToolSync},
		{3, PanelReview},
		{4, PanelConfirmation},
		{5, PanelBrief},
		{99, PanelBrief},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Dispatch(tt.index))
		})
	}
}

func TestShellStartsOnBrief(t *testing.T) {
	s, _ := newTestShell(t)

	assert.Equal(t, 0, s.ActiveTab())
	assert.Equal(t, PanelBrief, s.Panel())
	assert.Equal(t, PanelBrief, s.Current().ID())
	assert.Len(t, s.Tabs(), 5)
	assert.Equal(t, []string{"Ingest", "Target", "Plan", "Create", "Review", "Personalize", "Launch", "Optimize"}, s.Stages())
	assert.Equal(t, 0, s.StageIndex())
	assert.Equal(t, StatusSaved, s.Autosave().Status())
}

func TestNextFollowsFixedOrder(t *testing.T) {
	s, _ := newTestShell(t)

	want := []PanelID{PanelAssets, PanelToolSync, PanelReview, PanelConfirmation}
	for _, p := range want {
		s.Nav(s.Panel()).Next()
		assert.Equal(t, p, s.Panel())
		assert.Equal(t, p, s.Current().ID())
	}
	assert.Nil(t, s.Nav(PanelConfirmation).Next, "confirmation has no next step")
}

func TestBackwardAlwaysReturnsToStart(t *testing.T) {
	for index := 0; index < PanelCount; index++ {
		t.Run(Dispatch(index).String(), func(t *testing.T) {
			s, _ := newTestShell(t)
			s.SetActiveTab(index)

			s.Nav(s.Panel()).Backward()

			assert.Equal(t, StepStart, s.ActiveTab())
			assert.Equal(t, PanelBrief, s.Panel())
			assert.Equal(t, PanelBrief, s.Current().ID())
		})
	}
}

func TestTransitionsIgnoreFormCompleteness(t *testing.T) {
	s, _ := newTestShell(t)
	brief := s.Current().(*BriefBuilder)
	require.NotEmpty(t, brief.MissingRequired())

	brief.Next()
	assert.Equal(t, PanelAssets, s.Panel())
}

func TestRemountOnlyWhenPanelChanges(t *testing.T) {
	s, _ := newTestShell(t)
	brief := s.Current().(*BriefBuilder)
	require.NoError(t, brief.SetField(FieldCampaignName, "Spring"))

	s.SetActiveTab(StepStart)
	assert.Same(t, brief, s.Current(), "0 and -1 render the same brief")

	s.SetActiveTab(1)
	s.SetActiveTab(0)
	fresh := s.Current().(*BriefBuilder)
	assert.NotSame(t, brief, fresh)
	assert.Empty(t, fresh.Brief().CampaignName)
}

func TestLeavingPanelCancelsItsTasks(t *testing.T) {
	s, clock := newTestShell(t)
	s.SetActiveTab(3)
	review := s.Current().(*Review)

	review.Send("what channels work?")
	require.Len(t, review.Messages(), 2)

	s.JumpToStart()
	clock.Advance(5 * time.Second)
	time.Sleep(20 * time.Millisecond)

	assert.Len(t, review.Messages(), 2, "reply must not land after unmount")
}

func TestCloseCancelsBriefAutosave(t *testing.T) {
	s, clock := newTestShell(t)
	brief := s.Current().(*BriefBuilder)
	require.NoError(t, brief.SetField(FieldCampaignName, "Spring"))
	require.Equal(t, 1, s.Pending())

	s.Close()
	assert.True(t, s.Closed())
	assert.Zero(t, s.Pending())

	clock.Advance(5 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, StatusSaving, s.Autosave().Status(), "reset must not fire after close")
}

func TestTransitionsNotifyObserver(t *testing.T) {
	opts, _ := testOptions(t)
	var changes atomic.Int32
	opts.OnChange = func() { changes.Add(1) }
	s := NewShell(seed.MustLoad(), opts)
	defer s.Close()

	s.SetActiveTab(2)
	s.JumpToStart()
	assert.Equal(t, int32(2), changes.Load())
}
