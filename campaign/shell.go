package campaign

import (
	"slices"
	"sync"

	"github.com/drylogics/marketingos/seed"
	"github.com/drylogics/marketingos/task"
)

// Nav is the pair of transitions a panel may ask the shell for.
// Next is nil on the last step.
type Nav struct {
	Next     func()
	Backward func()
}

// Shell tracks the active workflow tab and owns the mounted panel.
type Shell struct {
	mu     sync.Mutex
	active int
	panel  Panel

	data     *seed.Data
	opts     Options
	group    *task.Group
	autosave *Autosave
}

// NewShell mounts the brief panel at tab 0.
func NewShell(data *seed.Data, opts Options) *Shell {
	opts = opts.withDefaults()
	group := task.NewGroup(opts.Clock)
	s := &Shell{
		data:  data,
		opts:  opts,
		group: group,
	}
	s.autosave = NewAutosave(group, opts.Delays.Autosave, opts.OnChange)
	s.panel = s.mount(PanelBrief)
	return s
}

func (s *Shell) ActiveTab() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetActiveTab is the only mutator of the active index. A panel is
// remounted only when the dispatch target changes, so moving between
// 0 and StepStart keeps the brief's state.
func (s *Shell) SetActiveTab(index int) {
	s.mu.Lock()
	s.active = index
	var old Panel
	if target := Dispatch(index); target != s.panel.ID() {
		old = s.panel
		s.panel = s.mount(target)
	}
	s.mu.Unlock()

	if old != nil {
		old.Stop()
	}
	s.opts.Logger.Debug("workflow tab changed", "index", index, "panel", Dispatch(index))
	s.opts.OnChange()
}

// JumpToStart is the Backward transition of every panel.
func (s *Shell) JumpToStart() {
	s.SetActiveTab(StepStart)
}

// Panel returns the panel the active index dispatches to.
func (s *Shell) Panel() PanelID {
	return Dispatch(s.ActiveTab())
}

// Current returns the mounted panel.
func (s *Shell) Current() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

// Nav returns the transitions wired to a given panel.
func (s *Shell) Nav(p PanelID) Nav {
	nav := Nav{Backward: s.JumpToStart}
	if p < PanelConfirmation {
		next := int(p) + 1
		nav.Next = func() { s.SetActiveTab(next) }
	}
	return nav
}

func (s *Shell) Autosave() *Autosave {
	return s.autosave
}

// Tabs are the tab-bar labels in step order.
func (s *Shell) Tabs() []string {
	return slices.Clone(s.data.Workflow.Tabs)
}

// Stages are the eight lifecycle stages shown on the progress strip.
func (s *Shell) Stages() []string {
	return slices.Clone(s.data.Workflow.Stages)
}

// StageIndex is the highlighted lifecycle stage. The prototype never advances it.
func (s *Shell) StageIndex() int {
	return 0
}

// Close stops the mounted panel and every pending shell task.
func (s *Shell) Close() {
	s.mu.Lock()
	p := s.panel
	s.mu.Unlock()
	p.Stop()
	s.group.Stop()
}

// Pending reports the shell timers that have not fired yet.
func (s *Shell) Pending() int {
	return s.group.Pending()
}

// Closed reports whether Close has been called.
func (s *Shell) Closed() bool {
	return s.group.Stopped()
}

func (s *Shell) mount(p PanelID) Panel {
	nav := s.Nav(p)
	switch p {
	case PanelAssets:
		return NewAssetBoard(s.data.Assets, nav, s.opts)
	case PanelToolSync:
		return NewToolSync(s.data.ToolSync, nav, s.opts)
	case PanelReview:
		return NewReview(s.data.Review, nav, s.opts)
	case PanelConfirmation:
		return NewConfirmation(s.data.Confirmation, nav, s.opts)
	default:
		return NewBriefBuilder(s.data.Brief, s.autosave, nav, s.opts)
	}
}
