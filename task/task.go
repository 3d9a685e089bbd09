// ABOUTME: Cancellable deferred work bound to the lifetime of a UI component
// ABOUTME: Every simulated delay in the app is scheduled through a Group on an injected clock
package task

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Group owns the pending timers and goroutines of one component.
// Stop cancels everything still pending; callbacks scheduled after
// Stop are dropped.
type Group struct {
	clock clockwork.Clock

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	timers  map[uint64]clockwork.Timer
	nextID  uint64
	stopped bool
}

// NewGroup creates a Group scheduling on clock. A nil clock means the real clock.
func NewGroup(clock clockwork.Clock) *Group {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Group{
		clock:  clock,
		ctx:    ctx,
		cancel: cancel,
		timers: make(map[uint64]clockwork.Timer),
	}
}

// Clock returns the clock the group schedules on.
func (g *Group) Clock() clockwork.Clock {
	return g.clock
}

// Context is cancelled when the group stops.
func (g *Group) Context() context.Context {
	return g.ctx
}

// After runs fn once d has elapsed unless the group stops first.
// The returned func cancels just this task.
func (g *Group) After(d time.Duration, fn func()) (cancel func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return func() {}
	}

	id := g.nextID
	g.nextID++

	g.timers[id] = g.clock.AfterFunc(d, func() {
		g.mu.Lock()
		_, live := g.timers[id]
		delete(g.timers, id)
		stopped := g.stopped
		g.mu.Unlock()

		if live && !stopped {
			fn()
		}
	})

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if t, ok := g.timers[id]; ok {
			t.Stop()
			delete(g.timers, id)
		}
	}
}

// Go runs fn in its own goroutine with the group's context.
func (g *Group) Go(fn func(ctx context.Context)) {
	g.mu.Lock()
	stopped := g.stopped
	g.mu.Unlock()
	if stopped {
		return
	}
	go fn(g.ctx)
}

// Pending reports how many timers have not fired yet.
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.timers)
}

// Stopped reports whether Stop has been called.
func (g *Group) Stopped() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stopped
}

// Stop cancels every pending timer and the group context. Safe to call twice.
func (g *Group) Stop() {
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return
	}
	g.stopped = true
	for id, t := range g.timers {
		t.Stop()
		delete(g.timers, id)
	}
	g.mu.Unlock()

	g.cancel()
}
