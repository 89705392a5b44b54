// Package runner implements the cooperative, task-per-ship scheduler
// (spec.md §4.7): one fiber per active ship running its assigned
// behavior tree, three bounded listener channels, and stop/relaunch
// control driven by the admiral's re-planning decisions.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/arcfleet/spacetrader-agent/internal/application/logging"
	"github.com/arcfleet/spacetrader-agent/internal/domain/behavior"
)

// ChannelCapacity is the bounded queue size spec.md §4.7 specifies for
// every listener channel. Backpressure is intentional.
const ChannelCapacity = 32

// StatusReport is what a fiber posts to ship_status_report when its
// behavior tree finishes (successfully or not).
type StatusReport struct {
	ShipSymbol string
	Err        error
}

// fiber tracks one running ship task's cancellation handle.
type fiber struct {
	cancel context.CancelFunc
}

// Runner owns the three bounded channels and the live fiber set. It holds
// no reference to the admiral — only sender handles to its own channels
// (spec.md §9).
type Runner struct {
	mu     sync.Mutex
	fibers map[string]*fiber
	wg     conc.WaitGroup

	ShipUpdated         chan behavior.ShipSnapshot
	ActionCompleted     chan behavior.Event
	StatusReportChannel chan StatusReport

	tickDuration time.Duration
}

// New constructs a Runner with the spec-mandated channel capacities.
func New(tickDuration time.Duration) *Runner {
	return &Runner{
		fibers:              make(map[string]*fiber),
		ShipUpdated:         make(chan behavior.ShipSnapshot, ChannelCapacity),
		ActionCompleted:     make(chan behavior.Event, ChannelCapacity),
		StatusReportChannel: make(chan StatusReport, ChannelCapacity),
		tickDuration:        tickDuration,
	}
}

// Launch starts a fiber for shipSymbol executing tree once. A tree
// containing a top-level WhileNode stays live across many internal
// iterations; the fiber only posts a StatusReport when Tick finally
// returns (spec.md §4.7: "executes its assigned behavior tree once").
// Launching a ship that already has a live fiber is a no-op — the
// caller is expected to Stop first.
func (r *Runner) Launch(ctx context.Context, shipSymbol string, tree behavior.Node) {
	r.mu.Lock()
	if _, exists := r.fibers[shipSymbol]; exists {
		r.mu.Unlock()
		return
	}
	fiberCtx, cancel := context.WithCancel(ctx)
	r.fibers[shipSymbol] = &fiber{cancel: cancel}
	r.mu.Unlock()

	r.wg.Go(func() {
		tc := &behavior.TickContext{
			Ctx:             fiberCtx,
			StateChanged:    r.ShipUpdated,
			ActionCompleted: r.ActionCompleted,
			TickDuration:    r.tickDuration,
		}
		logging.Info(fiberCtx, "fiber started", map[string]any{"ship": shipSymbol})
		_, err := tree.Tick(tc)
		logging.Info(fiberCtx, "fiber finished", map[string]any{"ship": shipSymbol, "err": errString(err)})

		r.mu.Lock()
		delete(r.fibers, shipSymbol)
		r.mu.Unlock()

		select {
		case r.StatusReportChannel <- StatusReport{ShipSymbol: shipSymbol, Err: err}:
		case <-ctx.Done():
		}
	})
}

// Stop aborts a ship's fiber and removes its tracked state (spec.md §4.7
// "stop_ship"). It does not wait for the goroutine to observe
// cancellation — callers that need that guarantee should await a
// subsequent StatusReport or call Wait.
func (r *Runner) Stop(shipSymbol string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fibers[shipSymbol]; ok {
		f.cancel()
		delete(r.fibers, shipSymbol)
	}
}

// IsRunning reports whether shipSymbol currently has a live fiber.
func (r *Runner) IsRunning(shipSymbol string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.fibers[shipSymbol]
	return ok
}

// StopAll cancels every live fiber — used on a reset signal (spec.md §5
// "the top-level agent manager shuts down all ship fibers").
func (r *Runner) StopAll() {
	r.mu.Lock()
	for _, f := range r.fibers {
		f.cancel()
	}
	r.fibers = make(map[string]*fiber)
	r.mu.Unlock()
}

// Wait blocks for graceful shutdown up to timeout, then returns without
// waiting for stragglers — the caller aborts the process regardless
// (spec.md §5 "graceful wait up to one second, then abort").
func (r *Runner) Wait(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
