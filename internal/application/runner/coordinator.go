package runner

import (
	"context"

	"github.com/arcfleet/spacetrader-agent/internal/application/admiral"
	"github.com/arcfleet/spacetrader-agent/internal/application/logging"
	"github.com/arcfleet/spacetrader-agent/internal/domain/behavior"
	"github.com/arcfleet/spacetrader-agent/internal/domain/fleet"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
)

// Coordinator runs the three long-lived listeners spec.md §4.7 names:
// persist changed ships, log action-completed events (registering and
// re-planning any ship a transaction purchased), and apply status reports
// to the admiral before relaunching or stopping fibers. It is the one place that references both the runner
// and the admiral, so the cycle between them stays broken at the package
// level (spec.md §9).
type Coordinator struct {
	runner    *Runner
	admiral   AdmiralPort
	persist   ShipPersister
	facts     FactsProvider
	buildTree TreeBuilder
	metrics   FleetMetrics
}

// NewCoordinator wires a Runner to an AdmiralPort. Both are referenced
// only through their narrow ports, never their concrete internals.
// metrics may be nil.
func NewCoordinator(r *Runner, adm AdmiralPort, persist ShipPersister, facts FactsProvider, buildTree TreeBuilder, metrics FleetMetrics) *Coordinator {
	return &Coordinator{runner: r, admiral: adm, persist: persist, facts: facts, buildTree: buildTree, metrics: metrics}
}

// Run drains all three channels until ctx is cancelled. Call it in its
// own goroutine once at startup.
func (c *Coordinator) Run(ctx context.Context) {
	go c.drainShipUpdated(ctx)
	go c.drainActionCompleted(ctx)
	c.drainStatusReports(ctx)
}

// drainShipUpdated persists every ship snapshot a fiber pushes.
func (c *Coordinator) drainShipUpdated(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-c.runner.ShipUpdated:
			if err := c.persist.PersistShipSnapshot(snap.ShipSymbol, snap.Payload); err != nil {
				logging.Warn(ctx, "persist ship snapshot failed", map[string]any{"ship": snap.ShipSymbol, "err": err.Error()})
			}
		}
	}
}

// drainActionCompleted logs per-action events (EventShipActionCompleted)
// and transaction events (EventTransactionCompleted). A transaction event
// carrying a NewShip registers that ship and re-plans it via
// handleShipPurchased; no other event triggers re-planning, and none is
// turned into a status report — a fiber's own StatusReport does that.
func (c *Coordinator) drainActionCompleted(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.runner.ActionCompleted:
			switch ev.Kind {
			case behavior.EventTransactionCompleted:
				logging.Info(ctx, "transaction completed", map[string]any{"ship": ev.ShipSymbol, "ticket": ev.TicketID})
				if ev.NewShip != nil {
					c.handleShipPurchased(ctx, ev.NewShip)
				}
			case behavior.EventShipActionCompleted:
				logging.Info(ctx, "action completed", map[string]any{"ship": ev.ShipSymbol, "action": ev.ActionName})
			}
		}
	}
}

// drainStatusReports applies each fiber's terminal report to the admiral
// under its lock, then relaunches or stops per the resulting decision
// (spec.md §4.7 "apply status reports to the admiral ... before
// relaunching or stopping fibers").
func (c *Coordinator) drainStatusReports(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case report := <-c.runner.StatusReportChannel:
			c.handleStatusReport(ctx, report)
		}
	}
}

func (c *Coordinator) handleStatusReport(ctx context.Context, report StatusReport) {
	reason := admiral.ReplanBehaviorTreeCompleted
	if report.Err != nil {
		logging.Warn(ctx, "ship fiber ended with error", map[string]any{"ship": report.ShipSymbol, "err": report.Err.Error()})
		if c.metrics != nil {
			c.metrics.RecordFiberFailure(report.ShipSymbol)
		}
	}

	facts, err := c.facts()
	if err != nil {
		logging.Error(ctx, "fact collection failed during re-plan", map[string]any{"ship": report.ShipSymbol, "err": err.Error()})
		return
	}

	decision := c.admiral.Recompute(report.ShipSymbol, reason, facts)
	if c.metrics != nil {
		c.metrics.RecordReplan(string(reason), string(decision.Kind))
	}
	c.applyDecision(ctx, decision)
}

// handleShipPurchased registers a freshly bought ship with the admiral and
// immediately re-plans for it under ReplanNewShipArrived, so it picks up a
// shopping-list role instead of sitting idle until the next status report
// (spec.md §4.5 "Re-planning triggers" / "Ship assignment").
func (c *Coordinator) handleShipPurchased(ctx context.Context, ship *navigation.Ship) {
	c.admiral.RegisterShip(ship)

	facts, err := c.facts()
	if err != nil {
		logging.Error(ctx, "fact collection failed after ship purchase", map[string]any{"ship": ship.Symbol, "err": err.Error()})
		return
	}

	decision := c.admiral.Recompute(ship.Symbol, admiral.ReplanNewShipArrived, facts)
	if c.metrics != nil {
		c.metrics.RecordReplan(string(admiral.ReplanNewShipArrived), string(decision.Kind))
	}
	c.applyDecision(ctx, decision)
}

// applyDecision carries out exactly one ReplanDecision (spec.md §4.5).
func (c *Coordinator) applyDecision(ctx context.Context, decision fleet.ReplanDecision) {
	switch decision.Kind {
	case fleet.DecisionDismantleFleets:
		logging.Info(ctx, "dismantling idle fleets", map[string]any{"fleets": decision.FleetIDs})

	case fleet.DecisionRegisterPermanentObservation:
		logging.Info(ctx, "registering stationary probe", map[string]any{"ship": decision.ShipSymbol, "waypoint": decision.Waypoint})
		task := fleet.ShipTask{Kind: fleet.TaskObserveWaypointDetails, Waypoint: decision.Waypoint}
		tree, err := c.buildTree(decision.ShipSymbol, task)
		if err != nil {
			logging.Error(ctx, "failed to build stationary probe tree", map[string]any{"ship": decision.ShipSymbol, "err": err.Error()})
			return
		}
		c.runner.Stop(decision.ShipSymbol)
		c.runner.Launch(ctx, decision.ShipSymbol, tree)

	case fleet.DecisionAssignNewTaskToShip:
		if decision.Task == nil {
			return
		}
		tree, err := c.buildTree(decision.ShipSymbol, *decision.Task)
		if err != nil {
			logging.Error(ctx, "failed to build tree for new task", map[string]any{"ship": decision.ShipSymbol, "err": err.Error()})
			return
		}
		c.runner.Stop(decision.ShipSymbol)
		c.runner.Launch(ctx, decision.ShipSymbol, tree)
	}
}
