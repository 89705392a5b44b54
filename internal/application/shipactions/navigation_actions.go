package shipactions

import (
	"github.com/arcfleet/spacetrader-agent/internal/application/logging"
	"github.com/arcfleet/spacetrader-agent/internal/domain/behavior"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// Dock returns an Action leaf that docks the ship, unless it is already
// docked or still in transit (spec.md §4.2: "preconditions that ship is
// not IN_TRANSIT, else Running while arrival-time < now").
func Dock(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("Dock", func(tc *behavior.TickContext) (behavior.Status, error) {
		rs.Ship.FixNavStatusIfNecessary(a.Clock.Now())
		if rs.Ship.NavStatus == navigation.NavStatusInTransit {
			return behavior.Running, nil
		}
		if rs.Ship.NavStatus == navigation.NavStatusDocked {
			return behavior.Success, nil
		}
		logging.Info(tc.Ctx, "docking", map[string]any{"ship": rs.Ship.Symbol})
		res, err := a.API.DockShip(tc.Ctx, rs.Ship.Symbol)
		if err != nil {
			logging.Warn(tc.Ctx, "dock failed", map[string]any{"ship": rs.Ship.Symbol, "err": err.Error()})
			return behavior.Failure, err
		}
		rs.Ship.NavStatus = res.Status
		tc.EmitState(behavior.ShipSnapshot{ShipSymbol: rs.Ship.Symbol, ObservedAt: a.Clock.Now(), Payload: rs.Ship})
		return behavior.Success, nil
	})
}

// Orbit is Dock's mirror image.
func Orbit(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("Orbit", func(tc *behavior.TickContext) (behavior.Status, error) {
		rs.Ship.FixNavStatusIfNecessary(a.Clock.Now())
		if rs.Ship.NavStatus == navigation.NavStatusInTransit {
			return behavior.Running, nil
		}
		if rs.Ship.NavStatus == navigation.NavStatusInOrbit {
			return behavior.Success, nil
		}
		logging.Info(tc.Ctx, "orbiting", map[string]any{"ship": rs.Ship.Symbol})
		res, err := a.API.OrbitShip(tc.Ctx, rs.Ship.Symbol)
		if err != nil {
			logging.Warn(tc.Ctx, "orbit failed", map[string]any{"ship": rs.Ship.Symbol, "err": err.Error()})
			return behavior.Failure, err
		}
		rs.Ship.NavStatus = res.Status
		tc.EmitState(behavior.ShipSnapshot{ShipSymbol: rs.Ship.Symbol, ObservedAt: a.Clock.Now(), Payload: rs.Ship})
		return behavior.Success, nil
	})
}

// SetFlightMode reads the head travel action and, if it is a Navigate step
// whose mode differs from the ship's current flight mode, calls the API
// and updates fuel and nav (spec.md §4.2).
func SetFlightMode(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("SetFlightMode", func(tc *behavior.TickContext) (behavior.Status, error) {
		head := headTravelAction(rs)
		if head == nil || !head.IsNavigate() || head.Mode == rs.Ship.FlightMode {
			return behavior.Success, nil
		}
		res, err := a.API.SetFlightMode(tc.Ctx, rs.Ship.Symbol, head.Mode)
		if err != nil {
			return behavior.Failure, err
		}
		rs.Ship.FlightMode = res.FlightMode
		rs.Ship.Fuel = &shared.Fuel{Current: res.FuelCurrent, Capacity: rs.Ship.Fuel.Capacity}
		tc.EmitState(behavior.ShipSnapshot{ShipSymbol: rs.Ship.Symbol, ObservedAt: a.Clock.Now(), Payload: rs.Ship})
		return behavior.Success, nil
	})
}

// NavigateToWaypoint requires a Navigate head travel action and IN_ORBIT
// status; calls the API and updates nav and fuel (spec.md §4.2).
func NavigateToWaypoint(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("NavigateToWaypoint", func(tc *behavior.TickContext) (behavior.Status, error) {
		head := headTravelAction(rs)
		if head == nil || !head.IsNavigate() {
			return behavior.Failure, shared.NewPreconditionUnmetError("NavigateToWaypoint", "no Navigate travel action queued")
		}
		if rs.Ship.NavStatus != navigation.NavStatusInOrbit {
			return behavior.Failure, shared.NewPreconditionUnmetError("NavigateToWaypoint", "ship not in orbit")
		}
		logging.Info(tc.Ctx, "navigating", map[string]any{"ship": rs.Ship.Symbol, "to": head.To, "mode": string(head.Mode)})
		res, err := a.API.Navigate(tc.Ctx, rs.Ship.Symbol, head.To)
		if err != nil {
			logging.Warn(tc.Ctx, "navigate failed", map[string]any{"ship": rs.Ship.Symbol, "err": err.Error()})
			return behavior.Failure, err
		}
		rs.Ship.NavStatus = res.Status
		rs.Ship.Route = res.Route
		rs.Ship.Fuel = &shared.Fuel{Current: res.FuelCurrent, Capacity: rs.Ship.Fuel.Capacity}
		tc.EmitState(behavior.ShipSnapshot{ShipSymbol: rs.Ship.Symbol, ObservedAt: a.Clock.Now(), Payload: rs.Ship})
		return behavior.Success, nil
	})
}

// Refuel requires DOCKED and presence at a fuel-bearing waypoint; calls the
// API, updates fuel, and reports the expense to the treasurer.
func Refuel(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("Refuel", func(tc *behavior.TickContext) (behavior.Status, error) {
		if rs.Ship.NavStatus != navigation.NavStatusDocked {
			return behavior.Failure, shared.NewPreconditionUnmetError("Refuel", "ship not docked")
		}
		amount := rs.Ship.Fuel.Capacity - rs.Ship.Fuel.Current
		if amount <= 0 {
			return behavior.Success, nil
		}
		res, err := a.API.Refuel(tc.Ctx, rs.Ship.Symbol, amount, false)
		if err != nil {
			return behavior.Failure, err
		}
		rs.Ship.Fuel = &shared.Fuel{Current: res.FuelCurrent, Capacity: rs.Ship.Fuel.Capacity}
		if res.TotalCost > 0 {
			if err := a.Treasurer.ReportExpense(tc.Ctx, a.FleetID, rs.Ship.Symbol, "REFUEL", res.TotalCost); err != nil {
				return behavior.Failure, err
			}
			tc.EmitCompleted(behavior.Event{Kind: behavior.EventTransactionCompleted, ShipSymbol: rs.Ship.Symbol, TransactionEvent: "REFUEL"})
		}
		tc.EmitState(behavior.ShipSnapshot{ShipSymbol: rs.Ship.Symbol, ObservedAt: a.Clock.Now(), Payload: rs.Ship})
		return behavior.Success, nil
	})
}

// WaitForArrival returns Running while the ship's route has not yet
// reached its arrival time, Success once it has.
func WaitForArrival(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("WaitForArrival", func(tc *behavior.TickContext) (behavior.Status, error) {
		if rs.Ship.Route == nil {
			return behavior.Success, nil
		}
		if a.Clock.Now().Before(rs.Ship.Route.Arrival) {
			return behavior.Running, nil
		}
		return behavior.Success, nil
	})
}

// FixNavStatusIfNecessary locally promotes a stale IN_TRANSIT ship to
// IN_ORBIT once its arrival time has passed, mirroring the lazy transition
// the game performs server-side.
func FixNavStatusIfNecessary(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("FixNavStatusIfNecessary", func(tc *behavior.TickContext) (behavior.Status, error) {
		rs.Ship.FixNavStatusIfNecessary(a.Clock.Now())
		return behavior.Success, nil
	})
}

func headTravelAction(rs *RunState) *navigation.TravelAction {
	if len(rs.TravelQueue) == 0 {
		return nil
	}
	return rs.TravelQueue[0]
}
