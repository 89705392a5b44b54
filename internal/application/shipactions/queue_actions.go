package shipactions

import (
	"github.com/arcfleet/spacetrader-agent/internal/application/logging"
	"github.com/arcfleet/spacetrader-agent/internal/domain/behavior"
)

// HasTravelActionEntry succeeds if the ship's travel queue is non-empty.
func HasTravelActionEntry(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("HasTravelActionEntry", func(tc *behavior.TickContext) (behavior.Status, error) {
		if len(rs.TravelQueue) == 0 {
			return behavior.Failure, nil
		}
		return behavior.Success, nil
	})
}

// PopTravelAction unconditionally drops the head of the travel queue.
func PopTravelAction(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("PopTravelAction", func(tc *behavior.TickContext) (behavior.Status, error) {
		if len(rs.TravelQueue) == 0 {
			return behavior.Failure, nil
		}
		rs.TravelQueue = rs.TravelQueue[1:]
		return behavior.Success, nil
	})
}

// MarkTravelActionAsCompleteIfPossible pops the head travel action once the
// ship is physically at its target and, for a Refuel step, the tank is
// full (spec.md §4.2).
func MarkTravelActionAsCompleteIfPossible(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("MarkTravelActionAsCompleteIfPossible", func(tc *behavior.TickContext) (behavior.Status, error) {
		head := headTravelAction(rs)
		if head == nil {
			return behavior.Failure, nil
		}
		if rs.Ship.Location == nil || rs.Ship.Location.Symbol != head.Target() {
			return behavior.Failure, nil
		}
		if head.IsRefuel() && !rs.Ship.Fuel.IsFull() {
			return behavior.Failure, nil
		}
		rs.TravelQueue = rs.TravelQueue[1:]
		return behavior.Success, nil
	})
}

// IsNavigationAction succeeds when the head travel action is a Navigate step.
func IsNavigationAction(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("IsNavigationAction", func(tc *behavior.TickContext) (behavior.Status, error) {
		head := headTravelAction(rs)
		if head == nil || !head.IsNavigate() {
			return behavior.Failure, nil
		}
		return behavior.Success, nil
	})
}

// IsRefuelAction succeeds when the head travel action is a Refuel step.
func IsRefuelAction(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("IsRefuelAction", func(tc *behavior.TickContext) (behavior.Status, error) {
		head := headTravelAction(rs)
		if head == nil || !head.IsRefuel() {
			return behavior.Failure, nil
		}
		return behavior.Success, nil
	})
}

// IsCorrectFlightMode succeeds when the ship's current flight mode already
// matches the head Navigate step's required mode.
func IsCorrectFlightMode(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("IsCorrectFlightMode", func(tc *behavior.TickContext) (behavior.Status, error) {
		head := headTravelAction(rs)
		if head == nil || !head.IsNavigate() {
			return behavior.Failure, nil
		}
		if head.Mode != rs.Ship.FlightMode {
			return behavior.Failure, nil
		}
		return behavior.Success, nil
	})
}

// CanSkipRefueling succeeds when the upcoming Navigate step's fuel
// consumption fits in the current tank and a later Refuel step exists in
// the queue — meaning a Refuel step immediately ahead of it is redundant.
func CanSkipRefueling(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("CanSkipRefueling", func(tc *behavior.TickContext) (behavior.Status, error) {
		head := headTravelAction(rs)
		if head == nil || !head.IsRefuel() {
			return behavior.Failure, nil
		}
		if len(rs.TravelQueue) < 2 {
			return behavior.Failure, nil
		}
		nextNav := rs.TravelQueue[1]
		if !nextNav.IsNavigate() || nextNav.FuelConsumption > rs.Ship.Fuel.Current {
			return behavior.Failure, nil
		}
		for _, step := range rs.TravelQueue[2:] {
			if step.IsRefuel() {
				return behavior.Success, nil
			}
		}
		return behavior.Failure, nil
	})
}

// SkipRefueling drops a redundant head Refuel step.
func SkipRefueling(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("SkipRefueling", func(tc *behavior.TickContext) (behavior.Status, error) {
		if len(rs.TravelQueue) == 0 || !rs.TravelQueue[0].IsRefuel() {
			return behavior.Failure, nil
		}
		rs.TravelQueue = rs.TravelQueue[1:]
		return behavior.Success, nil
	})
}

// PrintTravelActions logs the current queue at INFO, for diagnostics.
func PrintTravelActions(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("PrintTravelActions", func(tc *behavior.TickContext) (behavior.Status, error) {
		steps := make([]string, len(rs.TravelQueue))
		for i, step := range rs.TravelQueue {
			steps[i] = string(step.Kind) + ":" + step.Target()
		}
		logging.Info(tc.Ctx, "travel queue", map[string]any{"ship": rs.Ship.Symbol, "queue": steps})
		return behavior.Success, nil
	})
}
