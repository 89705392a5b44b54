package shipactions

import (
	"github.com/arcfleet/spacetrader-agent/internal/domain/behavior"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// HasDestination succeeds when a destination slot has been set.
func HasDestination(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("HasDestination", func(tc *behavior.TickContext) (behavior.Status, error) {
		if rs.Destination == nil {
			return behavior.Failure, nil
		}
		return behavior.Success, nil
	})
}

// IsAtDestination succeeds when the ship's current location matches the
// destination slot.
func IsAtDestination(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("IsAtDestination", func(tc *behavior.TickContext) (behavior.Status, error) {
		if rs.Destination == nil || rs.Ship.Location == nil || rs.Ship.Location.Symbol != *rs.Destination {
			return behavior.Failure, nil
		}
		return behavior.Success, nil
	})
}

// HasRouteToDestination succeeds when a travel queue has already been
// computed for the current destination.
func HasRouteToDestination(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("HasRouteToDestination", func(tc *behavior.TickContext) (behavior.Status, error) {
		if len(rs.TravelQueue) == 0 {
			return behavior.Failure, nil
		}
		return behavior.Success, nil
	})
}

// ComputePathToDestination invokes the pathfinder and installs the
// resulting queue (spec.md §4.2).
func ComputePathToDestination(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("ComputePathToDestination", func(tc *behavior.TickContext) (behavior.Status, error) {
		if rs.Destination == nil || rs.Ship.Location == nil {
			return behavior.Failure, shared.NewPreconditionUnmetError("ComputePathToDestination", "no destination set")
		}
		if rs.Ship.Location.Symbol == *rs.Destination {
			rs.TravelQueue = nil
			return behavior.Success, nil
		}
		queue, err := a.FindPath(tc.Ctx, rs.Ship.Location.Symbol, *rs.Destination, rs.Ship.EngineSpeed, rs.Ship.Fuel)
		if err != nil {
			return behavior.Failure, err
		}
		rs.TravelQueue = queue
		return behavior.Success, nil
	})
}

// RemoveDestination clears the destination slot and any stale queue.
func RemoveDestination(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("RemoveDestination", func(tc *behavior.TickContext) (behavior.Status, error) {
		rs.Destination = nil
		rs.TravelQueue = nil
		return behavior.Success, nil
	})
}

// SetDestination is a constructor helper (not a leaf action) used by the
// admiral/trading leaves to point a ship's run state at a waypoint.
func SetDestination(rs *RunState, waypoint string) {
	rs.Destination = &waypoint
}
