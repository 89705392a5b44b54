package shipactions

import (
	"github.com/arcfleet/spacetrader-agent/internal/application/logging"
	"github.com/arcfleet/spacetrader-agent/internal/domain/behavior"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// HasExploreLocationEntry succeeds when the explore queue is non-empty.
func HasExploreLocationEntry(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("HasExploreLocationEntry", func(tc *behavior.TickContext) (behavior.Status, error) {
		if len(rs.ExploreQueue) == 0 {
			return behavior.Failure, nil
		}
		return behavior.Success, nil
	})
}

// PopExploreLocationAsDestination pops the head of the explore queue and
// installs it as the destination.
func PopExploreLocationAsDestination(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("PopExploreLocationAsDestination", func(tc *behavior.TickContext) (behavior.Status, error) {
		if len(rs.ExploreQueue) == 0 {
			return behavior.Failure, nil
		}
		next := rs.ExploreQueue[0]
		rs.ExploreQueue = rs.ExploreQueue[1:]
		SetDestination(rs, next)
		return behavior.Success, nil
	})
}

// PrintExploreLocations logs the remaining explore queue at INFO.
func PrintExploreLocations(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("PrintExploreLocations", func(tc *behavior.TickContext) (behavior.Status, error) {
		logging.Info(tc.Ctx, "explore queue", map[string]any{"ship": rs.Ship.Symbol, "queue": rs.ExploreQueue})
		return behavior.Success, nil
	})
}

// HasPermanentExploreLocationEntry succeeds when this ship carries a
// standing stationary-probe assignment.
func HasPermanentExploreLocationEntry(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("HasPermanentExploreLocationEntry", func(tc *behavior.TickContext) (behavior.Status, error) {
		if rs.PermanentExploreLocation == nil {
			return behavior.Failure, nil
		}
		return behavior.Success, nil
	})
}

// SetPermanentExploreLocationAsDestination installs the ship's standing
// assignment as its destination.
func SetPermanentExploreLocationAsDestination(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("SetPermanentExploreLocationAsDestination", func(tc *behavior.TickContext) (behavior.Status, error) {
		if rs.PermanentExploreLocation == nil {
			return behavior.Failure, nil
		}
		SetDestination(rs, *rs.PermanentExploreLocation)
		return behavior.Success, nil
	})
}

// SetNextObservationTime schedules the next eligible observation moment
// for the current waypoint, DefaultObservationInterval from now.
func SetNextObservationTime(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("SetNextObservationTime", func(tc *behavior.TickContext) (behavior.Status, error) {
		if rs.Ship.Location == nil {
			return behavior.Failure, nil
		}
		rs.NextObservationTime[rs.Ship.Location.Symbol] = a.Clock.Now().Add(DefaultObservationInterval)
		return behavior.Success, nil
	})
}

// IsLateEnoughForWaypointObservation succeeds when the current waypoint
// has never been observed, or its scheduled re-observation time has passed.
func IsLateEnoughForWaypointObservation(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("IsLateEnoughForWaypointObservation", func(tc *behavior.TickContext) (behavior.Status, error) {
		if rs.Ship.Location == nil {
			return behavior.Failure, nil
		}
		next, seen := rs.NextObservationTime[rs.Ship.Location.Symbol]
		if !seen || !a.Clock.Now().Before(next) {
			return behavior.Success, nil
		}
		return behavior.Failure, nil
	})
}

// CollectWaypointInfos runs the server-visible exploration tasks for the
// ship's current location: chart if uncharted, then observe market,
// jump-gate, and shipyard as applicable, persisting each observation
// (spec.md §4.2).
func CollectWaypointInfos(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("CollectWaypointInfos", func(tc *behavior.TickContext) (behavior.Status, error) {
		wp := rs.Ship.Location
		if wp == nil {
			return behavior.Failure, shared.NewPreconditionUnmetError("CollectWaypointInfos", "ship has no location")
		}

		if wp.HasTrait(shared.TraitUncharted) {
			chart, err := a.API.CreateChart(tc.Ctx, rs.Ship.Symbol)
			if err != nil {
				return behavior.Failure, err
			}
			wp = chart.Waypoint
			rs.Ship.Location = wp
			tc.EmitState(behavior.ShipSnapshot{ShipSymbol: rs.Ship.Symbol, ObservedAt: a.Clock.Now(), Payload: rs.Ship})
		}
		if err := a.Store.UpsertWaypoint(tc.Ctx, wp); err != nil {
			return behavior.Failure, err
		}

		if wp.HasTrait(shared.TraitMarketplace) {
			md, err := a.API.GetMarketplace(tc.Ctx, wp.Symbol)
			if err != nil {
				return behavior.Failure, err
			}
			if err := a.Store.UpsertMarket(tc.Ctx, md); err != nil {
				return behavior.Failure, err
			}
		}

		if wp.HasTrait(shared.TraitJumpGate) {
			connections, err := a.API.GetJumpGate(tc.Ctx, wp.Symbol)
			if err != nil {
				return behavior.Failure, err
			}
			if err := a.Store.UpsertJumpGateConnections(tc.Ctx, wp.Symbol, connections); err != nil {
				return behavior.Failure, err
			}
		}

		if wp.HasTrait(shared.TraitShipyard) {
			yard, err := a.API.GetShipyard(tc.Ctx, wp.Symbol)
			if err != nil {
				return behavior.Failure, err
			}
			shipTypes := make([]string, len(yard.Ships))
			prices := make(map[string]int, len(yard.Ships))
			for i, listing := range yard.Ships {
				shipTypes[i] = listing.ShipType
				prices[listing.ShipType] = listing.PurchasePrice
			}
			if err := a.Store.UpsertShipyardListing(tc.Ctx, wp.Symbol, shipTypes, prices); err != nil {
				return behavior.Failure, err
			}
		}

		return behavior.Success, nil
	})
}
