package shipactions

import "github.com/arcfleet/spacetrader-agent/internal/domain/behavior"

// DockIfNecessary docks the ship; Select tries Dock directly, which
// succeeds immediately when the ship is already docked (spec.md §4.1's
// "dock_if_necessary").
func DockIfNecessary(a Args, rs *RunState) behavior.Node {
	return behavior.NewSelect(Dock(a, rs))
}

// OrbitIfNecessary mirrors DockIfNecessary for orbiting.
func OrbitIfNecessary(a Args, rs *RunState) behavior.Node {
	return behavior.NewSelect(Orbit(a, rs))
}

// NavigateToDestination drives a ship from wherever it is to rs.Destination:
// compute a path if none is queued, then repeatedly orbit/set-flight-mode/
// navigate/refuel/wait through the queue until it is at the destination.
func NavigateToDestination(a Args, rs *RunState) behavior.Node {
	ensureRoute := behavior.NewSelect(
		HasRouteToDestination(a, rs),
		ComputePathToDestination(a, rs),
	)

	advanceOneStep := behavior.NewSequence(
		behavior.NewSelect(
			behavior.NewSequence(IsRefuelAction(a, rs), CanSkipRefueling(a, rs), SkipRefueling(a, rs)),
			behavior.NewSequence(IsRefuelAction(a, rs), DockIfNecessary(a, rs), Refuel(a, rs)),
			behavior.NewSequence(
				IsNavigationAction(a, rs),
				OrbitIfNecessary(a, rs),
				SetFlightMode(a, rs),
				NavigateToWaypoint(a, rs),
				WaitForArrival(a, rs),
			),
		),
		MarkTravelActionAsCompleteIfPossible(a, rs),
	)

	return behavior.NewSequence(
		HasDestination(a, rs),
		behavior.NewInvert(IsAtDestination(a, rs)),
		ensureRoute,
		behavior.NewWhile(
			behavior.NewInvert(IsAtDestination(a, rs)),
			behavior.NewSequence(HasTravelActionEntry(a, rs), advanceOneStep),
		),
	)
}

// ExplorerBehavior drives a command ship through a one-shot sweep of its
// explore queue: travel to each waypoint, collect info, move on.
func ExplorerBehavior(a Args, rs *RunState) behavior.Node {
	visitOne := behavior.NewSequence(
		PopExploreLocationAsDestination(a, rs),
		NavigateToDestination(a, rs),
		CollectWaypointInfos(a, rs),
		RemoveDestination(a, rs),
	)

	return behavior.NewWhile(
		HasExploreLocationEntry(a, rs),
		visitOne,
	)
}

// StationaryProbeBehavior parks a probe at its permanent location and
// re-observes on the configured interval, forever.
func StationaryProbeBehavior(a Args, rs *RunState) behavior.Node {
	arriveOnce := behavior.NewSequence(
		SetPermanentExploreLocationAsDestination(a, rs),
		NavigateToDestination(a, rs),
	)

	observeIfDue := behavior.NewSequence(
		IsLateEnoughForWaypointObservation(a, rs),
		CollectWaypointInfos(a, rs),
		SetNextObservationTime(a, rs),
	)

	return behavior.NewSequence(
		HasPermanentExploreLocationEntry(a, rs),
		arriveOnce,
		behavior.NewWhile(
			behavior.NewAction("always", func(tc *behavior.TickContext) (behavior.Status, error) {
				return behavior.Success, nil
			}),
			observeIfDue,
		),
	)
}

// TradingBehavior drives a trading ship through its assigned tickets:
// travel to the next ticket's waypoint, execute every ticket due there,
// repeat until no active ticket remains.
func TradingBehavior(a Args, rs *RunState) behavior.Node {
	noop := func(name string) *behavior.ActionNode {
		return behavior.NewAction(name, func(tc *behavior.TickContext) (behavior.Status, error) {
			return behavior.Success, nil
		})
	}

	visitAndTrade := behavior.NewSequence(
		SetNextTradeStopAsDestination(a, rs),
		NavigateToDestination(a, rs),
		DockIfNecessary(a, rs),
		behavior.NewSelect(
			PerformTradeActionAndMarkAsCompleteIfPossible(a, rs),
			noop("noTicketHereYet"),
		),
	)

	return behavior.NewSequence(
		behavior.NewSelect(AcceptContract(a, rs), noop("noPendingContract")),
		behavior.NewWhile(
			HasNextTradeWaypoint(a, rs),
			visitAndTrade,
		),
		behavior.NewSelect(FulfillContract(a, rs), noop("contractNotReadyToFulfill")),
	)
}
