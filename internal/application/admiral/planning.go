package admiral

import (
	"sort"

	"github.com/arcfleet/spacetrader-agent/internal/domain/fleet"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// GenerateTasks emits one ShipTask per ship per spec.md §4.5 "Task
// generation", driven by the current phase and facts snapshot. Ships
// already holding a stationary-probe commitment are skipped — they keep
// their existing task until explicitly reassigned.
func (a *Admiral) GenerateTasks(facts *Facts) map[string]fleet.ShipTask {
	a.mu.Lock()
	defer a.mu.Unlock()

	assignedProbeWaypoints := make(map[string]bool, len(facts.StationaryProbes))
	probeShips := make(map[string]bool, len(facts.StationaryProbes))
	for wp, ship := range facts.StationaryProbes {
		assignedProbeWaypoints[wp] = true
		probeShips[ship] = true
	}

	tasks := make(map[string]fleet.ShipTask)

	switch a.phase {
	case fleet.PhaseInitialExploration:
		all := make([]string, 0, len(facts.Waypoints))
		for _, wp := range facts.Waypoints {
			all = append(all, wp.Symbol)
		}
		sort.Strings(all)
		for _, ship := range facts.Ships {
			if probeShips[ship.Symbol] {
				continue
			}
			tasks[ship.Symbol] = fleet.ShipTask{Kind: fleet.TaskObserveAllWaypointsOnce, Waypoints: all}
		}

	case fleet.PhaseConstructJumpGate:
		for i, ship := range facts.Ships {
			if probeShips[ship.Symbol] {
				continue
			}
			if i < len(facts.SupplyChainRoots) {
				tasks[ship.Symbol] = fleet.ShipTask{Kind: fleet.TaskTrade}
			}
		}

	case fleet.PhaseTradeProfitably:
		for _, ship := range facts.Ships {
			if probeShips[ship.Symbol] {
				continue
			}
			tasks[ship.Symbol] = fleet.ShipTask{Kind: fleet.TaskTrade}
		}
	}

	for symbol, task := range tasks {
		a.shipTasks[symbol] = task
	}
	return tasks
}

// Recompute implements recompute_tasks_after_ship_finishing_behavior_tree
// (spec.md §4.5 "Re-planning triggers"). It always produces exactly one
// decision.
func (a *Admiral) Recompute(shipSymbol string, reason ReplanReason, facts *Facts) fleet.ReplanDecision {
	a.mu.Lock()
	defer a.mu.Unlock()

	if reason == ReplanNewShipArrived {
		if task, role, ok := a.assignFromShoppingList(shipSymbol, facts); ok {
			a.shipTasks[shipSymbol] = task
			return fleet.ReplanDecision{
				Kind:        fleet.DecisionAssignNewTaskToShip,
				ShipSymbol:  shipSymbol,
				Task:        &task,
				Requirement: "shopping list role " + role,
			}
		}
	}

	if probeWP, ok := a.candidateProbeWaypoint(shipSymbol, facts); ok {
		delete(a.shipTasks, shipSymbol)
		a.probes = append(a.probes, fleet.StationaryProbeLocation{ShipSymbol: shipSymbol, Waypoint: probeWP})
		return fleet.ReplanDecision{
			Kind:       fleet.DecisionRegisterPermanentObservation,
			ShipSymbol: shipSymbol,
			Waypoint:   probeWP,
		}
	}

	task, hasTask := a.nextTaskFor(shipSymbol, facts)
	if !hasTask {
		return fleet.ReplanDecision{Kind: fleet.DecisionDismantleFleets, FleetIDs: a.idleFleets(facts)}
	}

	a.shipTasks[shipSymbol] = task
	return fleet.ReplanDecision{
		Kind:        fleet.DecisionAssignNewTaskToShip,
		ShipSymbol:  shipSymbol,
		Task:        &task,
		Requirement: string(reason),
	}
}

// ReplanReason names which of the three re-planning triggers fired
// (spec.md §4.5): behavior tree completion, a transaction completed
// event, or a freshly purchased ship arriving.
type ReplanReason string

const (
	ReplanBehaviorTreeCompleted ReplanReason = "BEHAVIOR_TREE_COMPLETED"
	ReplanTransactionCompleted  ReplanReason = "TRANSACTION_COMPLETED"
	ReplanNewShipArrived        ReplanReason = "NEW_SHIP_ARRIVED"
)

// candidateProbeWaypoint decides whether this ship should become a
// permanent stationary probe: it sits at a market/shipyard waypoint no
// other probe yet covers. Caller must hold mu.
func (a *Admiral) candidateProbeWaypoint(shipSymbol string, facts *Facts) (string, bool) {
	var ship *navigation.Ship
	for _, s := range facts.Ships {
		if s.Symbol == shipSymbol {
			ship = s
			break
		}
	}
	if ship == nil || ship.Location == nil {
		return "", false
	}
	for _, probe := range a.probes {
		if probe.Waypoint == ship.Location.Symbol {
			return "", false
		}
	}
	if ship.Role != "SATELLITE" && ship.Role != "PROBE" {
		return "", false
	}
	if !ship.Location.HasTrait(shared.TraitMarketplace) && !ship.Location.HasTrait(shared.TraitShipyard) {
		return "", false
	}
	return ship.Location.Symbol, true
}

// nextTaskFor picks the next task for a ship given the current phase.
// Caller must hold mu.
func (a *Admiral) nextTaskFor(shipSymbol string, facts *Facts) (fleet.ShipTask, bool) {
	switch a.phase {
	case fleet.PhaseInitialExploration, fleet.PhaseConstructJumpGate, fleet.PhaseTradeProfitably:
		return fleet.ShipTask{Kind: fleet.TaskTrade}, true
	}
	return fleet.ShipTask{}, false
}

// assignFromShoppingList matches a newly-arrived ship against the next
// unlocked, unsatisfied shopping-list step whose ship type it carries
// (spec.md §4.5 "Ship assignment: greedy match from a shopping list").
// Caller must hold mu.
func (a *Admiral) assignFromShoppingList(shipSymbol string, facts *Facts) (fleet.ShipTask, string, bool) {
	var ship *navigation.Ship
	for _, s := range facts.Ships {
		if s.Symbol == shipSymbol {
			ship = s
			break
		}
	}
	if ship == nil {
		ship = a.allShips[shipSymbol]
	}
	if ship == nil {
		return fleet.ShipTask{}, "", false
	}

	assigned := make(map[string]bool, len(a.shipFleetAssignment))
	for symbol := range a.shipFleetAssignment {
		assigned[symbol] = true
	}
	delete(assigned, shipSymbol)

	for i, step := range a.shoppingList {
		if step.Count <= 0 || phaseRank(step.UnlockedByPhase) > phaseRank(a.phase) {
			continue
		}
		if _, err := fleet.SelectClosestAvailableShip([]*navigation.Ship{ship}, step.ShipType, assigned, ship); err != nil {
			continue
		}
		a.shoppingList[i].Count--
		return roleTask(step.Role), step.Role, true
	}
	return fleet.ShipTask{}, "", false
}

// phaseRank orders phases for the "unlocked by phase or earlier" shopping
// list comparison. Phases only advance forward (spec.md §4.5 Phase decision).
func phaseRank(p fleet.Phase) int {
	switch p {
	case fleet.PhaseInitialExploration:
		return 0
	case fleet.PhaseConstructJumpGate:
		return 1
	case fleet.PhaseTradeProfitably:
		return 2
	}
	return 0
}

// roleTask picks the task kind a freshly assigned shopping-list role starts
// with.
func roleTask(role string) fleet.ShipTask {
	if role == "PROBE" {
		return fleet.ShipTask{Kind: fleet.TaskObserveWaypointDetails}
	}
	return fleet.ShipTask{Kind: fleet.TaskTrade}
}

// idleFleets returns every fleet id with no ships currently assigned a
// task. Caller must hold mu.
func (a *Admiral) idleFleets(facts *Facts) []string {
	var idle []string
	for id, f := range a.fleets {
		hasWork := false
		for _, symbol := range f.Ships {
			if _, ok := a.shipTasks[symbol]; ok {
				hasWork = true
				break
			}
		}
		if !hasWork {
			idle = append(idle, id)
		}
	}
	sort.Strings(idle)
	return idle
}
