// Package admiral implements the fleet-wide planner (spec.md §4.5):
// fact collection, phase progression, task generation, ship assignment,
// and the re-planning decisions that fire when a ship's behavior tree
// completes.
package admiral

import (
	"sync"

	"github.com/arcfleet/spacetrader-agent/internal/domain/fleet"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
)

// Admiral holds every piece of state spec.md §4.5 names as admiral-owned:
// all_ships, ship_fleet_assignment, ship_tasks, the fleet list, and
// stationary probe locations. One lock protects all of it (spec.md §5
// "Treasurer and Admiral each sit behind one lock").
type Admiral struct {
	mu sync.Mutex

	facts     FactStore
	treasurer TreasurerFacts

	allShips          map[string]*navigation.Ship
	shipFleetAssignment map[string]string // ship symbol -> fleet id
	shipTasks         map[string]fleet.ShipTask
	fleets            map[string]*fleet.Fleet
	probes            []fleet.StationaryProbeLocation
	phase             fleet.Phase
	shoppingList      []fleet.ShoppingListStep
}

// New constructs an Admiral starting in the InitialExploration phase.
func New(facts FactStore, treasurer TreasurerFacts) *Admiral {
	return &Admiral{
		facts:               facts,
		treasurer:           treasurer,
		allShips:            make(map[string]*navigation.Ship),
		shipFleetAssignment: make(map[string]string),
		shipTasks:           make(map[string]fleet.ShipTask),
		fleets:              make(map[string]*fleet.Fleet),
		phase:               fleet.PhaseInitialExploration,
		shoppingList:        fleet.DefaultShoppingList(),
	}
}

// Phase returns the admiral's current planning phase.
func (a *Admiral) Phase() fleet.Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// TaskFor returns the task currently assigned to a ship, if any.
func (a *Admiral) TaskFor(shipSymbol string) (fleet.ShipTask, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.shipTasks[shipSymbol]
	return t, ok
}

// RegisterShip adds a ship to the authoritative all_ships map.
func (a *Admiral) RegisterShip(ship *navigation.Ship) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.allShips[ship.Symbol] = ship
}

// Ships returns a snapshot slice of every known ship.
func (a *Admiral) Ships() []*navigation.Ship {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*navigation.Ship, 0, len(a.allShips))
	for _, s := range a.allShips {
		out = append(out, s)
	}
	return out
}

// FleetOf returns the fleet id a ship is assigned to, if any.
func (a *Admiral) FleetOf(shipSymbol string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, ok := a.shipFleetAssignment[shipSymbol]
	return id, ok
}

// AssignToFleet records that a ship belongs to a fleet.
func (a *Admiral) AssignToFleet(shipSymbol, fleetID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shipFleetAssignment[shipSymbol] = fleetID
	if f, ok := a.fleets[fleetID]; ok {
		f.AddShip(shipSymbol)
	}
}

// RegisterFleet adds a fleet to the admiral's registry.
func (a *Admiral) RegisterFleet(f *fleet.Fleet) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fleets[f.ID] = f
}

// AdvancePhase moves the admiral to the next phase if the current phase's
// exit condition is met; it never regresses (spec.md §4.5 "Phase
// decision").
func (a *Admiral) AdvancePhase(jumpGateComplete bool) fleet.Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch a.phase {
	case fleet.PhaseInitialExploration:
		if a.explorationComplete() {
			a.phase = fleet.PhaseConstructJumpGate
		}
	case fleet.PhaseConstructJumpGate:
		if jumpGateComplete {
			a.phase = fleet.PhaseTradeProfitably
		}
	}
	return a.phase
}

// explorationComplete reports whether every known ship has been assigned
// past its initial sweep task. Caller must hold mu.
func (a *Admiral) explorationComplete() bool {
	for symbol := range a.allShips {
		task, ok := a.shipTasks[symbol]
		if !ok {
			return false
		}
		if task.Kind == fleet.TaskObserveAllWaypointsOnce {
			return false
		}
	}
	return true
}
