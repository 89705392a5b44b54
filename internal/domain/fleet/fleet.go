// Package fleet holds the admiral's own state: fleets, phases, and the
// highest-level task assigned to each ship (spec.md §4.5).
package fleet

import "fmt"

// Phase is the admiral's current stage of the overall plan. Phases only
// ever advance forward.
type Phase string

const (
	PhaseInitialExploration Phase = "INITIAL_EXPLORATION"
	PhaseConstructJumpGate  Phase = "CONSTRUCT_JUMP_GATE"
	PhaseTradeProfitably    Phase = "TRADE_PROFITABLY"
)

// Fleet is a named group of ships sharing a FleetBudget in the treasurer.
type Fleet struct {
	ID     string
	Role   string
	Budget int
	Ships  []string
}

// NewFleet validates and constructs a Fleet.
func NewFleet(id, role string, budget int) (*Fleet, error) {
	if id == "" {
		return nil, fmt.Errorf("fleet id cannot be empty")
	}
	if budget < 0 {
		return nil, fmt.Errorf("fleet budget cannot be negative")
	}
	return &Fleet{ID: id, Role: role, Budget: budget}, nil
}

// AddShip attaches a ship symbol to this fleet, ignoring duplicates.
func (f *Fleet) AddShip(symbol string) {
	for _, s := range f.Ships {
		if s == symbol {
			return
		}
	}
	f.Ships = append(f.Ships, symbol)
}

// RemoveShip detaches a ship symbol from this fleet.
func (f *Fleet) RemoveShip(symbol string) {
	for i, s := range f.Ships {
		if s == symbol {
			f.Ships = append(f.Ships[:i], f.Ships[i+1:]...)
			return
		}
	}
}

// StationaryProbeLocation records a ship permanently committed to
// observing one waypoint's market/shipyard (spec.md §4.5
// RegisterWaypointForPermanentObservation).
type StationaryProbeLocation struct {
	ShipSymbol string
	Waypoint   string
}

// ShoppingListStep is one line of a fleet-composition shopping list: "buy
// count ships of this type for this role" (spec.md §4.5 Ship assignment).
// UnlockedByPhase gates when the step becomes eligible for matching — the
// progression only offers probe steps during InitialExploration, hauler/
// miner steps once jump-gate construction starts, and so on.
type ShoppingListStep struct {
	Count           int
	ShipType        string
	Role            string
	UnlockedByPhase Phase
}

// DefaultShoppingList concretizes spec.md's "shopping list progression"
// (probe, then light hauler and mining drone once construction starts,
// then a command-tier ship once trading profitably) — the shape the
// original left as an open question, recorded in DESIGN.md.
func DefaultShoppingList() []ShoppingListStep {
	return []ShoppingListStep{
		{Count: 1, ShipType: "FRAME_PROBE", Role: "PROBE", UnlockedByPhase: PhaseInitialExploration},
		{Count: 2, ShipType: "FRAME_LIGHT_HAULER", Role: "HAULER", UnlockedByPhase: PhaseConstructJumpGate},
		{Count: 2, ShipType: "FRAME_MINING_DRONE", Role: "MINER", UnlockedByPhase: PhaseConstructJumpGate},
		{Count: 1, ShipType: "FRAME_FRIGATE", Role: "COMMAND", UnlockedByPhase: PhaseTradeProfitably},
	}
}
