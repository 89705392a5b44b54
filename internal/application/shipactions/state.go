// Package shipactions implements the ship action library (spec.md §4.2):
// named leaf actions that bind to a ship's current state, plus the
// composite trees assembled from them. Every leaf consumes Args (read-only
// access to collaborators) and a *RunState (the ship's mutable task-runtime
// state — separate from navigation.Ship, which models only persisted nav
// state the game server itself tracks).
package shipactions

import (
	"time"

	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
)

// RunState is the mutable, in-memory scheduling state a ship's fiber
// carries across ticks: its travel queue, its exploration queue, and its
// destination slot. None of this is persisted game-server state — it is
// reconstructed whenever a fiber is (re)launched from the ship's assigned
// ShipTask.
type RunState struct {
	Ship *navigation.Ship

	// Destination management (spec.md §4.2 "HasDestination / IsAtDestination").
	Destination *string
	TravelQueue []*navigation.TravelAction

	// Exploration queue (spec.md §4.2 "Explore actions").
	ExploreQueue              []string
	PermanentExploreLocation  *string
	NextObservationTime       map[string]time.Time

	// ActiveTicketIDs are the treasurer ticket ids assigned to this ship
	// that are not yet complete, used by the trading tree.
	ActiveTicketIDs []string

	// ContractID is the contract this ship's trade tickets were planned
	// against, if any (spec.md §2 Contract/trade planning). Empty when
	// the ship was assigned no contract-driven work.
	ContractID string
}

// NewRunState wraps a ship with empty scheduling state.
func NewRunState(ship *navigation.Ship) *RunState {
	return &RunState{
		Ship:                ship,
		NextObservationTime: make(map[string]time.Time),
	}
}

// DefaultObservationInterval is how long a waypoint is considered
// "recently observed" before it is eligible for re-observation (spec.md
// §4.2: "default +10 min after observation").
const DefaultObservationInterval = 10 * time.Minute
