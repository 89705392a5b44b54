package navigation

import (
	"fmt"
	"time"

	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// NavStatus is the ship's current navigation state machine position.
type NavStatus string

const (
	NavStatusDocked    NavStatus = "DOCKED"
	NavStatusInOrbit   NavStatus = "IN_ORBIT"
	NavStatusInTransit NavStatus = "IN_TRANSIT"
)

// Route describes an in-progress transit, mirroring the game API's
// nav.route shape.
type Route struct {
	Origin      string
	Destination string
	Departure   time.Time
	Arrival     time.Time
}

// ShipModule is an installed module (jump drive, mining laser, ...).
type ShipModule struct {
	Symbol   string
	Capacity int
	Range    int
}

// IsJumpDrive reports whether this module grants jump-gate travel.
func (m ShipModule) IsJumpDrive() bool {
	return len(m.Symbol) >= len("MODULE_JUMP_DRIVE") && m.Symbol[:len("MODULE_JUMP_DRIVE")] == "MODULE_JUMP_DRIVE"
}

// Ship is the aggregate the behavior tree and ship action library operate
// on. Its invariants are enforced in the constructor and by every mutator.
type Ship struct {
	Symbol      string
	Role        string
	Location    *shared.Waypoint
	EngineSpeed int
	Fuel        *shared.Fuel
	Cargo       *shared.Cargo
	Frame       string
	Modules     []ShipModule
	FlightMode  shared.FlightMode

	NavStatus NavStatus
	Route     *Route
	Cooldown  *time.Time
}

// Validate checks the invariants spec.md §3 names for Ship.
func (s *Ship) Validate() error {
	if s.Symbol == "" {
		return shared.NewInvariantViolationError("ship symbol cannot be empty")
	}
	if s.EngineSpeed <= 0 {
		return shared.NewInvariantViolationError("engine speed must be positive")
	}
	if s.Fuel == nil {
		return shared.NewInvariantViolationError("fuel cannot be nil")
	}
	if s.Cargo != nil && s.Cargo.Units > s.Cargo.Capacity {
		return shared.NewInvariantViolationError("cargo units exceed capacity")
	}
	if s.NavStatus == NavStatusInTransit && s.Route == nil {
		return shared.NewInvariantViolationError("IN_TRANSIT ship must carry a route")
	}
	return nil
}

// HasJumpDrive reports whether any installed module is a jump drive.
func (s *Ship) HasJumpDrive() bool {
	for _, m := range s.Modules {
		if m.IsJumpDrive() {
			return true
		}
	}
	return false
}

// FixNavStatusIfNecessary promotes IN_TRANSIT to IN_ORBIT once arrival has
// passed, the same lazy transition the game server performs itself.
func (s *Ship) FixNavStatusIfNecessary(now time.Time) bool {
	if s.NavStatus != NavStatusInTransit || s.Route == nil {
		return false
	}
	if !now.Before(s.Route.Arrival) {
		s.NavStatus = NavStatusInOrbit
		s.Route = nil
		return true
	}
	return false
}

// IsArrived reports whether an in-transit ship's arrival time has passed.
func (s *Ship) IsArrived(now time.Time) bool {
	return s.Route != nil && !now.Before(s.Route.Arrival)
}

func (s *Ship) String() string {
	return fmt.Sprintf("Ship(%s @ %s, %s, fuel=%s)", s.Symbol, s.Location.Symbol, s.NavStatus, s.Fuel)
}
