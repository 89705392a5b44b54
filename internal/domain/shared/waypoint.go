package shared

import (
	"math"
	"strings"
)

// WaypointType enumerates the game's waypoint classifications relevant to
// routing and trading decisions.
type WaypointType string

// Trait is a waypoint capability flag as reported by the game API.
type Trait string

const (
	TraitUncharted  Trait = "UNCHARTED"
	TraitMarketplace Trait = "MARKETPLACE"
	TraitShipyard    Trait = "SHIPYARD"
	TraitJumpGate    Trait = "JUMP_GATE"
)

// Waypoint is an immutable location in a system, except for Traits which
// change as the waypoint is charted and surveyed.
//
// Invariants:
//   - Symbol is non-empty and unique within the owning persistence layer.
//   - System is derived from Symbol and never changes.
type Waypoint struct {
	Symbol              string
	System              string
	Type                WaypointType
	X                    int
	Y                    int
	Traits               []Trait
	IsUnderConstruction bool
}

// NewWaypoint builds a Waypoint, deriving System from Symbol.
func NewWaypoint(symbol string, wpType WaypointType, x, y int, traits []Trait, underConstruction bool) *Waypoint {
	return &Waypoint{
		Symbol:              symbol,
		System:              SystemSymbolOf(symbol),
		Type:                wpType,
		X:                   x,
		Y:                   y,
		Traits:              traits,
		IsUnderConstruction: underConstruction,
	}
}

// SystemSymbolOf extracts "X1-AB12" from "X1-AB12-C3" by trimming the last
// hyphen-delimited segment.
func SystemSymbolOf(waypointSymbol string) string {
	idx := strings.LastIndex(waypointSymbol, "-")
	if idx < 0 {
		return waypointSymbol
	}
	return waypointSymbol[:idx]
}

// HasTrait reports whether the waypoint currently carries the given trait.
func (w *Waypoint) HasTrait(t Trait) bool {
	for _, got := range w.Traits {
		if got == t {
			return true
		}
	}
	return false
}

// DistanceTo returns the rounded Euclidean distance used by flight-mode fuel
// and time calculations. Distance is always a non-negative integer.
func (w *Waypoint) DistanceTo(other *Waypoint) int {
	dx := float64(other.X - w.X)
	dy := float64(other.Y - w.Y)
	return int(math.Round(math.Sqrt(dx*dx + dy*dy)))
}

// WithChartedTraits returns a copy of the waypoint with UNCHARTED removed and
// the given discovered traits merged in. Charting is the only mutation a
// Waypoint's Traits ever undergo.
func (w *Waypoint) WithChartedTraits(discovered ...Trait) *Waypoint {
	merged := make([]Trait, 0, len(w.Traits)+len(discovered))
	for _, t := range w.Traits {
		if t != TraitUncharted {
			merged = append(merged, t)
		}
	}
	for _, t := range discovered {
		if !containsTrait(merged, t) {
			merged = append(merged, t)
		}
	}
	cp := *w
	cp.Traits = merged
	return &cp
}

func containsTrait(traits []Trait, t Trait) bool {
	for _, got := range traits {
		if got == t {
			return true
		}
	}
	return false
}
