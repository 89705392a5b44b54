package navigation

import "github.com/arcfleet/spacetrader-agent/internal/domain/shared"

// TravelActionKind tags the two variants of TravelAction.
type TravelActionKind string

const (
	TravelActionNavigate TravelActionKind = "NAVIGATE"
	TravelActionRefuel   TravelActionKind = "REFUEL"
)

// TravelAction is one atomic step of a pathfinder plan: either a navigate
// jump or a refuel stop. Refuel's TotalTime is always 2, per spec.md §4.3.
type TravelAction struct {
	Kind TravelActionKind

	// Navigate fields
	From            string
	To              string
	Distance        int
	FuelConsumption int
	Mode            shared.FlightMode

	// Refuel field
	At string

	TotalTime int
}

// NewNavigateAction builds a Navigate travel action and computes its cost.
func NewNavigateAction(from, to *shared.Waypoint, mode shared.FlightMode, engineSpeed int) *TravelAction {
	distance := from.DistanceTo(to)
	return &TravelAction{
		Kind:            TravelActionNavigate,
		From:            from.Symbol,
		To:              to.Symbol,
		Distance:        distance,
		FuelConsumption: mode.FuelCost(distance),
		Mode:            mode,
		TotalTime:       mode.TravelTime(distance, engineSpeed),
	}
}

// NewRefuelAction builds a Refuel travel action at the given waypoint.
func NewRefuelAction(at string) *TravelAction {
	return &TravelAction{Kind: TravelActionRefuel, At: at, TotalTime: 2}
}

// IsNavigate reports whether this action is a Navigate variant.
func (a *TravelAction) IsNavigate() bool { return a.Kind == TravelActionNavigate }

// IsRefuel reports whether this action is a Refuel variant.
func (a *TravelAction) IsRefuel() bool { return a.Kind == TravelActionRefuel }

// Target returns the waypoint this action's completion is measured against:
// the destination for Navigate, the refuel waypoint for Refuel.
func (a *TravelAction) Target() string {
	if a.IsRefuel() {
		return a.At
	}
	return a.To
}
