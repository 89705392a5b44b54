package pathfinder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/pathfinder"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

func TestFindPath_SameWaypointReturnsEmptyQueue(t *testing.T) {
	waypoints := map[string]pathfinder.Waypoint{
		"X1-A": {Symbol: "X1-A", X: 0, Y: 0},
	}
	actions, err := pathfinder.FindPath("X1-A", "X1-A", waypoints, 10, 100, 100)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestFindPath_UnknownWaypointReturnsNoPathError(t *testing.T) {
	waypoints := map[string]pathfinder.Waypoint{
		"X1-A": {Symbol: "X1-A", X: 0, Y: 0},
	}
	_, err := pathfinder.FindPath("X1-A", "X1-GHOST", waypoints, 10, 100, 100)
	require.Error(t, err)
	var noPath *pathfinder.NoPathError
	assert.ErrorAs(t, err, &noPath)
}

func TestFindPath_DirectHopPrefersBurnWhenFeasible(t *testing.T) {
	waypoints := map[string]pathfinder.Waypoint{
		"X1-A": {Symbol: "X1-A", X: 0, Y: 0},
		"X1-B": {Symbol: "X1-B", X: 10, Y: 0},
	}
	actions, err := pathfinder.FindPath("X1-A", "X1-B", waypoints, 30, 100, 100)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, navigation.TravelActionNavigate, actions[0].Kind)
	assert.Equal(t, "X1-A", actions[0].From)
	assert.Equal(t, "X1-B", actions[0].To)
	assert.Equal(t, shared.FlightModeBurn, actions[0].Mode)
}

func TestFindPath_InsufficientFuelForcesMultiHopOrNoPath(t *testing.T) {
	waypoints := map[string]pathfinder.Waypoint{
		"X1-A": {Symbol: "X1-A", X: 0, Y: 0},
		"X1-B": {Symbol: "X1-B", X: 1000, Y: 0},
	}
	// DRIFT burns 1 fuel per hop, so only an empty tank leaves no path.
	_, err := pathfinder.FindPath("X1-A", "X1-B", waypoints, 30, 0, 5)
	require.Error(t, err)
	var noPath *pathfinder.NoPathError
	assert.ErrorAs(t, err, &noPath)
}

func TestFindPath_RefuelableDestinationAppendsRefuelAction(t *testing.T) {
	waypoints := map[string]pathfinder.Waypoint{
		"X1-A": {Symbol: "X1-A", X: 0, Y: 0},
		"X1-B": {Symbol: "X1-B", X: 5, Y: 0, Refuelable: true},
	}
	actions, err := pathfinder.FindPath("X1-A", "X1-B", waypoints, 30, 100, 100)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, navigation.TravelActionNavigate, actions[0].Kind)
	assert.Equal(t, navigation.TravelActionRefuel, actions[1].Kind)
	assert.Equal(t, "X1-B", actions[1].At)
}

func TestFindPath_RouteThroughRefuelWaypointWhenDirectFuelInsufficient(t *testing.T) {
	waypoints := map[string]pathfinder.Waypoint{
		"X1-A": {Symbol: "X1-A", X: 0, Y: 0},
		"X1-M": {Symbol: "X1-M", X: 3, Y: 0, Refuelable: true},
		"X1-B": {Symbol: "X1-B", X: 6, Y: 0},
	}
	actions, err := pathfinder.FindPath("X1-A", "X1-B", waypoints, 30, 4, 4)
	require.NoError(t, err)
	require.NotEmpty(t, actions)
	last := actions[len(actions)-1]
	assert.Equal(t, "X1-B", last.To)
}
