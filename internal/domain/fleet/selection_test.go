package fleet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfleet/spacetrader-agent/internal/domain/fleet"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

func shipAt(symbol, frame string, x, y int) *navigation.Ship {
	return &navigation.Ship{
		Symbol:   symbol,
		Frame:    frame,
		Location: shared.NewWaypoint(symbol+"-loc", "", x, y, nil, false),
	}
}

func TestSelectClosestAvailableShip_PicksNearestMatchingFrame(t *testing.T) {
	ships := []*navigation.Ship{
		shipAt("FAR", "FRAME_MINER", 100, 100),
		shipAt("NEAR", "FRAME_MINER", 1, 1),
		shipAt("WRONG_FRAME", "FRAME_PROBE", 0, 0),
	}
	near := shipAt("REFERENCE", "FRAME_MINER", 0, 0)

	sel, err := fleet.SelectClosestAvailableShip(ships, "FRAME_MINER", map[string]bool{}, near)
	require.NoError(t, err)
	assert.Equal(t, "NEAR", sel.ShipSymbol)
}

func TestSelectClosestAvailableShip_BreaksTiesBySymbol(t *testing.T) {
	ships := []*navigation.Ship{
		shipAt("ZEBRA", "FRAME_MINER", 5, 0),
		shipAt("ALPHA", "FRAME_MINER", 5, 0),
	}
	near := shipAt("REFERENCE", "FRAME_MINER", 0, 0)

	sel, err := fleet.SelectClosestAvailableShip(ships, "FRAME_MINER", map[string]bool{}, near)
	require.NoError(t, err)
	assert.Equal(t, "ALPHA", sel.ShipSymbol)
}

func TestSelectClosestAvailableShip_SkipsAlreadyAssigned(t *testing.T) {
	ships := []*navigation.Ship{
		shipAt("TAKEN", "FRAME_MINER", 0, 0),
		shipAt("FREE", "FRAME_MINER", 10, 10),
	}
	near := shipAt("REFERENCE", "FRAME_MINER", 0, 0)

	sel, err := fleet.SelectClosestAvailableShip(ships, "FRAME_MINER", map[string]bool{"TAKEN": true}, near)
	require.NoError(t, err)
	assert.Equal(t, "FREE", sel.ShipSymbol)
}

func TestSelectClosestAvailableShip_ErrorsWhenNoneAvailable(t *testing.T) {
	ships := []*navigation.Ship{shipAt("ONLY", "FRAME_PROBE", 0, 0)}
	_, err := fleet.SelectClosestAvailableShip(ships, "FRAME_MINER", map[string]bool{}, nil)
	assert.Error(t, err)
}

func TestAssignShoppingList_PartialAssignmentReturnsShortfall(t *testing.T) {
	ships := []*navigation.Ship{
		shipAt("MINER-1", "FRAME_MINER", 0, 0),
	}
	steps := []fleet.ShoppingListStep{
		{Count: 3, ShipType: "FRAME_MINER", Role: "MINER"},
	}

	assignments, shortfall := fleet.AssignShoppingList(ships, steps)

	assert.Len(t, assignments, 1)
	require.Len(t, shortfall, 1)
	assert.Equal(t, 2, shortfall[0].Count)
	assert.Equal(t, "FRAME_MINER", shortfall[0].ShipType)
}

func TestAssignShoppingList_FullySatisfiedStepHasNoShortfall(t *testing.T) {
	ships := []*navigation.Ship{
		shipAt("MINER-1", "FRAME_MINER", 0, 0),
		shipAt("MINER-2", "FRAME_MINER", 1, 1),
	}
	steps := []fleet.ShoppingListStep{
		{Count: 2, ShipType: "FRAME_MINER", Role: "MINER"},
	}

	assignments, shortfall := fleet.AssignShoppingList(ships, steps)

	assert.Len(t, assignments, 2)
	assert.Empty(t, shortfall)
}
