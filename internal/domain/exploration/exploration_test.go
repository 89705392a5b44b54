package exploration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcfleet/spacetrader-agent/internal/domain/exploration"
)

func TestGenerateExplorationRoute_FiltersUnknownWaypoints(t *testing.T) {
	pois := []exploration.Point{
		{Symbol: "A", X: 0, Y: 0},
		{Symbol: "GHOST", X: 5, Y: 5},
		{Symbol: "B", X: 10, Y: 0},
	}
	known := map[string]exploration.Point{
		"A": pois[0],
		"B": pois[2],
	}

	route := exploration.GenerateExplorationRoute(pois, known, pois[0])

	symbols := make([]string, len(route))
	for i, p := range route {
		symbols[i] = p.Symbol
	}
	assert.ElementsMatch(t, []string{"A", "B"}, symbols)
}

func TestGenerateExplorationRoute_EmptyWhenNoPointsKnown(t *testing.T) {
	pois := []exploration.Point{{Symbol: "A", X: 0, Y: 0}}
	route := exploration.GenerateExplorationRoute(pois, map[string]exploration.Point{}, pois[0])
	assert.Empty(t, route)
}

func TestGenerateExplorationRoute_StartsAtRequestedPointWhenPresent(t *testing.T) {
	pois := []exploration.Point{
		{Symbol: "A", X: 0, Y: 0},
		{Symbol: "B", X: 10, Y: 0},
		{Symbol: "C", X: 20, Y: 0},
	}
	known := map[string]exploration.Point{"A": pois[0], "B": pois[1], "C": pois[2]}

	route := exploration.GenerateExplorationRoute(pois, known, pois[1])

	require := assert.New(t)
	require.NotEmpty(route)
	require.Equal("B", route[0].Symbol)
}

func TestGenerateExplorationRoute_TwoOptUncrossesPath(t *testing.T) {
	// A crossed quadrilateral tour A->C->B->D is worse than the uncrossed
	// A->B->C->D; 2-opt should fix it while keeping A first.
	pois := []exploration.Point{
		{Symbol: "A", X: 0, Y: 0},
		{Symbol: "C", X: 10, Y: 10},
		{Symbol: "B", X: 10, Y: 0},
		{Symbol: "D", X: 0, Y: 10},
	}
	known := map[string]exploration.Point{
		"A": pois[0], "B": pois[2], "C": pois[1], "D": pois[3],
	}

	route := exploration.GenerateExplorationRoute(pois, known, pois[0])

	require := assert.New(t)
	require.Len(route, 4)
	require.Equal("A", route[0].Symbol)

	order := make([]string, len(route))
	for i, p := range route {
		order[i] = p.Symbol
	}
	assert.Contains(t, [][]string{{"A", "B", "C", "D"}, {"A", "D", "C", "B"}}, order)
}

func TestGenerateExplorationRoute_FallsBackToNearestWhenStartNotInSet(t *testing.T) {
	pois := []exploration.Point{
		{Symbol: "Far", X: 100, Y: 100},
		{Symbol: "Near", X: 1, Y: 1},
	}
	known := map[string]exploration.Point{"Far": pois[0], "Near": pois[1]}

	route := exploration.GenerateExplorationRoute(pois, known, exploration.Point{Symbol: "ship", X: 0, Y: 0})

	assert.Equal(t, "Near", route[0].Symbol)
}
