package fleet

import (
	"fmt"
	"math"
	"sort"

	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
)

// ShipSelection is the outcome of matching one shopping-list step to an
// available ship.
type ShipSelection struct {
	ShipSymbol string
	Distance   float64
	Reason     string
}

// SelectClosestAvailableShip picks the nearest ship of the given frame that
// isn't already assigned, breaking ties deterministically on ship symbol
// (spec.md §4.5 "greedy match ... with a deterministic tie-break on ship
// symbol").
func SelectClosestAvailableShip(ships []*navigation.Ship, frame string, assigned map[string]bool, near *navigation.Ship) (*ShipSelection, error) {
	candidates := make([]*navigation.Ship, 0, len(ships))
	for _, s := range ships {
		if s.Frame != frame || assigned[s.Symbol] {
			continue
		}
		candidates = append(candidates, s)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no unassigned ship of frame %s available", frame)
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Symbol < candidates[j].Symbol })

	best := candidates[0]
	bestDist := math.MaxFloat64
	if near != nil {
		for _, c := range candidates {
			d := float64(near.Location.DistanceTo(c.Location))
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
	} else {
		bestDist = 0
	}

	return &ShipSelection{ShipSymbol: best.Symbol, Distance: bestDist, Reason: "closest available ship of matching frame"}, nil
}

// AssignShoppingList walks a shopping list in order, greedily matching each
// step's count against unassigned ships of the requested frame. Steps that
// cannot be fully satisfied return the partial assignment plus the
// shortfall, rather than failing outright — the admiral may need to
// purchase the remainder.
func AssignShoppingList(ships []*navigation.Ship, steps []ShoppingListStep) (assignments map[string]ShoppingListStep, shortfall []ShoppingListStep) {
	assignments = make(map[string]ShoppingListStep)
	assigned := make(map[string]bool)

	for _, step := range steps {
		remaining := step.Count
		for remaining > 0 {
			sel, err := SelectClosestAvailableShip(ships, step.ShipType, assigned, nil)
			if err != nil {
				break
			}
			assigned[sel.ShipSymbol] = true
			assignments[sel.ShipSymbol] = step
			remaining--
		}
		if remaining > 0 {
			shortfall = append(shortfall, ShoppingListStep{Count: remaining, ShipType: step.ShipType, Role: step.Role})
		}
	}
	return assignments, shortfall
}
