package wiring

import (
	"context"

	"github.com/arcfleet/spacetrader-agent/internal/domain/market"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/pathfinder"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// WaypointSource is the read access the pathfinder adapter needs to build
// one system's search graph.
type WaypointSource interface {
	ListWaypoints(ctx context.Context, system string) ([]*shared.Waypoint, error)
	ListMarkets(ctx context.Context, system string) ([]*market.MarketData, error)
}

// NewPathFinder adapts pathfinder.FindPath (a pure, context-free function
// over an in-memory graph) into the shipactions.PathFinder shape: it
// loads the origin waypoint's system graph from src on every call. The
// core never imports adapters/persistence directly (spec.md §9), so this
// lives in wiring rather than in internal/application/shipactions.
func NewPathFinder(src WaypointSource) func(ctx context.Context, from, to string, engineSpeed int, fuel *shared.Fuel) ([]*navigation.TravelAction, error) {
	return func(ctx context.Context, from, to string, engineSpeed int, fuel *shared.Fuel) ([]*navigation.TravelAction, error) {
		system := shared.SystemSymbolOf(from)

		waypoints, err := src.ListWaypoints(ctx, system)
		if err != nil {
			return nil, err
		}
		markets, err := src.ListMarkets(ctx, system)
		if err != nil {
			return nil, err
		}
		refuelable := make(map[string]bool, len(markets))
		for _, m := range markets {
			if m.IsRefuelable() {
				refuelable[m.Waypoint] = true
			}
		}

		graph := make(map[string]pathfinder.Waypoint, len(waypoints))
		for _, wp := range waypoints {
			graph[wp.Symbol] = pathfinder.Waypoint{
				Symbol:     wp.Symbol,
				X:          wp.X,
				Y:          wp.Y,
				Refuelable: refuelable[wp.Symbol],
			}
		}

		return pathfinder.FindPath(from, to, graph, engineSpeed, fuel.Current, fuel.Capacity)
	}
}
