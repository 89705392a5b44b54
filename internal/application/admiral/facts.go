package admiral

import (
	"context"

	"github.com/arcfleet/spacetrader-agent/internal/domain/contract"
	"github.com/arcfleet/spacetrader-agent/internal/domain/market"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// Facts is one fact-collection snapshot (spec.md §4.5): everything the
// planning step reads is gathered up front so a single planning pass sees
// a consistent view of the world.
type Facts struct {
	Ships             []*navigation.Ship
	Waypoints         []*shared.Waypoint
	Markets           []*market.MarketData
	Shipyards         []string
	SupplyChainRoots  []string
	ConstructionSite  *ConstructionSite
	StationaryProbes  map[string]string
	ActiveContracts   []*contract.Contract
}

// CollectFacts gathers the snapshot the planning step needs for one
// system. homeSystem and constructionWaypoint are admiral configuration,
// not derived facts.
func CollectFacts(ctx context.Context, store FactStore, homeSystem, constructionWaypoint string) (*Facts, error) {
	ships, err := store.ListShips(ctx)
	if err != nil {
		return nil, err
	}
	waypoints, err := store.ListWaypoints(ctx, homeSystem)
	if err != nil {
		return nil, err
	}
	markets, err := store.ListMarkets(ctx, homeSystem)
	if err != nil {
		return nil, err
	}
	shipyards, err := store.ListShipyards(ctx, homeSystem)
	if err != nil {
		return nil, err
	}
	roots, err := store.ListSupplyChainRoots(ctx, homeSystem)
	if err != nil {
		return nil, err
	}
	probes, err := store.ListStationaryProbes(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := store.ListActiveContracts(ctx)
	if err != nil {
		return nil, err
	}

	var site *ConstructionSite
	if constructionWaypoint != "" {
		site, err = store.GetConstructionSite(ctx, constructionWaypoint)
		if err != nil {
			return nil, err
		}
	}

	return &Facts{
		Ships:            ships,
		Waypoints:        waypoints,
		Markets:          markets,
		Shipyards:        shipyards,
		SupplyChainRoots: roots,
		ConstructionSite: site,
		StationaryProbes: probes,
		ActiveContracts:  contracts,
	}, nil
}
