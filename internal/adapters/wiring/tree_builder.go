package wiring

import (
	"context"
	"fmt"

	"github.com/arcfleet/spacetrader-agent/internal/application/admiral"
	"github.com/arcfleet/spacetrader-agent/internal/application/shipactions"
	"github.com/arcfleet/spacetrader-agent/internal/application/tradeplan"
	"github.com/arcfleet/spacetrader-agent/internal/application/treasurer"
	"github.com/arcfleet/spacetrader-agent/internal/domain/behavior"
	"github.com/arcfleet/spacetrader-agent/internal/domain/fleet"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/ports"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// ShipLookup is the admiral surface the tree builder needs: which ship,
// and which fleet it belongs to.
type ShipLookup interface {
	Ships() []*navigation.Ship
	FleetOf(shipSymbol string) (string, bool)
}

// TreeBuilderDeps bundles every collaborator NewTreeBuilder closes over.
type TreeBuilderDeps struct {
	API        ports.GameAPI
	Store      shipactions.ObservationStore
	Treasurer  *treasurer.Treasurer
	Contracts  shipactions.ContractStore
	FindPath   shipactions.PathFinder
	Clock      shared.Clock
	ShipLookup ShipLookup
	Facts      func() (*admiral.Facts, error)
}

// NewTreeBuilder adapts an admiral decision's ShipTask into the concrete
// behavior tree a fiber runs, the translation spec.md §4.7 leaves to "the
// wiring layer, which knows how to translate a fleet.ShipTask into a
// concrete shipactions tree" (runner.TreeBuilder's doc comment).
func NewTreeBuilder(d TreeBuilderDeps) func(shipSymbol string, task fleet.ShipTask) (behavior.Node, error) {
	return func(shipSymbol string, task fleet.ShipTask) (behavior.Node, error) {
		ship := findShip(d.ShipLookup, shipSymbol)
		if ship == nil {
			return nil, fmt.Errorf("build tree: unknown ship %s", shipSymbol)
		}
		fleetID, _ := d.ShipLookup.FleetOf(shipSymbol)

		rs := shipactions.NewRunState(ship)
		args := shipactions.Args{
			API:       d.API,
			Store:     d.Store,
			Treasurer: &TreasurerAdapter{Treasurer: d.Treasurer},
			Contracts: d.Contracts,
			FindPath:  d.FindPath,
			Clock:     d.Clock,
			FleetID:   fleetID,
		}

		switch task.Kind {
		case fleet.TaskObserveAllWaypointsOnce:
			rs.ExploreQueue = append([]string{}, task.Waypoints...)
			return shipactions.ExplorerBehavior(args, rs), nil

		case fleet.TaskObserveWaypointDetails:
			wp := task.Waypoint
			rs.PermanentExploreLocation = &wp
			return shipactions.StationaryProbeBehavior(args, rs), nil

		case fleet.TaskTrade:
			ticketIDs, contractID, err := planTradeTickets(context.Background(), d, fleetID, ship)
			if err != nil {
				return nil, fmt.Errorf("plan trade tickets for %s: %w", shipSymbol, err)
			}
			rs.ActiveTicketIDs = ticketIDs
			rs.ContractID = contractID
			return shipactions.TradingBehavior(args, rs), nil

		default:
			return nil, fmt.Errorf("build tree: unsupported task kind %s", task.Kind)
		}
	}
}

func findShip(lookup ShipLookup, symbol string) *navigation.Ship {
	for _, s := range lookup.Ships() {
		if s.Symbol == symbol {
			return s
		}
	}
	return nil
}

// planTradeTickets turns the first active (already-accepted) contract in
// the facts snapshot into treasurer tickets via tradeplan.Plan, grounded on
// tradeplan's own doc comment: "the admiral turns these into real
// ledger.FinanceTicket's via the treasurer once a ship is assigned". With
// no active contract this falls back to an empty ticket set — the ship's
// tree still tries AcceptContract first, then simply idles until the next
// re-plan if nothing is pending either.
func planTradeTickets(ctx context.Context, d TreeBuilderDeps, fleetID string, ship *navigation.Ship) ([]string, string, error) {
	facts, err := d.Facts()
	if err != nil {
		return nil, "", err
	}
	if len(facts.ActiveContracts) == 0 {
		return nil, "", nil
	}
	c := facts.ActiveContracts[0]

	requests, err := tradeplan.Plan(c, ship.Cargo, facts.Markets)
	if err != nil {
		return nil, "", err
	}

	ticketIDs := make([]string, 0, len(requests))
	for _, req := range requests {
		var id string
		switch req.Kind {
		case tradeplan.RequestPurchase:
			t, err := d.Treasurer.CreatePurchaseTradeGoodsTicket(ctx, fleetID, req.GoodSymbol, req.Waypoint, ship.Symbol, req.Quantity, req.ExpectedPP)
			if err != nil {
				return ticketIDs, c.ID, err
			}
			id = t.ID
		case tradeplan.RequestSell:
			t, err := d.Treasurer.CreateSellTradeGoodsTicket(ctx, fleetID, req.GoodSymbol, req.Waypoint, ship.Symbol, req.Quantity, req.ExpectedPP, "")
			if err != nil {
				return ticketIDs, c.ID, err
			}
			id = t.ID
		case tradeplan.RequestDeliver:
			t, err := d.Treasurer.CreateDeliverContractCargoTicket(ctx, fleetID, req.GoodSymbol, req.Waypoint, ship.Symbol, req.Quantity)
			if err != nil {
				return ticketIDs, c.ID, err
			}
			id = t.ID
		}
		ticketIDs = append(ticketIDs, id)
	}
	return ticketIDs, c.ID, nil
}
