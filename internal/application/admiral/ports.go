package admiral

import (
	"context"

	"github.com/arcfleet/spacetrader-agent/internal/domain/contract"
	"github.com/arcfleet/spacetrader-agent/internal/domain/ledger"
	"github.com/arcfleet/spacetrader-agent/internal/domain/market"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// FactStore is the admiral's read-only window onto persisted world state
// (spec.md §4.5 "Fact collection").
type FactStore interface {
	ListShips(ctx context.Context) ([]*navigation.Ship, error)
	ListWaypoints(ctx context.Context, system string) ([]*shared.Waypoint, error)
	ListMarkets(ctx context.Context, system string) ([]*market.MarketData, error)
	ListShipyards(ctx context.Context, system string) ([]string, error)
	GetConstructionSite(ctx context.Context, waypoint string) (*ConstructionSite, error)
	ListStationaryProbes(ctx context.Context) (map[string]string, error) // waypoint -> ship symbol
	ListSupplyChainRoots(ctx context.Context, system string) ([]string, error)
	ListActiveContracts(ctx context.Context) ([]*contract.Contract, error)
}

// ConstructionSite is the subset of a jump gate's construction progress
// the admiral plans around.
type ConstructionSite struct {
	Waypoint   string
	Complete   bool
	Needed     map[string]int
	Fulfilled  map[string]int
}

// TreasurerFacts is the subset of the treasurer the admiral reads and
// writes through — ticket creation plus pure queries, never raw ledger
// entries.
type TreasurerFacts interface {
	GetFleetBudget(fleetID string) (*ledger.FleetBudget, error)
	GetActiveTickets(fleetID string) []*ledger.FinanceTicket
	CreateFleet(ctx context.Context, fleetID string, budget int) error
	TransferFundsToFleetToTopUpAvailableCapital(ctx context.Context, fleetID string) error
}
