package shipactions

import (
	"context"

	"github.com/arcfleet/spacetrader-agent/internal/domain/contract"
	"github.com/arcfleet/spacetrader-agent/internal/domain/market"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// ObservationStore is the subset of persistence this package needs to
// record what a ship sees while exploring (spec.md §6: "the core never
// writes raw SQL — it calls a typed capability set").
type ObservationStore interface {
	UpsertWaypoint(ctx context.Context, wp *shared.Waypoint) error
	UpsertMarket(ctx context.Context, m *market.MarketData) error
	UpsertShipyardListing(ctx context.Context, waypoint string, shipTypes []string, prices map[string]int) error
	UpsertJumpGateConnections(ctx context.Context, waypoint string, connections []string) error
}

// Treasurer is the subset of the treasurer's interface (spec.md §4.6) the
// trading and refuel actions call directly: reporting the actual price
// paid/earned so reservations reconcile, and completing tickets.
type Treasurer interface {
	ReportExpense(ctx context.Context, fleetID, shipSymbol, reason string, amount int) error
	ReportIncome(ctx context.Context, fleetID, shipSymbol, reason string, amount int) error
	CompleteTicket(ctx context.Context, ticketID string, actualPricePerUnit int) error
	ActiveTicket(ctx context.Context, ticketID string) (*TradeTicket, error)
}

// TradeTicket is the subset of a treasurer-issued ticket the trading leaf
// needs to execute the underlying game-API call. The treasurer's internal
// ledger representation (FinanceTicket/TransactionTicket) is richer; this
// is the read projection shipactions depends on.
type TradeTicket struct {
	ID          string
	FleetID     string
	Kind        TicketKind
	Waypoint    string
	GoodSymbol  string
	Quantity    int
	ExpectedPP  int
	ShipType    string // for PurchaseShip tickets
}

// TicketKind enumerates the treasurer ticket kinds a trading leaf can act on.
type TicketKind string

const (
	TicketPurchaseTradeGood TicketKind = "PURCHASE_TRADE_GOODS"
	TicketSellTradeGood     TicketKind = "SELL_TRADE_GOODS"
	TicketSupplyConstruction TicketKind = "SUPPLY_CONSTRUCTION"
	TicketDeliverContract   TicketKind = "DELIVER_CONTRACT_CARGO"
	TicketPurchaseShip      TicketKind = "PURCHASE_SHIP"
)

// ContractStore is the subset of persistence the AcceptContract/
// FulfillContract leaves need: find the fleet's pending or assigned
// contract and save it back once its domain state changes.
type ContractStore interface {
	ListPendingContracts(ctx context.Context) ([]*contract.Contract, error)
	FindContract(ctx context.Context, id string) (*contract.Contract, error)
	UpsertContract(ctx context.Context, c *contract.Contract) error
}

// PathFinder computes an ordered travel queue between two waypoints in the
// same system, given the ship's current engine speed and fuel. It is
// injected rather than imported directly from internal/domain/pathfinder
// so this package's dependency surface stays limited to what it calls.
type PathFinder func(ctx context.Context, from, to string, engineSpeed int, fuel *shared.Fuel) ([]*navigation.TravelAction, error)
