// Package ports declares the typed capability sets the core consumes from
// external collaborators (spec.md §6): the game HTTP API and the
// persistence layer. Both are out of the core's scope to implement in full —
// adapters/api and adapters/persistence provide concrete, testable
// implementations, but the core only ever depends on these interfaces.
package ports

import (
	"context"
	"time"

	"github.com/arcfleet/spacetrader-agent/internal/domain/market"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// Envelope mirrors the game API's {data, meta?} response wrapper.
type Envelope[T any] struct {
	Data T
	Meta *PageMeta
}

// PageMeta carries pagination bookkeeping for list endpoints.
type PageMeta struct {
	Total int
	Page  int
	Limit int
}

// Done reports whether pagination has exhausted the result set, per
// spec.md §6: "iteration stops when page·limit ≥ total".
func (m *PageMeta) Done() bool {
	return m == nil || m.Page*m.Limit >= m.Total
}

// AgentStatus is the subset of GetAgent relevant to the treasurer/admiral.
type AgentStatus struct {
	Symbol  string
	Credits int
}

// NavResult is returned by Navigate/Dock/Orbit/SetFlightMode calls that
// mutate ship nav state.
type NavResult struct {
	Status      navigation.NavStatus
	Route       *navigation.Route
	FlightMode  shared.FlightMode
	FuelCurrent int
}

// RefuelResult is returned by a Refuel call.
type RefuelResult struct {
	FuelCurrent int
	FuelCapacity int
	UnitsBought  int
	PricePerUnit int
	TotalCost    int
}

// ChartResult is returned by CreateChart.
type ChartResult struct {
	Waypoint *shared.Waypoint
}

// TradeResult is returned by purchase/sell trade-good calls.
type TradeResult struct {
	TradeSymbol  string
	Units        int
	PricePerUnit int
	TotalPrice   int
	NewCargo     *shared.Cargo
	AgentCredits int
}

// ShipPurchaseResult is returned by purchasing a ship at a shipyard.
type ShipPurchaseResult struct {
	Ship         *navigation.Ship
	TotalPrice   int
	AgentCredits int
}

// ContractResult is returned by accepting or fulfilling a contract — the
// payment credited and the agent's resulting balance.
type ContractResult struct {
	Payment      int
	AgentCredits int
}

// GameAPI is the capability set listed in spec.md §6. It is the only
// surface the core's ship actions and admiral are allowed to call against
// the outside world.
type GameAPI interface {
	GetStatus(ctx context.Context) error
	GetAgent(ctx context.Context) (*AgentStatus, error)
	GetConstructionSite(ctx context.Context, waypoint string) (*ConstructionSite, error)

	DockShip(ctx context.Context, ship string) (*NavResult, error)
	OrbitShip(ctx context.Context, ship string) (*NavResult, error)
	SetFlightMode(ctx context.Context, ship string, mode shared.FlightMode) (*NavResult, error)
	Navigate(ctx context.Context, ship, to string) (*NavResult, error)
	Refuel(ctx context.Context, ship string, amount int, fromCargo bool) (*RefuelResult, error)

	ListShips(ctx context.Context, page, limit int) (Envelope[[]*navigation.Ship], error)
	ListWaypointsOfSystemPage(ctx context.Context, system string, page, limit int) (Envelope[[]*shared.Waypoint], error)
	ListSystemsPage(ctx context.Context, page, limit int) (Envelope[[]string], error)
	GetSystem(ctx context.Context, symbol string) (*shared.Waypoint, error)

	GetMarketplace(ctx context.Context, waypoint string) (*market.MarketData, error)
	GetJumpGate(ctx context.Context, waypoint string) ([]string, error)
	GetShipyard(ctx context.Context, waypoint string) (*Shipyard, error)

	CreateChart(ctx context.Context, ship string) (*ChartResult, error)
	PurchaseTradeGood(ctx context.Context, ship, tradeSymbol string, units int) (*TradeResult, error)
	SellTradeGood(ctx context.Context, ship, tradeSymbol string, units int) (*TradeResult, error)
	SupplyConstruction(ctx context.Context, ship, waypoint, tradeSymbol string, units int) (int, error)
	PurchaseShip(ctx context.Context, shipType, waypoint string) (*ShipPurchaseResult, error)
	AcceptContract(ctx context.Context, contractID string) (*ContractResult, error)
	FulfillContract(ctx context.Context, contractID string) (*ContractResult, error)

	Register(ctx context.Context, faction, symbol, email string) (*AgentStatus, error)
}

// ConstructionSite is the subset of the game's construction-site resource
// the admiral needs to drive ConstructJumpGate phase decisions.
type ConstructionSite struct {
	Waypoint  string
	Materials []ConstructionMaterial
	Complete  bool
}

// ConstructionMaterial is one required good for a construction site.
type ConstructionMaterial struct {
	TradeSymbol string
	Required    int
	Fulfilled   int
}

// Shipyard is the subset of shipyard data the admiral's shopping list needs.
type Shipyard struct {
	Waypoint string
	Ships    []ShipyardListing
}

// ShipyardListing is one purchasable ship type at a shipyard.
type ShipyardListing struct {
	ShipType     string
	Frame        string
	PurchasePrice int
}

// RateLimitSnapshot exposes observability into the HTTP collaborator
// without the core depending on its implementation, used by metrics.
type RateLimitSnapshot struct {
	TokensAvailable float64
	ObservedAt      time.Time
}
