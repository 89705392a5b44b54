package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/arcfleet/spacetrader-agent/internal/application/admiral"
	"github.com/arcfleet/spacetrader-agent/internal/domain/contract"
	"github.com/arcfleet/spacetrader-agent/internal/domain/ledger"
	"github.com/arcfleet/spacetrader-agent/internal/domain/market"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// Repository is the umbrella persistence adapter: one gorm handle shared
// by every sub-repository, assembled once at process startup and handed
// out to the admiral, treasurer, runner, and shipactions as the narrow
// interfaces each of them declares (admiral.FactStore,
// shipactions.ObservationStore, treasurer.LedgerArchiver,
// runner.ShipPersister). Grounded on the teacher's persistence package,
// which likewise constructs one *gorm.DB and hands out one repository
// struct per aggregate rather than a single god-object.
type Repository struct {
	DB *gorm.DB

	Waypoints    *WaypointRepository
	Markets      *MarketRepository
	Shipyards    *ShipyardRepository
	Ships        *ShipRepository
	Ledger       *LedgerRepository
	Construction *ConstructionRepository
	Probes       *ProbeRepository
	Contracts    *ContractRepository
	SupplyChain  *SupplyChainRepository
}

// New wires every sub-repository against the same gorm handle. clock is
// injected throughout for deterministic timestamps in tests; pass nil to
// default to shared.RealClock.
func New(db *gorm.DB, clock shared.Clock) *Repository {
	if clock == nil {
		clock = shared.RealClock{}
	}
	return &Repository{
		DB:           db,
		Waypoints:    NewWaypointRepository(db),
		Markets:      NewMarketRepository(db, clock),
		Shipyards:    NewShipyardRepository(db, clock),
		Ships:        NewShipRepository(db, clock),
		Ledger:       NewLedgerRepository(db),
		Construction: NewConstructionRepository(db, clock),
		Probes:       NewProbeRepository(db, clock),
		Contracts:    NewContractRepository(db, clock),
		SupplyChain:  NewSupplyChainRepository(db),
	}
}

// Migrate creates or updates every table this repository touches.
func (r *Repository) Migrate() error {
	return r.DB.AutoMigrate(AllModels()...)
}

// The methods below forward to the matching sub-repository so that
// *Repository itself satisfies admiral.FactStore, shipactions.
// ObservationStore, treasurer.LedgerArchiver, and runner.ShipPersister —
// wiring code needs to pass around one value instead of four.

var (
	_ admiral.FactStore = (*Repository)(nil)
)

func (r *Repository) ListShips(ctx context.Context) ([]*navigation.Ship, error) {
	return r.Ships.ListShips(ctx)
}

func (r *Repository) ListWaypoints(ctx context.Context, system string) ([]*shared.Waypoint, error) {
	return r.Waypoints.ListBySystem(ctx, system)
}

func (r *Repository) ListMarkets(ctx context.Context, system string) ([]*market.MarketData, error) {
	return r.Markets.ListBySystem(ctx, system)
}

func (r *Repository) ListShipyards(ctx context.Context, system string) ([]string, error) {
	return r.Shipyards.ListShipyardWaypoints(ctx, system)
}

func (r *Repository) GetConstructionSite(ctx context.Context, waypoint string) (*admiral.ConstructionSite, error) {
	return r.Construction.GetConstructionSite(ctx, waypoint)
}

func (r *Repository) ListStationaryProbes(ctx context.Context) (map[string]string, error) {
	return r.Probes.ListStationaryProbes(ctx)
}

func (r *Repository) ListSupplyChainRoots(ctx context.Context, system string) ([]string, error) {
	return r.SupplyChain.ListSupplyChainRoots(ctx, system)
}

func (r *Repository) ListActiveContracts(ctx context.Context) ([]*contract.Contract, error) {
	return r.Contracts.ListActiveContracts(ctx)
}

// ListPendingContracts and FindContract/UpsertContract satisfy
// shipactions.ContractStore.

func (r *Repository) ListPendingContracts(ctx context.Context) ([]*contract.Contract, error) {
	return r.Contracts.ListPendingContracts(ctx)
}

func (r *Repository) FindContract(ctx context.Context, id string) (*contract.Contract, error) {
	return r.Contracts.FindContract(ctx, id)
}

func (r *Repository) UpsertContract(ctx context.Context, c *contract.Contract) error {
	return r.Contracts.UpsertContract(ctx, c)
}

// UpsertWaypoint, UpsertMarket, UpsertShipyardListing, and
// UpsertJumpGateConnections satisfy shipactions.ObservationStore.

func (r *Repository) UpsertWaypoint(ctx context.Context, wp *shared.Waypoint) error {
	return r.Waypoints.UpsertWaypoint(ctx, wp)
}

func (r *Repository) UpsertMarket(ctx context.Context, m *market.MarketData) error {
	return r.Markets.UpsertMarket(ctx, m)
}

func (r *Repository) UpsertShipyardListing(ctx context.Context, waypoint string, shipTypes []string, prices map[string]int) error {
	return r.Shipyards.UpsertShipyardListing(ctx, waypoint, shipTypes, prices)
}

func (r *Repository) UpsertJumpGateConnections(ctx context.Context, waypoint string, connections []string) error {
	return r.Shipyards.UpsertJumpGateConnections(ctx, waypoint, connections)
}

// Append satisfies treasurer.LedgerArchiver.
func (r *Repository) Append(ctx context.Context, entries []ledger.LedgerEntry) error {
	return r.Ledger.Append(ctx, entries)
}

// PersistShipSnapshot satisfies runner.ShipPersister.
func (r *Repository) PersistShipSnapshot(shipSymbol string, payload any) error {
	return r.Ships.PersistShipSnapshot(shipSymbol, payload)
}
