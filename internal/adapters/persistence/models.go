// Package persistence implements every storage-backed port the core
// declares (FactStore, ObservationStore, LedgerArchiver, ShipPersister)
// against gorm, following the teacher's one-model-per-table,
// JSON-as-text-column convention for nested structures (spec.md §6: "the
// core never writes raw SQL — it calls a typed capability set").
package persistence

import "time"

// WaypointModel mirrors one row of the waypoints table.
type WaypointModel struct {
	Symbol              string `gorm:"column:symbol;primaryKey"`
	System              string `gorm:"column:system_symbol;index;not null"`
	Type                string `gorm:"column:type;not null"`
	X                   int    `gorm:"column:x;not null"`
	Y                   int    `gorm:"column:y;not null"`
	TraitsJSON          string `gorm:"column:traits;type:text"`
	IsUnderConstruction bool   `gorm:"column:is_under_construction;not null;default:false"`
}

func (WaypointModel) TableName() string { return "waypoints" }

// MarketModel is the summary (always known) half of a market.
type MarketModel struct {
	Waypoint       string `gorm:"column:waypoint_symbol;primaryKey"`
	ExportsJSON    string `gorm:"column:exports;type:text"`
	ImportsJSON    string `gorm:"column:imports;type:text"`
	ExchangeJSON   string `gorm:"column:exchange;type:text"`
	LastObservedAt *time.Time `gorm:"column:last_observed_at"`
}

func (MarketModel) TableName() string { return "markets" }

// MarketGoodModel is one priced row of a market's detailed listing —
// present only once a ship has physically observed the market, mirroring
// the teacher's one-row-per-(waypoint,good) MarketData table.
type MarketGoodModel struct {
	Waypoint      string  `gorm:"column:waypoint_symbol;primaryKey"`
	GoodSymbol    string  `gorm:"column:good_symbol;primaryKey"`
	TradeVolume   int     `gorm:"column:trade_volume;not null"`
	Supply        string  `gorm:"column:supply;not null"`
	Activity      *string `gorm:"column:activity"`
	PurchasePrice int     `gorm:"column:purchase_price;not null"`
	SellPrice     int     `gorm:"column:sell_price;not null"`
	ObservedAt    time.Time `gorm:"column:observed_at;index;not null"`
}

func (MarketGoodModel) TableName() string { return "market_goods" }

// ShipyardListingModel is one purchasable ship type at one waypoint.
type ShipyardListingModel struct {
	Waypoint      string `gorm:"column:waypoint_symbol;primaryKey"`
	ShipType      string `gorm:"column:ship_type;primaryKey"`
	PurchasePrice int    `gorm:"column:purchase_price;not null"`
	ObservedAt    time.Time `gorm:"column:observed_at;not null"`
}

func (ShipyardListingModel) TableName() string { return "shipyard_listings" }

// JumpGateConnectionModel records one directed jump-gate edge.
type JumpGateConnectionModel struct {
	Waypoint   string `gorm:"column:waypoint_symbol;primaryKey"`
	Target     string `gorm:"column:target_symbol;primaryKey"`
	ObservedAt time.Time `gorm:"column:observed_at;not null"`
}

func (JumpGateConnectionModel) TableName() string { return "jump_gate_connections" }

// ShipModel is the last known snapshot of a ship's mutable nav/fuel/cargo
// state, refreshed by the runner's ship_updated listener.
type ShipModel struct {
	Symbol      string `gorm:"column:ship_symbol;primaryKey"`
	Role        string `gorm:"column:role;not null"`
	PayloadJSON string `gorm:"column:payload;type:text;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

func (ShipModel) TableName() string { return "ships" }

// StationaryProbeModel records a ship permanently parked for observation.
type StationaryProbeModel struct {
	Waypoint   string `gorm:"column:waypoint_symbol;primaryKey"`
	ShipSymbol string `gorm:"column:ship_symbol;not null"`
	AssignedAt time.Time `gorm:"column:assigned_at;not null"`
}

func (StationaryProbeModel) TableName() string { return "stationary_probes" }

// ConstructionSiteModel is the jump gate construction progress for one
// waypoint.
type ConstructionSiteModel struct {
	Waypoint       string `gorm:"column:waypoint_symbol;primaryKey"`
	MaterialsJSON  string `gorm:"column:materials;type:text;not null"`
	Complete       bool   `gorm:"column:complete;not null;default:false"`
	LastUpdated    time.Time `gorm:"column:last_updated;not null"`
}

func (ConstructionSiteModel) TableName() string { return "construction_sites" }

// ContractModel is one accepted-or-offered contract.
type ContractModel struct {
	ID            string `gorm:"column:id;primaryKey"`
	FactionSymbol string `gorm:"column:faction_symbol;not null"`
	TermsJSON     string `gorm:"column:terms;type:text;not null"`
	Accepted      bool   `gorm:"column:accepted;not null"`
	Fulfilled     bool   `gorm:"column:fulfilled;not null"`
	LastUpdated   time.Time `gorm:"column:last_updated;not null"`
}

func (ContractModel) TableName() string { return "contracts" }

// SupplyChainRootModel names a raw good this agent has chosen to treat as
// a supply-chain root — a good worth mining/trading from scratch rather
// than sourcing from another factory's output.
type SupplyChainRootModel struct {
	System     string `gorm:"column:system_symbol;primaryKey"`
	GoodSymbol string `gorm:"column:good_symbol;primaryKey"`
}

func (SupplyChainRootModel) TableName() string { return "supply_chain_roots" }

// LedgerEntryModel is one append-only row of the financial ledger
// (spec.md §4.6/§6): the entire LedgerEntry is stored as JSON in one text
// column, the same approach the teacher uses for every variant-shaped
// aggregate it doesn't need to query by individual field (ContainerModel's
// Config, ManufacturingTaskModel's phase JSON, etc.) — only Kind and
// Timestamp get real columns since replay order and kind-filtering are
// the only things this table is ever queried by.
type LedgerEntryModel struct {
	ID        string `gorm:"column:id;primaryKey"`
	Kind      string `gorm:"column:kind;index;not null"`
	Timestamp time.Time `gorm:"column:timestamp;index;not null"`
	PayloadJSON string `gorm:"column:payload;type:text;not null"`
}

func (LedgerEntryModel) TableName() string { return "ledger_entries" }

// AllModels lists every model AutoMigrate should register, in dependency
// order.
func AllModels() []any {
	return []any{
		&WaypointModel{},
		&MarketModel{},
		&MarketGoodModel{},
		&ShipyardListingModel{},
		&JumpGateConnectionModel{},
		&ShipModel{},
		&StationaryProbeModel{},
		&ConstructionSiteModel{},
		&ContractModel{},
		&SupplyChainRootModel{},
		&LedgerEntryModel{},
	}
}
