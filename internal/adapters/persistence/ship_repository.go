package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// ShipRepository implements FactStore.ListShips and runner.ShipPersister,
// grounded on the teacher's ship_repository.go — one row per ship, the
// whole mutable nav/fuel/cargo state stored as JSON since it is read back
// only to reconstruct a *navigation.Ship in full, never queried by field.
type ShipRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

func NewShipRepository(db *gorm.DB, clock shared.Clock) *ShipRepository {
	if clock == nil {
		clock = shared.RealClock{}
	}
	return &ShipRepository{db: db, clock: clock}
}

// shipPayload is the JSON-serializable projection of navigation.Ship —
// needed because Ship carries *shared.Waypoint/*shared.Fuel/*shared.Cargo
// pointers whose own fields marshal fine, but round-tripping through the
// constructors on read keeps invariants enforced.
type shipPayload struct {
	Symbol      string                 `json:"symbol"`
	Role        string                 `json:"role"`
	Location    string                 `json:"location"`
	EngineSpeed int                    `json:"engineSpeed"`
	Fuel        shared.Fuel            `json:"fuel"`
	Cargo       shared.Cargo           `json:"cargo"`
	Frame       string                 `json:"frame"`
	Modules     []navigation.ShipModule `json:"modules"`
	FlightMode  shared.FlightMode      `json:"flightMode"`
	NavStatus   navigation.NavStatus   `json:"navStatus"`
	Route       *navigation.Route      `json:"route,omitempty"`
	Cooldown    *time.Time             `json:"cooldown,omitempty"`
}

func (r *ShipRepository) PersistShipSnapshot(shipSymbol string, payload any) error {
	ship, ok := payload.(*navigation.Ship)
	if !ok || ship == nil {
		return fmt.Errorf("persist ship snapshot %s: unexpected payload type %T", shipSymbol, payload)
	}
	encoded, err := json.Marshal(toShipPayload(ship))
	if err != nil {
		return fmt.Errorf("encode ship snapshot %s: %w", shipSymbol, err)
	}
	model := &ShipModel{
		Symbol:      ship.Symbol,
		Role:        ship.Role,
		PayloadJSON: string(encoded),
		UpdatedAt:   r.clock.Now(),
	}
	if err := r.db.Save(model).Error; err != nil {
		return fmt.Errorf("save ship snapshot %s: %w", shipSymbol, err)
	}
	return nil
}

func (r *ShipRepository) ListShips(ctx context.Context) ([]*navigation.Ship, error) {
	var models []ShipModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list ships: %w", err)
	}
	out := make([]*navigation.Ship, 0, len(models))
	for _, m := range models {
		var p shipPayload
		if err := json.Unmarshal([]byte(m.PayloadJSON), &p); err != nil {
			return nil, fmt.Errorf("decode ship %s: %w", m.Symbol, err)
		}
		ship := fromShipPayload(&p)
		if err := ship.Validate(); err != nil {
			return nil, fmt.Errorf("invalid persisted ship %s: %w", m.Symbol, err)
		}
		out = append(out, ship)
	}
	return out, nil
}

func toShipPayload(s *navigation.Ship) shipPayload {
	location := ""
	if s.Location != nil {
		location = s.Location.Symbol
	}
	fuel := shared.Fuel{}
	if s.Fuel != nil {
		fuel = *s.Fuel
	}
	cargo := shared.Cargo{}
	if s.Cargo != nil {
		cargo = *s.Cargo
	}
	return shipPayload{
		Symbol: s.Symbol, Role: s.Role, Location: location, EngineSpeed: s.EngineSpeed,
		Fuel: fuel, Cargo: cargo, Frame: s.Frame, Modules: s.Modules,
		FlightMode: s.FlightMode, NavStatus: s.NavStatus, Route: s.Route, Cooldown: s.Cooldown,
	}
}

func fromShipPayload(p *shipPayload) *navigation.Ship {
	fuel := p.Fuel
	cargo := p.Cargo
	return &navigation.Ship{
		Symbol:      p.Symbol,
		Role:        p.Role,
		Location:    shared.NewWaypoint(p.Location, "", 0, 0, nil, false),
		EngineSpeed: p.EngineSpeed,
		Fuel:        &fuel,
		Cargo:       &cargo,
		Frame:       p.Frame,
		Modules:     p.Modules,
		FlightMode:  p.FlightMode,
		NavStatus:   p.NavStatus,
		Route:       p.Route,
		Cooldown:    p.Cooldown,
	}
}
