package api

import (
	"time"

	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/ports"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// metaDTO mirrors the game API's pagination meta block.
type metaDTO struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (m metaDTO) toPageMeta() *ports.PageMeta {
	return &ports.PageMeta{Total: m.Total, Page: m.Page, Limit: m.Limit}
}

// waypointDTO mirrors one waypoint resource.
type waypointDTO struct {
	Symbol string `json:"symbol"`
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Traits []struct {
		Symbol string `json:"symbol"`
	} `json:"traits"`
	IsUnderConstruction bool `json:"isUnderConstruction"`
}

func (d waypointDTO) toWaypoint() *shared.Waypoint {
	traits := make([]shared.Trait, len(d.Traits))
	for i, t := range d.Traits {
		traits[i] = shared.Trait(t.Symbol)
	}
	return shared.NewWaypoint(d.Symbol, shared.WaypointType(d.Type), d.X, d.Y, traits, d.IsUnderConstruction)
}

// cargoDTO mirrors a ship's cargo hold.
type cargoDTO struct {
	Capacity  int `json:"capacity"`
	Inventory []struct {
		Symbol string `json:"symbol"`
		Units  int    `json:"units"`
	} `json:"inventory"`
}

func (d cargoDTO) toCargo() (*shared.Cargo, error) {
	items := make([]shared.CargoItem, len(d.Inventory))
	for i, it := range d.Inventory {
		items[i] = shared.CargoItem{Symbol: it.Symbol, Units: it.Units}
	}
	return shared.NewCargo(d.Capacity, items)
}

// navDTO mirrors a ship's nav block, shared by ship responses and the
// dedicated nav-mutation endpoints (dock/orbit/navigate/patch-nav).
type navDTO struct {
	SystemSymbol   string `json:"systemSymbol"`
	WaypointSymbol string `json:"waypointSymbol"`
	Status         string `json:"status"`
	FlightMode     string `json:"flightMode"`
	Route          *struct {
		Origin struct {
			Symbol string `json:"symbol"`
		} `json:"origin"`
		Destination struct {
			Symbol string `json:"symbol"`
		} `json:"destination"`
		Departure time.Time `json:"departureTime"`
		Arrival   time.Time `json:"arrival"`
	} `json:"route"`
}

func (n navDTO) toRoute() *navigation.Route {
	if n.Route == nil {
		return nil
	}
	return &navigation.Route{
		Origin:      n.Route.Origin.Symbol,
		Destination: n.Route.Destination.Symbol,
		Departure:   n.Route.Departure,
		Arrival:     n.Route.Arrival,
	}
}

// navResultEnvelope mirrors the {data:{nav,fuel}} shape every nav-mutating
// endpoint returns.
type navResultEnvelope struct {
	Data struct {
		Nav  navDTO `json:"nav"`
		Fuel struct {
			Current int `json:"current"`
		} `json:"fuel"`
	} `json:"data"`
}

func (e navResultEnvelope) toNavResult() *ports.NavResult {
	return &ports.NavResult{
		Status:      navigation.NavStatus(e.Data.Nav.Status),
		Route:       e.Data.Nav.toRoute(),
		FlightMode:  shared.FlightMode(e.Data.Nav.FlightMode),
		FuelCurrent: e.Data.Fuel.Current,
	}
}

// shipDTO mirrors the full ship resource.
type shipDTO struct {
	Symbol string `json:"symbol"`
	Registration struct {
		Role string `json:"role"`
	} `json:"registration"`
	Nav   navDTO `json:"nav"`
	Fuel  struct {
		Current  int `json:"current"`
		Capacity int `json:"capacity"`
	} `json:"fuel"`
	Cargo  cargoDTO `json:"cargo"`
	Engine struct {
		Speed int `json:"speed"`
	} `json:"engine"`
	Frame struct {
		Symbol string `json:"symbol"`
	} `json:"frame"`
	Modules []struct {
		Symbol   string `json:"symbol"`
		Capacity int    `json:"capacity"`
		Range    int    `json:"range"`
	} `json:"modules"`
	Cooldown struct {
		Expiration *time.Time `json:"expiration"`
	} `json:"cooldown"`
}

func (d shipDTO) toShip() (*navigation.Ship, error) {
	fuel, err := shared.NewFuel(d.Fuel.Current, d.Fuel.Capacity)
	if err != nil {
		return nil, err
	}
	cargo, err := d.Cargo.toCargo()
	if err != nil {
		return nil, err
	}
	modules := make([]navigation.ShipModule, len(d.Modules))
	for i, m := range d.Modules {
		modules[i] = navigation.ShipModule{Symbol: m.Symbol, Capacity: m.Capacity, Range: m.Range}
	}
	ship := &navigation.Ship{
		Symbol:      d.Symbol,
		Role:        d.Registration.Role,
		Location:    shared.NewWaypoint(d.Nav.WaypointSymbol, "", 0, 0, nil, false),
		EngineSpeed: d.Engine.Speed,
		Fuel:        fuel,
		Cargo:       cargo,
		Frame:       d.Frame.Symbol,
		Modules:     modules,
		FlightMode:  shared.FlightMode(d.Nav.FlightMode),
		NavStatus:   navigation.NavStatus(d.Nav.Status),
		Route:       d.Nav.toRoute(),
		Cooldown:    d.Cooldown.Expiration,
	}
	if err := ship.Validate(); err != nil {
		return nil, err
	}
	return ship, nil
}
