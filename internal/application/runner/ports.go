package runner

import (
	"github.com/arcfleet/spacetrader-agent/internal/application/admiral"
	"github.com/arcfleet/spacetrader-agent/internal/domain/behavior"
	"github.com/arcfleet/spacetrader-agent/internal/domain/fleet"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
)

// AdmiralPort is the subset of *admiral.Admiral the coordinator drives.
// Declaring it here rather than depending on the concrete type keeps the
// package boundary explicit even though nothing else currently
// implements it (spec.md §9 "Cyclic references (admiral ↔ runner)":
// message passing plus narrow ports, never a direct admiral<->runner
// reference cycle).
type AdmiralPort interface {
	Recompute(shipSymbol string, reason admiral.ReplanReason, facts *admiral.Facts) fleet.ReplanDecision
	TaskFor(shipSymbol string) (fleet.ShipTask, bool)
	RegisterShip(ship *navigation.Ship)
}

// FactsProvider refreshes the facts snapshot a re-planning decision needs.
// A function type rather than an interface since the coordinator only
// ever needs one call shape.
type FactsProvider func() (*admiral.Facts, error)

// TreeBuilder turns a newly assigned task into the behavior tree a fiber
// should run. Owned by the wiring layer, which knows how to translate a
// fleet.ShipTask into a concrete shipactions tree.
type TreeBuilder func(shipSymbol string, task fleet.ShipTask) (behavior.Node, error)

// ShipPersister is driven by the ship_updated listener.
type ShipPersister interface {
	PersistShipSnapshot(shipSymbol string, payload any) error
}

// FleetMetrics is the narrow observability surface the coordinator
// drives. adapters/metrics.FleetCollector satisfies it; nil is valid and
// every call site is nil-checked.
type FleetMetrics interface {
	RecordReplan(reason, decisionKind string)
	RecordFiberFailure(shipSymbol string)
}
