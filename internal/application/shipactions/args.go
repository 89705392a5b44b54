package shipactions

import (
	"github.com/arcfleet/spacetrader-agent/internal/domain/ports"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// Args bundles the read-only collaborators every leaf action may call,
// mirroring spec.md §4.2's "every action consumes args (shared read-only
// access to databases and the treasurer) plus mutable ship state".
type Args struct {
	API        ports.GameAPI
	Store      ObservationStore
	Treasurer  Treasurer
	Contracts  ContractStore
	FindPath   PathFinder
	Clock      shared.Clock
	FleetID    string
}
