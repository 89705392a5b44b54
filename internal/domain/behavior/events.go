package behavior

import (
	"time"

	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
)

// ShipSnapshot is pushed on StateChanged whenever a tick successfully
// mutates ship state, per spec.md §4.1.
type ShipSnapshot struct {
	ShipSymbol string
	ObservedAt time.Time
	Payload    any
}

// EventKind tags the action_completed side-channel's structured events.
type EventKind int

const (
	EventShipActionCompleted EventKind = iota
	EventBehaviorCompleted
	EventTransactionCompleted
)

// Event is one structured notification on the action_completed channel.
type Event struct {
	Kind       EventKind
	ShipSymbol string

	// EventShipActionCompleted
	ActionName string

	// EventBehaviorCompleted
	Result error // nil on success

	// EventTransactionCompleted
	TransactionEvent string
	TicketID         string

	// EventTransactionCompleted, when TransactionEvent is a ship purchase:
	// the ship the purchase ticket bought, so the admiral can register it
	// and match it against the shopping list (spec.md §4.5 Ship assignment).
	NewShip *navigation.Ship
}
