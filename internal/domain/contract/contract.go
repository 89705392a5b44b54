// Package contract models accepted delivery contracts and the
// profitability check the trade planner uses to decide whether one is
// worth working (spec.md §2 "Contract/trade planning").
package contract

import (
	"fmt"
	"time"

	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// Payment is the credits a contract pays on acceptance and on fulfillment.
type Payment struct {
	OnAccepted  int
	OnFulfilled int
}

// Delivery is one trade-good line item a contract requires.
type Delivery struct {
	TradeSymbol       string
	DestinationSymbol string
	UnitsRequired     int
	UnitsFulfilled    int
}

// Terms is the negotiated content of a contract.
type Terms struct {
	Payment    Payment
	Deliveries []Delivery
	Deadline   time.Time
}

// Contract is an accepted-or-pending delivery agreement with the faction.
type Contract struct {
	ID            string
	FactionSymbol string
	Terms         Terms
	Accepted      bool
	Fulfilled     bool

	clock shared.Clock
}

// New constructs a Contract. clock defaults to shared.RealClock.
func New(id, factionSymbol string, terms Terms, clock shared.Clock) (*Contract, error) {
	if id == "" {
		return nil, fmt.Errorf("contract id cannot be empty")
	}
	if factionSymbol == "" {
		return nil, fmt.Errorf("faction symbol cannot be empty")
	}
	if len(terms.Deliveries) == 0 {
		return nil, fmt.Errorf("contract must have at least one delivery")
	}
	if clock == nil {
		clock = shared.RealClock{}
	}
	return &Contract{ID: id, FactionSymbol: factionSymbol, Terms: terms, clock: clock}, nil
}

// Accept marks the contract accepted.
func (c *Contract) Accept() error {
	if c.Fulfilled {
		return fmt.Errorf("contract %s already fulfilled", c.ID)
	}
	if c.Accepted {
		return fmt.Errorf("contract %s already accepted", c.ID)
	}
	c.Accepted = true
	return nil
}

// DeliverCargo records units delivered against one trade-good line.
func (c *Contract) DeliverCargo(tradeSymbol string, units int) error {
	if !c.Accepted {
		return fmt.Errorf("contract %s not accepted", c.ID)
	}
	for i := range c.Terms.Deliveries {
		d := &c.Terms.Deliveries[i]
		if d.TradeSymbol != tradeSymbol {
			continue
		}
		if d.UnitsFulfilled+units > d.UnitsRequired {
			return fmt.Errorf("delivery of %s exceeds required units", tradeSymbol)
		}
		d.UnitsFulfilled += units
		return nil
	}
	return fmt.Errorf("trade symbol %s not in contract %s", tradeSymbol, c.ID)
}

// CanFulfill reports whether every delivery line is complete.
func (c *Contract) CanFulfill() bool {
	for _, d := range c.Terms.Deliveries {
		if d.UnitsFulfilled < d.UnitsRequired {
			return false
		}
	}
	return true
}

// Fulfill marks the contract fulfilled once every delivery is complete.
func (c *Contract) Fulfill() error {
	if !c.Accepted {
		return fmt.Errorf("contract %s not accepted", c.ID)
	}
	if !c.CanFulfill() {
		return fmt.Errorf("contract %s deliveries not complete", c.ID)
	}
	c.Fulfilled = true
	return nil
}

// IsExpired reports whether the deadline has passed.
func (c *Contract) IsExpired() bool {
	return c.clock.Now().After(c.Terms.Deadline)
}

// RemainingUnits reports how many units of tradeSymbol are still owed.
func (c *Contract) RemainingUnits(tradeSymbol string) int {
	for _, d := range c.Terms.Deliveries {
		if d.TradeSymbol == tradeSymbol {
			return d.UnitsRequired - d.UnitsFulfilled
		}
	}
	return 0
}
