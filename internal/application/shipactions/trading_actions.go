package shipactions

import (
	"github.com/arcfleet/spacetrader-agent/internal/application/logging"
	"github.com/arcfleet/spacetrader-agent/internal/domain/behavior"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// HasNextTradeWaypoint succeeds when the ship has an active ticket whose
// waypoint is not its current location — meaning there is somewhere left
// to travel to before trading can proceed.
func HasNextTradeWaypoint(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("HasNextTradeWaypoint", func(tc *behavior.TickContext) (behavior.Status, error) {
		for _, ticketID := range rs.ActiveTicketIDs {
			ticket, err := a.Treasurer.ActiveTicket(tc.Ctx, ticketID)
			if err != nil {
				continue
			}
			if rs.Ship.Location == nil || ticket.Waypoint != rs.Ship.Location.Symbol {
				return behavior.Success, nil
			}
		}
		return behavior.Failure, nil
	})
}

// SetNextTradeStopAsDestination installs the first active ticket's
// waypoint that the ship is not already at as the destination.
func SetNextTradeStopAsDestination(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("SetNextTradeStopAsDestination", func(tc *behavior.TickContext) (behavior.Status, error) {
		for _, ticketID := range rs.ActiveTicketIDs {
			ticket, err := a.Treasurer.ActiveTicket(tc.Ctx, ticketID)
			if err != nil {
				continue
			}
			if rs.Ship.Location == nil || ticket.Waypoint != rs.Ship.Location.Symbol {
				SetDestination(rs, ticket.Waypoint)
				return behavior.Success, nil
			}
		}
		return behavior.Failure, nil
	})
}

// PerformTradeActionAndMarkAsCompleteIfPossible executes every incomplete
// ticket at the ship's current waypoint — purchase, sale, or construction
// delivery — marks it complete, and forwards a TransactionCompleted event
// to the admiral (spec.md §4.2).
func PerformTradeActionAndMarkAsCompleteIfPossible(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("PerformTradeActionAndMarkAsCompleteIfPossible", func(tc *behavior.TickContext) (behavior.Status, error) {
		if rs.Ship.Location == nil {
			return behavior.Failure, shared.NewPreconditionUnmetError("PerformTradeAction", "ship has no location")
		}

		remaining := rs.ActiveTicketIDs[:0:0]
		acted := false
		for _, ticketID := range rs.ActiveTicketIDs {
			ticket, err := a.Treasurer.ActiveTicket(tc.Ctx, ticketID)
			if err != nil {
				continue
			}
			if ticket.Waypoint != rs.Ship.Location.Symbol {
				remaining = append(remaining, ticketID)
				continue
			}

			actualPP, newShip, err := executeTicket(tc, a, rs, ticket)
			if err != nil {
				return behavior.Failure, err
			}
			if err := a.Treasurer.CompleteTicket(tc.Ctx, ticketID, actualPP); err != nil {
				return behavior.Failure, err
			}
			acted = true
			tc.EmitCompleted(behavior.Event{
				Kind:             behavior.EventTransactionCompleted,
				ShipSymbol:       rs.Ship.Symbol,
				TransactionEvent: string(ticket.Kind),
				TicketID:         ticketID,
				NewShip:          newShip,
			})
			tc.EmitState(behavior.ShipSnapshot{ShipSymbol: rs.Ship.Symbol, ObservedAt: a.Clock.Now(), Payload: rs.Ship})
			logging.Info(tc.Ctx, "ticket completed", map[string]any{"ship": rs.Ship.Symbol, "ticket": ticketID, "actual_pp": actualPP})
		}
		rs.ActiveTicketIDs = remaining

		if !acted {
			return behavior.Failure, nil
		}
		return behavior.Success, nil
	})
}

// AcceptContract accepts the first pending contract the store returns, if any, and
// records its OnAccepted payment (spec.md §5.8 Contract/trade planning,
// grounded in the teacher's application/contract/commands/accept_contract.go).
func AcceptContract(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("AcceptContract", func(tc *behavior.TickContext) (behavior.Status, error) {
		pending, err := a.Contracts.ListPendingContracts(tc.Ctx)
		if err != nil {
			return behavior.Failure, err
		}
		if len(pending) == 0 {
			return behavior.Failure, nil
		}
		c := pending[0]

		res, err := a.API.AcceptContract(tc.Ctx, c.ID)
		if err != nil {
			return behavior.Failure, err
		}
		if err := c.Accept(); err != nil {
			return behavior.Failure, err
		}
		if err := a.Contracts.UpsertContract(tc.Ctx, c); err != nil {
			return behavior.Failure, err
		}
		if err := a.Treasurer.ReportIncome(tc.Ctx, a.FleetID, rs.Ship.Symbol, "CONTRACT_ACCEPTED", res.Payment); err != nil {
			return behavior.Failure, err
		}
		rs.ContractID = c.ID
		tc.EmitCompleted(behavior.Event{Kind: behavior.EventTransactionCompleted, ShipSymbol: rs.Ship.Symbol, TransactionEvent: "CONTRACT_ACCEPTED", TicketID: c.ID})
		logging.Info(tc.Ctx, "contract accepted", map[string]any{"ship": rs.Ship.Symbol, "contract": c.ID, "payment": res.Payment})
		return behavior.Success, nil
	})
}

// FulfillContract fulfills rs.ContractID once every delivery is complete,
// and records its OnFulfilled payment (grounded in the teacher's
// application/contract/commands/fulfill_contract.go).
func FulfillContract(a Args, rs *RunState) *behavior.ActionNode {
	return behavior.NewAction("FulfillContract", func(tc *behavior.TickContext) (behavior.Status, error) {
		if rs.ContractID == "" {
			return behavior.Failure, nil
		}
		c, err := a.Contracts.FindContract(tc.Ctx, rs.ContractID)
		if err != nil {
			return behavior.Failure, err
		}
		if !c.CanFulfill() {
			return behavior.Failure, nil
		}

		res, err := a.API.FulfillContract(tc.Ctx, c.ID)
		if err != nil {
			return behavior.Failure, err
		}
		if err := c.Fulfill(); err != nil {
			return behavior.Failure, err
		}
		if err := a.Contracts.UpsertContract(tc.Ctx, c); err != nil {
			return behavior.Failure, err
		}
		if err := a.Treasurer.ReportIncome(tc.Ctx, a.FleetID, rs.Ship.Symbol, "CONTRACT_FULFILLED", res.Payment); err != nil {
			return behavior.Failure, err
		}
		rs.ContractID = ""
		tc.EmitCompleted(behavior.Event{Kind: behavior.EventTransactionCompleted, ShipSymbol: rs.Ship.Symbol, TransactionEvent: "CONTRACT_FULFILLED", TicketID: c.ID})
		logging.Info(tc.Ctx, "contract fulfilled", map[string]any{"ship": rs.Ship.Symbol, "contract": c.ID, "payment": res.Payment})
		return behavior.Success, nil
	})
}

// recordContractDelivery applies delivered units to the contract's
// matching delivery line, so CanFulfill (and therefore FulfillContract)
// eventually turns true once every line is complete.
func recordContractDelivery(tc *behavior.TickContext, a Args, contractID, goodSymbol string, units int) error {
	c, err := a.Contracts.FindContract(tc.Ctx, contractID)
	if err != nil {
		return err
	}
	if err := c.DeliverCargo(goodSymbol, units); err != nil {
		return err
	}
	return a.Contracts.UpsertContract(tc.Ctx, c)
}

func executeTicket(tc *behavior.TickContext, a Args, rs *RunState, ticket *TradeTicket) (int, *navigation.Ship, error) {
	switch ticket.Kind {
	case TicketPurchaseTradeGood:
		res, err := a.API.PurchaseTradeGood(tc.Ctx, rs.Ship.Symbol, ticket.GoodSymbol, ticket.Quantity)
		if err != nil {
			return 0, nil, err
		}
		rs.Ship.Cargo = res.NewCargo
		return res.PricePerUnit, nil, nil
	case TicketSellTradeGood:
		res, err := a.API.SellTradeGood(tc.Ctx, rs.Ship.Symbol, ticket.GoodSymbol, ticket.Quantity)
		if err != nil {
			return 0, nil, err
		}
		rs.Ship.Cargo = res.NewCargo
		return res.PricePerUnit, nil, nil
	case TicketSupplyConstruction, TicketDeliverContract:
		delivered, err := a.API.SupplyConstruction(tc.Ctx, rs.Ship.Symbol, ticket.Waypoint, ticket.GoodSymbol, ticket.Quantity)
		if err != nil {
			return 0, nil, err
		}
		cargo, err := rs.Ship.Cargo.WithRemoved(ticket.GoodSymbol, delivered)
		if err != nil {
			return 0, nil, err
		}
		rs.Ship.Cargo = cargo
		if ticket.Kind == TicketDeliverContract && rs.ContractID != "" {
			if err := recordContractDelivery(tc, a, rs.ContractID, ticket.GoodSymbol, delivered); err != nil {
				return 0, nil, err
			}
		}
		return 0, nil, nil
	case TicketPurchaseShip:
		res, err := a.API.PurchaseShip(tc.Ctx, ticket.ShipType, ticket.Waypoint)
		if err != nil {
			return 0, nil, err
		}
		return res.TotalPrice, res.Ship, nil
	default:
		return 0, nil, shared.NewInvariantViolationError("unknown ticket kind " + string(ticket.Kind))
	}
}
