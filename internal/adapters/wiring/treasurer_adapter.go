// Package wiring holds the narrow adapters that let the cmd/ binary
// satisfy one application package's port with another application
// package's concrete type, without either of them importing the other
// directly (spec.md §9 "Cyclic references"). It is pure glue: every type
// here forwards to a collaborator constructed elsewhere.
package wiring

import (
	"context"

	"github.com/arcfleet/spacetrader-agent/internal/application/shipactions"
	"github.com/arcfleet/spacetrader-agent/internal/application/treasurer"
)

// TreasurerAdapter implements shipactions.Treasurer over a
// *treasurer.Treasurer, translating the richer ledger.FinanceTicket into
// the read projection trading leaves consume.
type TreasurerAdapter struct {
	Treasurer *treasurer.Treasurer
}

var _ shipactions.Treasurer = (*TreasurerAdapter)(nil)

func (a *TreasurerAdapter) ReportExpense(ctx context.Context, fleetID, shipSymbol, reason string, amount int) error {
	return a.Treasurer.ReportExpense(ctx, fleetID, shipSymbol, reason, amount)
}

func (a *TreasurerAdapter) ReportIncome(ctx context.Context, fleetID, shipSymbol, reason string, amount int) error {
	return a.Treasurer.ReportIncome(ctx, fleetID, shipSymbol, reason, amount)
}

func (a *TreasurerAdapter) CompleteTicket(ctx context.Context, ticketID string, actualPricePerUnit int) error {
	return a.Treasurer.CompleteTicket(ctx, ticketID, actualPricePerUnit)
}

func (a *TreasurerAdapter) ActiveTicket(ctx context.Context, ticketID string) (*shipactions.TradeTicket, error) {
	t, err := a.Treasurer.GetTicket(ticketID)
	if err != nil {
		return nil, err
	}
	return &shipactions.TradeTicket{
		ID:         t.ID,
		FleetID:    t.FleetID,
		Kind:       shipactions.TicketKind(t.Kind),
		Waypoint:   t.Waypoint,
		GoodSymbol: t.GoodSymbol,
		Quantity:   t.Quantity,
		ExpectedPP: t.ExpectedPP,
	}, nil
}
