// Package treasurer implements the fleet admiral's financial collaborator
// (spec.md §4.6): a single asynchronous lock guarding an in-memory
// ledger.State, where every mutation synchronously awaits the archiver's
// acknowledgement before returning, so persisted and in-memory state never
// observably diverge.
package treasurer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/arcfleet/spacetrader-agent/internal/application/logging"
	"github.com/arcfleet/spacetrader-agent/internal/domain/ledger"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// Treasurer is the heart of financial correctness (spec.md §4.6). All
// mutating methods acquire mu, apply one or more entries to state, hand
// the block to the archiver, and block on its ack before releasing mu.
type Treasurer struct {
	mu    sync.Mutex
	state *ledger.State

	archiver LedgerArchiver
	clock    shared.Clock
	newID    IDGenerator
	metrics  FinancialMetrics
}

// New constructs a Treasurer over an archiver collaborator. If newID is
// nil, google/uuid generates ticket and entry ids. metrics may be nil.
func New(archiver LedgerArchiver, clock shared.Clock, newID IDGenerator, metrics FinancialMetrics) *Treasurer {
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}
	return &Treasurer{
		state:    ledger.NewState(),
		archiver: archiver,
		clock:    clock,
		newID:    newID,
		metrics:  metrics,
	}
}

// commit applies entries to state in order, then blocks on the archiver's
// ack. Caller must hold mu. On archive failure the in-memory mutation is
// NOT rolled back — spec.md has no compensating-transaction story for a
// storage failure mid-commit — and the archiver's error is returned
// unchanged.
func (t *Treasurer) commit(ctx context.Context, entries ...ledger.LedgerEntry) error {
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = t.newID()
		}
		if entries[i].Timestamp.IsZero() {
			entries[i].Timestamp = t.clock.Now()
		}
		if err := t.state.Apply(entries[i]); err != nil {
			return err
		}
	}
	if err := t.archiver.Append(ctx, entries); err != nil {
		logging.Error(ctx, "ledger archive failed", map[string]any{"err": err.Error()})
		return err
	}
	if t.metrics != nil {
		for _, e := range entries {
			t.metrics.RecordLedgerEntry(e.FleetID, string(e.Kind), e.Amount)
		}
	}
	return nil
}

// CreateFleet registers a new fleet budget.
func (t *Treasurer) CreateFleet(ctx context.Context, fleetID string, budget int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.commit(ctx, ledger.LedgerEntry{Kind: ledger.EntryFleetCreated, FleetID: fleetID, Amount: budget})
}

// TransferFundsToFleetToTopUpAvailableCapital tops a fleet up toward its
// budget by max(0, min(treasury, budget-current_capital)).
func (t *Treasurer) TransferFundsToFleetToTopUpAvailableCapital(ctx context.Context, fleetID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	fleet, ok := t.state.Fleets[fleetID]
	if !ok {
		return &ledger.ErrFleetNotFound{FleetID: fleetID}
	}
	amount := fleet.Budget - fleet.CurrentCapital
	if amount > t.state.Treasury {
		amount = t.state.Treasury
	}
	if amount <= 0 {
		return nil
	}
	return t.commit(ctx, ledger.LedgerEntry{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: fleetID, Amount: amount})
}

// CreatePurchaseTradeGoodsTicket reserves qty*expectedPP, silently
// reducing qty to fit available fleet capital if necessary.
func (t *Treasurer) CreatePurchaseTradeGoodsTicket(ctx context.Context, fleetID, good, waypoint, ship string, qty, expectedPP int) (*ledger.FinanceTicket, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fleet, ok := t.state.Fleets[fleetID]
	if !ok {
		return nil, &ledger.ErrFleetNotFound{FleetID: fleetID}
	}
	if expectedPP <= 0 {
		return nil, &ledger.ErrInvariantViolation{Reason: "expected price per unit must be positive"}
	}
	requested := qty * expectedPP
	available := fleet.AvailableCapital()
	if requested > available {
		qty = available / expectedPP
	}
	if qty <= 0 {
		return nil, &ledger.ErrInsufficientFunds{FleetID: fleetID, Requested: requested, Available: available}
	}
	ticket := &ledger.FinanceTicket{
		ID: t.newID(), FleetID: fleetID, Kind: ledger.TicketPurchaseTradeGoods,
		ShipSymbol: ship, Waypoint: waypoint, GoodSymbol: good,
		Quantity: qty, ExpectedPP: expectedPP, ReservedAmount: qty * expectedPP,
	}
	if err := t.commit(ctx, ledger.LedgerEntry{Kind: ledger.EntryTicketCreated, Ticket: ticket}); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CreateSellTradeGoodsTicket reserves nothing.
func (t *Treasurer) CreateSellTradeGoodsTicket(ctx context.Context, fleetID, good, waypoint, ship string, qty, expectedPP int, matchingPurchaseTicketID string) (*ledger.FinanceTicket, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.state.Fleets[fleetID]; !ok {
		return nil, &ledger.ErrFleetNotFound{FleetID: fleetID}
	}
	ticket := &ledger.FinanceTicket{
		ID: t.newID(), FleetID: fleetID, Kind: ledger.TicketSellTradeGoods,
		ShipSymbol: ship, Waypoint: waypoint, GoodSymbol: good,
		Quantity: qty, ExpectedPP: expectedPP, MatchingPurchaseTicketID: matchingPurchaseTicketID,
	}
	if err := t.commit(ctx, ledger.LedgerEntry{Kind: ledger.EntryTicketCreated, Ticket: ticket}); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CreateSupplyConstructionTicket and CreateDeliverContractCargoTicket
// reserve nothing — the goods are already owned.
func (t *Treasurer) CreateSupplyConstructionTicket(ctx context.Context, fleetID, good, waypoint, ship string, qty int) (*ledger.FinanceTicket, error) {
	return t.createZeroReserveTicket(ctx, fleetID, ledger.TicketSupplyConstruction, good, waypoint, ship, qty)
}

func (t *Treasurer) CreateDeliverContractCargoTicket(ctx context.Context, fleetID, good, waypoint, ship string, qty int) (*ledger.FinanceTicket, error) {
	return t.createZeroReserveTicket(ctx, fleetID, ledger.TicketDeliverContract, good, waypoint, ship, qty)
}

func (t *Treasurer) createZeroReserveTicket(ctx context.Context, fleetID string, kind ledger.TicketKind, good, waypoint, ship string, qty int) (*ledger.FinanceTicket, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.state.Fleets[fleetID]; !ok {
		return nil, &ledger.ErrFleetNotFound{FleetID: fleetID}
	}
	ticket := &ledger.FinanceTicket{ID: t.newID(), FleetID: fleetID, Kind: kind, ShipSymbol: ship, Waypoint: waypoint, GoodSymbol: good, Quantity: qty}
	if err := t.commit(ctx, ledger.LedgerEntry{Kind: ledger.EntryTicketCreated, Ticket: ticket}); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CreateShipPurchaseTicket pulls the required money from treasury to the
// fleet first, then reserves it.
func (t *Treasurer) CreateShipPurchaseTicket(ctx context.Context, fleetID, shipType string, price int, waypoint, ship string) (*ledger.FinanceTicket, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fleet, ok := t.state.Fleets[fleetID]
	if !ok {
		return nil, &ledger.ErrFleetNotFound{FleetID: fleetID}
	}
	shortfall := price - fleet.AvailableCapital()
	if shortfall > 0 {
		if shortfall > t.state.Treasury {
			return nil, &ledger.ErrInsufficientFunds{FleetID: fleetID, Requested: shortfall, Available: t.state.Treasury}
		}
		if err := t.commit(ctx, ledger.LedgerEntry{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: fleetID, Amount: shortfall}); err != nil {
			return nil, err
		}
	}
	ticket := &ledger.FinanceTicket{
		ID: t.newID(), FleetID: fleetID, Kind: ledger.TicketPurchaseShip,
		ShipSymbol: ship, Waypoint: waypoint, Quantity: 1, ExpectedPP: price, ReservedAmount: price,
	}
	if err := t.commit(ctx, ledger.LedgerEntry{Kind: ledger.EntryTicketCreated, Ticket: ticket}); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CompleteTicket applies the actual settlement, frees the reservation, and
// reconciles any over/underrun against the treasury (spec.md §4.6).
func (t *Treasurer) CompleteTicket(ctx context.Context, ticketID string, actualPP int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	ticket, ok := t.state.Tickets[ticketID]
	if !ok {
		return &ledger.ErrTicketNotFound{TicketID: ticketID}
	}
	fleet, ok := t.state.Fleets[ticket.FleetID]
	if !ok {
		return &ledger.ErrFleetNotFound{FleetID: ticket.FleetID}
	}

	entries := []ledger.LedgerEntry{{Kind: ledger.EntryTicketCompleted, TicketID: ticketID, ActualPricePerUnit: actualPP}}

	switch ticket.Kind {
	case ledger.TicketPurchaseTradeGoods, ledger.TicketPurchaseShip:
		actualTotal := ticket.Quantity * actualPP
		if diff := ticket.ReservedAmount - actualTotal; diff > 0 {
			entries = append(entries, ledger.LedgerEntry{Kind: ledger.EntryTransferredFundsFleetToTreasury, FleetID: ticket.FleetID, Amount: diff})
		} else if diff < 0 {
			entries = append(entries, ledger.LedgerEntry{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: ticket.FleetID, Amount: -diff})
		}
	case ledger.TicketSellTradeGoods:
		projectedCapital := fleet.CurrentCapital + ticket.Quantity*actualPP
		cap := fleet.Budget + fleet.ReservedCapital
		if excess := projectedCapital - cap; excess > 0 {
			entries = append(entries, ledger.LedgerEntry{Kind: ledger.EntryTransferredFundsFleetToTreasury, FleetID: ticket.FleetID, Amount: excess})
		}
	}

	return t.commit(ctx, entries...)
}

// ReportExpense adjusts current_capital down, reimbursing the shortfall
// from treasury if the fleet cannot cover it outright.
func (t *Treasurer) ReportExpense(ctx context.Context, fleetID, shipSymbol, reason string, amount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	fleet, ok := t.state.Fleets[fleetID]
	if !ok {
		return &ledger.ErrFleetNotFound{FleetID: fleetID}
	}
	entries := []ledger.LedgerEntry{{Kind: ledger.EntryExpenseLogged, FleetID: fleetID, ShipSymbol: shipSymbol, Reason: reason, Amount: amount}}
	if shortfall := amount - fleet.CurrentCapital; shortfall > 0 {
		entries = append(entries, ledger.LedgerEntry{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: fleetID, Amount: shortfall})
		// Apply the transfer before the expense so current_capital never
		// observably dips negative between the two entries.
		entries[0], entries[1] = entries[1], entries[0]
	}
	return t.commit(ctx, entries...)
}

// ReportIncome adjusts current_capital up.
func (t *Treasurer) ReportIncome(ctx context.Context, fleetID, shipSymbol, reason string, amount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.state.Fleets[fleetID]; !ok {
		return &ledger.ErrFleetNotFound{FleetID: fleetID}
	}
	return t.commit(ctx, ledger.LedgerEntry{Kind: ledger.EntryIncomeLogged, FleetID: fleetID, ShipSymbol: shipSymbol, Reason: reason, Amount: amount})
}

// SetFleetTotalCapital changes a fleet's budget cap; any current capital
// now above the new cap drains back to treasury.
func (t *Treasurer) SetFleetTotalCapital(ctx context.Context, fleetID string, newTotal int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	fleet, ok := t.state.Fleets[fleetID]
	if !ok {
		return &ledger.ErrFleetNotFound{FleetID: fleetID}
	}
	entries := []ledger.LedgerEntry{{Kind: ledger.EntrySetNewTotalCapitalForFleet, FleetID: fleetID, Amount: newTotal}}
	if excess := fleet.CurrentCapital - newTotal; excess > 0 {
		entries = append(entries, ledger.LedgerEntry{Kind: ledger.EntryTransferredFundsFleetToTreasury, FleetID: fleetID, Amount: excess})
	}
	return t.commit(ctx, entries...)
}

// SetNewOperatingReserve changes a fleet's operating reserve cap.
func (t *Treasurer) SetNewOperatingReserve(ctx context.Context, fleetID string, newReserve int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.state.Fleets[fleetID]; !ok {
		return &ledger.ErrFleetNotFound{FleetID: fleetID}
	}
	return t.commit(ctx, ledger.LedgerEntry{Kind: ledger.EntrySetNewOperatingReserveForFleet, FleetID: fleetID, Amount: newReserve})
}

// RemoveFleet drains current_capital to treasury, then archives the budget.
func (t *Treasurer) RemoveFleet(ctx context.Context, fleetID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	fleet, ok := t.state.Fleets[fleetID]
	if !ok {
		return &ledger.ErrFleetNotFound{FleetID: fleetID}
	}
	entries := []ledger.LedgerEntry{}
	if fleet.CurrentCapital > 0 {
		entries = append(entries, ledger.LedgerEntry{Kind: ledger.EntryTransferredFundsFleetToTreasury, FleetID: fleetID, Amount: fleet.CurrentCapital})
	}
	entries = append(entries, ledger.LedgerEntry{Kind: ledger.EntryArchivedFleetBudget, FleetID: fleetID})
	return t.commit(ctx, entries...)
}

// ResetTreasurerDueToAgentCreditDiff wipes every fleet and reseeds the
// treasury from the server's authoritative balance — the only sanctioned
// recovery path for an InvariantViolation-class divergence (spec.md §7).
func (t *Treasurer) ResetTreasurerDueToAgentCreditDiff(ctx context.Context, credits int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	logging.Error(ctx, "resetting treasurer due to credit diff", map[string]any{"credits": credits})
	return t.commit(ctx, ledger.LedgerEntry{Kind: ledger.EntryTreasuryReset, Credits: credits})
}

// Restore replaces the treasurer's in-memory state with the result of
// replaying entries from an empty state (spec.md §4.6 "from_ledger").
// Intended for use once at process startup, before any concurrent access,
// to resume from a previous process's persisted ledger rather than
// starting every restart from an empty treasury.
func (t *Treasurer) Restore(entries []ledger.LedgerEntry) error {
	state, err := ledger.FromLedger(entries)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = state
	return nil
}

// Pure queries below never append ledger entries.

func (t *Treasurer) GetFleetBudget(fleetID string) (*ledger.FleetBudget, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fleet, ok := t.state.Fleets[fleetID]
	if !ok {
		return nil, &ledger.ErrFleetNotFound{FleetID: fleetID}
	}
	cp := *fleet
	return &cp, nil
}

func (t *Treasurer) GetActiveTickets(fleetID string) []*ledger.FinanceTicket {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []*ledger.FinanceTicket
	for _, ticket := range t.state.Tickets {
		if ticket.FleetID == fleetID {
			out = append(out, ticket)
		}
	}
	return out
}

// GetTicket looks up one ticket by id regardless of fleet, the lookup
// shape shipactions' trading leaves need to check on a ticket they hold
// only the id for.
func (t *Treasurer) GetTicket(ticketID string) (*ledger.FinanceTicket, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ticket, ok := t.state.Tickets[ticketID]
	if !ok {
		return nil, &ledger.ErrTicketNotFound{TicketID: ticketID}
	}
	cp := *ticket
	return &cp, nil
}

func (t *Treasurer) CurrentAgentCredits() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.TotalCapital()
}

// GetActiveTradeRoutes pairs sell tickets with the purchase ticket they
// matched against, for the admiral's re-planning heuristics.
func (t *Treasurer) GetActiveTradeRoutes(fleetID string) []TradeRoute {
	t.mu.Lock()
	defer t.mu.Unlock()
	var routes []TradeRoute
	for _, ticket := range t.state.Tickets {
		if ticket.FleetID != fleetID || ticket.Kind != ledger.TicketSellTradeGoods || ticket.MatchingPurchaseTicketID == "" {
			continue
		}
		if purchase, ok := t.state.Tickets[ticket.MatchingPurchaseTicketID]; ok {
			routes = append(routes, TradeRoute{Purchase: purchase, Sell: ticket})
		}
	}
	return routes
}

// TradeRoute pairs a purchase ticket with the sell ticket sourced from it.
type TradeRoute struct {
	Purchase *ledger.FinanceTicket
	Sell     *ledger.FinanceTicket
}
