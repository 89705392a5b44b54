package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfleet/spacetrader-agent/internal/domain/ledger"
)

func TestState_FromLedger_TreasuryAndFleetLifecycle(t *testing.T) {
	entries := []ledger.LedgerEntry{
		{Kind: ledger.EntryTreasuryCreated, Credits: 100000},
		{Kind: ledger.EntryFleetCreated, FleetID: "alpha", Amount: 50000},
		{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: "alpha", Amount: 20000},
	}

	state, err := ledger.FromLedger(entries)
	require.NoError(t, err)

	assert.Equal(t, 80000, state.Treasury)
	require.Contains(t, state.Fleets, "alpha")
	assert.Equal(t, 20000, state.Fleets["alpha"].CurrentCapital)
	assert.Equal(t, 50000, state.Fleets["alpha"].Budget)
	assert.Equal(t, 100000, state.TotalCapital())
}

func TestState_Apply_TicketLifecycle_ReservesAndReleasesCapital(t *testing.T) {
	state := ledger.NewState()
	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTreasuryCreated, Credits: 10000}))
	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryFleetCreated, FleetID: "alpha", Amount: 10000}))
	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: "alpha", Amount: 10000}))

	ticket := &ledger.FinanceTicket{
		ID:             "t1",
		FleetID:        "alpha",
		Kind:           ledger.TicketPurchaseTradeGoods,
		Quantity:       10,
		ExpectedPP:     50,
		ReservedAmount: 500,
	}
	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTicketCreated, Ticket: ticket}))

	fleet := state.Fleets["alpha"]
	assert.Equal(t, 500, fleet.ReservedCapital)
	assert.Equal(t, 10000-500, fleet.AvailableCapital())

	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTicketCompleted, TicketID: "t1", ActualPricePerUnit: 48}))

	assert.Equal(t, 0, fleet.ReservedCapital)
	assert.Equal(t, 10000-480, fleet.CurrentCapital)
	assert.NotContains(t, state.Tickets, "t1")
}

func TestState_Apply_SellTicketIncreasesCapitalOnCompletion(t *testing.T) {
	state := ledger.NewState()
	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryFleetCreated, FleetID: "alpha", Amount: 1000}))
	ticket := &ledger.FinanceTicket{ID: "t2", FleetID: "alpha", Kind: ledger.TicketSellTradeGoods, Quantity: 5, ReservedAmount: 0}
	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTicketCreated, Ticket: ticket}))
	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTicketCompleted, TicketID: "t2", ActualPricePerUnit: 20}))

	assert.Equal(t, 100, state.Fleets["alpha"].CurrentCapital)
}

func TestState_Apply_UnknownFleetReturnsErrFleetNotFound(t *testing.T) {
	state := ledger.NewState()
	err := state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: "ghost", Amount: 1})
	require.Error(t, err)
	var notFound *ledger.ErrFleetNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestState_Apply_TicketCompletedUnknownTicketReturnsErrTicketNotFound(t *testing.T) {
	state := ledger.NewState()
	err := state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTicketCompleted, TicketID: "ghost"})
	require.Error(t, err)
	var notFound *ledger.ErrTicketNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestState_Apply_DuplicateTicketIDIsInvariantViolation(t *testing.T) {
	state := ledger.NewState()
	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryFleetCreated, FleetID: "alpha", Amount: 1000}))
	ticket := &ledger.FinanceTicket{ID: "dup", FleetID: "alpha", Kind: ledger.TicketSellTradeGoods}
	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTicketCreated, Ticket: ticket}))

	err := state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTicketCreated, Ticket: ticket})
	require.Error(t, err)
	var invariant *ledger.ErrInvariantViolation
	assert.ErrorAs(t, err, &invariant)
}

func TestState_Apply_TreasuryResetClearsFleetsAndTickets(t *testing.T) {
	state := ledger.NewState()
	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTreasuryCreated, Credits: 5000}))
	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryFleetCreated, FleetID: "alpha", Amount: 1000}))

	require.NoError(t, state.Apply(ledger.LedgerEntry{Kind: ledger.EntryTreasuryReset, Credits: 7000}))

	assert.Equal(t, 7000, state.Treasury)
	assert.Empty(t, state.Fleets)
	assert.Empty(t, state.Tickets)
}

func TestFleetBudget_AvailableCapital(t *testing.T) {
	b := &ledger.FleetBudget{CurrentCapital: 1000, ReservedCapital: 200, OperatingReserve: 100}
	assert.Equal(t, 700, b.AvailableCapital())
}

func TestState_FromLedger_ReplayIsOrderIndependentOfInputReuse(t *testing.T) {
	entries := []ledger.LedgerEntry{
		{Kind: ledger.EntryTreasuryCreated, Credits: 1000},
		{Kind: ledger.EntryFleetCreated, FleetID: "a", Amount: 500},
		{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: "a", Amount: 300},
		{Kind: ledger.EntryTransferredFundsFleetToTreasury, FleetID: "a", Amount: 100},
	}

	first, err := ledger.FromLedger(entries)
	require.NoError(t, err)
	second, err := ledger.FromLedger(entries)
	require.NoError(t, err)

	assert.Equal(t, first.Treasury, second.Treasury)
	assert.Equal(t, first.Fleets["a"].CurrentCapital, second.Fleets["a"].CurrentCapital)
}
