package treasurer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfleet/spacetrader-agent/internal/application/treasurer"
	"github.com/arcfleet/spacetrader-agent/internal/domain/ledger"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

type fakeArchiver struct {
	entries   []ledger.LedgerEntry
	failNext  bool
}

func (f *fakeArchiver) Append(ctx context.Context, entries []ledger.LedgerEntry) error {
	if f.failNext {
		f.failNext = false
		return assertErr
	}
	f.entries = append(f.entries, entries...)
	return nil
}

var assertErr = &ledger.ErrInvariantViolation{Reason: "archive unavailable"}

func newTreasurer() (*treasurer.Treasurer, *fakeArchiver) {
	archiver := &fakeArchiver{}
	clock := shared.NewMockClock(time.Unix(0, 0))
	counter := 0
	newID := func() string {
		counter++
		return "id-" + string(rune('a'+counter))
	}
	return treasurer.New(archiver, clock, newID, nil), archiver
}

func TestTreasurer_CreateFleetAndTopUp(t *testing.T) {
	tr, _ := newTreasurer()
	ctx := context.Background()

	require.NoError(t, tr.Restore([]ledger.LedgerEntry{{Kind: ledger.EntryTreasuryCreated, Credits: 5000}}))
	require.NoError(t, tr.CreateFleet(ctx, "alpha", 10000))

	require.NoError(t, tr.TransferFundsToFleetToTopUpAvailableCapital(ctx, "alpha"))

	budget, err := tr.GetFleetBudget("alpha")
	require.NoError(t, err)
	assert.Equal(t, 5000, budget.CurrentCapital)
}

func TestTreasurer_TopUpNoOpWhenFleetAlreadyAtBudget(t *testing.T) {
	tr, _ := newTreasurer()
	ctx := context.Background()
	require.NoError(t, tr.CreateFleet(ctx, "alpha", 0))

	require.NoError(t, tr.TransferFundsToFleetToTopUpAvailableCapital(ctx, "alpha"))

	budget, err := tr.GetFleetBudget("alpha")
	require.NoError(t, err)
	assert.Equal(t, 0, budget.CurrentCapital)
}

func TestTreasurer_CreatePurchaseTicket_ReducesQtyWhenUnderfunded(t *testing.T) {
	tr, _ := newTreasurer()
	ctx := context.Background()
	require.NoError(t, tr.Restore([]ledger.LedgerEntry{
		{Kind: ledger.EntryFleetCreated, FleetID: "alpha", Amount: 1000},
		{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: "alpha", Amount: 100},
	}))

	ticket, err := tr.CreatePurchaseTradeGoodsTicket(ctx, "alpha", "IRON_ORE", "X1-A", "SHIP-1", 10, 15)
	require.NoError(t, err)
	assert.Equal(t, 6, ticket.Quantity) // 100/15 = 6
	assert.Equal(t, 90, ticket.ReservedAmount)
}

func TestTreasurer_CreatePurchaseTicket_InsufficientFundsWhenZeroAffordable(t *testing.T) {
	tr, _ := newTreasurer()
	ctx := context.Background()
	require.NoError(t, tr.CreateFleet(ctx, "alpha", 1000))

	_, err := tr.CreatePurchaseTradeGoodsTicket(ctx, "alpha", "IRON_ORE", "X1-A", "SHIP-1", 10, 15)
	require.Error(t, err)
	var insufficient *ledger.ErrInsufficientFunds
	assert.ErrorAs(t, err, &insufficient)
}

func TestTreasurer_CreatePurchaseTicket_RejectsNonPositivePrice(t *testing.T) {
	tr, _ := newTreasurer()
	ctx := context.Background()
	require.NoError(t, tr.CreateFleet(ctx, "alpha", 1000))

	_, err := tr.CreatePurchaseTradeGoodsTicket(ctx, "alpha", "IRON_ORE", "X1-A", "SHIP-1", 10, 0)
	require.Error(t, err)
	var invariant *ledger.ErrInvariantViolation
	assert.ErrorAs(t, err, &invariant)
}

func TestTreasurer_CompleteTicket_PurchaseUnderrunRefundsFleetToTreasury(t *testing.T) {
	tr, _ := newTreasurer()
	ctx := context.Background()
	require.NoError(t, tr.Restore([]ledger.LedgerEntry{
		{Kind: ledger.EntryTreasuryCreated, Credits: 0},
		{Kind: ledger.EntryFleetCreated, FleetID: "alpha", Amount: 1000},
		{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: "alpha", Amount: 1000},
	}))

	ticket, err := tr.CreatePurchaseTradeGoodsTicket(ctx, "alpha", "IRON_ORE", "X1-A", "SHIP-1", 10, 50)
	require.NoError(t, err)
	require.Equal(t, 500, ticket.ReservedAmount)

	require.NoError(t, tr.CompleteTicket(ctx, ticket.ID, 40))

	budget, err := tr.GetFleetBudget("alpha")
	require.NoError(t, err)
	assert.Equal(t, 0, budget.ReservedCapital)
	assert.Equal(t, 1000-400-100, budget.CurrentCapital)
}

func TestTreasurer_CompleteTicket_PurchaseOverrunPullsFromTreasury(t *testing.T) {
	tr, _ := newTreasurer()
	ctx := context.Background()
	require.NoError(t, tr.Restore([]ledger.LedgerEntry{
		{Kind: ledger.EntryTreasuryCreated, Credits: 1000},
		{Kind: ledger.EntryFleetCreated, FleetID: "alpha", Amount: 1000},
		{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: "alpha", Amount: 500},
	}))

	ticket, err := tr.CreatePurchaseTradeGoodsTicket(ctx, "alpha", "IRON_ORE", "X1-A", "SHIP-1", 10, 50)
	require.NoError(t, err)

	require.NoError(t, tr.CompleteTicket(ctx, ticket.ID, 60))

	budget, err := tr.GetFleetBudget("alpha")
	require.NoError(t, err)
	assert.Equal(t, 500-600+100, budget.CurrentCapital)
}

func TestTreasurer_ReportExpense_ReimbursesShortfallFromTreasury(t *testing.T) {
	tr, _ := newTreasurer()
	ctx := context.Background()
	require.NoError(t, tr.Restore([]ledger.LedgerEntry{
		{Kind: ledger.EntryTreasuryCreated, Credits: 10000},
		{Kind: ledger.EntryFleetCreated, FleetID: "alpha", Amount: 1000},
	}))

	require.NoError(t, tr.ReportExpense(ctx, "alpha", "SHIP-1", "fuel", 200))

	budget, err := tr.GetFleetBudget("alpha")
	require.NoError(t, err)
	assert.Equal(t, 0, budget.CurrentCapital)
}

func TestTreasurer_ResetTreasurerDueToAgentCreditDiff_ClearsFleets(t *testing.T) {
	tr, _ := newTreasurer()
	ctx := context.Background()
	require.NoError(t, tr.CreateFleet(ctx, "alpha", 1000))

	require.NoError(t, tr.ResetTreasurerDueToAgentCreditDiff(ctx, 42000))

	assert.Equal(t, 42000, tr.CurrentAgentCredits())
	_, err := tr.GetFleetBudget("alpha")
	require.Error(t, err)
}

func TestTreasurer_Restore_ReplacesInMemoryStateFromPersistedLedger(t *testing.T) {
	tr, _ := newTreasurer()
	ctx := context.Background()
	require.NoError(t, tr.CreateFleet(ctx, "stale", 1))

	entries := []ledger.LedgerEntry{
		{Kind: ledger.EntryTreasuryCreated, Credits: 9000},
		{Kind: ledger.EntryFleetCreated, FleetID: "alpha", Amount: 5000},
	}
	require.NoError(t, tr.Restore(entries))

	_, err := tr.GetFleetBudget("stale")
	require.Error(t, err, "Restore must discard any state accumulated before it ran")

	budget, err := tr.GetFleetBudget("alpha")
	require.NoError(t, err)
	assert.Equal(t, 5000, budget.Budget)
	assert.Equal(t, 9000, tr.CurrentAgentCredits())
}

func TestTreasurer_GetActiveTradeRoutes_PairsSellWithMatchingPurchase(t *testing.T) {
	tr, _ := newTreasurer()
	ctx := context.Background()
	require.NoError(t, tr.Restore([]ledger.LedgerEntry{
		{Kind: ledger.EntryFleetCreated, FleetID: "alpha", Amount: 1000},
		{Kind: ledger.EntryTransferredFundsTreasuryToFleet, FleetID: "alpha", Amount: 1000},
	}))

	purchase, err := tr.CreatePurchaseTradeGoodsTicket(ctx, "alpha", "IRON_ORE", "X1-A", "SHIP-1", 5, 10)
	require.NoError(t, err)

	sell, err := tr.CreateSellTradeGoodsTicket(ctx, "alpha", "IRON_ORE", "X1-B", "SHIP-1", 5, 20, purchase.ID)
	require.NoError(t, err)

	routes := tr.GetActiveTradeRoutes("alpha")
	require.Len(t, routes, 1)
	assert.Equal(t, purchase.ID, routes[0].Purchase.ID)
	assert.Equal(t, sell.ID, routes[0].Sell.ID)
}
