package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfleet/spacetrader-agent/internal/adapters/persistence"
	"github.com/arcfleet/spacetrader-agent/internal/domain/ledger"
	"github.com/arcfleet/spacetrader-agent/test/helpers"
)

func TestLedgerRepository_AppendAndLoadAllPreservesOrderAndTicketPayload(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewLedgerRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []ledger.LedgerEntry{
		{ID: "e1", Kind: ledger.EntryTreasuryCreated, Timestamp: base, Credits: 10000},
		{ID: "e2", Kind: ledger.EntryFleetCreated, Timestamp: base.Add(time.Second), FleetID: "alpha", Amount: 5000},
		{
			ID: "e3", Kind: ledger.EntryTicketCreated, Timestamp: base.Add(2 * time.Second),
			Ticket: &ledger.FinanceTicket{ID: "t1", FleetID: "alpha", Kind: ledger.TicketPurchaseTradeGoods, Quantity: 10, ExpectedPP: 20, ReservedAmount: 200},
		},
	}

	require.NoError(t, repo.Append(ctx, entries))

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, "e1", loaded[0].ID)
	assert.Equal(t, "e2", loaded[1].ID)
	assert.Equal(t, "e3", loaded[2].ID)
	require.NotNil(t, loaded[2].Ticket)
	assert.Equal(t, "t1", loaded[2].Ticket.ID)
	assert.Equal(t, 200, loaded[2].Ticket.ReservedAmount)
}

func TestLedgerRepository_AppendEmptySliceIsNoop(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewLedgerRepository(db)

	require.NoError(t, repo.Append(context.Background(), nil))

	loaded, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLedgerRepository_LoadAllReplaysIntoConsistentState(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewLedgerRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(ctx, []ledger.LedgerEntry{
		{ID: "e1", Kind: ledger.EntryTreasuryCreated, Timestamp: base, Credits: 1000},
		{ID: "e2", Kind: ledger.EntryFleetCreated, Timestamp: base.Add(time.Second), FleetID: "alpha", Amount: 500},
		{ID: "e3", Kind: ledger.EntryTransferredFundsTreasuryToFleet, Timestamp: base.Add(2 * time.Second), FleetID: "alpha", Amount: 300},
	}))

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	state, err := ledger.FromLedger(loaded)
	require.NoError(t, err)
	assert.Equal(t, 700, state.Treasury)
	assert.Equal(t, 300, state.Fleets["alpha"].CurrentCapital)
}
