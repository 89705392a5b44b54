// Package ledger implements the event-sourced financial ledger described in
// spec.md §4.6: an append-only sequence of LedgerEntry values, a pure
// process_ledger_entry/from_ledger replay law, and the FleetBudget/
// FinanceTicket aggregates that replay produces.
package ledger

import "time"

// EntryKind tags the sum-type variant a LedgerEntry carries.
type EntryKind string

const (
	EntryTreasuryCreated                   EntryKind = "TREASURY_CREATED"
	EntryFleetCreated                      EntryKind = "FLEET_CREATED"
	EntryTicketCreated                     EntryKind = "TICKET_CREATED"
	EntryTicketCompleted                   EntryKind = "TICKET_COMPLETED"
	EntryExpenseLogged                     EntryKind = "EXPENSE_LOGGED"
	EntryIncomeLogged                      EntryKind = "INCOME_LOGGED"
	EntryTransferredFundsTreasuryToFleet   EntryKind = "TRANSFERRED_FUNDS_TREASURY_TO_FLEET"
	EntryTransferredFundsFleetToTreasury   EntryKind = "TRANSFERRED_FUNDS_FLEET_TO_TREASURY"
	EntrySetNewTotalCapitalForFleet        EntryKind = "SET_NEW_TOTAL_CAPITAL_FOR_FLEET"
	EntrySetNewOperatingReserveForFleet    EntryKind = "SET_NEW_OPERATING_RESERVE_FOR_FLEET"
	EntryArchivedFleetBudget               EntryKind = "ARCHIVED_FLEET_BUDGET"
	EntryTreasuryReset                     EntryKind = "TREASURY_RESET"
	EntryBrokenTicketDeleted               EntryKind = "BROKEN_TICKET_DELETED"
)

// LedgerEntry is one immutable, appended fact. Only the fields relevant to
// Kind are populated; this mirrors the behavior package's Event shape
// rather than a Go sum type via interfaces, since every entry is persisted
// and replayed as a flat record (spec.md §6: "an append-only ledger_entries
// table").
type LedgerEntry struct {
	ID        string
	Kind      EntryKind
	Timestamp time.Time

	// EntryTreasuryCreated, EntryTreasuryReset
	Credits int

	// EntryFleetCreated, EntryTransferredFunds*, EntrySetNewTotalCapitalForFleet,
	// EntrySetNewOperatingReserveForFleet, EntryArchivedFleetBudget
	FleetID string
	Amount  int // also used by EntryExpenseLogged/EntryIncomeLogged

	// EntryTicketCreated
	Ticket *FinanceTicket

	// EntryTicketCompleted, EntryBrokenTicketDeleted
	TicketID           string
	ActualPricePerUnit int

	// EntryExpenseLogged, EntryIncomeLogged
	ShipSymbol string
	Reason     string
}
