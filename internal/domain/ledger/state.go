package ledger

// State is the treasurer's full in-memory position: the treasury balance,
// every active fleet budget, every open ticket, and archived fleets kept
// for audit. It is always the result of replaying some prefix of the
// ledger (spec.md §4.6: "from_ledger(entries) ... must be identical to the
// state obtained by executing the originating API calls").
type State struct {
	Treasury       int
	Fleets         map[string]*FleetBudget
	Tickets        map[string]*FinanceTicket
	ArchivedFleets map[string]*FleetBudget
}

// NewState returns the empty default state replay starts from.
func NewState() *State {
	return &State{
		Fleets:         make(map[string]*FleetBudget),
		Tickets:        make(map[string]*FinanceTicket),
		ArchivedFleets: make(map[string]*FleetBudget),
	}
}

// FromLedger replays entries in order from an empty state (spec.md §4.6).
func FromLedger(entries []LedgerEntry) (*State, error) {
	state := NewState()
	for _, entry := range entries {
		if err := state.Apply(entry); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Apply mutates state according to one ledger entry — this is
// process_ledger_entry from spec.md §4.6. It is pure with respect to
// everything outside state: given the same (state, entry), it always
// produces the same resulting state or the same error.
func (s *State) Apply(entry LedgerEntry) error {
	switch entry.Kind {
	case EntryTreasuryCreated:
		s.Treasury = entry.Credits
		return nil

	case EntryTreasuryReset:
		s.Fleets = make(map[string]*FleetBudget)
		s.Tickets = make(map[string]*FinanceTicket)
		s.Treasury = entry.Credits
		return nil

	case EntryFleetCreated:
		s.Fleets[entry.FleetID] = &FleetBudget{ID: entry.FleetID, Budget: entry.Amount}
		return nil

	case EntryArchivedFleetBudget:
		fleet, ok := s.Fleets[entry.FleetID]
		if !ok {
			return &ErrFleetNotFound{FleetID: entry.FleetID}
		}
		delete(s.Fleets, entry.FleetID)
		s.ArchivedFleets[entry.FleetID] = fleet
		return nil

	case EntryTransferredFundsTreasuryToFleet:
		fleet, ok := s.Fleets[entry.FleetID]
		if !ok {
			return &ErrFleetNotFound{FleetID: entry.FleetID}
		}
		s.Treasury -= entry.Amount
		fleet.CurrentCapital += entry.Amount
		return nil

	case EntryTransferredFundsFleetToTreasury:
		fleet, ok := s.Fleets[entry.FleetID]
		if !ok {
			return &ErrFleetNotFound{FleetID: entry.FleetID}
		}
		fleet.CurrentCapital -= entry.Amount
		s.Treasury += entry.Amount
		return nil

	case EntryTicketCreated:
		if entry.Ticket == nil {
			return &ErrInvariantViolation{Reason: "TICKET_CREATED entry carries no ticket"}
		}
		fleet, ok := s.Fleets[entry.Ticket.FleetID]
		if !ok {
			return &ErrFleetNotFound{FleetID: entry.Ticket.FleetID}
		}
		if _, exists := s.Tickets[entry.Ticket.ID]; exists {
			return &ErrInvariantViolation{Reason: "ticket id collision: " + entry.Ticket.ID}
		}
		s.Tickets[entry.Ticket.ID] = entry.Ticket
		fleet.ReservedCapital += entry.Ticket.ReservedAmount
		return nil

	case EntryTicketCompleted:
		ticket, ok := s.Tickets[entry.TicketID]
		if !ok {
			return &ErrTicketNotFound{TicketID: entry.TicketID}
		}
		fleet, ok := s.Fleets[ticket.FleetID]
		if !ok {
			return &ErrFleetNotFound{FleetID: ticket.FleetID}
		}
		total := ticket.signum() * ticket.Quantity * entry.ActualPricePerUnit
		fleet.CurrentCapital += total
		fleet.ReservedCapital -= ticket.ReservedAmount
		if fleet.ReservedCapital < 0 {
			return &ErrInvariantViolation{Reason: "reserved capital went negative completing " + entry.TicketID}
		}
		ticket.Completed = true
		delete(s.Tickets, entry.TicketID)
		return nil

	case EntryBrokenTicketDeleted:
		ticket, ok := s.Tickets[entry.TicketID]
		if ok {
			if fleet, fok := s.Fleets[ticket.FleetID]; fok {
				fleet.ReservedCapital -= ticket.ReservedAmount
			}
		}
		delete(s.Tickets, entry.TicketID)
		return nil

	case EntryExpenseLogged:
		fleet, ok := s.Fleets[entry.FleetID]
		if !ok {
			return &ErrFleetNotFound{FleetID: entry.FleetID}
		}
		fleet.CurrentCapital -= entry.Amount
		return nil

	case EntryIncomeLogged:
		fleet, ok := s.Fleets[entry.FleetID]
		if !ok {
			return &ErrFleetNotFound{FleetID: entry.FleetID}
		}
		fleet.CurrentCapital += entry.Amount
		return nil

	case EntrySetNewTotalCapitalForFleet:
		fleet, ok := s.Fleets[entry.FleetID]
		if !ok {
			return &ErrFleetNotFound{FleetID: entry.FleetID}
		}
		fleet.Budget = entry.Amount
		return nil

	case EntrySetNewOperatingReserveForFleet:
		fleet, ok := s.Fleets[entry.FleetID]
		if !ok {
			return &ErrFleetNotFound{FleetID: entry.FleetID}
		}
		fleet.OperatingReserve = entry.Amount
		return nil

	default:
		return &ErrInvariantViolation{Reason: "unknown ledger entry kind: " + string(entry.Kind)}
	}
}

// TotalCapital sums the treasury and every active fleet's current capital
// — invariant 2 of spec.md §8 checks this against the agent's observed
// credit balance.
func (s *State) TotalCapital() int {
	total := s.Treasury
	for _, fleet := range s.Fleets {
		total += fleet.CurrentCapital
	}
	return total
}
