package ledger

import "fmt"

// ErrInvariantViolation marks a broken ledger invariant — fatal per
// spec.md §7, recovered only via reset_treasurer_due_to_agent_credit_diff.
type ErrInvariantViolation struct {
	Reason string
}

func (e *ErrInvariantViolation) Error() string {
	return fmt.Sprintf("ledger invariant violated: %s", e.Reason)
}

// ErrInsufficientFunds is returned when a request cannot be reserved even
// after the caller's own reduction logic has run.
type ErrInsufficientFunds struct {
	FleetID   string
	Requested int
	Available int
}

func (e *ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds in fleet %s: requested %d, available %d", e.FleetID, e.Requested, e.Available)
}

// ErrFleetNotFound is returned when an operation names an unknown fleet.
type ErrFleetNotFound struct {
	FleetID string
}

func (e *ErrFleetNotFound) Error() string {
	return fmt.Sprintf("fleet not found: %s", e.FleetID)
}

// ErrTicketNotFound is returned when an operation names an unknown ticket.
type ErrTicketNotFound struct {
	TicketID string
}

func (e *ErrTicketNotFound) Error() string {
	return fmt.Sprintf("ticket not found: %s", e.TicketID)
}
