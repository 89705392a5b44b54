package ledger

// FleetBudget is one fleet's virtual sub-account of the treasury.
type FleetBudget struct {
	ID               string
	Budget           int // the target total_capital cap (spec.md: "budget")
	CurrentCapital   int
	ReservedCapital  int
	OperatingReserve int
}

// AvailableCapital is the fleet's current capital minus what is already
// reserved against open tickets and its operating reserve (invariant 3:
// must stay ≥ 0 except transiently before a same-locked-section
// reimbursement completes).
func (b *FleetBudget) AvailableCapital() int {
	return b.CurrentCapital - b.ReservedCapital - b.OperatingReserve
}
