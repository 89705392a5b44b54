package shared

import "fmt"

// InvariantViolationError marks a broken domain invariant — per spec.md §7
// this class is fatal and should surface to the manager at ERROR level.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violated: %s", e.Reason)
}

func NewInvariantViolationError(reason string) *InvariantViolationError {
	return &InvariantViolationError{Reason: reason}
}

// InsufficientFuelError reports a ship lacking the fuel a jump requires.
type InsufficientFuelError struct {
	Requested int
	Available int
}

func (e *InsufficientFuelError) Error() string {
	return fmt.Sprintf("insufficient fuel: requested %d, have %d", e.Requested, e.Available)
}

func NewInsufficientFuelError(requested, available int) *InsufficientFuelError {
	return &InsufficientFuelError{Requested: requested, Available: available}
}

// PreconditionUnmetError reports a leaf action whose precondition on ship
// state (e.g. must be DOCKED) was not satisfied.
type PreconditionUnmetError struct {
	Action string
	Reason string
}

func (e *PreconditionUnmetError) Error() string {
	return fmt.Sprintf("precondition unmet for %s: %s", e.Action, e.Reason)
}

func NewPreconditionUnmetError(action, reason string) *PreconditionUnmetError {
	return &PreconditionUnmetError{Action: action, Reason: reason}
}

// APIError wraps a failure from the external game API capability set.
type APIError struct {
	Op  string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error during %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

func NewAPIError(op string, err error) *APIError {
	return &APIError{Op: op, Err: err}
}
