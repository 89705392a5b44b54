package shared

import "fmt"

// Fuel is an immutable fuel gauge. Current never exceeds Capacity.
type Fuel struct {
	Current  int
	Capacity int
}

// NewFuel validates and constructs a Fuel value.
func NewFuel(current, capacity int) (*Fuel, error) {
	if capacity < 0 {
		return nil, NewInvariantViolationError("fuel_capacity cannot be negative")
	}
	if current < 0 || current > capacity {
		return nil, NewInvariantViolationError(fmt.Sprintf("fuel current %d out of range [0,%d]", current, capacity))
	}
	return &Fuel{Current: current, Capacity: capacity}, nil
}

// Consume returns a new Fuel with amount removed. Errors if insufficient.
func (f *Fuel) Consume(amount int) (*Fuel, error) {
	if amount > f.Current {
		return nil, NewInsufficientFuelError(amount, f.Current)
	}
	return &Fuel{Current: f.Current - amount, Capacity: f.Capacity}, nil
}

// Add returns a new Fuel with amount added, capped at Capacity.
func (f *Fuel) Add(amount int) *Fuel {
	next := f.Current + amount
	if next > f.Capacity {
		next = f.Capacity
	}
	return &Fuel{Current: next, Capacity: f.Capacity}
}

// IsFull reports whether the tank is at capacity.
func (f *Fuel) IsFull() bool {
	return f.Current >= f.Capacity
}

func (f *Fuel) String() string {
	return fmt.Sprintf("%d/%d", f.Current, f.Capacity)
}
