package shared

// CargoItem is one good held in a ship's cargo hold.
type CargoItem struct {
	Symbol string
	Units  int
}

// Cargo is an immutable snapshot of a ship's hold.
type Cargo struct {
	Capacity  int
	Units     int
	Inventory []CargoItem
}

// NewCargo constructs a Cargo, recomputing Units from Inventory so the two
// can never disagree.
func NewCargo(capacity int, inventory []CargoItem) (*Cargo, error) {
	units := 0
	for _, item := range inventory {
		units += item.Units
	}
	if units > capacity {
		return nil, NewInvariantViolationError("cargo units exceed capacity")
	}
	return &Cargo{Capacity: capacity, Units: units, Inventory: inventory}, nil
}

// AvailableSpace returns remaining cargo capacity.
func (c *Cargo) AvailableSpace() int {
	return c.Capacity - c.Units
}

// UnitsOf returns how many units of a given good the hold carries.
func (c *Cargo) UnitsOf(symbol string) int {
	for _, item := range c.Inventory {
		if item.Symbol == symbol {
			return item.Units
		}
	}
	return 0
}

// IsEmpty reports whether the hold carries nothing.
func (c *Cargo) IsEmpty() bool {
	return c.Units == 0
}

// WithReceived returns a new Cargo with units of symbol added.
func (c *Cargo) WithReceived(symbol string, units int) (*Cargo, error) {
	next := make([]CargoItem, 0, len(c.Inventory)+1)
	found := false
	for _, item := range c.Inventory {
		if item.Symbol == symbol {
			next = append(next, CargoItem{Symbol: symbol, Units: item.Units + units})
			found = true
		} else {
			next = append(next, item)
		}
	}
	if !found {
		next = append(next, CargoItem{Symbol: symbol, Units: units})
	}
	return NewCargo(c.Capacity, next)
}

// WithRemoved returns a new Cargo with units of symbol removed.
func (c *Cargo) WithRemoved(symbol string, units int) (*Cargo, error) {
	if c.UnitsOf(symbol) < units {
		return nil, NewInvariantViolationError("cannot remove more cargo than held")
	}
	next := make([]CargoItem, 0, len(c.Inventory))
	for _, item := range c.Inventory {
		if item.Symbol == symbol {
			if remaining := item.Units - units; remaining > 0 {
				next = append(next, CargoItem{Symbol: symbol, Units: remaining})
			}
			continue
		}
		next = append(next, item)
	}
	return NewCargo(c.Capacity, next)
}
