// Package market models MarketData as specified in spec.md §3: a summary
// form (exports/imports/exchange symbol lists only) and a detailed form
// (a record per good, observable only by a ship physically present).
package market

// Supply is the game's coarse supply-level enum for a good at a market.
type Supply string

const (
	SupplyScarce   Supply = "SCARCE"
	SupplyLimited  Supply = "LIMITED"
	SupplyModerate Supply = "MODERATE"
	SupplyHigh     Supply = "HIGH"
	SupplyAbundant Supply = "ABUNDANT"
)

// Activity is the game's trend indicator for a good at a market.
type Activity string

const (
	ActivityWeak       Activity = "WEAK"
	ActivityGrowing    Activity = "GROWING"
	ActivityStrong     Activity = "STRONG"
	ActivityRestricted Activity = "RESTRICTED"
)

// GoodSummary names a tradable good without pricing data.
type GoodSummary struct {
	Symbol string
}

// GoodDetail is one priced, detailed market record. Only observable by a
// ship physically present at the waypoint.
type GoodDetail struct {
	Symbol        string
	TradeVolume   int
	Supply        Supply
	Activity      *Activity
	PurchasePrice int
	SellPrice     int
}

// MarketData is attached to a waypoint carrying the MARKETPLACE trait.
type MarketData struct {
	Waypoint string
	Exports  []GoodSummary
	Imports  []GoodSummary
	Exchange []GoodSummary
	// Detailed is nil for the summary form; populated once a ship has
	// physically observed the market.
	Detailed []GoodDetail
}

// IsDetailed reports whether this snapshot carries priced records.
func (m *MarketData) IsDetailed() bool {
	return len(m.Detailed) > 0
}

// DetailOf returns the detailed record for a good, if observed.
func (m *MarketData) DetailOf(symbol string) (GoodDetail, bool) {
	for _, d := range m.Detailed {
		if d.Symbol == symbol {
			return d, true
		}
	}
	return GoodDetail{}, false
}

// FuelRefuelThreshold is the maximum per-unit fuel price below which a
// waypoint is considered refuelable, per spec.md §3: "FUEL sold at price
// ≤ threshold implies refuelability".
const FuelRefuelThreshold = 10

// IsRefuelable reports whether this market sells FUEL at or below the
// refuelability threshold.
func (m *MarketData) IsRefuelable() bool {
	detail, ok := m.DetailOf("FUEL")
	if !ok {
		for _, g := range m.Exchange {
			if g.Symbol == "FUEL" {
				return true // summary form: presence implies availability
			}
		}
		for _, g := range m.Exports {
			if g.Symbol == "FUEL" {
				return true
			}
		}
		return false
	}
	return detail.PurchasePrice <= FuelRefuelThreshold
}
