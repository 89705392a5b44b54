package contract

import "fmt"

// MarketSnapshot is the per-good purchase price the trade planner samples
// when evaluating a contract (spec.md §2 "a market snapshot").
type MarketSnapshot struct {
	PurchasePricePerUnit map[string]int
}

// ProfitabilityContext carries the figures EvaluateProfitability needs
// beyond the contract itself.
type ProfitabilityContext struct {
	Market          MarketSnapshot
	CargoCapacity   int
	FuelCostPerTrip int
}

// ProfitabilityEvaluation is the planner's verdict on a contract.
type ProfitabilityEvaluation struct {
	IsProfitable  bool
	NetProfit     int
	TotalPayment  int
	PurchaseCost  int
	FuelCost      int
	TripsRequired int
	Reason        string
}

// MinProfitThreshold: contracts that lose no more than this much are still
// accepted, since an idle ship waiting for a better offer costs more in
// opportunity than a small guaranteed loss.
const MinProfitThreshold = -5000

// EvaluateProfitability scores whether working out the remainder of a
// contract is worth it under current market conditions.
func (c *Contract) EvaluateProfitability(ctx ProfitabilityContext) (*ProfitabilityEvaluation, error) {
	totalPayment := c.Terms.Payment.OnAccepted + c.Terms.Payment.OnFulfilled

	purchaseCost := 0
	totalUnits := 0
	for _, d := range c.Terms.Deliveries {
		needed := d.UnitsRequired - d.UnitsFulfilled
		if needed <= 0 {
			continue
		}
		price, ok := ctx.Market.PurchasePricePerUnit[d.TradeSymbol]
		if !ok {
			return nil, fmt.Errorf("missing market price for %s", d.TradeSymbol)
		}
		purchaseCost += price * needed
		totalUnits += needed
	}

	trips := 0
	if ctx.CargoCapacity > 0 && totalUnits > 0 {
		trips = (totalUnits + ctx.CargoCapacity - 1) / ctx.CargoCapacity
	}
	fuelCost := trips * ctx.FuelCostPerTrip
	netProfit := totalPayment - (purchaseCost + fuelCost)
	profitable := netProfit >= MinProfitThreshold

	reason := "loss exceeds acceptable threshold"
	if netProfit > 0 {
		reason = "profitable"
	} else if profitable {
		reason = "acceptable small loss"
	}

	return &ProfitabilityEvaluation{
		IsProfitable:  profitable,
		NetProfit:     netProfit,
		TotalPayment:  totalPayment,
		PurchaseCost:  purchaseCost,
		FuelCost:      fuelCost,
		TripsRequired: trips,
		Reason:        reason,
	}, nil
}
