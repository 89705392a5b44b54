// Package tradeplan implements the contract/trade planner (spec.md §2):
// given a contract, a ship's current cargo, and a market snapshot, emit
// the cheapest sequence of tickets (purchases, sells-of-excess,
// deliveries) that satisfies the contract.
package tradeplan

import (
	"fmt"
	"sort"

	"github.com/arcfleet/spacetrader-agent/internal/domain/contract"
	"github.com/arcfleet/spacetrader-agent/internal/domain/market"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// TicketRequest is one planned treasurer ticket, not yet created — the
// admiral turns these into real `ledger.FinanceTicket`s via the
// treasurer once a ship is assigned.
type TicketRequest struct {
	Kind       TicketRequestKind
	Waypoint   string
	GoodSymbol string
	Quantity   int
	ExpectedPP int
}

// TicketRequestKind mirrors the subset of ledger.TicketKind a trade plan
// can produce.
type TicketRequestKind string

const (
	RequestPurchase TicketRequestKind = "PURCHASE_TRADE_GOODS"
	RequestSell     TicketRequestKind = "SELL_TRADE_GOODS"
	RequestDeliver  TicketRequestKind = "DELIVER_CONTRACT_CARGO"
)

// MarketQuote is the cheapest known price for a good at one waypoint.
type MarketQuote struct {
	Waypoint      string
	PurchasePrice int
	SellPrice     int
}

// Plan walks a contract's outstanding deliveries and the ship's current
// cargo, producing: a sell ticket for any cargo the contract doesn't
// need (sell-of-excess, freeing hold space before buying), a purchase
// ticket at the cheapest observed market for every unit still short, and
// a delivery ticket once goods are aboard.
func Plan(c *contract.Contract, cargo *shared.Cargo, markets []*market.MarketData) ([]TicketRequest, error) {
	var requests []TicketRequest

	needed := make(map[string]int)
	for _, d := range c.Terms.Deliveries {
		if remaining := d.UnitsRequired - d.UnitsFulfilled; remaining > 0 {
			needed[d.TradeSymbol] += remaining
		}
	}

	if cargo != nil {
		for _, item := range cargo.Inventory {
			want, isNeeded := needed[item.Symbol]
			haveForDelivery := item.Units
			if isNeeded && want < item.Units {
				haveForDelivery = want
			}
			excess := item.Units - haveForDelivery
			if !isNeeded {
				excess = item.Units
			}
			if excess > 0 {
				quote, ok := cheapestQuote(markets, item.Symbol, true)
				if !ok {
					return nil, fmt.Errorf("no market to sell excess %s", item.Symbol)
				}
				requests = append(requests, TicketRequest{
					Kind: RequestSell, Waypoint: quote.Waypoint, GoodSymbol: item.Symbol,
					Quantity: excess, ExpectedPP: quote.SellPrice,
				})
			}
			if isNeeded && haveForDelivery > 0 {
				requests = append(requests, TicketRequest{
					Kind: RequestDeliver, GoodSymbol: item.Symbol, Quantity: haveForDelivery,
				})
				needed[item.Symbol] -= haveForDelivery
			}
		}
	}

	goods := make([]string, 0, len(needed))
	for g := range needed {
		goods = append(goods, g)
	}
	sort.Strings(goods)

	for _, good := range goods {
		qty := needed[good]
		if qty <= 0 {
			continue
		}
		quote, ok := cheapestQuote(markets, good, false)
		if !ok {
			return nil, fmt.Errorf("no market sells %s", good)
		}
		requests = append(requests, TicketRequest{
			Kind: RequestPurchase, Waypoint: quote.Waypoint, GoodSymbol: good,
			Quantity: qty, ExpectedPP: quote.PurchasePrice,
		})
		requests = append(requests, TicketRequest{Kind: RequestDeliver, GoodSymbol: good, Quantity: qty})
	}

	return requests, nil
}

// cheapestQuote finds the waypoint with the best observed price for a
// good: lowest purchase price when buying, highest sell price when
// selling. Only detailed (physically observed) market records count.
func cheapestQuote(markets []*market.MarketData, good string, selling bool) (MarketQuote, bool) {
	var best MarketQuote
	found := false
	for _, m := range markets {
		detail, ok := m.DetailOf(good)
		if !ok {
			continue
		}
		if !found {
			best = MarketQuote{Waypoint: m.Waypoint, PurchasePrice: detail.PurchasePrice, SellPrice: detail.SellPrice}
			found = true
			continue
		}
		if selling && detail.SellPrice > best.SellPrice {
			best = MarketQuote{Waypoint: m.Waypoint, PurchasePrice: detail.PurchasePrice, SellPrice: detail.SellPrice}
		}
		if !selling && detail.PurchasePrice < best.PurchasePrice {
			best = MarketQuote{Waypoint: m.Waypoint, PurchasePrice: detail.PurchasePrice, SellPrice: detail.SellPrice}
		}
	}
	return best, found
}
