package ledger

// TicketKind enumerates the treasurer's financial ticket variants
// (spec.md §4.6).
type TicketKind string

const (
	TicketPurchaseTradeGoods TicketKind = "PURCHASE_TRADE_GOODS"
	TicketSellTradeGoods     TicketKind = "SELL_TRADE_GOODS"
	TicketSupplyConstruction TicketKind = "SUPPLY_CONSTRUCTION"
	TicketDeliverContract    TicketKind = "DELIVER_CONTRACT_CARGO"
	TicketPurchaseShip       TicketKind = "PURCHASE_SHIP"
)

// FinanceTicket is a treasurer-issued claim against a fleet's capital — a
// TransactionTicket in spec.md's vocabulary. Purchase tickets reserve
// money up front; the others reserve nothing.
type FinanceTicket struct {
	ID             string
	FleetID        string
	Kind           TicketKind
	ShipSymbol     string
	Waypoint       string
	GoodSymbol     string
	Quantity       int
	ExpectedPP     int
	ReservedAmount int

	// MatchingPurchaseTicketID links a sell ticket back to the purchase
	// that sourced the goods, for profit-per-trade reporting.
	MatchingPurchaseTicketID string

	Completed bool
}

// signum is the sign applied to a ticket's actual total when it completes:
// purchases and ship buys spend money (-1), sales earn it (+1), supply and
// contract delivery tickets move no money (0) — the goods already paid for
// at purchase time.
func (t *FinanceTicket) signum() int {
	switch t.Kind {
	case TicketPurchaseTradeGoods, TicketPurchaseShip:
		return -1
	case TicketSellTradeGoods:
		return 1
	default:
		return 0
	}
}
