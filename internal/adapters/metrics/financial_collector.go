package metrics

import "github.com/prometheus/client_golang/prometheus"

// FinancialCollector records fleet treasury activity, grounded on the
// teacher's financial_metrics.go — same balance-gauge/transaction-
// counter/P&L-gauge shape — but labeled by fleet id instead of a numeric
// player id (this agent has no multi-player concept) and driven by
// treasurer.Treasurer's own calls instead of a background poller, since
// there is no mediator query to poll here: the treasurer already holds
// the numbers in memory.
type FinancialCollector struct {
	fleetBalance       *prometheus.GaugeVec
	transactionsTotal  *prometheus.CounterVec
	transactionAmount  *prometheus.HistogramVec
	tradeProfitPerUnit *prometheus.HistogramVec
	tradeMarginPercent *prometheus.HistogramVec
}

func newFinancialCollector() *FinancialCollector {
	return &FinancialCollector{
		fleetBalance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "fleet_available_capital",
			Help: "Current available capital per fleet budget",
		}, []string{"fleet_id"}),

		transactionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "ledger_transactions_total",
			Help: "Total ledger entries recorded by kind",
		}, []string{"fleet_id", "kind"}),

		transactionAmount: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "ledger_transaction_amount",
			Help:    "Ledger entry amount distribution",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
		}, []string{"fleet_id", "kind"}),

		tradeProfitPerUnit: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "trade_profit_per_unit",
			Help:    "Profit per unit realized on completed trades",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000},
		}, []string{"fleet_id", "good_symbol"}),

		tradeMarginPercent: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "trade_margin_percent",
			Help:    "Trade margin percentage ((sell-buy)/buy * 100)",
			Buckets: []float64{5, 10, 25, 50, 75, 100, 150, 200},
		}, []string{"fleet_id", "good_symbol"}),
	}
}

func (c *FinancialCollector) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.fleetBalance, c.transactionsTotal, c.transactionAmount, c.tradeProfitPerUnit, c.tradeMarginPercent}
}

// RecordLedgerEntry is called once per appended ledger.LedgerEntry.
func (c *FinancialCollector) RecordLedgerEntry(fleetID, kind string, amount int) {
	c.transactionsTotal.WithLabelValues(fleetID, kind).Inc()
	abs := amount
	if abs < 0 {
		abs = -abs
	}
	c.transactionAmount.WithLabelValues(fleetID, kind).Observe(float64(abs))
}

// SetFleetBalance reports a fleet budget's available capital after a
// reconciliation pass.
func (c *FinancialCollector) SetFleetBalance(fleetID string, availableCapital int) {
	c.fleetBalance.WithLabelValues(fleetID).Set(float64(availableCapital))
}

// RecordTrade records realized trade profitability once a buy/sell pair
// completes.
func (c *FinancialCollector) RecordTrade(fleetID, goodSymbol string, buyPrice, sellPrice, quantity int) {
	if buyPrice <= 0 || sellPrice <= 0 || quantity <= 0 {
		return
	}
	profitPerUnit := sellPrice - buyPrice
	c.tradeProfitPerUnit.WithLabelValues(fleetID, goodSymbol).Observe(float64(profitPerUnit))
	marginPercent := float64(profitPerUnit) / float64(buyPrice) * 100
	c.tradeMarginPercent.WithLabelValues(fleetID, goodSymbol).Observe(marginPercent)
}
