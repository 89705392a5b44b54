package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/arcfleet/spacetrader-agent/internal/domain/market"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// MarketRepository implements the market half of ObservationStore and
// FactStore, grounded on the teacher's market_repository.go/
// trading_market_repository_adapter.go's summary/detail split — one row
// per waypoint for the always-visible exports/imports/exchange lists,
// one row per (waypoint, good) for physically-observed pricing, mirroring
// the teacher's MarketData table shape exactly.
type MarketRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

func NewMarketRepository(db *gorm.DB, clock shared.Clock) *MarketRepository {
	if clock == nil {
		clock = shared.RealClock{}
	}
	return &MarketRepository{db: db, clock: clock}
}

func (r *MarketRepository) UpsertMarket(ctx context.Context, m *market.MarketData) error {
	exports, err := json.Marshal(m.Exports)
	if err != nil {
		return fmt.Errorf("encode exports for %s: %w", m.Waypoint, err)
	}
	imports, err := json.Marshal(m.Imports)
	if err != nil {
		return fmt.Errorf("encode imports for %s: %w", m.Waypoint, err)
	}
	exchange, err := json.Marshal(m.Exchange)
	if err != nil {
		return fmt.Errorf("encode exchange for %s: %w", m.Waypoint, err)
	}

	now := r.clock.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		summary := &MarketModel{
			Waypoint:       m.Waypoint,
			ExportsJSON:    string(exports),
			ImportsJSON:    string(imports),
			ExchangeJSON:   string(exchange),
			LastObservedAt: &now,
		}
		if err := tx.Save(summary).Error; err != nil {
			return fmt.Errorf("save market summary %s: %w", m.Waypoint, err)
		}
		for _, good := range m.Detailed {
			var activity *string
			if good.Activity != nil {
				s := string(*good.Activity)
				activity = &s
			}
			row := &MarketGoodModel{
				Waypoint:      m.Waypoint,
				GoodSymbol:    good.Symbol,
				TradeVolume:   good.TradeVolume,
				Supply:        string(good.Supply),
				Activity:      activity,
				PurchasePrice: good.PurchasePrice,
				SellPrice:     good.SellPrice,
				ObservedAt:    now,
			}
			if err := tx.Save(row).Error; err != nil {
				return fmt.Errorf("save market good %s/%s: %w", m.Waypoint, good.Symbol, err)
			}
		}
		return nil
	})
}

func (r *MarketRepository) ListBySystem(ctx context.Context, system string) ([]*market.MarketData, error) {
	var summaries []MarketModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN waypoints ON waypoints.symbol = markets.waypoint_symbol").
		Where("waypoints.system_symbol = ?", system).
		Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("list markets for %s: %w", system, err)
	}

	out := make([]*market.MarketData, 0, len(summaries))
	for _, s := range summaries {
		m, err := modelToMarketSummary(&s)
		if err != nil {
			return nil, fmt.Errorf("decode market %s: %w", s.Waypoint, err)
		}
		var goods []MarketGoodModel
		if err := r.db.WithContext(ctx).Where("waypoint_symbol = ?", s.Waypoint).Find(&goods).Error; err != nil {
			return nil, fmt.Errorf("list market goods for %s: %w", s.Waypoint, err)
		}
		for _, g := range goods {
			var activity *market.Activity
			if g.Activity != nil {
				a := market.Activity(*g.Activity)
				activity = &a
			}
			m.Detailed = append(m.Detailed, market.GoodDetail{
				Symbol:        g.GoodSymbol,
				TradeVolume:   g.TradeVolume,
				Supply:        market.Supply(g.Supply),
				Activity:      activity,
				PurchasePrice: g.PurchasePrice,
				SellPrice:     g.SellPrice,
			})
		}
		out = append(out, m)
	}
	return out, nil
}

func modelToMarketSummary(m *MarketModel) (*market.MarketData, error) {
	var exports, imports, exchange []market.GoodSummary
	if m.ExportsJSON != "" {
		if err := json.Unmarshal([]byte(m.ExportsJSON), &exports); err != nil {
			return nil, err
		}
	}
	if m.ImportsJSON != "" {
		if err := json.Unmarshal([]byte(m.ImportsJSON), &imports); err != nil {
			return nil, err
		}
	}
	if m.ExchangeJSON != "" {
		if err := json.Unmarshal([]byte(m.ExchangeJSON), &exchange); err != nil {
			return nil, err
		}
	}
	return &market.MarketData{Waypoint: m.Waypoint, Exports: exports, Imports: imports, Exchange: exchange}, nil
}
