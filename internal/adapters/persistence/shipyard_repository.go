package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// ShipyardRepository implements the shipyard and jump-gate halves of
// ObservationStore and FactStore — a plain upsert per listing/connection,
// no JSON blobs needed since both rows are already flat.
type ShipyardRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

func NewShipyardRepository(db *gorm.DB, clock shared.Clock) *ShipyardRepository {
	if clock == nil {
		clock = shared.RealClock{}
	}
	return &ShipyardRepository{db: db, clock: clock}
}

func (r *ShipyardRepository) UpsertShipyardListing(ctx context.Context, waypoint string, shipTypes []string, prices map[string]int) error {
	now := r.clock.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, shipType := range shipTypes {
			row := &ShipyardListingModel{
				Waypoint:      waypoint,
				ShipType:      shipType,
				PurchasePrice: prices[shipType],
				ObservedAt:    now,
			}
			if err := tx.Save(row).Error; err != nil {
				return fmt.Errorf("save shipyard listing %s/%s: %w", waypoint, shipType, err)
			}
		}
		return nil
	})
}

func (r *ShipyardRepository) UpsertJumpGateConnections(ctx context.Context, waypoint string, connections []string) error {
	now := r.clock.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, target := range connections {
			row := &JumpGateConnectionModel{Waypoint: waypoint, Target: target, ObservedAt: now}
			if err := tx.Save(row).Error; err != nil {
				return fmt.Errorf("save jump gate connection %s->%s: %w", waypoint, target, err)
			}
		}
		return nil
	})
}

// ListShipyardWaypoints returns every waypoint with at least one observed
// listing — the admiral's FactStore.ListShipyards projection.
func (r *ShipyardRepository) ListShipyardWaypoints(ctx context.Context, system string) ([]string, error) {
	var waypoints []string
	err := r.db.WithContext(ctx).
		Model(&ShipyardListingModel{}).
		Joins("JOIN waypoints ON waypoints.symbol = shipyard_listings.waypoint_symbol").
		Where("waypoints.system_symbol = ?", system).
		Distinct().
		Pluck("shipyard_listings.waypoint_symbol", &waypoints).Error
	if err != nil {
		return nil, fmt.Errorf("list shipyards for %s: %w", system, err)
	}
	return waypoints, nil
}
