package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// ProbeRepository implements FactStore.ListStationaryProbes — the set of
// permanent observation assignments the admiral's re-planning decisions
// produce (fleet.DecisionRegisterPermanentObservation).
type ProbeRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

func NewProbeRepository(db *gorm.DB, clock shared.Clock) *ProbeRepository {
	if clock == nil {
		clock = shared.RealClock{}
	}
	return &ProbeRepository{db: db, clock: clock}
}

func (r *ProbeRepository) RegisterProbe(ctx context.Context, waypoint, shipSymbol string) error {
	model := &StationaryProbeModel{Waypoint: waypoint, ShipSymbol: shipSymbol, AssignedAt: r.clock.Now()}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("register probe %s at %s: %w", shipSymbol, waypoint, err)
	}
	return nil
}

func (r *ProbeRepository) ListStationaryProbes(ctx context.Context) (map[string]string, error) {
	var models []StationaryProbeModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list stationary probes: %w", err)
	}
	out := make(map[string]string, len(models))
	for _, m := range models {
		out[m.Waypoint] = m.ShipSymbol
	}
	return out, nil
}
