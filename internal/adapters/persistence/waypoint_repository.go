package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// WaypointRepository implements the waypoint half of ObservationStore and
// FactStore, grounded on the teacher's GormWaypointRepository
// (internal/adapters/persistence/waypoint_repository.go): upsert-on-chart,
// list-by-system, JSON-as-text for the variable-length traits column.
type WaypointRepository struct {
	db *gorm.DB
}

func NewWaypointRepository(db *gorm.DB) *WaypointRepository {
	return &WaypointRepository{db: db}
}

func (r *WaypointRepository) UpsertWaypoint(ctx context.Context, wp *shared.Waypoint) error {
	model, err := waypointToModel(wp)
	if err != nil {
		return fmt.Errorf("encode waypoint %s: %w", wp.Symbol, err)
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("save waypoint %s: %w", wp.Symbol, err)
	}
	return nil
}

func (r *WaypointRepository) ListBySystem(ctx context.Context, system string) ([]*shared.Waypoint, error) {
	var models []WaypointModel
	if err := r.db.WithContext(ctx).Where("system_symbol = ?", system).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list waypoints for %s: %w", system, err)
	}
	out := make([]*shared.Waypoint, 0, len(models))
	for _, m := range models {
		wp, err := modelToWaypoint(&m)
		if err != nil {
			return nil, fmt.Errorf("decode waypoint %s: %w", m.Symbol, err)
		}
		out = append(out, wp)
	}
	return out, nil
}

func waypointToModel(wp *shared.Waypoint) (*WaypointModel, error) {
	traits, err := json.Marshal(wp.Traits)
	if err != nil {
		return nil, err
	}
	return &WaypointModel{
		Symbol:              wp.Symbol,
		System:              wp.System,
		Type:                string(wp.Type),
		X:                   wp.X,
		Y:                   wp.Y,
		TraitsJSON:          string(traits),
		IsUnderConstruction: wp.IsUnderConstruction,
	}, nil
}

func modelToWaypoint(m *WaypointModel) (*shared.Waypoint, error) {
	var traits []shared.Trait
	if m.TraitsJSON != "" {
		if err := json.Unmarshal([]byte(m.TraitsJSON), &traits); err != nil {
			return nil, err
		}
	}
	return shared.NewWaypoint(m.Symbol, shared.WaypointType(m.Type), m.X, m.Y, traits, m.IsUnderConstruction), nil
}
