package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/arcfleet/spacetrader-agent/internal/application/admiral"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// ConstructionRepository implements FactStore.GetConstructionSite,
// persisting the jump gate build progress the admiral reads every
// planning pass. The materials list is stored as JSON since it is never
// filtered at the row level, only read back whole.
type ConstructionRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

func NewConstructionRepository(db *gorm.DB, clock shared.Clock) *ConstructionRepository {
	if clock == nil {
		clock = shared.RealClock{}
	}
	return &ConstructionRepository{db: db, clock: clock}
}

func (r *ConstructionRepository) UpsertConstructionSite(ctx context.Context, site *admiral.ConstructionSite) error {
	materials, err := json.Marshal(site.Needed)
	if err != nil {
		return fmt.Errorf("encode construction materials for %s: %w", site.Waypoint, err)
	}
	fulfilled, err := json.Marshal(site.Fulfilled)
	if err != nil {
		return fmt.Errorf("encode construction fulfillment for %s: %w", site.Waypoint, err)
	}
	combined := struct {
		Needed    json.RawMessage `json:"needed"`
		Fulfilled json.RawMessage `json:"fulfilled"`
	}{Needed: materials, Fulfilled: fulfilled}
	blob, err := json.Marshal(combined)
	if err != nil {
		return fmt.Errorf("encode construction site %s: %w", site.Waypoint, err)
	}
	model := &ConstructionSiteModel{
		Waypoint:      site.Waypoint,
		MaterialsJSON: string(blob),
		Complete:      site.Complete,
		LastUpdated:   r.clock.Now(),
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("save construction site %s: %w", site.Waypoint, err)
	}
	return nil
}

func (r *ConstructionRepository) GetConstructionSite(ctx context.Context, waypoint string) (*admiral.ConstructionSite, error) {
	var model ConstructionSiteModel
	err := r.db.WithContext(ctx).Where("waypoint_symbol = ?", waypoint).First(&model).Error
	if err == gorm.ErrRecordNotFound {
		return &admiral.ConstructionSite{Waypoint: waypoint, Needed: map[string]int{}, Fulfilled: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get construction site %s: %w", waypoint, err)
	}
	var combined struct {
		Needed    map[string]int `json:"needed"`
		Fulfilled map[string]int `json:"fulfilled"`
	}
	if err := json.Unmarshal([]byte(model.MaterialsJSON), &combined); err != nil {
		return nil, fmt.Errorf("decode construction site %s: %w", waypoint, err)
	}
	return &admiral.ConstructionSite{
		Waypoint:  model.Waypoint,
		Complete:  model.Complete,
		Needed:    combined.Needed,
		Fulfilled: combined.Fulfilled,
	}, nil
}
