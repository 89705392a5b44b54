package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// SupplyChainRepository implements FactStore.ListSupplyChainRoots: the set
// of raw goods the admiral has designated as worth sourcing from scratch
// (mining/gas extraction) rather than buying as another factory's output.
// Has no teacher analogue — the teacher's manufacturing pipeline always
// starts from a fixed, hardcoded root good — so the shape here is
// authored directly from admiral.Facts.SupplyChainRoots []string.
type SupplyChainRepository struct {
	db *gorm.DB
}

func NewSupplyChainRepository(db *gorm.DB) *SupplyChainRepository {
	return &SupplyChainRepository{db: db}
}

func (r *SupplyChainRepository) RegisterRoot(ctx context.Context, system, goodSymbol string) error {
	model := &SupplyChainRootModel{System: system, GoodSymbol: goodSymbol}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("register supply chain root %s/%s: %w", system, goodSymbol, err)
	}
	return nil
}

func (r *SupplyChainRepository) ListSupplyChainRoots(ctx context.Context, system string) ([]string, error) {
	var models []SupplyChainRootModel
	if err := r.db.WithContext(ctx).Where("system_symbol = ?", system).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list supply chain roots for %s: %w", system, err)
	}
	out := make([]string, len(models))
	for i, m := range models {
		out[i] = m.GoodSymbol
	}
	return out, nil
}
