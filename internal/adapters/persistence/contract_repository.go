package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/arcfleet/spacetrader-agent/internal/domain/contract"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// ContractRepository implements FactStore.ListActiveContracts, grounded on
// the teacher's contract_repository.go (one row per contract, terms
// stored as JSON since deliveries are a variable-length list the core
// only ever reads back whole).
type ContractRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

func NewContractRepository(db *gorm.DB, clock shared.Clock) *ContractRepository {
	if clock == nil {
		clock = shared.RealClock{}
	}
	return &ContractRepository{db: db, clock: clock}
}

func (r *ContractRepository) UpsertContract(ctx context.Context, c *contract.Contract) error {
	terms, err := json.Marshal(c.Terms)
	if err != nil {
		return fmt.Errorf("encode terms for contract %s: %w", c.ID, err)
	}
	model := &ContractModel{
		ID: c.ID, FactionSymbol: c.FactionSymbol, TermsJSON: string(terms),
		Accepted: c.Accepted, Fulfilled: c.Fulfilled, LastUpdated: r.clock.Now(),
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("save contract %s: %w", c.ID, err)
	}
	return nil
}

func (r *ContractRepository) ListActiveContracts(ctx context.Context) ([]*contract.Contract, error) {
	return r.listWhere(ctx, "accepted = ? AND fulfilled = ?", true, false)
}

// ListPendingContracts returns contracts offered but not yet accepted — the
// set AcceptContract picks from.
func (r *ContractRepository) ListPendingContracts(ctx context.Context) ([]*contract.Contract, error) {
	return r.listWhere(ctx, "accepted = ?", false)
}

// FindContract loads a single contract by id.
func (r *ContractRepository) FindContract(ctx context.Context, id string) (*contract.Contract, error) {
	var m ContractModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("find contract %s: %w", id, err)
	}
	return hydrateContract(m, r.clock)
}

func (r *ContractRepository) listWhere(ctx context.Context, query string, args ...any) ([]*contract.Contract, error) {
	var models []ContractModel
	if err := r.db.WithContext(ctx).Where(query, args...).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	out := make([]*contract.Contract, 0, len(models))
	for _, m := range models {
		c, err := hydrateContract(m, r.clock)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func hydrateContract(m ContractModel, clock shared.Clock) (*contract.Contract, error) {
	var terms contract.Terms
	if err := json.Unmarshal([]byte(m.TermsJSON), &terms); err != nil {
		return nil, fmt.Errorf("decode contract %s: %w", m.ID, err)
	}
	c, err := contract.New(m.ID, m.FactionSymbol, terms, clock)
	if err != nil {
		return nil, fmt.Errorf("reconstruct contract %s: %w", m.ID, err)
	}
	c.Accepted = m.Accepted
	c.Fulfilled = m.Fulfilled
	return c, nil
}
