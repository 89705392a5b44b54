package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/arcfleet/spacetrader-agent/internal/domain/ledger"
)

// LedgerRepository implements treasurer.LedgerArchiver: an append-only
// table of JSON-encoded LedgerEntry rows, grounded on the teacher's
// TransactionModel/transaction_repository.go (one row per financial
// event, metadata stored as JSON) adapted to the event-sourced replay
// model spec.md §4.6 requires — here the JSON payload IS the entry, not a
// denormalized projection of it, since FromLedger needs the exact values
// back to replay deterministically.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Append(ctx context.Context, entries []ledger.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	models := make([]LedgerEntryModel, len(entries))
	for i, e := range entries {
		encoded, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode ledger entry %s: %w", e.ID, err)
		}
		models[i] = LedgerEntryModel{ID: e.ID, Kind: string(e.Kind), Timestamp: e.Timestamp, PayloadJSON: string(encoded)}
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("append ledger entries: %w", err)
	}
	return nil
}

// LoadAll returns every ledger entry in append order, for reconstructing
// a ledger.State via ledger.FromLedger at startup.
func (r *LedgerRepository) LoadAll(ctx context.Context) ([]ledger.LedgerEntry, error) {
	var models []LedgerEntryModel
	if err := r.db.WithContext(ctx).Order("timestamp asc").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("load ledger entries: %w", err)
	}
	out := make([]ledger.LedgerEntry, len(models))
	for i, m := range models {
		var e ledger.LedgerEntry
		if err := json.Unmarshal([]byte(m.PayloadJSON), &e); err != nil {
			return nil, fmt.Errorf("decode ledger entry %s: %w", m.ID, err)
		}
		out[i] = e
	}
	return out, nil
}
