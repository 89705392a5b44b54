package treasurer

import (
	"context"

	"github.com/arcfleet/spacetrader-agent/internal/domain/ledger"
)

// LedgerArchiver persists a contiguous block of ledger entries. The
// treasurer awaits its Append call synchronously before returning from any
// mutating method (spec.md §4.6), so persisted and in-memory state never
// diverge at a point the caller can observe.
type LedgerArchiver interface {
	Append(ctx context.Context, entries []ledger.LedgerEntry) error
}

// IDGenerator issues unique ids for tickets and ledger entries. Injected so
// tests can supply deterministic ids.
type IDGenerator func() string

// FinancialMetrics is the narrow observability surface commit() drives.
// adapters/metrics.FinancialCollector satisfies it; nil is valid.
type FinancialMetrics interface {
	RecordLedgerEntry(fleetID, kind string, amount int)
}
