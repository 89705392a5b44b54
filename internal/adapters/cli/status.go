package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arcfleet/spacetrader-agent/internal/adapters/persistence"
	"github.com/arcfleet/spacetrader-agent/internal/domain/ledger"
	"github.com/arcfleet/spacetrader-agent/internal/infrastructure/config"
	"github.com/arcfleet/spacetrader-agent/internal/infrastructure/database"
)

// NewStatusCommand creates the status command: a point-in-time snapshot
// of the fleet and treasury reconstructed from persisted state, read
// directly off the database the way the teacher's ledger/config commands
// do rather than through a running daemon (spec.md §9: single process,
// nothing to dial while it's down).
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print fleet and treasury status",
		Long: `Print a snapshot of known ships, fleet budgets, and the treasury
balance by replaying the persisted ledger — no running agent required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
	return cmd
}

func runStatus() error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer database.Close(db)

	repo := persistence.New(db, nil)
	ctx := context.Background()

	entries, err := repo.Ledger.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	state, err := ledger.FromLedger(entries)
	if err != nil {
		return fmt.Errorf("replay ledger: %w", err)
	}

	ships, err := repo.ListShips(ctx)
	if err != nil {
		return fmt.Errorf("list ships: %w", err)
	}

	contracts, err := repo.ListActiveContracts(ctx)
	if err != nil {
		return fmt.Errorf("list contracts: %w", err)
	}

	fmt.Printf("AGENT %s (%s)\n", cfg.Agent.Symbol, cfg.Agent.FactionSymbol)
	fmt.Println("─────────────────────────────────────────────")
	fmt.Printf("Treasury:        %s\n", formatCredits(state.Treasury))
	fmt.Printf("Total capital:   %s\n", formatCredits(state.TotalCapital()))
	fmt.Printf("Ships known:     %d\n", len(ships))
	fmt.Printf("Active contracts: %d\n", len(contracts))
	fmt.Println()

	if len(state.Fleets) == 0 {
		fmt.Println("No active fleets")
	} else {
		fmt.Println("FLEETS")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Fleet\tBudget\tCapital\tReserved\tAvailable")
		for id, f := range state.Fleets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", id,
				formatCredits(f.Budget), formatCredits(f.CurrentCapital),
				formatCredits(f.ReservedCapital), formatCredits(f.AvailableCapital()))
		}
		w.Flush()
	}

	if len(state.Tickets) > 0 {
		fmt.Printf("\nOpen tickets: %d\n", len(state.Tickets))
	}

	return nil
}
