package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arcfleet/spacetrader-agent/internal/adapters/persistence"
	"github.com/arcfleet/spacetrader-agent/internal/infrastructure/config"
	"github.com/arcfleet/spacetrader-agent/internal/infrastructure/database"
)

// NewLedgerCommand creates the ledger command: prints the most recent
// entries from the append-only ledger, grounded on the teacher's
// cli/ledger.go list subcommand (minus its player-scoping and report
// subcommands, which have no analogue for a single-agent ledger).
func NewLedgerCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show recent ledger entries",
		Long: `List the most recent entries appended to the financial ledger,
newest first.

Example:
  spacetrader-agent ledger --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerList(limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries to show")

	return cmd
}

func runLedgerList(limit int) error {
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
	entries, err := repo.Ledger.LoadAll(context.Background())
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	if len(entries) == 0 {
		fmt.Println("No ledger entries found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Timestamp\tKind\tFleet\tAmount")
	for _, e := range entries {
		amount := e.Amount
		if e.Credits != 0 {
			amount = e.Credits
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Kind, e.FleetID, formatCredits(amount))
	}
	w.Flush()

	return nil
}
