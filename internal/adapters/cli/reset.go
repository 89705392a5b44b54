package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcfleet/spacetrader-agent/internal/adapters/api"
	"github.com/arcfleet/spacetrader-agent/internal/adapters/persistence"
	"github.com/arcfleet/spacetrader-agent/internal/application/treasurer"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
	"github.com/arcfleet/spacetrader-agent/internal/infrastructure/config"
	"github.com/arcfleet/spacetrader-agent/internal/infrastructure/database"
)

// NewResetCommand creates the reset command: fetches the agent's
// authoritative credit balance from the game API and wipes every fleet
// budget, reseeding the treasury from it (spec.md §7's "only sanctioned
// recovery path for an InvariantViolation-class divergence"). Run this
// with the agent stopped — it appends directly to the ledger the running
// process would otherwise be replaying from.
func NewResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the treasurer from the agent's live credit balance",
		Long: `Fetch the agent's current credits from the SpaceTraders API and reset
the treasurer: every fleet budget is wiped and the treasury is reseeded
from that balance.

Run this only while the agent process is stopped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset()
		},
	}
	return cmd
}

func runReset() error {
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
	apiClient := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.Agent.Token,
		Clock:   shared.RealClock{},
	})

	ctx := context.Background()
	agentStatus, err := apiClient.GetAgent(ctx)
	if err != nil {
		return fmt.Errorf("fetch agent status: %w", err)
	}

	treas := treasurer.New(repo, shared.RealClock{}, nil, nil)
	if err := treas.ResetTreasurerDueToAgentCreditDiff(ctx, agentStatus.Credits); err != nil {
		return fmt.Errorf("reset treasurer: %w", err)
	}

	fmt.Printf("Treasurer reset. Treasury reseeded to %s credits.\n", formatCredits(agentStatus.Credits))
	return nil
}
