// Package cli wires spf13/cobra commands around the agent process: run
// starts the fleet loop, reset/status/ledger inspect and repair a stopped
// agent's persisted state directly against the database, with no daemon
// or socket in between (spec.md §9: one process per agent, nothing else
// to dial).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// NewRootCommand creates the root command for the agent CLI.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spacetrader-agent",
		Short: "Autonomous SpaceTraders fleet agent",
		Long: `spacetrader-agent runs one autonomous fleet for a single SpaceTraders
agent: fact collection, fleet planning, ship fibers, and a persisted
financial ledger all in one process.

Examples:
  spacetrader-agent run
  spacetrader-agent status
  spacetrader-agent ledger --limit 20
  spacetrader-agent reset`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: search ./config.yaml, ./configs, /etc/spacetrader-agent)")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewResetCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
