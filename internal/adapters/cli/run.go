package cli

import (
	"github.com/spf13/cobra"

	"github.com/arcfleet/spacetrader-agent/internal/adapters/bootstrap"
)

// NewRunCommand creates the run command: boots the agent and blocks until
// an interrupt signal or an unrecoverable game reset cycle ends.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the fleet agent",
		Long: `Start the autonomous fleet loop: load configuration, connect to the
database, and run fact collection, planning, and ship fibers until
interrupted. Restarts automatically on a detected game reset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.RunUntilSignal(configPath)
		},
	}
	return cmd
}
