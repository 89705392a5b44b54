// Command spacetrader-agent runs one autonomous SpaceTraders fleet in a
// single process: no daemon, no socket, no multi-tenant player table —
// one config file names one agent, one database holds its ledger and
// world-state cache (spec.md §9 "Global state").
package main

import "github.com/arcfleet/spacetrader-agent/internal/adapters/cli"

func main() {
	cli.Execute()
}
