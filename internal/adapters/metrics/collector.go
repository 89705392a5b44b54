// Package metrics exposes Prometheus collectors for the agent's HTTP
// client, fleet finances, and navigation activity. Unlike the teacher's
// metrics package, nothing here is a package-level global: spec.md §9's
// "one HTTP collaborator/ledger/admiral per agent process" redesign rules
// out a process-wide Registry/globalCollector singleton too, so every
// collector is a struct built by New and registered against an injected
// *prometheus.Registry, held by whichever wiring code constructed it.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "spacetrader"
	subsystem = "agent"
)

// Collector bundles every metric family this agent records. One instance
// lives for the lifetime of an agent, built once in bootstrap.New and
// threaded into the API client, treasurer, and runner coordinator as the
// narrow recorder interfaces each of them declares.
type Collector struct {
	API        *APICollector
	Financial  *FinancialCollector
	Navigation *NavigationCollector
	Fleet      *FleetCollector
}

// New builds and registers every collector against registry.
func New(registry *prometheus.Registry) (*Collector, error) {
	c := &Collector{
		API:        newAPICollector(),
		Financial:  newFinancialCollector(),
		Navigation: newNavigationCollector(),
		Fleet:      newFleetCollector(),
	}
	for _, group := range []interface{ collectors() []prometheus.Collector }{c.API, c.Financial, c.Navigation, c.Fleet} {
		for _, m := range group.collectors() {
			if err := registry.Register(m); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}
