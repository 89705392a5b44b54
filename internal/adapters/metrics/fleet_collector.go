package metrics

import "github.com/prometheus/client_golang/prometheus"

// FleetCollector records ship counts and task assignment state, grounded
// on the shape of the teacher's container_metrics.go "running
// containers/status by type" gauges, adapted from per-player containers
// to per-fleet ships and admiral task kinds since this agent runs one
// goroutine-per-ship fiber (internal/application/runner) rather than the
// teacher's one-container-per-player-subsystem model.
type FleetCollector struct {
	shipsRunning  *prometheus.GaugeVec
	tasksByKind   *prometheus.GaugeVec
	replansTotal  *prometheus.CounterVec
	fiberFailures *prometheus.CounterVec
}

func newFleetCollector() *FleetCollector {
	return &FleetCollector{
		shipsRunning: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "ships_running_total",
			Help: "Number of ship fibers currently running",
		}, []string{"fleet_id"}),

		tasksByKind: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "assigned_tasks_total",
			Help: "Number of ships currently assigned each task kind",
		}, []string{"task_kind"}),

		replansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "replans_total",
			Help: "Total re-planning decisions by reason and kind",
		}, []string{"reason", "decision_kind"}),

		fiberFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "fiber_failures_total",
			Help: "Total ship fibers that ended with an error",
		}, []string{"ship_symbol"}),
	}
}

func (c *FleetCollector) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.shipsRunning, c.tasksByKind, c.replansTotal, c.fiberFailures}
}

func (c *FleetCollector) SetShipsRunning(fleetID string, count int) {
	c.shipsRunning.WithLabelValues(fleetID).Set(float64(count))
}

func (c *FleetCollector) SetTasksByKind(taskKind string, count int) {
	c.tasksByKind.WithLabelValues(taskKind).Set(float64(count))
}

func (c *FleetCollector) RecordReplan(reason, decisionKind string) {
	c.replansTotal.WithLabelValues(reason, decisionKind).Inc()
}

func (c *FleetCollector) RecordFiberFailure(shipSymbol string) {
	c.fiberFailures.WithLabelValues(shipSymbol).Inc()
}
