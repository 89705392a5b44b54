package metrics

import "github.com/prometheus/client_golang/prometheus"

// NavigationCollector records per-ship travel activity, grounded on the
// teacher's navigation_metrics.go, labeled by ship symbol instead of a
// numeric player id.
type NavigationCollector struct {
	segmentsCompleted *prometheus.CounterVec
	fuelPurchased     *prometheus.CounterVec
	fuelConsumed      *prometheus.CounterVec
	fuelEfficiency    *prometheus.HistogramVec
}

func newNavigationCollector() *NavigationCollector {
	return &NavigationCollector{
		segmentsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "route_segments_completed_total",
			Help: "Total route segments completed per ship",
		}, []string{"ship_symbol"}),

		fuelPurchased: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "fuel_purchased_units_total",
			Help: "Total units of fuel purchased per waypoint",
		}, []string{"ship_symbol", "waypoint"}),

		fuelConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "fuel_consumed_units_total",
			Help: "Total units of fuel consumed per flight mode",
		}, []string{"ship_symbol", "flight_mode"}),

		fuelEfficiency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "fuel_efficiency_ratio",
			Help:    "Distance traveled per fuel unit consumed",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 20.0},
		}, []string{"ship_symbol"}),
	}
}

func (c *NavigationCollector) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.segmentsCompleted, c.fuelPurchased, c.fuelConsumed, c.fuelEfficiency}
}

func (c *NavigationCollector) RecordSegmentCompletion(shipSymbol string, distance, fuelRequired int) {
	c.segmentsCompleted.WithLabelValues(shipSymbol).Inc()
	if fuelRequired > 0 {
		c.fuelEfficiency.WithLabelValues(shipSymbol).Observe(float64(distance) / float64(fuelRequired))
	}
}

func (c *NavigationCollector) RecordFuelPurchase(shipSymbol, waypoint string, units int) {
	c.fuelPurchased.WithLabelValues(shipSymbol, waypoint).Add(float64(units))
}

func (c *NavigationCollector) RecordFuelConsumption(shipSymbol, flightMode string, units int) {
	c.fuelConsumed.WithLabelValues(shipSymbol, flightMode).Add(float64(units))
}
