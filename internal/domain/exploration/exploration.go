// Package exploration computes visiting orders for a command ship's
// initial sweep of a system (spec.md §4.4): filter to known points of
// interest, pick a start, then improve with 2-opt.
package exploration

import "math"

// Point is a named 2-D location; exploration only needs coordinates, not
// the full shared.Waypoint shape, so this package stays decoupled from it.
type Point struct {
	Symbol string
	X, Y   int
}

func (p Point) distanceTo(o Point) float64 {
	dx := float64(o.X - p.X)
	dy := float64(o.Y - p.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// GenerateExplorationRoute implements spec.md §4.4's four steps: filter
// pointsOfInterest to those present in allWaypoints, choose a starting
// location, rotate the list to begin there, then improve with 2-opt.
func GenerateExplorationRoute(pointsOfInterest []Point, allWaypoints map[string]Point, start Point) []Point {
	filtered := filterKnown(pointsOfInterest, allWaypoints)
	if len(filtered) == 0 {
		return nil
	}

	startIdx := chooseStartIndex(filtered, start)
	rotated := rotate(filtered, startIdx)

	return twoOpt(rotated)
}

func filterKnown(points []Point, known map[string]Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if _, ok := known[p.Symbol]; ok {
			out = append(out, p)
		}
	}
	return out
}

// chooseStartIndex picks start if present among filtered; else the nearest
// point to start; else index 0.
func chooseStartIndex(filtered []Point, start Point) int {
	for i, p := range filtered {
		if p.Symbol == start.Symbol {
			return i
		}
	}

	best := 0
	bestDist := math.Inf(1)
	for i, p := range filtered {
		d := start.distanceTo(p)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func rotate(points []Point, start int) []Point {
	out := make([]Point, len(points))
	for i := range points {
		out[i] = points[(start+i)%len(points)]
	}
	return out
}

// twoOpt improves an open path via repeated first-improvement 2-opt swaps:
// swap any pair (i,j) whenever d(a,b)+d(c,d) > d(a,c)+d(b,d), restarting
// the sweep on first improvement, terminating when a full sweep finds none
// (spec.md §4.4). Index 0 — the chosen start — is never swapped away from
// the front, so the route still begins where the caller asked.
func twoOpt(points []Point) []Point {
	n := len(points)
	if n < 4 {
		return points
	}
	tour := append([]Point(nil), points...)

	for {
		improved := false
		for i := 1; i < n-2 && !improved; i++ {
			for j := i + 1; j < n-1 && !improved; j++ {
				a, b := tour[i-1], tour[i]
				c, d := tour[j], tour[j+1]
				if a.distanceTo(b)+c.distanceTo(d) > a.distanceTo(c)+b.distanceTo(d) {
					reverse(tour, i, j)
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}

	return tour
}

func reverse(points []Point, i, j int) {
	for i < j {
		points[i], points[j] = points[j], points[i]
		i++
		j--
	}
}
