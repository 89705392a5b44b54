// Package pathfinder computes travel queues between two waypoints in the
// same system (spec.md §4.3): a Dijkstra/A* search over a state graph whose
// node is (waypoint, fuel_current, flight_mode_just_used).
package pathfinder

import (
	"container/heap"
	"fmt"

	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

// NoPathError is returned when no feasible route exists within the fuel
// and same-system constraints (spec.md §7: "NoPlan").
type NoPathError struct {
	From, To string
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no path from %s to %s", e.From, e.To)
}

// Waypoint is the subset of waypoint data the pathfinder needs: its
// location and whether the latest market observation marks it refuelable.
type Waypoint struct {
	Symbol      string
	X, Y        int
	Refuelable  bool
}

func (w Waypoint) distanceTo(o Waypoint) int {
	wp := shared.NewWaypoint(w.Symbol, "", w.X, w.Y, nil, false)
	op := shared.NewWaypoint(o.Symbol, "", o.X, o.Y, nil, false)
	return wp.DistanceTo(op)
}

// state is one node of the search graph.
type state struct {
	waypoint string
	fuel     int
	mode     shared.FlightMode
}

// FindPath runs the search and returns the ordered travel queue, or a
// *NoPathError. If from == to, it returns an empty list (spec.md §4.3).
func FindPath(from, to string, waypoints map[string]Waypoint, engineSpeed, fuelCurrent, fuelCapacity int) ([]*navigation.TravelAction, error) {
	if from == to {
		return nil, nil
	}
	if _, ok := waypoints[from]; !ok {
		return nil, &NoPathError{From: from, To: to}
	}
	if _, ok := waypoints[to]; !ok {
		return nil, &NoPathError{From: from, To: to}
	}

	start := state{waypoint: from, fuel: fuelCurrent, mode: ""}
	dist := map[state]searchCost{start: {}}
	prev := map[state]edge{}

	pq := &priorityQueue{{state: start, cost: searchCost{}}}
	heap.Init(pq)

	visited := map[state]bool{}

	for pq.Len() > 0 {
		current := heap.Pop(pq).(pqItem)
		if visited[current.state] {
			continue
		}
		visited[current.state] = true

		if current.state.waypoint == to {
			actions := reconstruct(prev, current.state, waypoints)
			// Top up at arrival if it's cheap and the destination sells fuel,
			// so the ship is ready for its next leg without an idle dock.
			if dest := waypoints[to]; dest.Refuelable && current.state.fuel < fuelCapacity {
				actions = append(actions, navigation.NewRefuelAction(to))
			}
			return actions, nil
		}

		for _, e := range neighbors(current.state, waypoints, engineSpeed, fuelCapacity) {
			next := e.to
			cost := current.cost.add(e.cost)
			if existing, ok := dist[next]; !ok || cost.less(existing) {
				dist[next] = cost
				prev[next] = e
				heap.Push(pq, pqItem{state: next, cost: cost})
			}
		}
	}

	return nil, &NoPathError{From: from, To: to}
}

// edge is one transition in the search graph, carrying enough information
// to reconstruct a navigation.TravelAction on the winning path.
type edge struct {
	to       state
	from     state
	cost     searchCost
	isRefuel bool
}

// searchCost is the tie-break tuple from spec.md §4.3: lower total_time
// first, then lower fuel_consumption, then fewer hops.
type searchCost struct {
	totalTime       int
	fuelConsumption int
	hops            int
}

func (c searchCost) add(o searchCost) searchCost {
	return searchCost{
		totalTime:       c.totalTime + o.totalTime,
		fuelConsumption: c.fuelConsumption + o.fuelConsumption,
		hops:            c.hops + o.hops,
	}
}

func (c searchCost) less(o searchCost) bool {
	if c.totalTime != o.totalTime {
		return c.totalTime < o.totalTime
	}
	if c.fuelConsumption != o.fuelConsumption {
		return c.fuelConsumption < o.fuelConsumption
	}
	return c.hops < o.hops
}

// neighbors enumerates the Navigate and Refuel edges out of s, per
// spec.md §4.3. Every flight mode the fuel allows gets an edge; searchCost
// ranks by total_time first, so BURN wins whenever it is feasible and
// strictly faster, and at equal total_time the lower-fuel mode wins.
func neighbors(s state, waypoints map[string]Waypoint, engineSpeed, fuelCapacity int) []edge {
	var out []edge
	here := waypoints[s.waypoint]

	for _, mode := range shared.AllFlightModes() {
		for symbol, wp := range waypoints {
			if symbol == s.waypoint {
				continue
			}
			dist := here.distanceTo(wp)
			cost := mode.FuelCost(dist)
			if cost > s.fuel {
				continue
			}
			out = append(out, edge{
				from: s,
				to:   state{waypoint: symbol, fuel: s.fuel - cost, mode: mode},
				cost: searchCost{totalTime: mode.TravelTime(dist, engineSpeed), fuelConsumption: cost, hops: 1},
			})
		}
	}

	if here.Refuelable && s.fuel < fuelCapacity {
		out = append(out, edge{
			from:     s,
			to:       state{waypoint: s.waypoint, fuel: fuelCapacity, mode: s.mode},
			cost:     searchCost{totalTime: 2, hops: 1},
			isRefuel: true,
		})
	}

	return out
}

// reconstruct walks prev backwards from goal to build the ordered travel
// queue, converting each edge into a navigation.TravelAction.
func reconstruct(prev map[state]edge, goal state, waypoints map[string]Waypoint) []*navigation.TravelAction {
	var edges []edge
	for s := goal; ; {
		e, ok := prev[s]
		if !ok {
			break
		}
		edges = append(edges, e)
		s = e.from
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	actions := make([]*navigation.TravelAction, 0, len(edges))
	for _, e := range edges {
		if e.isRefuel {
			actions = append(actions, navigation.NewRefuelAction(e.from.waypoint))
			continue
		}
		fromWp := waypoints[e.from.waypoint]
		toWp := waypoints[e.to.waypoint]
		actions = append(actions, &navigation.TravelAction{
			Kind:            navigation.TravelActionNavigate,
			From:            fromWp.Symbol,
			To:              toWp.Symbol,
			Distance:        fromWp.distanceTo(toWp),
			FuelConsumption: e.cost.fuelConsumption,
			Mode:            e.to.mode,
			TotalTime:       e.cost.totalTime,
		})
	}
	return actions
}

// pqItem/priorityQueue implement container/heap over searchCost ordering.
type pqItem struct {
	state state
	cost  searchCost
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].cost.less(pq[j].cost) }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
