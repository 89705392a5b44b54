package admiral_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfleet/spacetrader-agent/internal/application/admiral"
	"github.com/arcfleet/spacetrader-agent/internal/domain/fleet"
	"github.com/arcfleet/spacetrader-agent/internal/domain/navigation"
	"github.com/arcfleet/spacetrader-agent/internal/domain/shared"
)

func newTestShip(symbol string) *navigation.Ship {
	return &navigation.Ship{Symbol: symbol, Role: "COMMAND"}
}

func TestAdmiral_StartsInInitialExplorationPhase(t *testing.T) {
	adm := admiral.New(nil, nil)
	assert.Equal(t, fleet.PhaseInitialExploration, adm.Phase())
}

func TestAdmiral_RegisterAndListShips(t *testing.T) {
	adm := admiral.New(nil, nil)
	adm.RegisterShip(newTestShip("SHIP-1"))
	adm.RegisterShip(newTestShip("SHIP-2"))

	ships := adm.Ships()
	assert.Len(t, ships, 2)
}

func TestAdmiral_AssignToFleet_AddsShipToFleetRoster(t *testing.T) {
	adm := admiral.New(nil, nil)
	f, err := fleet.NewFleet("alpha", "TRADER", 10000)
	require.NoError(t, err)
	adm.RegisterFleet(f)

	adm.AssignToFleet("SHIP-1", "alpha")

	id, ok := adm.FleetOf("SHIP-1")
	require.True(t, ok)
	assert.Equal(t, "alpha", id)
	assert.Contains(t, f.Ships, "SHIP-1")
}

func TestAdmiral_AdvancePhase_StaysInExplorationUntilEveryShipPastSweepTask(t *testing.T) {
	adm := admiral.New(nil, nil)
	adm.RegisterShip(newTestShip("SHIP-1"))

	phase := adm.AdvancePhase(false)
	assert.Equal(t, fleet.PhaseInitialExploration, phase, "no ship has a task yet")
}

func TestAdmiral_AdvancePhase_NeverRegresses(t *testing.T) {
	adm := admiral.New(nil, nil)
	// No ships at all means explorationComplete vacuously holds.
	phase := adm.AdvancePhase(false)
	assert.Equal(t, fleet.PhaseConstructJumpGate, phase)

	phase = adm.AdvancePhase(false)
	assert.Equal(t, fleet.PhaseConstructJumpGate, phase, "must not regress while waiting on jump gate")

	phase = adm.AdvancePhase(true)
	assert.Equal(t, fleet.PhaseTradeProfitably, phase)

	phase = adm.AdvancePhase(false)
	assert.Equal(t, fleet.PhaseTradeProfitably, phase, "phase must never regress once reached")
}

func TestFleet_AddShip_IgnoresDuplicates(t *testing.T) {
	f, err := fleet.NewFleet("alpha", "TRADER", 1000)
	require.NoError(t, err)

	f.AddShip("SHIP-1")
	f.AddShip("SHIP-1")

	assert.Equal(t, []string{"SHIP-1"}, f.Ships)
}

func TestFleet_RemoveShip(t *testing.T) {
	f, err := fleet.NewFleet("alpha", "TRADER", 1000)
	require.NoError(t, err)
	f.AddShip("SHIP-1")
	f.AddShip("SHIP-2")

	f.RemoveShip("SHIP-1")

	assert.Equal(t, []string{"SHIP-2"}, f.Ships)
}

func TestNewFleet_RejectsEmptyIDOrNegativeBudget(t *testing.T) {
	_, err := fleet.NewFleet("", "TRADER", 100)
	assert.Error(t, err)

	_, err = fleet.NewFleet("alpha", "TRADER", -1)
	assert.Error(t, err)
}

func TestAdmiral_GenerateTasks_InitialExploration_SweepsEveryShip(t *testing.T) {
	adm := admiral.New(nil, nil)
	facts := &admiral.Facts{
		Ships: []*navigation.Ship{newTestShip("SHIP-1"), newTestShip("SHIP-2")},
		Waypoints: []*shared.Waypoint{
			shared.NewWaypoint("X1-AA-B2", "PLANET", 0, 0, nil, false),
			shared.NewWaypoint("X1-AA-A1", "PLANET", 1, 1, nil, false),
		},
	}

	tasks := adm.GenerateTasks(facts)

	require.Len(t, tasks, 2)
	for _, symbol := range []string{"SHIP-1", "SHIP-2"} {
		task, ok := tasks[symbol]
		require.True(t, ok)
		assert.Equal(t, fleet.TaskObserveAllWaypointsOnce, task.Kind)
		assert.Equal(t, []string{"X1-AA-A1", "X1-AA-B2"}, task.Waypoints, "waypoints must be sorted")
	}
}

func TestAdmiral_GenerateTasks_InitialExploration_SkipsStationaryProbes(t *testing.T) {
	adm := admiral.New(nil, nil)
	facts := &admiral.Facts{
		Ships:            []*navigation.Ship{newTestShip("SHIP-1"), newTestShip("PROBE-1")},
		Waypoints:        []*shared.Waypoint{shared.NewWaypoint("X1-AA-B2", "PLANET", 0, 0, nil, false)},
		StationaryProbes: map[string]string{"X1-AA-B2": "PROBE-1"},
	}

	tasks := adm.GenerateTasks(facts)

	require.Len(t, tasks, 1)
	_, ok := tasks["PROBE-1"]
	assert.False(t, ok, "a ship already committed as a stationary probe keeps its existing task")
	_, ok = tasks["SHIP-1"]
	assert.True(t, ok)
}

func TestAdmiral_GenerateTasks_ConstructJumpGate_OnlyAssignsUpToSupplyChainRootCount(t *testing.T) {
	adm := admiral.New(nil, nil)
	adm.AdvancePhase(false) // InitialExploration -> ConstructJumpGate (no ships registered yet)
	require.Equal(t, fleet.PhaseConstructJumpGate, adm.Phase())

	facts := &admiral.Facts{
		Ships:            []*navigation.Ship{newTestShip("SHIP-1"), newTestShip("SHIP-2"), newTestShip("SHIP-3")},
		SupplyChainRoots: []string{"X1-AA-B2"},
	}

	tasks := adm.GenerateTasks(facts)

	require.Len(t, tasks, 1)
	task, ok := tasks["SHIP-1"]
	require.True(t, ok, "only ships within the supply chain root count get trade tasks this pass")
	assert.Equal(t, fleet.TaskTrade, task.Kind)
}

func TestAdmiral_GenerateTasks_TradeProfitably_AssignsTradeToEveryNonProbeShip(t *testing.T) {
	adm := admiral.New(nil, nil)
	adm.AdvancePhase(false)
	adm.AdvancePhase(true)
	require.Equal(t, fleet.PhaseTradeProfitably, adm.Phase())

	facts := &admiral.Facts{
		Ships: []*navigation.Ship{newTestShip("SHIP-1"), newTestShip("SHIP-2")},
	}

	tasks := adm.GenerateTasks(facts)

	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, fleet.TaskTrade, task.Kind)
	}
}

func TestAdmiral_Recompute_RegistersPermanentObservation_ForProbeAtUncoveredMarket(t *testing.T) {
	adm := admiral.New(nil, nil)
	probe := newTestShip("PROBE-1")
	probe.Role = "PROBE"
	probe.Location = shared.NewWaypoint("X1-AA-B2", "PLANET", 0, 0, []shared.Trait{shared.TraitMarketplace}, false)

	facts := &admiral.Facts{Ships: []*navigation.Ship{probe}}

	decision := adm.Recompute("PROBE-1", admiral.ReplanBehaviorTreeCompleted, facts)

	require.Equal(t, fleet.DecisionRegisterPermanentObservation, decision.Kind)
	assert.Equal(t, "PROBE-1", decision.ShipSymbol)
	assert.Equal(t, "X1-AA-B2", decision.Waypoint)

	_, hasTask := adm.TaskFor("PROBE-1")
	assert.False(t, hasTask, "a ship converted to a permanent probe loses its prior task")
}

func TestAdmiral_Recompute_AssignsNewTaskToShip_WhenNoProbeCandidate(t *testing.T) {
	adm := admiral.New(nil, nil)
	ship := newTestShip("SHIP-1")

	facts := &admiral.Facts{Ships: []*navigation.Ship{ship}}

	decision := adm.Recompute("SHIP-1", admiral.ReplanBehaviorTreeCompleted, facts)

	require.Equal(t, fleet.DecisionAssignNewTaskToShip, decision.Kind)
	assert.Equal(t, "SHIP-1", decision.ShipSymbol)
	require.NotNil(t, decision.Task)
	assert.Equal(t, fleet.TaskTrade, decision.Task.Kind)
	assert.Equal(t, string(admiral.ReplanBehaviorTreeCompleted), decision.Requirement)

	task, ok := adm.TaskFor("SHIP-1")
	require.True(t, ok)
	assert.Equal(t, fleet.TaskTrade, task.Kind)
}

func TestAdmiral_Recompute_AssignsTradeEvenWithNoMatchingShipRecord(t *testing.T) {
	// nextTaskFor's switch covers all three fleet.Phase values and always
	// returns a task, so DecisionDismantleFleets never fires while the
	// admiral sits in one of them — confirmed here with an empty facts
	// snapshot and an unregistered fleet, the emptiest input that could
	// plausibly starve a ship of work.
	adm := admiral.New(nil, nil)
	f, err := fleet.NewFleet("alpha", "TRADER", 1000)
	require.NoError(t, err)
	adm.RegisterFleet(f)
	adm.AssignToFleet("SHIP-1", "alpha")

	decision := adm.Recompute("SHIP-1", admiral.ReplanBehaviorTreeCompleted, &admiral.Facts{})

	require.Equal(t, fleet.DecisionAssignNewTaskToShip, decision.Kind)
	require.NotNil(t, decision.Task)
	assert.Equal(t, fleet.TaskTrade, decision.Task.Kind)
}

func TestAdmiral_Recompute_NewShipArrived_AssignsFromShoppingList(t *testing.T) {
	adm := admiral.New(nil, nil)
	probeShip := &navigation.Ship{Symbol: "PROBE-2", Role: "PROBE", Frame: "FRAME_PROBE", Location: &shared.Waypoint{Symbol: "X1-AA-A1"}}
	adm.RegisterShip(probeShip)

	facts := &admiral.Facts{Ships: []*navigation.Ship{probeShip}}

	decision := adm.Recompute("PROBE-2", admiral.ReplanNewShipArrived, facts)

	require.Equal(t, fleet.DecisionAssignNewTaskToShip, decision.Kind)
	assert.Equal(t, "PROBE-2", decision.ShipSymbol)
	require.NotNil(t, decision.Task)
	assert.Equal(t, fleet.TaskObserveWaypointDetails, decision.Task.Kind)
	assert.Contains(t, decision.Requirement, "shopping list role PROBE")
}

func TestAdmiral_Recompute_NewShipArrived_FallsBackWhenShoppingListStepExhausted(t *testing.T) {
	adm := admiral.New(nil, nil)
	first := &navigation.Ship{Symbol: "PROBE-A", Role: "PROBE", Frame: "FRAME_PROBE"}
	second := &navigation.Ship{Symbol: "PROBE-B", Role: "PROBE", Frame: "FRAME_PROBE"}
	adm.RegisterShip(first)
	adm.RegisterShip(second)

	factsFor := func(s *navigation.Ship) *admiral.Facts {
		return &admiral.Facts{Ships: []*navigation.Ship{s}}
	}

	first.Location = &shared.Waypoint{Symbol: "X1-AA-A1"}
	decision := adm.Recompute("PROBE-A", admiral.ReplanNewShipArrived, factsFor(first))
	require.Equal(t, fleet.DecisionAssignNewTaskToShip, decision.Kind)
	assert.Contains(t, decision.Requirement, "shopping list role PROBE", "default shopping list only wants one probe")

	// DefaultShoppingList's single PROBE step is now exhausted, so the
	// second probe falls through to the ordinary nextTaskFor path instead.
	decision = adm.Recompute("PROBE-B", admiral.ReplanNewShipArrived, factsFor(second))
	require.Equal(t, fleet.DecisionAssignNewTaskToShip, decision.Kind)
	assert.Equal(t, string(admiral.ReplanNewShipArrived), decision.Requirement)
}
