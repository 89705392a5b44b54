package fleet

// TaskKind tags the variant a ShipTask carries (spec.md §4.5 Task generation).
type TaskKind string

const (
	TaskObserveWaypointDetails  TaskKind = "OBSERVE_WAYPOINT_DETAILS"
	TaskObserveAllWaypointsOnce TaskKind = "OBSERVE_ALL_WAYPOINTS_ONCE"
	TaskTrade                   TaskKind = "TRADE"
	TaskMineMaterialsAtWaypoint TaskKind = "MINE_MATERIALS_AT_WAYPOINT"
	TaskSurveyAsteroid          TaskKind = "SURVEY_ASTEROID"
)

// ShipTask is the highest-level intent assigned to a single ship. Only the
// fields relevant to Kind are populated, the same flat-struct convention
// as ledger.LedgerEntry and behavior.Event.
type ShipTask struct {
	Kind TaskKind

	// TaskObserveWaypointDetails
	Waypoint string

	// TaskObserveAllWaypointsOnce
	Waypoints []string

	// TaskTrade
	TicketID string

	// TaskMineMaterialsAtWaypoint, TaskSurveyAsteroid reuse Waypoint.
}

// ReplanDecisionKind tags the variant recompute_tasks_after_ship_finishing_
// behavior_tree produces (spec.md §4.5 Re-planning triggers).
type ReplanDecisionKind string

const (
	DecisionDismantleFleets                   ReplanDecisionKind = "DISMANTLE_FLEETS"
	DecisionRegisterPermanentObservation       ReplanDecisionKind = "REGISTER_WAYPOINT_FOR_PERMANENT_OBSERVATION"
	DecisionAssignNewTaskToShip                ReplanDecisionKind = "ASSIGN_NEW_TASK_TO_SHIP"
)

// ReplanDecision is the single outcome of one re-planning pass. Every
// re-planning trigger produces exactly one of these.
type ReplanDecision struct {
	Kind ReplanDecisionKind

	// DecisionDismantleFleets
	FleetIDs []string

	// DecisionRegisterPermanentObservation, DecisionAssignNewTaskToShip
	ShipSymbol string
	Waypoint   string
	Task       *ShipTask

	// DecisionAssignNewTaskToShip: human-readable reason the admiral chose
	// this task, surfaced in logs.
	Requirement string
}
