package graph

import "github.com/scribeflow/scribe/observability"

const (
	// State operations
	EventStateCreate observability.EventType = "state.create"
	EventStateMerge  observability.EventType = "state.merge"

	// Graph execution
	EventGraphStart    observability.EventType = "graph.start"
	EventGraphComplete observability.EventType = "graph.complete"
	EventNodeStart     observability.EventType = "node.start"
	EventNodeComplete  observability.EventType = "node.complete"
	EventRouteDecision observability.EventType = "route.decision"
	EventCycleDetected observability.EventType = "cycle.detected"

	// Checkpointing
	EventCheckpointSave   observability.EventType = "checkpoint.save"
	EventCheckpointLoad   observability.EventType = "checkpoint.load"
	EventCheckpointResume observability.EventType = "checkpoint.resume"
)
