package workflow

import "github.com/scribeflow/scribe/observability"

const (
	EventRunStart    observability.EventType = "workflow.run.start"
	EventRunComplete observability.EventType = "workflow.run.complete"
	EventRunError    observability.EventType = "workflow.run.error"
)
