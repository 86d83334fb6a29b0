package graph

import "fmt"

// ExecutionError captures rich context when graph execution fails.
//
// Fields:
//   - NodeName: which node failed
//   - State: state snapshot at failure (the last fully merged snapshot)
//   - Path: execution path leading to the failure
//   - Err: underlying error from the node or the engine
type ExecutionError struct {
	NodeName string
	State    State
	Path     []string
	Err      error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution failed at node %s: %v", e.NodeName, e.Err)
}

// Unwrap enables error unwrapping for errors.Is and errors.As.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// UnknownChannelError reports an update naming a channel the schema does not
// declare.
type UnknownChannelError struct {
	Channel string
}

func (e *UnknownChannelError) Error() string {
	return fmt.Sprintf("unknown state channel: %s", e.Channel)
}
