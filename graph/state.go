package graph

import (
	"context"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/scribeflow/scribe/observability"
)

// State is an immutable snapshot of workflow state flowing through graph
// execution. Channel values live in Data, keyed by the schema's channel
// names. All operations return new State instances; nodes never mutate a
// snapshot in place.
//
// RunID, Node, and Timestamp provide execution provenance: which run this
// snapshot belongs to, the last node whose update was merged, and when.
type State struct {
	Data      map[string]any         `json:"data"`
	Observer  observability.Observer `json:"-"`
	RunID     string                 `json:"run_id"`
	Node      string                 `json:"node"`
	Timestamp time.Time              `json:"timestamp"`

	schema *Schema
}

// Update is the partial state a node returns: channel name to incoming
// value. Channels absent from an update keep their previous value. An empty
// update is an identity merge.
type Update map[string]any

// NewState creates a State with every schema channel seeded to its default.
//
// If observer is nil, NoOpObserver is used, keeping state operations safe to
// call without observability wiring.
func NewState(schema *Schema, observer observability.Observer) State {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	s := State{
		Data:      schema.defaults(),
		Observer:  observer,
		RunID:     uuid.New().String(),
		Timestamp: time.Now(),
		schema:    schema,
	}

	observer.OnEvent(context.Background(), observability.NewEvent(
		EventStateCreate, observability.LevelVerbose, "state",
		map[string]any{"channels": len(s.Data), "run_id": s.RunID},
	))

	return s
}

// Schema returns the schema this state was created from.
func (s State) Schema() *Schema {
	return s.schema
}

// Clone creates an independent copy of the State. The returned State has its
// own data map (shallow clone) but shares the observer and schema.
func (s State) Clone() State {
	return State{
		Data:      maps.Clone(s.Data),
		Observer:  s.Observer,
		RunID:     s.RunID,
		Node:      s.Node,
		Timestamp: s.Timestamp,
		schema:    s.schema,
	}
}

// Get retrieves a channel value. Returns the value and true if the channel
// exists, nil and false otherwise.
func (s State) Get(key string) (any, bool) {
	val, exists := s.Data[key]
	return val, exists
}

// GetString retrieves a channel value as a string. Returns "" and false when
// the channel is absent or holds a non-string value.
func (s State) GetString(key string) (string, bool) {
	val, exists := s.Data[key]
	if !exists {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// Apply merges a partial update into the state through each channel's
// reducer and returns the new snapshot. The original is not modified.
//
// Only channels named in the update are reduced; an empty update yields a
// snapshot identical to the original. Updates naming a channel the schema
// does not declare fail.
//
// Emits EventStateMerge through the observer.
func (s State) Apply(update Update) (State, error) {
	next := s.Clone()
	next.Timestamp = time.Now()

	for key, incoming := range update {
		spec, exists := s.schema.channels[key]
		if !exists {
			return s, &UnknownChannelError{Channel: key}
		}
		next.Data[key] = spec.Reducer(s.Data[key], incoming)
	}

	s.Observer.OnEvent(context.Background(), observability.NewEvent(
		EventStateMerge, observability.LevelVerbose, "state",
		map[string]any{"channels": len(update), "run_id": s.RunID},
	))

	return next, nil
}

// stamp records the node whose update was last merged. Called by the engine
// after each successful merge so checkpoints know where to resume.
func (s State) stamp(node string) State {
	next := s.Clone()
	next.Node = node
	next.Timestamp = time.Now()
	return next
}

// Checkpoint saves this State to the given CheckpointStore.
func (s State) Checkpoint(store CheckpointStore) error {
	return store.Save(s)
}
