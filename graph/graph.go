// Package graph implements a state-graph execution engine: nodes compute
// partial updates over a shared state container, a fixed schema of reducers
// merges each update, and routing between nodes happens through fixed edges
// or pure router functions returning tagged decisions.
package graph

import (
	"context"
	"fmt"
	"maps"

	"github.com/scribeflow/scribe/observability"
)

// Graph defines a workflow as a directed graph of nodes wired by fixed edges
// and routers.
//
// Example:
//
//	g, err := graph.New(graph.DefaultConfig("research-write"), schema)
//	g.AddNode("researcher", researchNode)
//	g.AddNode("writer", writerNode)
//	g.AddRouter("researcher", routeAfterResearch)
//	g.AddEdge("writer", graph.End)
//	g.SetEntryPoint("researcher")
//	final, err := g.Execute(ctx, g.NewState())
type Graph interface {
	// Name returns the graph identifier used in event metadata.
	Name() string

	// NewState creates an initial state seeded from the graph's schema.
	NewState() State

	// AddNode registers a computation step. Node names must be unique.
	AddNode(name string, node Node) error

	// AddEdge creates a fixed transition. The target may be End.
	AddEdge(from, to string) error

	// AddRouter attaches a conditional router evaluated after from runs.
	AddRouter(from string, router Router) error

	// SetEntryPoint defines the starting node for execution.
	SetEntryPoint(node string) error

	// Validate checks graph structure without executing it.
	Validate() error

	// Execute runs the graph from the entry point with the initial state.
	Execute(ctx context.Context, initialState State) (State, error)

	// Resume continues execution from a saved checkpoint.
	Resume(ctx context.Context, runID string) (State, error)
}

type stateGraph struct {
	name                string
	schema              *Schema
	nodes               map[string]Node
	edges               map[string]string
	routers             map[string]Router
	entryPoint          string
	maxIterations       int
	observer            observability.Observer
	checkpointStore     CheckpointStore
	checkpointInterval  int
	preserveCheckpoints bool
}

// New creates a graph from configuration and a state schema. The observer
// and checkpoint store are resolved by name through their registries.
func New(cfg Config, schema *Schema) (Graph, error) {
	observer, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}

	var checkpointStore CheckpointStore
	if cfg.Checkpoint.Interval > 0 {
		checkpointStore, err = GetCheckpointStore(cfg.Checkpoint.Store)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve checkpoint store: %w", err)
		}
	}

	return NewWithDeps(cfg, schema, observer, checkpointStore)
}

// NewWithDeps creates a graph with explicit dependencies, bypassing the
// registries. A nil observer falls back to NoOpObserver.
func NewWithDeps(cfg Config, schema *Schema, observer observability.Observer, checkpointStore CheckpointStore) (Graph, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema cannot be nil")
	}

	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	return &stateGraph{
		name:                cfg.Name,
		schema:              schema,
		nodes:               make(map[string]Node),
		edges:               make(map[string]string),
		routers:             make(map[string]Router),
		maxIterations:       cfg.MaxIterations,
		observer:            observer,
		checkpointStore:     checkpointStore,
		checkpointInterval:  cfg.Checkpoint.Interval,
		preserveCheckpoints: cfg.Checkpoint.Preserve,
	}, nil
}

// Name returns the graph identifier used in event metadata.
func (g *stateGraph) Name() string {
	return g.name
}

// NewState creates an initial state seeded from the graph's schema, wired to
// the graph's observer.
func (g *stateGraph) NewState() State {
	return NewState(g.schema, g.observer)
}

// AddNode registers a computation step in the graph. Adding a duplicate or
// reserved name returns an error.
func (g *stateGraph) AddNode(name string, node Node) error {
	if name == "" {
		return fmt.Errorf("node name cannot be empty")
	}

	if name == End {
		return fmt.Errorf("node name %s is reserved", End)
	}

	if node == nil {
		return fmt.Errorf("node cannot be nil")
	}

	if _, exists := g.nodes[name]; exists {
		return fmt.Errorf("node %s already exists", name)
	}

	g.nodes[name] = node
	return nil
}

// AddEdge creates a fixed transition from one node to another, or to End to
// terminate after the source node. Each node carries at most one route: a
// fixed edge and a router on the same node are rejected as ambiguous.
func (g *stateGraph) AddEdge(from, to string) error {
	if from == "" || to == "" {
		return fmt.Errorf("edge endpoints cannot be empty")
	}

	if _, exists := g.nodes[from]; !exists {
		return fmt.Errorf("from node %s does not exist", from)
	}

	if to != End {
		if _, exists := g.nodes[to]; !exists {
			return fmt.Errorf("to node %s does not exist", to)
		}
	}

	if _, exists := g.edges[from]; exists {
		return fmt.Errorf("node %s already has a fixed edge", from)
	}

	if _, exists := g.routers[from]; exists {
		return fmt.Errorf("node %s already has a router", from)
	}

	g.edges[from] = to
	return nil
}

// AddRouter attaches a conditional router evaluated after from completes.
// The router's decision picks the next node or halts execution.
func (g *stateGraph) AddRouter(from string, router Router) error {
	if from == "" {
		return fmt.Errorf("from node cannot be empty")
	}

	if router == nil {
		return fmt.Errorf("router cannot be nil")
	}

	if _, exists := g.nodes[from]; !exists {
		return fmt.Errorf("from node %s does not exist", from)
	}

	if _, exists := g.edges[from]; exists {
		return fmt.Errorf("node %s already has a fixed edge", from)
	}

	if _, exists := g.routers[from]; exists {
		return fmt.Errorf("node %s already has a router", from)
	}

	g.routers[from] = router
	return nil
}

// SetEntryPoint defines the starting node for execution. Only one entry
// point is allowed.
func (g *stateGraph) SetEntryPoint(node string) error {
	if node == "" {
		return fmt.Errorf("entry point cannot be empty")
	}

	if g.entryPoint != "" {
		return fmt.Errorf("entry point already set to %s", g.entryPoint)
	}

	if _, exists := g.nodes[node]; !exists {
		return fmt.Errorf("entry point node %s does not exist", node)
	}

	g.entryPoint = node
	return nil
}

// Validate checks graph structure for configuration errors: at least one
// node, an entry point that exists, and every node reachable for routing
// purposes having some outgoing route. Cycles are allowed; MaxIterations
// bounds them at execution time.
func (g *stateGraph) Validate() error {
	if len(g.nodes) == 0 {
		return fmt.Errorf("graph has no nodes")
	}

	if g.entryPoint == "" {
		return fmt.Errorf("entry point not set")
	}

	if _, exists := g.nodes[g.entryPoint]; !exists {
		return fmt.Errorf("entry point %s does not exist", g.entryPoint)
	}

	for name := range g.nodes {
		if _, hasEdge := g.edges[name]; hasEdge {
			continue
		}
		if _, hasRouter := g.routers[name]; hasRouter {
			continue
		}
		return fmt.Errorf("node %s has no outgoing route", name)
	}

	return nil
}

// Execute runs the graph from the entry point with the initial state.
//
// Execution is strictly sequential: one node at a time, and the merge of a
// node's update is fully applied before the next node observes state. A node
// failure aborts the run immediately; there is no retry and no recovery of
// the partial update. Errors surface as *ExecutionError.
func (g *stateGraph) Execute(ctx context.Context, initialState State) (State, error) {
	return g.execute(ctx, g.entryPoint, initialState)
}

// Resume continues graph execution from a saved checkpoint.
//
// The checkpoint identified by runID is loaded, the route out of the
// checkpointed node is evaluated against the restored state, and execution
// continues from there. Returns an error when checkpointing is disabled, the
// checkpoint is missing, or the checkpointed node's route halts (the run was
// already complete).
func (g *stateGraph) Resume(ctx context.Context, runID string) (State, error) {
	if g.checkpointStore == nil {
		return State{}, fmt.Errorf("checkpointing not enabled for this graph")
	}

	state, err := g.checkpointStore.Load(runID)
	if err != nil {
		return State{}, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	state.schema = g.schema
	if state.Observer == nil {
		state.Observer = g.observer
	}

	g.observer.OnEvent(ctx, observability.NewEvent(
		EventCheckpointLoad, observability.LevelInfo, g.name,
		map[string]any{"node": state.Node, "run_id": runID},
	))

	next, err := g.route(ctx, state, state.Node, 0)
	if err != nil {
		return State{}, fmt.Errorf("failed to find next node after checkpoint: %w", err)
	}
	if next == End {
		return State{}, fmt.Errorf("checkpoint %s is already at a terminal node", runID)
	}

	g.observer.OnEvent(ctx, observability.NewEvent(
		EventCheckpointResume, observability.LevelInfo, g.name,
		map[string]any{"checkpoint_node": state.Node, "resume_node": next, "run_id": runID},
	))

	return g.execute(ctx, next, state)
}

func (g *stateGraph) execute(ctx context.Context, startNode string, initialState State) (State, error) {
	if err := g.Validate(); err != nil {
		return initialState, fmt.Errorf("graph validation failed: %w", err)
	}

	g.observer.OnEvent(ctx, observability.NewEvent(
		EventGraphStart, observability.LevelInfo, g.name,
		map[string]any{"entry_point": startNode, "run_id": initialState.RunID},
	))

	current := startNode
	state := initialState
	iterations := 0
	visited := make(map[string]int)
	path := make([]string, 0, 8)

	for {
		if err := ctx.Err(); err != nil {
			return state, &ExecutionError{
				NodeName: current,
				State:    state,
				Path:     path,
				Err:      fmt.Errorf("execution cancelled: %w", err),
			}
		}

		iterations++
		if iterations > g.maxIterations {
			return state, &ExecutionError{
				NodeName: current,
				State:    state,
				Path:     path,
				Err:      fmt.Errorf("max iterations (%d) exceeded", g.maxIterations),
			}
		}

		visited[current]++
		path = append(path, current)

		if visited[current] > 1 {
			g.observer.OnEvent(ctx, observability.NewEvent(
				EventCycleDetected, observability.LevelWarning, g.name,
				map[string]any{"node": current, "visit_count": visited[current], "iteration": iterations},
			))
		}

		node, exists := g.nodes[current]
		if !exists {
			return state, &ExecutionError{
				NodeName: current,
				State:    state,
				Path:     path,
				Err:      fmt.Errorf("node %s not found", current),
			}
		}

		g.observer.OnEvent(ctx, observability.NewEvent(
			EventNodeStart, observability.LevelVerbose, g.name,
			map[string]any{"node": current, "iteration": iterations, "input_snapshot": maps.Clone(state.Data)},
		))

		update, err := node.Execute(ctx, state)

		g.observer.OnEvent(ctx, observability.NewEvent(
			EventNodeComplete, observability.LevelVerbose, g.name,
			map[string]any{"node": current, "iteration": iterations, "channels": len(update), "error": err != nil},
		))

		if err != nil {
			return state, &ExecutionError{
				NodeName: current,
				State:    state,
				Path:     path,
				Err:      fmt.Errorf("node execution failed: %w", err),
			}
		}

		merged, err := state.Apply(update)
		if err != nil {
			return state, &ExecutionError{
				NodeName: current,
				State:    state,
				Path:     path,
				Err:      fmt.Errorf("state merge failed: %w", err),
			}
		}

		state = merged.stamp(current)

		if g.checkpointInterval > 0 && iterations%g.checkpointInterval == 0 {
			if err := state.Checkpoint(g.checkpointStore); err != nil {
				return state, &ExecutionError{
					NodeName: current,
					State:    state,
					Path:     path,
					Err:      fmt.Errorf("checkpoint save failed: %w", err),
				}
			}

			g.observer.OnEvent(ctx, observability.NewEvent(
				EventCheckpointSave, observability.LevelInfo, g.name,
				map[string]any{"node": current, "run_id": state.RunID},
			))
		}

		next, err := g.route(ctx, state, current, iterations)
		if err != nil {
			return state, &ExecutionError{
				NodeName: current,
				State:    state,
				Path:     path,
				Err:      err,
			}
		}

		if next == End {
			g.observer.OnEvent(ctx, observability.NewEvent(
				EventGraphComplete, observability.LevelInfo, g.name,
				map[string]any{"last_node": current, "iterations": iterations, "path_length": len(path)},
			))

			if !g.preserveCheckpoints && g.checkpointInterval > 0 {
				g.checkpointStore.Delete(state.RunID)
			}

			return state, nil
		}

		current = next
	}
}

// route resolves the transition out of a node: the router wins when one is
// attached, otherwise the fixed edge. A halt decision maps to End.
func (g *stateGraph) route(ctx context.Context, state State, from string, iteration int) (string, error) {
	if router, exists := g.routers[from]; exists {
		decision := router(state)

		target, more := decision.Target()
		if !more {
			target = End
		} else if _, known := g.nodes[target]; !known {
			return "", fmt.Errorf("router at node %s chose unknown node %s", from, target)
		}

		g.observer.OnEvent(ctx, observability.NewEvent(
			EventRouteDecision, observability.LevelVerbose, g.name,
			map[string]any{"from": from, "to": target, "routed": true, "iteration": iteration},
		))

		return target, nil
	}

	if to, exists := g.edges[from]; exists {
		g.observer.OnEvent(ctx, observability.NewEvent(
			EventRouteDecision, observability.LevelVerbose, g.name,
			map[string]any{"from": from, "to": to, "routed": false, "iteration": iteration},
		))

		return to, nil
	}

	return "", fmt.Errorf("no route from node %s", from)
}
