package workflow

import (
	"context"
	"fmt"

	"github.com/scribeflow/scribe/agent"
	"github.com/scribeflow/scribe/graph"
	"github.com/scribeflow/scribe/observability"
	"github.com/scribeflow/scribe/protocol"
)

// Workflow is a ready-to-run research/write coordination: graph built and
// validated once, reusable across runs.
type Workflow struct {
	config   Config
	graph    graph.Graph
	observer observability.Observer
}

// Option customizes workflow construction.
type Option func(*options)

type options struct {
	generator       agent.Generator
	observer        observability.Observer
	checkpointStore graph.CheckpointStore
}

// WithGenerator injects a Generator, bypassing agent.New and its credential
// check. Used by tests and embedders with their own provider wiring.
func WithGenerator(gen agent.Generator) Option {
	return func(o *options) {
		o.generator = gen
	}
}

// WithObserver injects an observer, bypassing registry resolution of
// Config.Graph.Observer.
func WithObserver(obs observability.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithCheckpointStore injects a checkpoint store, bypassing registry
// resolution of Config.Graph.Checkpoint.Store.
func WithCheckpointStore(store graph.CheckpointStore) Option {
	return func(o *options) {
		o.checkpointStore = store
	}
}

// New builds the workflow: resolves the generator (the credential check
// happens here, before any graph exists), declares the state schema, and
// wires researcher -> router -> writer -> End.
func New(cfg Config, opts ...Option) (*Workflow, error) {
	merged := DefaultConfig()
	merged.Merge(&cfg)
	cfg = merged

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	gen := o.generator
	if gen == nil {
		var err error
		gen, err = agent.New(cfg.Agent)
		if err != nil {
			return nil, fmt.Errorf("failed to create generator: %w", err)
		}
	}

	observer := o.observer
	if observer == nil {
		var err error
		observer, err = observability.GetObserver(cfg.Graph.Observer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer: %w", err)
		}
	}

	store := o.checkpointStore
	if store == nil && cfg.Graph.Checkpoint.Interval > 0 {
		var err error
		store, err = graph.GetCheckpointStore(cfg.Graph.Checkpoint.Store)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve checkpoint store: %w", err)
		}
	}

	schema, err := NewSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build state schema: %w", err)
	}

	g, err := graph.NewWithDeps(cfg.Graph, schema, observer, store)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph: %w", err)
	}

	if err := g.AddNode(NodeResearcher, NewResearchNode(gen)); err != nil {
		return nil, err
	}
	if err := g.AddNode(NodeWriter, NewWriterNode(gen)); err != nil {
		return nil, err
	}
	if err := g.AddRouter(NodeResearcher, RouteAfterResearch); err != nil {
		return nil, err
	}
	if err := g.AddEdge(NodeWriter, graph.End); err != nil {
		return nil, err
	}
	if err := g.SetEntryPoint(NodeResearcher); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("graph validation failed: %w", err)
	}

	return &Workflow{
		config:   cfg,
		graph:    g,
		observer: observer,
	}, nil
}

// Result is the outcome of a completed run.
type Result struct {
	RunID    string
	Topic    string
	Research string
	Summary  string
	Messages []protocol.Message
}

// Run executes the workflow for one topic. An empty topic falls back to the
// configured one. The initial state carries the topic as a single user
// message and names the researcher as current agent.
func (w *Workflow) Run(ctx context.Context, topic string) (*Result, error) {
	if topic == "" {
		topic = w.config.Topic
	}

	state, err := w.graph.NewState().Apply(graph.Update{
		ChannelMessages:     protocol.InitMessages(protocol.RoleUser, topic),
		ChannelCurrentAgent: AgentResearcher,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed state: %w", err)
	}

	w.observer.OnEvent(ctx, observability.NewEvent(
		EventRunStart, observability.LevelInfo, "workflow.Run",
		map[string]any{"topic": topic, "run_id": state.RunID},
	))

	final, err := w.graph.Execute(ctx, state)
	if err != nil {
		w.observer.OnEvent(ctx, observability.NewEvent(
			EventRunError, observability.LevelError, "workflow.Run",
			map[string]any{"run_id": state.RunID, "error": err.Error()},
		))
		return nil, fmt.Errorf("workflow run failed: %w", err)
	}

	research, _ := final.GetString(ChannelResearchData)
	summary, _ := final.GetString(ChannelFinalOutput)

	w.observer.OnEvent(ctx, observability.NewEvent(
		EventRunComplete, observability.LevelInfo, "workflow.Run",
		map[string]any{"run_id": final.RunID, "messages": len(Messages(final))},
	))

	return &Result{
		RunID:    final.RunID,
		Topic:    topic,
		Research: research,
		Summary:  summary,
		Messages: Messages(final),
	}, nil
}

// Resume continues a checkpointed run and returns its result.
func (w *Workflow) Resume(ctx context.Context, runID string) (*Result, error) {
	final, err := w.graph.Resume(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("workflow resume failed: %w", err)
	}

	research, _ := final.GetString(ChannelResearchData)
	summary, _ := final.GetString(ChannelFinalOutput)

	return &Result{
		RunID:    final.RunID,
		Research: research,
		Summary:  summary,
		Messages: Messages(final),
	}, nil
}
