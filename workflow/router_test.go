package workflow_test

import (
	"testing"

	"github.com/scribeflow/scribe/graph"
	"github.com/scribeflow/scribe/workflow"
)

func routerState(t *testing.T, currentAgent string) graph.State {
	t.Helper()

	schema, err := workflow.NewSchema()
	if err != nil {
		t.Fatalf("NewSchema failed: %v", err)
	}

	state, err := graph.NewState(schema, nil).Apply(graph.Update{
		workflow.ChannelCurrentAgent: currentAgent,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	return state
}

func TestRouteAfterResearch(t *testing.T) {
	tests := []struct {
		name         string
		currentAgent string
		wantTarget   string
		wantHalt     bool
	}{
		{name: "writer hand-off", currentAgent: workflow.AgentWriter, wantTarget: workflow.NodeWriter},
		// The researcher branch never fires in the wired graph (the
		// research stage always hands off to the writer first) but the
		// routing table still declares it.
		{name: "researcher loops back", currentAgent: workflow.AgentResearcher, wantTarget: workflow.NodeResearcher},
		{name: "done halts", currentAgent: workflow.AgentDone, wantHalt: true},
		{name: "unset halts", currentAgent: "", wantHalt: true},
		{name: "unknown agent halts", currentAgent: "editor", wantHalt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := workflow.RouteAfterResearch(routerState(t, tt.currentAgent))

			if decision.Done() != tt.wantHalt {
				t.Fatalf("Done() = %v, want %v", decision.Done(), tt.wantHalt)
			}
			if tt.wantHalt {
				return
			}

			target, ok := decision.Target()
			if !ok || target != tt.wantTarget {
				t.Errorf("Target() = %q, %v, want %q", target, ok, tt.wantTarget)
			}
		})
	}
}
