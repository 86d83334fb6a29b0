package graph_test

import (
	"context"
	"errors"
	"testing"

	"github.com/scribeflow/scribe/graph"
)

func TestMemoryCheckpointStore_RoundTrip(t *testing.T) {
	store := graph.NewMemoryCheckpointStore()
	state := graph.NewState(testSchema(t), nil)

	state, err := state.Apply(graph.Update{"status": "half-done"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if err := state.Checkpoint(store); err != nil {
		t.Fatalf("Checkpoint failed: %v", err)
	}

	loaded, err := store.Load(state.RunID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	status, _ := loaded.GetString("status")
	if status != "half-done" {
		t.Errorf("status = %q, want half-done", status)
	}

	ids, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != state.RunID {
		t.Errorf("List = %v, want [%s]", ids, state.RunID)
	}

	if err := store.Delete(state.RunID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(state.RunID); err == nil {
		t.Error("Load after Delete should fail")
	}
}

func TestGraph_ResumeAfterFailure(t *testing.T) {
	store := graph.NewMemoryCheckpointStore()

	cfg := graph.DefaultConfig("resumable")
	cfg.MaxIterations = 10
	cfg.Checkpoint.Interval = 1

	g, err := graph.NewWithDeps(cfg, testSchema(t), nil, store)
	if err != nil {
		t.Fatalf("NewWithDeps failed: %v", err)
	}

	failOnce := true
	mustAddNode(t, g, "first", newLogNode("first", nil))
	mustAddNode(t, g, "flaky", graph.NewFunctionNode(func(_ context.Context, _ graph.State) (graph.Update, error) {
		if failOnce {
			failOnce = false
			return nil, errors.New("transient outage")
		}
		return graph.Update{"log": []string{"flaky"}, "status": "recovered"}, nil
	}))
	mustDo(t, g.AddEdge("first", "flaky"))
	mustDo(t, g.AddEdge("flaky", graph.End))
	mustDo(t, g.SetEntryPoint("first"))

	_, err = g.Execute(context.Background(), g.NewState())
	if err == nil {
		t.Fatal("expected first execution to fail")
	}

	var execErr *graph.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *ExecutionError", err)
	}
	runID := execErr.State.RunID

	// The checkpoint from the successful first node must still exist.
	if _, err := store.Load(runID); err != nil {
		t.Fatalf("checkpoint missing after failure: %v", err)
	}

	final, err := g.Resume(context.Background(), runID)
	if err != nil {
		t.Fatalf("Resume failed: %v", err)
	}

	log := mustStrings(t, final, "log")
	if len(log) != 2 || log[0] != "first" || log[1] != "flaky" {
		t.Errorf("log = %v, want [first flaky]", log)
	}
	status, _ := final.GetString("status")
	if status != "recovered" {
		t.Errorf("status = %q, want recovered", status)
	}

	// Successful completion cleans up the checkpoint (Preserve=false).
	if _, err := store.Load(runID); err == nil {
		t.Error("checkpoint still present after successful completion")
	}
}

func TestGraph_Resume_RequiresCheckpointing(t *testing.T) {
	g := newTestGraph(t, 10)
	mustAddNode(t, g, "a", newLogNode("a", nil))
	mustDo(t, g.AddEdge("a", graph.End))
	mustDo(t, g.SetEntryPoint("a"))

	if _, err := g.Resume(context.Background(), "run-id"); err == nil {
		t.Error("Resume without checkpointing should fail")
	}
}

func TestCheckpointStoreRegistry(t *testing.T) {
	if _, err := graph.GetCheckpointStore("memory"); err != nil {
		t.Errorf("memory store not pre-registered: %v", err)
	}
	if _, err := graph.GetCheckpointStore("missing"); err == nil {
		t.Error("unknown store name should fail")
	}

	custom := graph.NewMemoryCheckpointStore()
	graph.RegisterCheckpointStore("custom-test", custom)
	got, err := graph.GetCheckpointStore("custom-test")
	if err != nil {
		t.Fatalf("GetCheckpointStore failed: %v", err)
	}
	if got != custom {
		t.Error("registry returned a different store")
	}
}
