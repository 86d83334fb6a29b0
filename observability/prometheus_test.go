package observability_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/scribeflow/scribe/observability"
)

func TestPromObserver_CountsByTypeAndLevel(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := observability.NewPromObserver(reg)
	if err != nil {
		t.Fatalf("NewPromObserver failed: %v", err)
	}

	ctx := context.Background()
	obs.OnEvent(ctx, observability.NewEvent("graph.node.start", observability.LevelInfo, "graph", nil))
	obs.OnEvent(ctx, observability.NewEvent("graph.node.start", observability.LevelInfo, "graph", nil))
	obs.OnEvent(ctx, observability.NewEvent("graph.node.error", observability.LevelError, "graph", nil))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	counts := map[string]float64{}
	for _, fam := range families {
		if fam.GetName() != "scribe_events_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			var typ, level string
			for _, l := range m.GetLabel() {
				switch l.GetName() {
				case "type":
					typ = l.GetValue()
				case "level":
					level = l.GetValue()
				}
			}
			counts[typ+"/"+level] = m.GetCounter().GetValue()
		}
	}

	if counts["graph.node.start/INFO"] != 2 {
		t.Errorf("graph.node.start INFO count = %v, want 2", counts["graph.node.start/INFO"])
	}
	if counts["graph.node.error/ERROR"] != 1 {
		t.Errorf("graph.node.error ERROR count = %v, want 1", counts["graph.node.error/ERROR"])
	}
}

func TestPromObserver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := observability.NewPromObserver(reg); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := observability.NewPromObserver(reg); err == nil {
		t.Error("second registration on same registry should fail")
	}
}
