package graph_test

import (
	"testing"

	"github.com/scribeflow/scribe/graph"
)

func TestNewSchema_Validation(t *testing.T) {
	tests := []struct {
		name     string
		channels map[string]graph.ChannelSpec
		wantErr  bool
	}{
		{
			name: "valid schema",
			channels: map[string]graph.ChannelSpec{
				"log": {Reducer: graph.AppendSlice[string]()},
			},
			wantErr: false,
		},
		{name: "empty schema", channels: nil, wantErr: true},
		{
			name: "missing reducer",
			channels: map[string]graph.ChannelSpec{
				"log": {},
			},
			wantErr: true,
		},
		{
			name: "empty channel name",
			channels: map[string]graph.ChannelSpec{
				"": {Reducer: graph.LastValue()},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := graph.NewSchema(tt.channels)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSchema error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppendSlice(t *testing.T) {
	reducer := graph.AppendSlice[string]()

	t.Run("concatenates slices", func(t *testing.T) {
		got := reducer([]string{"a", "b"}, []string{"c"})
		want := []string{"a", "b", "c"}

		gotSlice := got.([]string)
		if len(gotSlice) != len(want) {
			t.Fatalf("len = %d, want %d", len(gotSlice), len(want))
		}
		for i := range want {
			if gotSlice[i] != want[i] {
				t.Errorf("element %d = %q, want %q", i, gotSlice[i], want[i])
			}
		}
	})

	t.Run("accepts single element", func(t *testing.T) {
		got := reducer([]string{"a"}, "b").([]string)
		if len(got) != 2 || got[1] != "b" {
			t.Errorf("got %v, want [a b]", got)
		}
	})

	t.Run("nil incoming keeps previous", func(t *testing.T) {
		got := reducer([]string{"a"}, nil).([]string)
		if len(got) != 1 || got[0] != "a" {
			t.Errorf("got %v, want [a]", got)
		}
	})

	t.Run("never mutates previous slice", func(t *testing.T) {
		prev := make([]string, 1, 8)
		prev[0] = "a"

		reducer(prev, []string{"b"})
		reducer(prev, []string{"c"})

		if len(prev) != 1 || prev[0] != "a" {
			t.Errorf("previous slice mutated: %v", prev)
		}
	})
}

func TestLastValue(t *testing.T) {
	reducer := graph.LastValue()

	tests := []struct {
		name     string
		prev     any
		incoming any
		want     any
	}{
		{name: "overwrites previous", prev: "researcher", incoming: "writer", want: "writer"},
		{name: "nil keeps previous", prev: "writer", incoming: nil, want: "writer"},
		{name: "empty string keeps previous", prev: "writer", incoming: "", want: "writer"},
		{name: "writes over nil", prev: nil, incoming: "done", want: "done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reducer(tt.prev, tt.incoming); got != tt.want {
				t.Errorf("reducer(%v, %v) = %v, want %v", tt.prev, tt.incoming, got, tt.want)
			}
		})
	}
}
