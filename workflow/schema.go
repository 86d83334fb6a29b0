// Package workflow wires the research/write coordination: a shared state
// schema, two generation-backed stages, and the router between them, all
// executed on the graph engine.
package workflow

import (
	"encoding/json"

	"github.com/scribeflow/scribe/graph"
	"github.com/scribeflow/scribe/protocol"
)

// Node and agent names. The current_agent channel carries agent names, with
// AgentDone marking the terminal hand-off.
const (
	NodeResearcher = "researcher"
	NodeWriter     = "writer"

	AgentResearcher = "researcher"
	AgentWriter     = "writer"
	AgentDone       = "done"
)

// State channels. messages is append-only conversation history; the other
// three are overwrite-if-present scalars.
const (
	ChannelMessages     = "messages"
	ChannelCurrentAgent = "current_agent"
	ChannelResearchData = "research_data"
	ChannelFinalOutput  = "final_output"
)

// DefaultTopic is used when a run starts without a topic message.
const DefaultTopic = "artificial intelligence"

// NewSchema declares the workflow's state container. Reducers and defaults
// are fixed here; stages can only influence state through these channels.
func NewSchema() (*graph.Schema, error) {
	return graph.NewSchema(map[string]graph.ChannelSpec{
		ChannelMessages: {
			Reducer: graph.AppendSlice[protocol.Message](),
			Default: func() any { return []protocol.Message{} },
			Decode: func(data []byte) (any, error) {
				var msgs []protocol.Message
				if err := json.Unmarshal(data, &msgs); err != nil {
					return nil, err
				}
				return msgs, nil
			},
		},
		ChannelCurrentAgent: {Reducer: graph.LastValue(), Default: func() any { return "" }},
		ChannelResearchData: {Reducer: graph.LastValue(), Default: func() any { return "" }},
		ChannelFinalOutput:  {Reducer: graph.LastValue(), Default: func() any { return "" }},
	})
}

// Messages returns the conversation history channel from a state snapshot.
func Messages(s graph.State) []protocol.Message {
	val, _ := s.Get(ChannelMessages)
	msgs, _ := val.([]protocol.Message)
	return msgs
}
