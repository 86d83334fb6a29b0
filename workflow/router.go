package workflow

import "github.com/scribeflow/scribe/graph"

// RouteAfterResearch decides the transition after the research stage based
// on the current_agent channel. It is a pure function of state.
func RouteAfterResearch(s graph.State) graph.Decision {
	current, _ := s.GetString(ChannelCurrentAgent)

	switch current {
	case AgentWriter:
		return graph.Goto(NodeWriter)
	case AgentResearcher:
		// Unreachable in the standard wiring: the research stage sets
		// current_agent to the writer before this router runs.
		return graph.Goto(NodeResearcher)
	default:
		return graph.Halt()
	}
}
