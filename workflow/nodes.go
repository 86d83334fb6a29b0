package workflow

import (
	"context"
	"fmt"

	"github.com/scribeflow/scribe/agent"
	"github.com/scribeflow/scribe/graph"
	"github.com/scribeflow/scribe/protocol"
)

const researcherSystemPrompt = `You are a research assistant. Gather the key facts on the requested topic and present them as concise, self-contained notes. Respond with the notes only.`

const writerSystemPrompt = `You are a technical writer. Turn the provided research notes into a clear, well-structured summary for a general audience. Respond with the summary only.`

// NewResearchNode creates the research stage. It reads the topic from the
// last conversation message (falling back to DefaultTopic), asks the
// generator for research notes, and hands off to the writer.
func NewResearchNode(gen agent.Generator) graph.Node {
	return graph.NewFunctionNode(func(ctx context.Context, s graph.State) (graph.Update, error) {
		topic := DefaultTopic
		if last, ok := protocol.LastContent(Messages(s)); ok && last != "" {
			topic = last
		}

		prompt := []protocol.Message{
			protocol.NewMessage(protocol.RoleSystem, researcherSystemPrompt),
			protocol.NewMessage(protocol.RoleUser, fmt.Sprintf("Research this topic: %s", topic)),
		}

		notes, err := gen.Generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("research stage: %w", err)
		}

		return graph.Update{
			ChannelResearchData: notes,
			ChannelCurrentAgent: AgentWriter,
			ChannelMessages: []protocol.Message{
				protocol.NewMessage(protocol.RoleAssistant, notes),
			},
		}, nil
	})
}

// NewWriterNode creates the writing stage. It reads the research notes,
// asks the generator for a final summary, and marks the run done.
func NewWriterNode(gen agent.Generator) graph.Node {
	return graph.NewFunctionNode(func(ctx context.Context, s graph.State) (graph.Update, error) {
		notes, _ := s.GetString(ChannelResearchData)

		prompt := []protocol.Message{
			protocol.NewMessage(protocol.RoleSystem, writerSystemPrompt),
			protocol.NewMessage(protocol.RoleUser, fmt.Sprintf("Write a summary from these research notes:\n\n%s", notes)),
		}

		summary, err := gen.Generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("writer stage: %w", err)
		}

		return graph.Update{
			ChannelFinalOutput:  summary,
			ChannelCurrentAgent: AgentDone,
			ChannelMessages: []protocol.Message{
				protocol.NewMessage(protocol.RoleAssistant, summary),
			},
		}, nil
	})
}
