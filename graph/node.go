package graph

import "context"

// Node represents a computation step in a state graph.
//
// Nodes receive an immutable state snapshot, perform computation or agent
// calls, and return a partial Update describing what changed. The engine
// merges the update through the schema's reducers; nodes never write state
// directly.
type Node interface {
	// Execute computes a partial update from the current state.
	// Context enables cancellation and timeouts for long calls.
	Execute(ctx context.Context, state State) (Update, error)
}

// FunctionNode wraps a function as a Node. This is the most common Node
// implementation, enabling inline node definitions without custom types.
type FunctionNode struct {
	fn func(ctx context.Context, state State) (Update, error)
}

// NewFunctionNode creates a Node from a function.
//
// Example:
//
//	node := graph.NewFunctionNode(func(ctx context.Context, s graph.State) (graph.Update, error) {
//	    text, err := gen.Generate(ctx, prompt)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return graph.Update{"research_data": text}, nil
//	})
func NewFunctionNode(fn func(context.Context, State) (Update, error)) Node {
	return &FunctionNode{fn: fn}
}

// Execute runs the wrapped function with the given state.
func (n *FunctionNode) Execute(ctx context.Context, state State) (Update, error) {
	return n.fn(ctx, state)
}
