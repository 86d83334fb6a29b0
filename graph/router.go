package graph

// End is the terminal target for fixed edges. An edge pointing at End stops
// execution after its source node completes.
const End = "__end__"

// Decision is the tagged result of a Router: either a transition to a named
// node or a halt. Using a closed type instead of bare strings keeps routing
// outcomes explicit; the engine rejects any target it does not know.
type Decision struct {
	target string
	halt   bool
}

// Goto returns a Decision transitioning to the named node. Goto(End) is
// equivalent to Halt().
func Goto(node string) Decision {
	if node == End {
		return Halt()
	}
	return Decision{target: node}
}

// Halt returns a Decision that stops execution with the current state as the
// final result.
func Halt() Decision {
	return Decision{halt: true}
}

// Target returns the destination node and true for a transition decision,
// and "" and false for a halt.
func (d Decision) Target() (string, bool) {
	if d.halt {
		return "", false
	}
	return d.target, true
}

// Done reports whether this decision halts execution.
func (d Decision) Done() bool {
	return d.halt
}

// Router chooses the next transition after a node completes. Routers are
// pure functions of state: no side effects, no state writes.
type Router func(state State) Decision
