// Package agent provides the text-generation capability behind workflow
// stages: a Generator interface and OpenAI-compatible HTTP clients.
package agent

import (
	"context"

	"github.com/scribeflow/scribe/protocol"
)

// Generator produces text from a prompt message sequence. It is the single
// capability stages depend on; model name, temperature, and other provider
// options are opaque configuration the caller never interprets.
type Generator interface {
	// Generate returns the model's completion for the given messages.
	// Blocking; honors ctx cancellation and the configured timeout.
	Generate(ctx context.Context, messages []protocol.Message) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface. Useful for
// tests and custom backends.
type GeneratorFunc func(ctx context.Context, messages []protocol.Message) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, messages []protocol.Message) (string, error) {
	return f(ctx, messages)
}
