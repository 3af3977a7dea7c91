// Package llm provides text generation clients for the synthesis pipeline,
// with a provider fallback chain on top.
package llm

import "context"

// CompletionRequest is a single text completion call.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int

	// Validate, when set, is run against the raw completion before the
	// result is accepted. A validation error is treated as a provider
	// failure so the chain can fall through to the next provider.
	Validate func(raw string) error
}

// TextClient generates a text completion from a single provider.
type TextClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Provider() string
}
