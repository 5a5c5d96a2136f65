package ai

import "context"

// Request carries one completion call to a text-generation provider.
type Request struct {
	System      string
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider sends a completion request to a text-generation backend and
// returns the raw completion text.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}
