package domain

import "context"

// GenerationOptions carries the per-call tuning knobs forwarded to the
// upstream model.
type GenerationOptions struct {
	Temperature float64
	MaxTokens   int
}

// TextGenerator defines the interface (port) for a single text-completion
// call against a hosted language model. Implementations validate the
// response shape and return a GENERATION_FAILED DomainError for transport
// failures or structurally unrecognized responses; retry policy lives in
// the service layer, not here.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, opts GenerationOptions) (string, error)
}
