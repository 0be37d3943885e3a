package domain

import "context"

// CompletionClient sends a prompt to a generative model and returns the raw text reply.
// Implementations return ErrEmptyCompletion (possibly wrapped) when the model produced nothing.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
