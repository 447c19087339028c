package llm

import (
	"context"
	"errors"
)

// Client abstracts completion providers for resume tailoring.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no provider credentials are available.
var ErrNotConfigured = errors.New("LLM client not configured")

// PlaceholderClient stands in when no provider is wired; every call fails
// with ErrNotConfigured.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
