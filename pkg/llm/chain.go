package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/apperrors"
)

// Chain tries a sequence of text providers in order until one produces an
// accepted completion. A provider "fails" on transport error, on an empty
// result, or when the request's Validate hook rejects the output.
type Chain struct {
	clients []TextClient
	logger  *zap.Logger
}

// NewChain creates a provider chain. Order matters: the first client is the
// primary provider.
func NewChain(logger *zap.Logger, clients ...TextClient) *Chain {
	return &Chain{
		clients: clients,
		logger:  logger.Named("llm.chain"),
	}
}

// Providers returns the names of the configured providers in order.
func (c *Chain) Providers() []string {
	names := make([]string, len(c.clients))
	for i, cl := range c.clients {
		names[i] = cl.Provider()
	}
	return names
}

// Complete runs the request against each provider in order. Returns the
// first accepted completion together with the name of the provider that
// produced it.
func (c *Chain) Complete(ctx context.Context, req CompletionRequest) (string, string, error) {
	if len(c.clients) == 0 {
		return "", "", apperrors.ErrNoProviderConfigured
	}

	var lastErr error
	for _, client := range c.clients {
		if ctx.Err() != nil {
			return "", "", ctx.Err()
		}

		raw, err := client.Complete(ctx, req)
		if err != nil {
			c.logger.Warn("provider failed, trying next",
				zap.String("provider", client.Provider()),
				zap.String("error_type", string(GetErrorType(err))),
				zap.Error(err))
			lastErr = err
			continue
		}

		if req.Validate != nil {
			if err := req.Validate(raw); err != nil {
				c.logger.Warn("provider output rejected, trying next",
					zap.String("provider", client.Provider()),
					zap.Error(err))
				lastErr = NewError(ErrorTypeShape, "output validation failed", false, err)
				continue
			}
		}

		return raw, client.Provider(), nil
	}

	return "", "", fmt.Errorf("%w: last provider error: %w", apperrors.ErrAllProvidersExhausted, lastErr)
}
