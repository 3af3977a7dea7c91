package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/apperrors"
)

func TestChain_PrimarySucceeds(t *testing.T) {
	primary := NewMockClient("primary", `{"ok":true}`)
	secondary := NewMockClient("secondary", `{"ok":false}`)
	chain := NewChain(zap.NewNop(), primary, secondary)

	raw, provider, err := chain.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, raw)
	assert.Equal(t, "primary", provider)
	assert.Equal(t, 1, primary.CompleteCallCount())
	assert.Equal(t, 0, secondary.CompleteCallCount())
}

func TestChain_FallsThroughOnError(t *testing.T) {
	primary := NewFailingMockClient("primary", fmt.Errorf("HTTP 503 unavailable"))
	secondary := NewMockClient("secondary", "fallback result")
	chain := NewChain(zap.NewNop(), primary, secondary)

	raw, provider, err := chain.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "fallback result", raw)
	assert.Equal(t, "secondary", provider)
	assert.Equal(t, 1, primary.CompleteCallCount())
}

func TestChain_ValidationFailureCountsAsProviderFailure(t *testing.T) {
	primary := NewMockClient("primary", "not json at all")
	secondary := NewMockClient("secondary", `{"score":50}`)
	chain := NewChain(zap.NewNop(), primary, secondary)

	req := CompletionRequest{
		Prompt: "hi",
		Validate: func(raw string) error {
			if _, err := ExtractJSON(raw); err != nil {
				return err
			}
			return nil
		},
	}

	raw, provider, err := chain.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, `{"score":50}`, raw)
	assert.Equal(t, "secondary", provider)
}

func TestChain_AllExhausted(t *testing.T) {
	primary := NewFailingMockClient("primary", fmt.Errorf("timeout"))
	secondary := NewFailingMockClient("secondary", fmt.Errorf("HTTP 500"))
	chain := NewChain(zap.NewNop(), primary, secondary)

	_, _, err := chain.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAllProvidersExhausted))
}

func TestChain_NoProviders(t *testing.T) {
	chain := NewChain(zap.NewNop())

	_, _, err := chain.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, apperrors.ErrNoProviderConfigured)
}

func TestChain_ContextCanceled(t *testing.T) {
	primary := NewMockClient("primary", "result")
	chain := NewChain(zap.NewNop(), primary)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := chain.Complete(ctx, CompletionRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, primary.CompleteCallCount())
}

func TestChain_Providers(t *testing.T) {
	chain := NewChain(zap.NewNop(), NewMockClient("a", ""), NewMockClient("b", ""))
	assert.Equal(t, []string{"a", "b"}, chain.Providers())
}
