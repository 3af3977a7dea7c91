package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient is the primary text provider.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

var _ TextClient = (*GeminiClient)(nil)

// GeminiConfig holds configuration for creating a Gemini client.
type GeminiConfig struct {
	APIKey string
	Model  string // e.g. "gemini-2.0-flash"
}

// NewGeminiClient creates a Gemini text client.
func NewGeminiClient(ctx context.Context, cfg *GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  cfg.Model,
		logger: logger.Named("llm.gemini"),
	}, nil
}

// Provider returns the provider name used in logs and chain diagnostics.
func (c *GeminiClient) Provider() string {
	return "gemini"
}

// Complete generates a completion. The system message is prepended because
// the Gemini API carries system guidance via config rather than a message role.
func (c *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: req.Prompt}},
		Role:  "user",
	}}

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(req.Temperature)
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	c.logger.Debug("gemini request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(req.Prompt)))

	start := time.Now()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		c.logger.Error("gemini request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	text := resp.Text()
	if text == "" {
		return "", NewError(ErrorTypeShape, "empty response from model", false, nil)
	}

	c.logger.Info("gemini request completed",
		zap.Int("response_len", len(text)),
		zap.Duration("elapsed", time.Since(start)))

	return text, nil
}
