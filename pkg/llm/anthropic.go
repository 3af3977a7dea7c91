package llm

import (
	"context"
	"fmt"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// AnthropicClient is an optional tertiary text provider.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

var _ TextClient = (*AnthropicClient)(nil)

// AnthropicConfig holds configuration for creating an Anthropic client.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// NewAnthropicClient creates an Anthropic text client.
func NewAnthropicClient(cfg *AnthropicConfig, logger *zap.Logger) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	return &AnthropicClient{
		client: anthropic.NewClient(cfg.APIKey),
		model:  cfg.Model,
		logger: logger.Named("llm.anthropic"),
	}, nil
}

// Provider returns the provider name used in logs and chain diagnostics.
func (c *AnthropicClient) Provider() string {
	return "anthropic"
}

// Complete generates a message completion.
func (c *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	msgReq := anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(req.Prompt),
		},
	}
	if req.System != "" {
		msgReq.System = req.System
	}
	if req.Temperature > 0 {
		msgReq.Temperature = &req.Temperature
	}

	c.logger.Debug("anthropic request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(req.Prompt)))

	start := time.Now()

	resp, err := c.client.CreateMessages(ctx, msgReq)
	if err != nil {
		c.logger.Error("anthropic request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			text = *block.Text
			break
		}
	}
	if text == "" {
		return "", NewError(ErrorTypeShape, "no text block in response", false, nil)
	}

	c.logger.Info("anthropic request completed",
		zap.Int("response_len", len(text)),
		zap.Duration("elapsed", time.Since(start)))

	return text, nil
}
