package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient is the secondary text provider. It also serves
// OpenAI-compatible endpoints when a custom base URL is configured.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

var _ TextClient = (*OpenAIClient)(nil)

// OpenAIConfig holds configuration for creating an OpenAI client.
type OpenAIConfig struct {
	APIKey   string
	Model    string // e.g. "gpt-4o-mini"
	Endpoint string // optional, defaults to the public API
}

// NewOpenAIClient creates an OpenAI-compatible text client.
func NewOpenAIClient(cfg *OpenAIConfig, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger.Named("llm.openai"),
	}, nil
}

// Provider returns the provider name used in logs and chain diagnostics.
func (c *OpenAIClient) Provider() string {
	return "openai"
}

// Complete generates a chat completion.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
	}
	if req.System != "" {
		messages = append([]openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
		}, messages...)
	}

	c.logger.Debug("openai request",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(req.Prompt)))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		c.logger.Error("openai request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", NewError(ErrorTypeShape, "no choices in response", false, nil)
	}

	content := resp.Choices[0].Message.Content

	c.logger.Info("openai request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return content, nil
}
