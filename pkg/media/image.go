// Package media wraps the external image and speech generation APIs.
// Neither provider ships a Go SDK, so both clients are thin HTTP wrappers.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/tarot"
)

// ImageGenerator produces a card illustration for a reading. Implementations
// return an empty URL without error when generation is unavailable; callers
// fall back to the card's static asset.
type ImageGenerator interface {
	GenerateCardImage(ctx context.Context, cardName string, seed int32) (string, error)
}

// FalConfig holds configuration for the fal.ai image client.
type FalConfig struct {
	APIKey  string
	Model   string        // e.g. "fal-ai/flux/schnell"
	BaseURL string        // override for tests, defaults to https://fal.run
	Timeout time.Duration // per-request budget, image generation is best effort
}

// falClient calls the fal.ai synchronous inference endpoint.
type falClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

var _ ImageGenerator = (*falClient)(nil)

// NewFalClient creates an image generator backed by fal.ai. An empty API key
// yields a client that always reports generation unavailable.
func NewFalClient(cfg *FalConfig, logger *zap.Logger) ImageGenerator {
	model := cfg.Model
	if model == "" {
		model = "fal-ai/flux/schnell"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://fal.run"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &falClient{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Named("media.fal"),
	}
}

type falRequest struct {
	Prompt string `json:"prompt"`
	Seed   int32  `json:"seed"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type falResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Image struct {
		URL string `json:"url"`
	} `json:"image"`
}

// GenerateCardImage renders the card's prompt at a fixed 512x768 portrait
// size. The seed makes regeneration for the same reading reproducible.
// Failures are logged and reported as "no image" rather than errors because
// the reading flow treats generated art as optional.
func (c *falClient) GenerateCardImage(ctx context.Context, cardName string, seed int32) (string, error) {
	if c.apiKey == "" {
		return "", nil
	}

	spec := tarot.PromptFor(cardName)

	body, err := json.Marshal(falRequest{
		Prompt: spec.Prompt,
		Seed:   seed,
		Width:  512,
		Height: 768,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal fal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build fal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+c.apiKey)

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("image generation failed",
			zap.String("card", cardName),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("image generation rejected",
			zap.String("card", cardName),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data))
		return "", nil
	}

	var parsed falResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Warn("image response unreadable", zap.Error(err))
		return "", nil
	}

	imageURL := ""
	if len(parsed.Images) > 0 && parsed.Images[0].URL != "" {
		imageURL = parsed.Images[0].URL
	} else if parsed.Image.URL != "" {
		imageURL = parsed.Image.URL
	}

	if imageURL == "" {
		c.logger.Warn("image response carried no image", zap.String("card", cardName))
		return "", nil
	}

	c.logger.Info("card image generated",
		zap.String("card", cardName),
		zap.Int32("seed", seed),
		zap.Duration("elapsed", time.Since(start)))

	return imageURL, nil
}
