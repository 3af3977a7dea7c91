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
)

// SpeechResult is a synthesized narration clip.
type SpeechResult struct {
	Audio []byte
	Mime  string
}

// SpeechSynthesizer turns narration text into audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (*SpeechResult, error)
}

// VoiceSettings tunes the delivery of the synthesized voice.
type VoiceSettings struct {
	Stability float64 `json:"stability"`
	Clarity   float64 `json:"similarity_boost"`
	Style     float64 `json:"style"`
}

// MeditativeVoiceSettings is the delivery tuned for calm reading narration.
var MeditativeVoiceSettings = VoiceSettings{
	Stability: 0.7,
	Clarity:   0.8,
	Style:     0.2,
}

// VoiceNatasha is the gentle meditation voice used for reading narration.
const VoiceNatasha = "Atp5cNFg1Wj5gyKD7HWV"

// ElevenLabsConfig holds configuration for the speech client.
type ElevenLabsConfig struct {
	APIKey        string
	VoiceID       string // defaults to VoiceNatasha
	Model         string // primary model id
	FallbackModel string // tried when the primary model is rejected
	BaseURL       string // override for tests
	Timeout       time.Duration
	Settings      *VoiceSettings
}

type elevenLabsClient struct {
	apiKey        string
	voiceID       string
	model         string
	fallbackModel string
	baseURL       string
	settings      VoiceSettings
	http          *http.Client
	logger        *zap.Logger
}

var _ SpeechSynthesizer = (*elevenLabsClient)(nil)

// NewElevenLabsClient creates a speech synthesizer backed by ElevenLabs.
func NewElevenLabsClient(cfg *ElevenLabsConfig, logger *zap.Logger) (SpeechSynthesizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	voiceID := cfg.VoiceID
	if voiceID == "" {
		voiceID = VoiceNatasha
	}
	model := cfg.Model
	if model == "" {
		model = "eleven_monolingual_v1"
	}
	fallbackModel := cfg.FallbackModel
	if fallbackModel == "" {
		fallbackModel = "eleven_multilingual_v2"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io/v1"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	settings := MeditativeVoiceSettings
	if cfg.Settings != nil {
		settings = *cfg.Settings
	}

	return &elevenLabsClient{
		apiKey:        cfg.APIKey,
		voiceID:       voiceID,
		model:         model,
		fallbackModel: fallbackModel,
		baseURL:       baseURL,
		settings:      settings,
		http:          &http.Client{Timeout: timeout},
		logger:        logger.Named("media.elevenlabs"),
	}, nil
}

type speechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// Synthesize renders narration audio. The primary model is tried first; if
// the API rejects it (some accounts lack access to specific models) the
// fallback model is tried once.
func (c *elevenLabsClient) Synthesize(ctx context.Context, text string) (*SpeechResult, error) {
	result, err := c.synthesizeWithModel(ctx, text, c.model)
	if err == nil {
		return result, nil
	}
	if c.fallbackModel == "" || c.fallbackModel == c.model {
		return nil, err
	}

	c.logger.Warn("primary speech model failed, trying fallback",
		zap.String("model", c.model),
		zap.String("fallback", c.fallbackModel),
		zap.Error(err))

	return c.synthesizeWithModel(ctx, text, c.fallbackModel)
}

func (c *elevenLabsClient) synthesizeWithModel(ctx context.Context, text, model string) (*SpeechResult, error) {
	body, err := json.Marshal(speechRequest{
		Text:          text,
		ModelID:       model,
		VoiceSettings: c.settings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal speech request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build speech request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", c.apiKey)

	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("speech API returned %d: %s", resp.StatusCode, string(data))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio body: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("speech API returned empty audio")
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "audio/mpeg"
	}

	c.logger.Info("narration synthesized",
		zap.String("model", model),
		zap.Int("bytes", len(audio)),
		zap.Duration("elapsed", time.Since(start)))

	return &SpeechResult{Audio: audio, Mime: mime}, nil
}
