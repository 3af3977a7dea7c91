package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestElevenLabs_Synthesize(t *testing.T) {
	var gotKey string
	var gotReq speechRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("xi-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		assert.Equal(t, "/text-to-speech/"+VoiceNatasha, r.URL.Path)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client, err := NewElevenLabsClient(&ElevenLabsConfig{
		APIKey:  "xi-key",
		BaseURL: server.URL,
	}, zap.NewNop())
	require.NoError(t, err)

	result, err := client.Synthesize(context.Background(), "The card you have drawn is Moon Spirit.")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), result.Audio)
	assert.Equal(t, "audio/mpeg", result.Mime)

	assert.Equal(t, "xi-key", gotKey)
	assert.Equal(t, "eleven_monolingual_v1", gotReq.ModelID)
	assert.Equal(t, MeditativeVoiceSettings, gotReq.VoiceSettings)
}

func TestElevenLabs_FallbackModel(t *testing.T) {
	var models []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req speechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		models = append(models, req.ModelID)

		if req.ModelID == "eleven_monolingual_v1" {
			http.Error(w, `{"detail":"model not available"}`, http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte("fallback-audio"))
	}))
	defer server.Close()

	client, err := NewElevenLabsClient(&ElevenLabsConfig{
		APIKey:  "xi-key",
		BaseURL: server.URL,
	}, zap.NewNop())
	require.NoError(t, err)

	result, err := client.Synthesize(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("fallback-audio"), result.Audio)
	assert.Equal(t, []string{"eleven_monolingual_v1", "eleven_multilingual_v2"}, models)
}

func TestElevenLabs_BothModelsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewElevenLabsClient(&ElevenLabsConfig{
		APIKey:  "bad-key",
		BaseURL: server.URL,
	}, zap.NewNop())
	require.NoError(t, err)

	_, err = client.Synthesize(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestElevenLabs_RequiresAPIKey(t *testing.T) {
	_, err := NewElevenLabsClient(&ElevenLabsConfig{}, zap.NewNop())
	assert.Error(t, err)
}

func TestElevenLabs_EmptyAudioIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewElevenLabsClient(&ElevenLabsConfig{
		APIKey:        "xi-key",
		BaseURL:       server.URL,
		FallbackModel: "eleven_monolingual_v1", // same as primary, no second try
	}, zap.NewNop())
	require.NoError(t, err)

	_, err = client.Synthesize(context.Background(), "hello")
	assert.Error(t, err)
}
