package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/apperrors"
	"github.com/harmonyhq/harmony-engine/pkg/models"
	"github.com/harmonyhq/harmony-engine/pkg/tarot"
)

func newReadingsMux(svc *mockReadingService) *http.ServeMux {
	mux := http.NewServeMux()
	NewReadingsHandler(svc, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestListCards(t *testing.T) {
	mux := newReadingsMux(&mockReadingService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cards", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var cards []tarot.Card
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	assert.Len(t, cards, len(tarot.Deck))
	assert.Equal(t, "Cow Spirit", cards[0].Name)
}

func TestReadingsDraw(t *testing.T) {
	matchID := uuid.New()
	svc := &mockReadingService{
		GenerateReadingFunc: func(ctx context.Context, mid uuid.UUID, cardName string) (*models.Reading, error) {
			assert.Equal(t, matchID, mid)
			assert.Equal(t, "Horse Spirit", cardName)
			return &models.Reading{ID: uuid.New(), MatchID: mid, CardName: cardName, Interpretation: "Momentum favors you."}, nil
		},
	}
	mux := newReadingsMux(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/matches/"+matchID.String()+"/readings",
		strings.NewReader(`{"card_name": "Horse Spirit"}`)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var reading models.Reading
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reading))
	assert.Equal(t, "Momentum favors you.", reading.Interpretation)
}

func TestReadingsDraw_InvalidCard(t *testing.T) {
	svc := &mockReadingService{
		GenerateReadingFunc: func(ctx context.Context, mid uuid.UUID, cardName string) (*models.Reading, error) {
			return nil, apperrors.ErrInvalidCard
		},
	}
	mux := newReadingsMux(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/matches/"+uuid.NewString()+"/readings",
		strings.NewReader(`{"card_name": "Dragon Spirit"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_card", resp["error"])
}

func TestReadingsDraw_MatchNotFound(t *testing.T) {
	svc := &mockReadingService{
		GenerateReadingFunc: func(ctx context.Context, mid uuid.UUID, cardName string) (*models.Reading, error) {
			return nil, apperrors.ErrNotFound
		},
	}
	mux := newReadingsMux(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/matches/"+uuid.NewString()+"/readings",
		strings.NewReader(`{"card_name": "Horse Spirit"}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReadingsGet(t *testing.T) {
	readingID := uuid.New()
	svc := &mockReadingService{
		GetReadingFunc: func(ctx context.Context, id uuid.UUID) (*models.Reading, error) {
			return &models.Reading{ID: id, CardName: "Sun Spirit"}, nil
		},
	}
	mux := newReadingsMux(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings/"+readingID.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestReadingsListByMatch_EmptyArray(t *testing.T) {
	svc := &mockReadingService{
		ListReadingsFunc: func(ctx context.Context, matchID uuid.UUID) ([]*models.Reading, error) {
			return nil, nil
		},
	}
	mux := newReadingsMux(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/matches/"+uuid.NewString()+"/readings", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestReadingsAudio_PendingReturnsAccepted(t *testing.T) {
	svc := &mockReadingService{
		GetAudioFunc: func(ctx context.Context, id uuid.UUID) (*models.Reading, error) {
			return &models.Reading{ID: id}, nil
		},
	}
	mux := newReadingsMux(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings/"+uuid.NewString()+"/audio", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestReadingsAudio_StreamsAudio(t *testing.T) {
	svc := &mockReadingService{
		GetAudioFunc: func(ctx context.Context, id uuid.UUID) (*models.Reading, error) {
			return &models.Reading{ID: id, AudioData: []byte("mp3-bytes"), AudioMime: "audio/mpeg"}, nil
		},
	}
	mux := newReadingsMux(svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/readings/"+uuid.NewString()+"/audio", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "mp3-bytes", rec.Body.String())
}
