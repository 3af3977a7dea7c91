package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/apperrors"
	"github.com/harmonyhq/harmony-engine/pkg/models"
	"github.com/harmonyhq/harmony-engine/pkg/services"
	"github.com/harmonyhq/harmony-engine/pkg/tarot"
)

// DrawCardRequest is the request body for drawing a card against a match.
type DrawCardRequest struct {
	CardName string `json:"card_name"`
}

// ReadingsHandler handles tarot reading endpoints.
type ReadingsHandler struct {
	readingService services.ReadingService
	logger         *zap.Logger
}

// NewReadingsHandler creates a new readings handler.
func NewReadingsHandler(readingService services.ReadingService, logger *zap.Logger) *ReadingsHandler {
	return &ReadingsHandler{readingService: readingService, logger: logger}
}

// RegisterRoutes registers the readings handler's routes on the given mux.
func (h *ReadingsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/cards", h.ListCards)
	mux.HandleFunc("POST /api/matches/{mid}/readings", h.Draw)
	mux.HandleFunc("GET /api/matches/{mid}/readings", h.ListByMatch)
	mux.HandleFunc("GET /api/readings/{rid}", h.Get)
	mux.HandleFunc("GET /api/readings/{rid}/audio", h.Audio)
}

// ListCards handles GET /api/cards
// Returns the static card deck in display order.
func (h *ReadingsHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSON(w, http.StatusOK, tarot.Deck); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Draw handles POST /api/matches/{mid}/readings
// Draws a card for a match and generates its reading. Drawing a card that
// was already drawn returns the stored reading.
func (h *ReadingsHandler) Draw(w http.ResponseWriter, r *http.Request) {
	matchID, ok := ParseMatchID(w, r, h.logger)
	if !ok {
		return
	}

	var req DrawCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	reading, err := h.readingService.GenerateReading(r.Context(), matchID, req.CardName)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCard) {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_card", "Unknown card name"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Match not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to generate reading",
			zap.String("match_id", matchID.String()),
			zap.String("card", req.CardName),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to generate reading"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, reading); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByMatch handles GET /api/matches/{mid}/readings
func (h *ReadingsHandler) ListByMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := ParseMatchID(w, r, h.logger)
	if !ok {
		return
	}

	readings, err := h.readingService.ListReadings(r.Context(), matchID)
	if err != nil {
		h.logger.Error("Failed to list readings",
			zap.String("match_id", matchID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to list readings"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if readings == nil {
		readings = []*models.Reading{}
	}

	if err := WriteJSON(w, http.StatusOK, readings); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/readings/{rid}
func (h *ReadingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	readingID, ok := ParseReadingID(w, r, h.logger)
	if !ok {
		return
	}

	reading, err := h.readingService.GetReading(r.Context(), readingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Reading not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get reading",
			zap.String("reading_id", readingID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to get reading"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, reading); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Audio handles GET /api/readings/{rid}/audio
// Streams the narration audio. Returns 202 while narration is still being
// synthesized so clients can retry.
func (h *ReadingsHandler) Audio(w http.ResponseWriter, r *http.Request) {
	readingID, ok := ParseReadingID(w, r, h.logger)
	if !ok {
		return
	}

	reading, err := h.readingService.GetAudio(r.Context(), readingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Reading not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get reading audio",
			zap.String("reading_id", readingID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to get reading audio"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if !reading.HasAudio() {
		if err := ErrorResponse(w, http.StatusAccepted, "audio_pending", "Narration is still being synthesized"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	w.Header().Set("Content-Type", reading.AudioMime)
	w.Header().Set("Content-Length", strconv.Itoa(len(reading.AudioData)))
	if _, err := w.Write(reading.AudioData); err != nil {
		h.logger.Error("Failed to write audio body", zap.Error(err))
	}
}
