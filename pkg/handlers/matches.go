package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/apperrors"
	"github.com/harmonyhq/harmony-engine/pkg/models"
	"github.com/harmonyhq/harmony-engine/pkg/services"
)

// CreateMatchRequest is the request body for creating a match.
type CreateMatchRequest struct {
	SubjectAID string `json:"subject_a_id"`
	SubjectBID string `json:"subject_b_id"`
	Kind       string `json:"kind"`
	// Mode selects synchronous or background synthesis. "sync" blocks
	// until the analysis is stored; "async" (default) returns the pending
	// match immediately for polling.
	Mode string `json:"mode"`
}

// MatchesHandler handles compatibility match endpoints.
type MatchesHandler struct {
	compatService services.CompatibilityService
	logger        *zap.Logger
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(compatService services.CompatibilityService, logger *zap.Logger) *MatchesHandler {
	return &MatchesHandler{compatService: compatService, logger: logger}
}

// RegisterRoutes registers the matches handler's routes on the given mux.
func (h *MatchesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/matches", h.Create)
	mux.HandleFunc("GET /api/matches/{mid}", h.Get)
	mux.HandleFunc("GET /api/subjects/{sid}/matches", h.ListBySubject)
}

// Create handles POST /api/matches
// Creates (or reuses) the match for an ordered subject pair and runs its
// compatibility synthesis in the requested mode.
func (h *MatchesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	subjectAID, err := uuid.Parse(req.SubjectAID)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_subject_id", "Invalid subject_a_id format"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	subjectBID, err := uuid.Parse(req.SubjectBID)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_subject_id", "Invalid subject_b_id format"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if subjectAID == subjectBID {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_pair", "A subject cannot be matched with itself"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	kind := models.MatchKind(req.Kind)
	switch kind {
	case "":
		kind = models.MatchCandidate
	case models.MatchCandidate, models.MatchOrganization:
	default:
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_kind", "Kind must be candidate or organization"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var match *models.Match
	switch req.Mode {
	case "sync":
		match, err = h.compatService.ComputeCompatibility(r.Context(), subjectAID, subjectBID, kind)
	case "", "async":
		match, err = h.compatService.EnsureMatch(r.Context(), subjectAID, subjectBID, kind)
	default:
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_mode", "Mode must be sync or async"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Subject not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrAllProvidersExhausted) || errors.Is(err, apperrors.ErrNoProviderConfigured) {
			h.logger.Error("Compatibility synthesis unavailable", zap.Error(err))
			if err := ErrorResponse(w, http.StatusBadGateway, "synthesis_unavailable", "All text providers failed"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to create match", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to create match"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	status := http.StatusOK
	if match.Status == models.MatchPending {
		status = http.StatusAccepted
	}
	if err := WriteJSON(w, status, match); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/matches/{mid}
// Returns the match in its current state; clients poll this endpoint while
// status is pending.
func (h *MatchesHandler) Get(w http.ResponseWriter, r *http.Request) {
	matchID, ok := ParseMatchID(w, r, h.logger)
	if !ok {
		return
	}

	match, err := h.compatService.GetMatch(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Match not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get match",
			zap.String("match_id", matchID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to get match"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, match); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListBySubject handles GET /api/subjects/{sid}/matches
// Returns all matches where the subject is side A, newest first.
func (h *MatchesHandler) ListBySubject(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := ParseSubjectID(w, r, h.logger)
	if !ok {
		return
	}

	matches, err := h.compatService.ListMatches(r.Context(), subjectID)
	if err != nil {
		h.logger.Error("Failed to list matches",
			zap.String("subject_id", subjectID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to list matches"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if matches == nil {
		matches = []*models.Match{}
	}

	if err := WriteJSON(w, http.StatusOK, matches); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
