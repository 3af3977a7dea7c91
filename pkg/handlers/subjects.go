package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/apperrors"
	"github.com/harmonyhq/harmony-engine/pkg/bazi"
	"github.com/harmonyhq/harmony-engine/pkg/models"
	"github.com/harmonyhq/harmony-engine/pkg/repositories"
	"github.com/harmonyhq/harmony-engine/pkg/services"
)

// SubjectRequest is the request body for creating or updating a subject.
type SubjectRequest struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	BirthTime string `json:"birth_time"`
	BirthCity string `json:"birth_city"`
	Timezone  string `json:"timezone"`
}

// ProfileResponse pairs a computed profile with its narrative interpretation.
type ProfileResponse struct {
	*bazi.Profile
	Interpretation ProfileInterpretation `json:"interpretation"`
}

// ProfileInterpretation is the display-ready narrative text derived from a
// profile's figures.
type ProfileInterpretation struct {
	DayMasterTraits bazi.ElementTraits `json:"day_master_traits"`
	Dominance       string             `json:"dominance"`
	Favorable       string             `json:"favorable"`
	Unfavorable     string             `json:"unfavorable"`
	Pillars         map[string]string  `json:"pillars"`
}

func interpretProfile(p *bazi.Profile) ProfileInterpretation {
	return ProfileInterpretation{
		DayMasterTraits: bazi.TraitsFor(p.DayMaster.Element),
		Dominance:       bazi.DominanceDescription(p.Balance.Dominance),
		Favorable:       bazi.FavorableDescription(p.FavorableElements),
		Unfavorable:     bazi.UnfavorableDescription(p.UnfavorableElements),
		Pillars: map[string]string{
			"year":  bazi.PillarInsight("year"),
			"month": bazi.PillarInsight("month"),
			"day":   bazi.PillarInsight("day"),
			"hour":  bazi.PillarInsight("hour"),
		},
	}
}

// SubjectsHandler handles subject CRUD and profile endpoints.
type SubjectsHandler struct {
	subjectRepo repositories.SubjectRepository
	logger      *zap.Logger
}

// NewSubjectsHandler creates a new subjects handler.
func NewSubjectsHandler(subjectRepo repositories.SubjectRepository, logger *zap.Logger) *SubjectsHandler {
	return &SubjectsHandler{subjectRepo: subjectRepo, logger: logger}
}

// RegisterRoutes registers the subjects handler's routes on the given mux.
func (h *SubjectsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/subjects", h.Create)
	mux.HandleFunc("GET /api/subjects", h.List)
	mux.HandleFunc("GET /api/subjects/{sid}", h.Get)
	mux.HandleFunc("PUT /api/subjects/{sid}", h.Update)
	mux.HandleFunc("DELETE /api/subjects/{sid}", h.Delete)
	mux.HandleFunc("GET /api/subjects/{sid}/profile", h.Profile)
}

// validate checks the request body and returns an error code and message on
// failure.
func (req *SubjectRequest) validate() (string, string) {
	if req.Name == "" {
		return "missing_name", "Name is required"
	}
	if req.BirthDate == "" {
		return "missing_birth_date", "Birth date is required"
	}
	if _, err := time.Parse("2006-01-02", req.BirthDate); err != nil {
		return "invalid_birth_date", "Birth date must be YYYY-MM-DD"
	}
	if req.BirthTime != "" {
		if _, err := time.Parse("15:04", req.BirthTime); err != nil {
			return "invalid_birth_time", "Birth time must be HH:MM"
		}
	}
	switch models.SubjectKind(req.Kind) {
	case "", models.SubjectPerson, models.SubjectOrganization:
	default:
		return "invalid_kind", "Kind must be person or organization"
	}
	return "", ""
}

// Create handles POST /api/subjects
func (h *SubjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if code, msg := req.validate(); code != "" {
		if err := ErrorResponse(w, http.StatusBadRequest, code, msg); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	subject := &models.Subject{
		Kind:      models.SubjectKind(req.Kind),
		Name:      req.Name,
		BirthDate: req.BirthDate,
		BirthTime: req.BirthTime,
		BirthCity: req.BirthCity,
		Timezone:  req.Timezone,
	}

	if err := h.subjectRepo.Create(r.Context(), subject); err != nil {
		h.logger.Error("Failed to create subject", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to create subject"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, subject); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/subjects
// An optional ?kind= query filters by subject kind.
func (h *SubjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := models.SubjectKind(r.URL.Query().Get("kind"))
	switch kind {
	case "", models.SubjectPerson, models.SubjectOrganization:
	default:
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_kind", "Kind must be person or organization"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	subjects, err := h.subjectRepo.List(r.Context(), kind)
	if err != nil {
		h.logger.Error("Failed to list subjects", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to list subjects"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if subjects == nil {
		subjects = []*models.Subject{}
	}

	if err := WriteJSON(w, http.StatusOK, subjects); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/subjects/{sid}
func (h *SubjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := ParseSubjectID(w, r, h.logger)
	if !ok {
		return
	}

	subject, err := h.subjectRepo.Get(r.Context(), subjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Subject not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get subject",
			zap.String("subject_id", subjectID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to get subject"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, subject); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/subjects/{sid}
func (h *SubjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := ParseSubjectID(w, r, h.logger)
	if !ok {
		return
	}

	var req SubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if code, msg := req.validate(); code != "" {
		if err := ErrorResponse(w, http.StatusBadRequest, code, msg); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	subject := &models.Subject{
		ID:        subjectID,
		Kind:      models.SubjectKind(req.Kind),
		Name:      req.Name,
		BirthDate: req.BirthDate,
		BirthTime: req.BirthTime,
		BirthCity: req.BirthCity,
		Timezone:  req.Timezone,
	}

	if err := h.subjectRepo.Update(r.Context(), subject); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Subject not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to update subject",
			zap.String("subject_id", subjectID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to update subject"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, subject); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/subjects/{sid}
// Deletes a subject and all matches and readings that reference it.
func (h *SubjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := ParseSubjectID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.subjectRepo.Delete(r.Context(), subjectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Subject not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to delete subject",
			zap.String("subject_id", subjectID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to delete subject"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Profile handles GET /api/subjects/{sid}/profile
// Computes and returns the subject's astrological profile. Profiles are
// derived on demand, never stored.
func (h *SubjectsHandler) Profile(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := ParseSubjectID(w, r, h.logger)
	if !ok {
		return
	}

	subject, err := h.subjectRepo.Get(r.Context(), subjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Subject not found"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to get subject",
			zap.String("subject_id", subjectID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to get subject"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	profile, err := services.ProfileForSubject(subject)
	if err != nil {
		h.logger.Error("Failed to compute profile",
			zap.String("subject_id", subjectID.String()),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusUnprocessableEntity, "profile_failed", "Failed to compute profile from birth data"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	resp := &ProfileResponse{Profile: profile, Interpretation: interpretProfile(profile)}
	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
