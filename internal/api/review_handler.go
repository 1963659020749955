package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ascendapp/ascend-api/internal/api/shared"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/service/review"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// SubmitReviewRequest represents the request body for grading a review
type SubmitReviewRequest struct {
	Quality *int `json:"quality" validate:"required,gte=0,lte=5"`
}

// CreateReviewItemRequest represents the request body for creating review state
type CreateReviewItemRequest struct {
	SkillID     string `json:"skill_id"     validate:"required,max=255"`
	SkillDomain string `json:"skill_domain" validate:"omitempty,max=255"`
}

// ReviewHandler handles spaced-repetition HTTP requests
type ReviewHandler struct {
	reviewService *review.Service
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *review.Service, logger *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// GetDueReviews handles GET /reviews/due?limit=N requests
func (h *ReviewHandler) GetDueReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	result, err := h.reviewService.Due(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SubmitReview handles POST /reviews/{skillId} requests
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	skillID := chi.URLParam(r, "skillId")
	if skillID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "skillId is required")
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.reviewService.Submit(r.Context(), userID, skillID, *req.Quality)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("review submission handled",
		slog.String("user_id", userID.String()),
		slog.String("skill_id", skillID),
		slog.Bool("correct", result.Correct))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// CreateReviewItem handles POST /reviews requests. Idempotent: repeating the
// call returns the existing item.
func (h *ReviewHandler) CreateReviewItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateReviewItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.reviewService.Create(r.Context(), userID, req.SkillID, req.SkillDomain)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// GetSkillMastery handles GET /reviews/mastery requests
func (h *ReviewHandler) GetSkillMastery(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	result, err := h.reviewService.Mastery(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
