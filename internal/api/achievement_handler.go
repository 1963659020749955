package api

import (
	"log/slog"
	"net/http"

	"github.com/ascendapp/ascend-api/internal/api/shared"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/service/achievement"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// UnlockAchievementRequest represents the request body for unlocking an
// achievement
type UnlockAchievementRequest struct {
	XPReward int `json:"xp_reward" validate:"gte=0"`
}

// SyncAchievementsRequest represents the request body for syncing unlocks
type SyncAchievementsRequest struct {
	AchievementIDs []string `json:"achievement_ids" validate:"required,dive,required,max=255"`
}

// AchievementHandler handles achievement HTTP requests
type AchievementHandler struct {
	achievementService *achievement.Service
	validator          *validator.Validate
	logger             *slog.Logger
}

// NewAchievementHandler creates a new AchievementHandler
func NewAchievementHandler(achievementService *achievement.Service, logger *slog.Logger) *AchievementHandler {
	if achievementService == nil {
		panic("achievementService cannot be nil for AchievementHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for AchievementHandler")
	}

	return &AchievementHandler{
		achievementService: achievementService,
		validator:          validator.New(),
		logger:             logger.With(slog.String("component", "achievement_handler")),
	}
}

// UnlockAchievement handles POST /achievements/{id}/unlock requests
func (h *AchievementHandler) UnlockAchievement(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	achievementID := chi.URLParam(r, "id")
	if achievementID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "achievement ID is required")
		return
	}

	var req UnlockAchievementRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.achievementService.Unlock(r.Context(), userID, achievementID, req.XPReward)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("achievement unlock handled",
		slog.String("user_id", userID.String()),
		slog.String("achievement_id", achievementID),
		slog.Bool("already_owned", result.AlreadyOwned))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SyncAchievements handles POST /achievements/sync requests
func (h *AchievementHandler) SyncAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SyncAchievementsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.achievementService.Sync(r.Context(), userID, req.AchievementIDs)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
