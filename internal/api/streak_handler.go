package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ascendapp/ascend-api/internal/api/shared"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/service/streak"
	"github.com/ascendapp/ascend-api/internal/service/xp"
)

// StreakResponse represents the response data for a streak
type StreakResponse struct {
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	FreezesUsed      int        `json:"freezes_used"`
	MaxFreezes       int        `json:"max_freezes"`
}

// StreakHandler handles streak HTTP requests
type StreakHandler struct {
	streakService *streak.Service
	xpService     *xp.Service
	logger        *slog.Logger
}

// NewStreakHandler creates a new StreakHandler
func NewStreakHandler(streakService *streak.Service, xpService *xp.Service, logger *slog.Logger) *StreakHandler {
	if streakService == nil {
		panic("streakService cannot be nil for StreakHandler")
	}
	if xpService == nil {
		panic("xpService cannot be nil for StreakHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for StreakHandler")
	}

	return &StreakHandler{
		streakService: streakService,
		xpService:     xpService,
		logger:        logger.With(slog.String("component", "streak_handler")),
	}
}

// GetStreak handles GET /streak requests
func (h *StreakHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	st, err := h.streakService.Get(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	response := StreakResponse{
		CurrentStreak: st.CurrentStreak,
		LongestStreak: st.LongestStreak,
		FreezesUsed:   st.FreezesUsed,
		MaxFreezes:    st.MaxFreezes,
	}
	if !st.LastActivityDate.IsZero() {
		last := st.LastActivityDate
		response.LastActivityDate = &last
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// UpdateStreak handles POST /streak requests, recording a qualifying
// activity for today.
func (h *StreakHandler) UpdateStreak(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	// Timezone lives on the progression aggregate.
	p, err := h.xpService.Progression(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.streakService.Update(r.Context(), userID, p.Timezone)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("streak update handled",
		slog.String("user_id", userID.String()),
		slog.Bool("updated", result.Updated),
		slog.Int("current_streak", result.CurrentStreak))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
