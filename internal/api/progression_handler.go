// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ascendapp/ascend-api/internal/api/shared"
	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/service/xp"
)

// ProgressionResponse represents the response data for a progression snapshot
type ProgressionResponse struct {
	UserID            string    `json:"user_id"`
	TotalXP           int       `json:"total_xp"`
	Level             int       `json:"level"`
	XPIntoLevel       int       `json:"xp_into_level"`
	XPToNextLevel     int       `json:"xp_to_next_level"`
	Coins             int       `json:"coins"`
	EnergyCrystals    int       `json:"energy_crystals"`
	MaxEnergyCrystals int       `json:"max_energy_crystals"`
	SubscriptionTier  string    `json:"subscription_tier"`
	Timezone          string    `json:"timezone"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProgressionHandler handles progression snapshot requests
type ProgressionHandler struct {
	xpService *xp.Service
	logger    *slog.Logger
}

// NewProgressionHandler creates a new ProgressionHandler
func NewProgressionHandler(xpService *xp.Service, logger *slog.Logger) *ProgressionHandler {
	if xpService == nil {
		panic("xpService cannot be nil for ProgressionHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ProgressionHandler")
	}

	return &ProgressionHandler{
		xpService: xpService,
		logger:    logger.With(slog.String("component", "progression_handler")),
	}
}

// GetProgression handles GET /progression requests
func (h *ProgressionHandler) GetProgression(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	p, err := h.xpService.Progression(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("progression retrieved",
		slog.String("user_id", userID.String()),
		slog.Int("level", p.Level))
	shared.RespondWithJSON(w, r, http.StatusOK, progressionToResponse(p))
}

// progressionToResponse converts a domain.UserProgression to a ProgressionResponse
func progressionToResponse(p *domain.UserProgression) ProgressionResponse {
	floor := xp.ForLevel(p.Level)
	next := xp.ForLevel(p.Level + 1)

	return ProgressionResponse{
		UserID:            p.UserID.String(),
		TotalXP:           p.TotalXP,
		Level:             p.Level,
		XPIntoLevel:       p.TotalXP - floor,
		XPToNextLevel:     next - p.TotalXP,
		Coins:             p.Coins,
		EnergyCrystals:    p.EnergyCrystals,
		MaxEnergyCrystals: p.MaxEnergyCrystals,
		SubscriptionTier:  string(p.SubscriptionTier),
		Timezone:          p.Timezone,
		UpdatedAt:         p.UpdatedAt,
	}
}
