package api

import (
	"log/slog"
	"net/http"

	"github.com/ascendapp/ascend-api/internal/api/shared"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/service/challenge"
	"github.com/ascendapp/ascend-api/internal/service/xp"
)

// ChallengeHandler handles weekly challenge HTTP requests
type ChallengeHandler struct {
	challengeService *challenge.Service
	xpService        *xp.Service
	logger           *slog.Logger
}

// NewChallengeHandler creates a new ChallengeHandler
func NewChallengeHandler(
	challengeService *challenge.Service,
	xpService *xp.Service,
	logger *slog.Logger,
) *ChallengeHandler {
	if challengeService == nil {
		panic("challengeService cannot be nil for ChallengeHandler")
	}
	if xpService == nil {
		panic("xpService cannot be nil for ChallengeHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ChallengeHandler")
	}

	return &ChallengeHandler{
		challengeService: challengeService,
		xpService:        xpService,
		logger:           logger.With(slog.String("component", "challenge_handler")),
	}
}

// GetWeeklyChallenges handles GET /challenges/weekly requests
func (h *ChallengeHandler) GetWeeklyChallenges(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.challengeService.Weekly(r.Context(), userID, p.Timezone)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("weekly challenges retrieved",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(result.Challenges)))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
