package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ascendapp/ascend-api/internal/api/shared"
	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/service/xp"
	"github.com/go-playground/validator/v10"
)

// AwardXPRequest represents the request body for awarding XP
type AwardXPRequest struct {
	Amount     int     `json:"amount"     validate:"required,gte=0"`
	Source     string  `json:"source"     validate:"required,oneof=quest_completion skill_review achievement weekly_challenge"`
	Multiplier float64 `json:"multiplier" validate:"omitempty,gt=0"`
	DedupeKey  string  `json:"dedupe_key" validate:"omitempty,max=255"`
}

// XPHandler handles XP ledger HTTP requests
type XPHandler struct {
	xpService *xp.Service
	validator *validator.Validate
	logger    *slog.Logger
}

// NewXPHandler creates a new XPHandler
func NewXPHandler(xpService *xp.Service, logger *slog.Logger) *XPHandler {
	if xpService == nil {
		panic("xpService cannot be nil for XPHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for XPHandler")
	}

	return &XPHandler{
		xpService: xpService,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "xp_handler")),
	}
}

// AwardXP handles POST /xp/award requests
func (h *XPHandler) AwardXP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AwardXPRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.xpService.Award(r.Context(), userID, xp.AwardParams{
		Amount:     req.Amount,
		Source:     domain.XPSource(req.Source),
		Multiplier: req.Multiplier,
		DedupeKey:  req.DedupeKey,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("XP award handled",
		slog.String("user_id", userID.String()),
		slog.Int("xp_earned", result.XPEarned))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// EffectiveXP handles GET /xp/effective?raw=N requests
func (h *XPHandler) EffectiveXP(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	rawParam := r.URL.Query().Get("raw")
	rawXP, err := strconv.Atoi(rawParam)
	if err != nil || rawXP < 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "raw must be a non-negative integer")
		return
	}

	result, err := h.xpService.EffectiveXP(r.Context(), userID, rawXP)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
