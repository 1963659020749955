package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ascendapp/ascend-api/internal/api/shared"
	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/service/quests"
	"github.com/go-playground/validator/v10"
)

// QuestResponse represents one daily quest in the listing
type QuestResponse struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	TaskType         string                 `json:"task_type"`
	QuestType        string                 `json:"quest_type"`
	XPReward         int                    `json:"xp_reward"`
	CoinReward       int                    `json:"coin_reward"`
	Rarity           string                 `json:"rarity"`
	DifficultyTier   int                    `json:"difficulty_tier"`
	ValidationType   string                 `json:"validation_type"`
	KnowledgeCheck   *domain.KnowledgeCheck `json:"knowledge_check,omitempty"`
	SkillDomain      string                 `json:"skill_domain"`
	EstimatedMinutes int                    `json:"estimated_minutes"`
}

// CompleteQuestRequest represents the request body for completing a quest
type CompleteQuestRequest struct {
	ValidationData json.RawMessage `json:"validation_data"`
}

// ValidateCompletionRequest represents the request body for the stateless
// validation echo endpoint
type ValidateCompletionRequest struct {
	ValidationType string                 `json:"validation_type" validate:"required"`
	ValidationData json.RawMessage        `json:"validation_data"`
	KnowledgeCheck *domain.KnowledgeCheck `json:"knowledge_check,omitempty"`
}

// QuestHandler handles daily quest HTTP requests
type QuestHandler struct {
	questService *quests.Service
	validator    *validator.Validate
	logger       *slog.Logger
}

// NewQuestHandler creates a new QuestHandler
func NewQuestHandler(questService *quests.Service, logger *slog.Logger) *QuestHandler {
	if questService == nil {
		panic("questService cannot be nil for QuestHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for QuestHandler")
	}

	return &QuestHandler{
		questService: questService,
		validator:    validator.New(),
		logger:       logger.With(slog.String("component", "quest_handler")),
	}
}

// GetDailyQuests handles GET /quests/daily requests
func (h *QuestHandler) GetDailyQuests(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	selected, err := h.questService.Daily(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	response := make([]QuestResponse, 0, len(selected))
	for _, task := range selected {
		response = append(response, taskToResponse(task))
	}

	log.Debug("daily quests retrieved",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CompleteQuest handles POST /quests/{taskId}/complete requests
func (h *QuestHandler) CompleteQuest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	taskID, err := getPathUUID(r, "taskId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CompleteQuestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.questService.Complete(r.Context(), userID, taskID, req.ValidationData)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if !result.Completed {
		// Payload rejected; nothing was mutated.
		shared.RespondWithJSON(w, r, http.StatusUnprocessableEntity, result)
		return
	}

	log.Debug("quest completion handled",
		slog.String("user_id", userID.String()),
		slog.String("task_id", taskID.String()),
		slog.Int("xp_earned", result.XPEarned))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ValidateCompletion handles POST /quests/validate requests. Stateless: it
// scores the payload without touching any task.
func (h *QuestHandler) ValidateCompletion(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req ValidateCompletionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := quests.Validate(
		domain.ValidationType(req.ValidationType),
		req.ValidationData,
		req.KnowledgeCheck,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// taskToResponse converts a domain.Task to a QuestResponse
func taskToResponse(task *domain.Task) QuestResponse {
	return QuestResponse{
		ID:               task.ID.String(),
		Title:            task.Title,
		TaskType:         task.TaskType,
		QuestType:        string(task.QuestType),
		XPReward:         task.XPReward,
		CoinReward:       task.CoinReward,
		Rarity:           task.Rarity,
		DifficultyTier:   task.DifficultyTier,
		ValidationType:   string(task.ValidationType),
		KnowledgeCheck:   task.KnowledgeCheck,
		SkillDomain:      task.SkillDomain,
		EstimatedMinutes: task.EstimatedMinutes,
	}
}
