// Package quests selects the user's daily quests and runs the completion
// flow: payload validation, completion recording, soft-capped XP award,
// streak update, and weekly challenge progress, all in one transaction.
package quests

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/clock"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/platform/metrics"
	"github.com/ascendapp/ascend-api/internal/service/challenge"
	"github.com/ascendapp/ascend-api/internal/service/streak"
	"github.com/ascendapp/ascend-api/internal/service/xp"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// CompleteResult reports the outcome of a quest completion.
type CompleteResult struct {
	Completed       bool             `json:"completed"`
	Validation      ValidationResult `json:"validation"`
	XPEarned        int              `json:"xp_earned"`
	Capped          bool             `json:"capped"`
	CoinsEarned     int              `json:"coins_earned"`
	TotalXP         int              `json:"total_xp"`
	CurrentLevel    int              `json:"current_level"`
	LeveledUp       bool             `json:"leveled_up"`
	CurrentStreak   int              `json:"current_streak"`
	EnergyRemaining int              `json:"energy_remaining"`
}

// Service allocates daily quests and orchestrates completions.
type Service struct {
	db           *sql.DB
	tasks        store.TaskStore
	completions  store.QuestCompletionStore
	progressions store.ProgressionStore
	events       store.XPEventStore
	xp           *xp.Service
	streaks      *streak.Service
	challenges   *challenge.Service
	clock        clock.Clock
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewService creates the quest service.
func NewService(
	db *sql.DB,
	tasks store.TaskStore,
	completions store.QuestCompletionStore,
	progressions store.ProgressionStore,
	events store.XPEventStore,
	xpService *xp.Service,
	streakService *streak.Service,
	challengeService *challenge.Service,
	clk clock.Clock,
	m *metrics.Metrics,
	log *slog.Logger,
) *Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if tasks == nil {
		panic("tasks cannot be nil")
	}
	if completions == nil {
		panic("completions cannot be nil")
	}
	if progressions == nil {
		panic("progressions cannot be nil")
	}
	if events == nil {
		panic("events cannot be nil")
	}
	if xpService == nil {
		panic("xpService cannot be nil")
	}
	if streakService == nil {
		panic("streakService cannot be nil")
	}
	if challengeService == nil {
		panic("challengeService cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		db:           db,
		tasks:        tasks,
		completions:  completions,
		progressions: progressions,
		events:       events,
		xp:           xpService,
		streaks:      streakService,
		challenges:   challengeService,
		clock:        clk,
		metrics:      m,
		logger:       log.With(slog.String("component", "quest_service")),
	}
}

// Daily returns up to five quests for today, honoring the per-type
// diversity cap against both today's completions and this selection.
func (s *Service) Daily(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	p, err := s.xp.Progression(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.tasks.ListCandidates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate tasks: %w", err)
	}

	today := s.clock.TodayLocal(p.Timezone)
	completedToday, err := s.completions.ListSince(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's completions: %w", err)
	}

	completedIDs := make(map[uuid.UUID]bool, len(completedToday))
	typeCounts := make(map[domain.QuestType]int, len(completedToday))
	for _, c := range completedToday {
		completedIDs[c.TaskID] = true
		typeCounts[c.QuestType]++
	}

	return Allocate(candidates, completedIDs, typeCounts), nil
}

// Complete runs the full completion flow for a task in one transaction:
// ownership check, payload validation, completion record, soft-capped XP
// and coin award, energy consumption, streak update, and weekly challenge
// progress. Either all of it commits or none of it does.
//
// An invalid payload rejects the completion before any state mutation.
// Completing an already-completed task surfaces store.ErrCompletionExists.
func (s *Service) Complete(
	ctx context.Context,
	userID, taskID uuid.UUID,
	validationData json.RawMessage,
) (*CompleteResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result *CompleteResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)
		completions := s.completions.WithTx(tx)
		progressions := s.progressions.WithTx(tx)
		events := s.events.WithTx(tx)

		now := s.clock.Now()

		task, err := tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.UserID != userID {
			return domain.ErrUnauthorized
		}
		if task.Status == domain.TaskStatusCompleted {
			return store.ErrCompletionExists
		}

		validation, err := Validate(task.ValidationType, validationData, task.KnowledgeCheck)
		if err != nil {
			return err
		}
		if !validation.Valid {
			result = &CompleteResult{Completed: false, Validation: validation}
			return nil
		}

		// Lock the progression row first so the soft-cap read, the award,
		// and the energy decrement all see one consistent aggregate.
		ensure, err := domain.NewUserProgression(userID, now)
		if err != nil {
			return err
		}
		if err := progressions.Ensure(ctx, ensure); err != nil {
			return fmt.Errorf("failed to ensure progression: %w", err)
		}
		p, err := progressions.GetForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to lock progression: %w", err)
		}

		today := s.clock.TodayLocal(p.Timezone)
		dailyEarned, err := events.TotalSince(ctx, userID, today)
		if err != nil {
			return fmt.Errorf("failed to sum daily XP: %w", err)
		}
		effectiveXP, capped := xp.Effective(p.SubscriptionTier, dailyEarned, task.XPReward)

		completion, err := domain.NewQuestCompletion(userID, taskID, task.QuestType, now)
		if err != nil {
			return err
		}
		if err := completions.Create(ctx, completion); err != nil {
			return err
		}
		if err := tasks.MarkCompleted(ctx, taskID, now); err != nil {
			return err
		}

		award, err := s.xp.AwardInTx(ctx, tx, userID, xp.AwardParams{
			Amount:    effectiveXP,
			Source:    domain.XPSourceQuest,
			DedupeKey: fmt.Sprintf("quest:%s", taskID),
			Coins:     task.CoinReward,
		})
		if err != nil {
			return err
		}

		p, err = progressions.GetForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to reload progression: %w", err)
		}
		if p.EnergyCrystals > 0 {
			p.EnergyCrystals--
			p.UpdatedAt = now
			if err := progressions.Update(ctx, p); err != nil {
				return fmt.Errorf("failed to consume energy: %w", err)
			}
		}

		streakResult, err := s.streaks.UpdateInTx(ctx, tx, userID, p.Timezone)
		if err != nil {
			return err
		}

		if err := s.challenges.IncrementInTx(ctx, tx, userID, p.Timezone, domain.ChallengeQuestVolume, 1, task.SkillDomain); err != nil {
			return err
		}
		if award.XPEarned > 0 {
			if err := s.challenges.IncrementInTx(ctx, tx, userID, p.Timezone, domain.ChallengeXPTarget, award.XPEarned, task.SkillDomain); err != nil {
				return err
			}
		}

		result = &CompleteResult{
			Completed:       true,
			Validation:      validation,
			XPEarned:        award.XPEarned,
			Capped:          capped,
			CoinsEarned:     task.CoinReward,
			TotalXP:         award.TotalXP,
			CurrentLevel:    award.CurrentLevel,
			LeveledUp:       award.LeveledUp,
			CurrentStreak:   streakResult.CurrentStreak,
			EnergyRemaining: p.EnergyCrystals,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Completed {
		if s.metrics != nil {
			s.metrics.QuestsCompleted.Inc()
		}
		log.Info("quest completed",
			slog.String("user_id", userID.String()),
			slog.String("task_id", taskID.String()),
			slog.Int("xp_earned", result.XPEarned),
			slog.Bool("leveled_up", result.LeveledUp))
	}

	return result, nil
}
