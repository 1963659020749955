// Package review exposes the spaced-repetition surface: creating review
// state for skills, listing what is due, grading submitted reviews through
// the SM-2 scheduler, and summarizing mastery.
package review

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/domain/srs"
	"github.com/ascendapp/ascend-api/internal/platform/clock"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/platform/metrics"
	"github.com/ascendapp/ascend-api/internal/service/challenge"
	"github.com/ascendapp/ascend-api/internal/service/xp"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// DefaultDueLimit caps the due-review page size when the caller does not
// supply one.
const DefaultDueLimit = 20

// DueItem is one entry in the due-review listing.
type DueItem struct {
	SkillID        string  `json:"skill_id"`
	SkillDomain    string  `json:"skill_domain"`
	MasteryLevel   int     `json:"mastery_level"`
	MasteryLabel   string  `json:"mastery_label"`
	EasinessFactor float64 `json:"easiness_factor"`
	IntervalDays   int     `json:"interval_days"`
	DaysOverdue    int     `json:"days_overdue"`
	ReviewXP       int     `json:"review_xp"`
	LastQuality    int     `json:"last_quality"`
}

// DueResult is the response for the due-review listing.
type DueResult struct {
	Items        []DueItem  `json:"items"`
	TotalDue     int        `json:"total_due"`
	NextReviewAt *time.Time `json:"next_review_at,omitempty"`
}

// SubmitResult reports the scheduler's outcome for one graded review.
type SubmitResult struct {
	SkillID              string    `json:"skill_id"`
	NewMasteryLevel      int       `json:"new_mastery_level"`
	PreviousMasteryLevel int       `json:"previous_mastery_level"`
	MasteryUp            bool      `json:"mastery_up"`
	MasteryLabel         string    `json:"mastery_label"`
	NewEasinessFactor    float64   `json:"new_easiness_factor"`
	NewIntervalDays      int       `json:"new_interval_days"`
	NextReview           time.Time `json:"next_review"`
	XPEarned             int       `json:"xp_earned"`
	Correct              bool      `json:"correct"`
}

// CreateResult is the response for idempotent review item creation.
type CreateResult struct {
	ID           uuid.UUID `json:"id"`
	SkillID      string    `json:"skill_id"`
	MasteryLevel int       `json:"mastery_level"`
	NextReview   time.Time `json:"next_review"`
}

// SkillSummary is one skill's row in the mastery overview.
type SkillSummary struct {
	SkillID      string     `json:"skill_id"`
	SkillDomain  string     `json:"skill_domain"`
	MasteryLevel int        `json:"mastery_level"`
	MasteryLabel string     `json:"mastery_label"`
	NextReview   time.Time  `json:"next_review"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
}

// MasteryResult is the response for the mastery overview.
type MasteryResult struct {
	Skills         []SkillSummary `json:"skills"`
	OverallMastery float64        `json:"overall_mastery"`
	TotalSkills    int            `json:"total_skills"`
	MasteredCount  int            `json:"mastered_count"`
	DueCount       int            `json:"due_count"`
}

// Service grades reviews and maintains per-skill scheduling state.
type Service struct {
	db         *sql.DB
	items      store.ReviewItemStore
	xp         *xp.Service
	challenges *challenge.Service
	clock      clock.Clock
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewService creates the review service.
func NewService(
	db *sql.DB,
	items store.ReviewItemStore,
	xpService *xp.Service,
	challengeService *challenge.Service,
	clk clock.Clock,
	m *metrics.Metrics,
	log *slog.Logger,
) *Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if items == nil {
		panic("items cannot be nil")
	}
	if xpService == nil {
		panic("xpService cannot be nil")
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
		db:         db,
		items:      items,
		xp:         xpService,
		challenges: challengeService,
		clock:      clk,
		metrics:    m,
		logger:     log.With(slog.String("component", "review_service")),
	}
}

// Create ensures review state exists for a skill. Safe to call repeatedly;
// the stored row wins over the fresh one under concurrent first access.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, skillID, skillDomain string) (*CreateResult, error) {
	if skillID == "" {
		return nil, fmt.Errorf("%w: skill ID is required", domain.ErrValidation)
	}

	fresh, err := domain.NewReviewItem(userID, skillID, skillDomain, s.clock.Now())
	if err != nil {
		return nil, err
	}

	item, err := s.items.Ensure(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure review item: %w", err)
	}

	return &CreateResult{
		ID:           item.ID,
		SkillID:      item.SkillID,
		MasteryLevel: item.MasteryLevel,
		NextReview:   item.NextReview,
	}, nil
}

// Due lists the user's due reviews, oldest first. When nothing is due, the
// nearest future review time is reported instead so callers can display
// "next review in…".
func (s *Service) Due(ctx context.Context, userID uuid.UUID, limit int) (*DueResult, error) {
	if limit <= 0 {
		limit = DefaultDueLimit
	}

	now := s.clock.Now()

	due, err := s.items.ListDue(ctx, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reviews: %w", err)
	}

	totalDue, err := s.items.CountDue(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count due reviews: %w", err)
	}

	result := &DueResult{
		Items:    make([]DueItem, 0, len(due)),
		TotalDue: totalDue,
	}

	for _, item := range due {
		overdue := srs.DaysOverdue(item.NextReview, now)
		result.Items = append(result.Items, DueItem{
			SkillID:        item.SkillID,
			SkillDomain:    item.SkillDomain,
			MasteryLevel:   item.MasteryLevel,
			MasteryLabel:   domain.MasteryLabel(item.MasteryLevel),
			EasinessFactor: item.EaseFactor,
			IntervalDays:   item.IntervalDays,
			DaysOverdue:    overdue,
			ReviewXP:       srs.ReviewXP(item.EaseFactor, overdue),
			LastQuality:    item.LastQuality,
		})
	}

	if totalDue == 0 {
		next, err := s.items.NextReviewAfter(ctx, userID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to find next review: %w", err)
		}
		result.NextReviewAt = next
	}

	return result, nil
}

// Submit grades a review and advances the skill's schedule in one
// transaction. A correct answer pays review XP priced from the ease factor
// and overdue window the item had going into the review.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, skillID string, quality int) (*SubmitResult, error) {
	if quality < 0 || quality > srs.MaxQuality {
		return nil, domain.ErrInvalidQuality
	}
	if skillID == "" {
		return nil, fmt.Errorf("%w: skill ID is required", domain.ErrValidation)
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	// Timezone drives the challenge week boundary; resolve it before taking
	// any row locks.
	p, err := s.xp.Progression(ctx, userID)
	if err != nil {
		return nil, err
	}

	var result *SubmitResult
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		items := s.items.WithTx(tx)
		now := s.clock.Now()

		item, err := items.GetForUpdate(ctx, userID, skillID)
		if err != nil {
			return err
		}

		// Reward is priced from the pre-update state: the difficulty the
		// learner actually faced.
		reward := 0
		if srs.IsCorrect(quality) {
			reward = srs.ReviewXP(item.EaseFactor, srs.DaysOverdue(item.NextReview, now))
		}

		next, err := srs.Advance(item, quality, now)
		if err != nil {
			return err
		}
		if err := items.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to update review item: %w", err)
		}

		xpEarned := 0
		if reward > 0 {
			award, err := s.xp.AwardInTx(ctx, tx, userID, xp.AwardParams{
				Amount: reward,
				Source: domain.XPSourceReview,
			})
			if err != nil {
				return err
			}
			xpEarned = award.XPEarned

			if err := s.challenges.IncrementInTx(ctx, tx, userID, p.Timezone, domain.ChallengeReviewSprint, 1, item.SkillDomain); err != nil {
				return err
			}
			if xpEarned > 0 {
				if err := s.challenges.IncrementInTx(ctx, tx, userID, p.Timezone, domain.ChallengeXPTarget, xpEarned, item.SkillDomain); err != nil {
					return err
				}
			}
		}

		result = &SubmitResult{
			SkillID:              next.SkillID,
			NewMasteryLevel:      next.MasteryLevel,
			PreviousMasteryLevel: item.MasteryLevel,
			MasteryUp:            next.MasteryLevel > item.MasteryLevel,
			MasteryLabel:         domain.MasteryLabel(next.MasteryLevel),
			NewEasinessFactor:    next.EaseFactor,
			NewIntervalDays:      next.IntervalDays,
			NextReview:           next.NextReview,
			XPEarned:             xpEarned,
			Correct:              srs.IsCorrect(quality),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ReviewsSubmitted.WithLabelValues(strconv.FormatBool(result.Correct)).Inc()
	}

	log.Debug("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("skill_id", skillID),
		slog.Int("quality", quality),
		slog.Bool("mastery_up", result.MasteryUp))

	return result, nil
}

// Mastery summarizes the user's skills: per-skill levels plus aggregate
// counts for the overview screen.
func (s *Service) Mastery(ctx context.Context, userID uuid.UUID) (*MasteryResult, error) {
	now := s.clock.Now()

	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review items: %w", err)
	}

	dueCount, err := s.items.CountDue(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count due reviews: %w", err)
	}

	result := &MasteryResult{
		Skills:      make([]SkillSummary, 0, len(items)),
		TotalSkills: len(items),
		DueCount:    dueCount,
	}

	levelSum := 0
	for _, item := range items {
		levelSum += item.MasteryLevel
		if item.MasteryLevel == 5 {
			result.MasteredCount++
		}

		summary := SkillSummary{
			SkillID:      item.SkillID,
			SkillDomain:  item.SkillDomain,
			MasteryLevel: item.MasteryLevel,
			MasteryLabel: domain.MasteryLabel(item.MasteryLevel),
			NextReview:   item.NextReview,
		}
		if !item.LastReviewedAt.IsZero() {
			reviewed := item.LastReviewedAt
			summary.LastReviewed = &reviewed
		}
		result.Skills = append(result.Skills, summary)
	}

	if len(items) > 0 {
		result.OverallMastery = float64(levelSum) / float64(len(items))
	}

	return result, nil
}
