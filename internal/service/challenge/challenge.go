// Package challenge generates and advances weekly challenges. Challenges
// for a week materialize lazily on first access and are calibrated from the
// user's recent completion volume.
package challenge

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/clock"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/platform/metrics"
	"github.com/ascendapp/ascend-api/internal/service/xp"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// Calibration constants. Targets scale with the user's average daily
// completion count over the trailing two weeks.
const (
	calibrationWindowDays = 14

	easyXPReward     = 50
	easyCoinReward   = 15
	mediumTarget     = 10
	mediumXPReward   = 100
	mediumCoinReward = 30
	hardXPReward     = 200
	hardCoinReward   = 50
)

// ChallengeView is the API shape of a single challenge.
type ChallengeView struct {
	ID           uuid.UUID                  `json:"id"`
	Type         domain.ChallengeType       `json:"type"`
	Difficulty   domain.ChallengeDifficulty `json:"difficulty"`
	SkillDomain  string                     `json:"skill_domain,omitempty"`
	Title        string                     `json:"title"`
	TargetValue  int                        `json:"target_value"`
	CurrentValue int                        `json:"current_value"`
	Progress     int                        `json:"progress"`
	Completed    bool                       `json:"completed"`
	XPReward     int                        `json:"xp_reward"`
	CoinReward   int                        `json:"coin_reward"`
}

// WeeklyResult is the response for the weekly challenge listing.
type WeeklyResult struct {
	WeekStart    time.Time       `json:"week_start"`
	WeekEnd      time.Time       `json:"week_end"`
	Challenges   []ChallengeView `json:"challenges"`
	AllCompleted bool            `json:"all_completed"`
}

// Service generates weekly challenges and tracks their progress.
type Service struct {
	db          *sql.DB
	challenges  store.WeeklyChallengeStore
	completions store.QuestCompletionStore
	xp          *xp.Service
	clock       clock.Clock
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewService creates the challenge service.
func NewService(
	db *sql.DB,
	challenges store.WeeklyChallengeStore,
	completions store.QuestCompletionStore,
	xpService *xp.Service,
	clk clock.Clock,
	m *metrics.Metrics,
	log *slog.Logger,
) *Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if challenges == nil {
		panic("challenges cannot be nil")
	}
	if completions == nil {
		panic("completions cannot be nil")
	}
	if xpService == nil {
		panic("xpService cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		db:          db,
		challenges:  challenges,
		completions: completions,
		xp:          xpService,
		clock:       clk,
		metrics:     m,
		logger:      log.With(slog.String("component", "challenge_service")),
	}
}

// Weekly returns the user's challenges for the current local week,
// generating the week's set on first access. Generation is conflict-tolerant
// so two racing first accesses leave exactly one set of rows.
func (s *Service) Weekly(ctx context.Context, userID uuid.UUID, timezone string) (*WeeklyResult, error) {
	weekStart := s.clock.WeekStartLocal(timezone)

	existing, err := s.challenges.ListWeek(ctx, userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly challenges: %w", err)
	}

	if len(existing) == 0 {
		if err := s.generate(ctx, userID, weekStart); err != nil {
			return nil, err
		}
		existing, err = s.challenges.ListWeek(ctx, userID, weekStart)
		if err != nil {
			return nil, fmt.Errorf("failed to list weekly challenges: %w", err)
		}
	}

	views := make([]ChallengeView, 0, len(existing))
	allCompleted := len(existing) > 0
	for _, c := range existing {
		if !c.Completed {
			allCompleted = false
		}
		views = append(views, ChallengeView{
			ID:           c.ID,
			Type:         c.Type,
			Difficulty:   c.Difficulty,
			SkillDomain:  c.SkillDomain,
			Title:        c.Title(),
			TargetValue:  c.TargetValue,
			CurrentValue: c.CurrentValue,
			Progress:     c.Progress(),
			Completed:    c.Completed,
			XPReward:     c.XPReward,
			CoinReward:   c.CoinReward,
		})
	}

	return &WeeklyResult{
		WeekStart:    weekStart,
		WeekEnd:      weekStart.AddDate(0, 0, 7),
		Challenges:   views,
		AllCompleted: allCompleted,
	}, nil
}

// generate calibrates and inserts the week's three challenges.
func (s *Service) generate(ctx context.Context, userID uuid.UUID, weekStart time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.clock.Now()

	windowStart := now.AddDate(0, 0, -calibrationWindowDays)
	recent, err := s.completions.CountSince(ctx, userID, windowStart)
	if err != nil {
		return fmt.Errorf("failed to count recent completions: %w", err)
	}

	avgDaily := int(math.Round(float64(recent) / float64(calibrationWindowDays)))
	if avgDaily < 1 {
		avgDaily = 1
	}

	specs := []struct {
		ctype      domain.ChallengeType
		difficulty domain.ChallengeDifficulty
		target     int
		xpReward   int
		coinReward int
	}{
		{domain.ChallengeQuestVolume, domain.ChallengeEasy, maxInt(5, avgDaily*5), easyXPReward, easyCoinReward},
		{domain.ChallengeReviewSprint, domain.ChallengeMedium, mediumTarget, mediumXPReward, mediumCoinReward},
		{domain.ChallengeXPTarget, domain.ChallengeHard, maxInt(300, avgDaily*10*25), hardXPReward, hardCoinReward},
	}

	batch := make([]*domain.WeeklyChallenge, 0, len(specs))
	for _, spec := range specs {
		c, err := domain.NewWeeklyChallenge(
			userID, weekStart, spec.ctype, spec.difficulty,
			spec.target, spec.xpReward, spec.coinReward, now,
		)
		if err != nil {
			return err
		}
		batch = append(batch, c)
	}

	if err := s.challenges.CreateBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to create weekly challenges: %w", err)
	}

	log.Debug("weekly challenges generated",
		slog.String("user_id", userID.String()),
		slog.Time("week_start", weekStart),
		slog.Int("avg_daily", avgDaily))

	return nil
}

// Increment advances matching open challenges by amount in its own
// transaction.
func (s *Service) Increment(
	ctx context.Context,
	userID uuid.UUID,
	timezone string,
	ctype domain.ChallengeType,
	amount int,
	skillDomain string,
) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.IncrementInTx(ctx, tx, userID, timezone, ctype, amount, skillDomain)
	})
}

// IncrementInTx adds amount to every not-yet-completed challenge of the
// given type in the current week, marking completion and paying the reward
// exactly once at the completion transition. The reward award is keyed by
// the challenge ID so a replay cannot double-pay.
//
// skillDomain identifies where the progress came from; domain-scoped
// challenges only advance on matching events.
func (s *Service) IncrementInTx(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	timezone string,
	ctype domain.ChallengeType,
	amount int,
	skillDomain string,
) error {
	if amount <= 0 {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	challenges := s.challenges.WithTx(tx)

	now := s.clock.Now()
	weekStart := s.clock.WeekStartLocal(timezone)

	open, err := challenges.ListOpenByTypeForUpdate(ctx, userID, weekStart, ctype)
	if err != nil {
		return fmt.Errorf("failed to lock open challenges: %w", err)
	}

	for _, c := range open {
		if !c.AppliesTo(skillDomain) {
			continue
		}

		c.CurrentValue += amount
		c.UpdatedAt = now

		if c.CurrentValue >= c.TargetValue {
			c.Completed = true
			completedAt := now
			c.CompletedAt = &completedAt
		}

		if err := challenges.Update(ctx, c); err != nil {
			return fmt.Errorf("failed to update challenge: %w", err)
		}

		if !c.Completed {
			continue
		}

		if _, err := s.xp.AwardInTx(ctx, tx, userID, xp.AwardParams{
			Amount:    c.XPReward,
			Source:    domain.XPSourceChallenge,
			DedupeKey: fmt.Sprintf("challenge:%s", c.ID),
			Coins:     c.CoinReward,
		}); err != nil {
			return fmt.Errorf("failed to award challenge reward: %w", err)
		}

		if s.metrics != nil {
			s.metrics.ChallengesCompleted.WithLabelValues(string(c.Type)).Inc()
		}

		log.Info("weekly challenge completed",
			slog.String("user_id", userID.String()),
			slog.String("challenge_type", string(c.Type)),
			slog.Int("target", c.TargetValue))
	}

	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
