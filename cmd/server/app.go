package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ascendapp/ascend-api/internal/config"
	"github.com/ascendapp/ascend-api/internal/platform/clock"
	"github.com/ascendapp/ascend-api/internal/platform/metrics"
	"github.com/ascendapp/ascend-api/internal/platform/postgres"
	"github.com/ascendapp/ascend-api/internal/service/achievement"
	"github.com/ascendapp/ascend-api/internal/service/auth"
	"github.com/ascendapp/ascend-api/internal/service/challenge"
	"github.com/ascendapp/ascend-api/internal/service/quests"
	"github.com/ascendapp/ascend-api/internal/service/review"
	"github.com/ascendapp/ascend-api/internal/service/streak"
	"github.com/ascendapp/ascend-api/internal/service/xp"
	"github.com/ascendapp/ascend-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	clock  clock.Clock

	metrics *metrics.Metrics

	// Stores (using interfaces for proper abstraction)
	progressionStore store.ProgressionStore
	xpEventStore     store.XPEventStore
	streakStore      store.StreakStore
	taskStore        store.TaskStore
	completionStore  store.QuestCompletionStore
	reviewItemStore  store.ReviewItemStore
	challengeStore   store.WeeklyChallengeStore
	achievementStore store.AchievementStore

	// Services
	jwtService         auth.JWTService
	xpService          *xp.Service
	streakService      *streak.Service
	questService       *quests.Service
	reviewService      *review.Service
	challengeService   *challenge.Service
	achievementService *achievement.Service
}

// newApplication creates an application instance with all dependencies
// initialized. Configuration, logger, and database connection must already
// be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		clock:   clock.NewSystemClock(),
		metrics: metrics.New(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Stores
	app.progressionStore = postgres.NewPostgresProgressionStore(db, logger)
	app.xpEventStore = postgres.NewPostgresXPEventStore(db, logger)
	app.streakStore = postgres.NewPostgresStreakStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.completionStore = postgres.NewPostgresQuestCompletionStore(db, logger)
	app.reviewItemStore = postgres.NewPostgresReviewItemStore(db, logger)
	app.challengeStore = postgres.NewPostgresWeeklyChallengeStore(db, logger)
	app.achievementStore = postgres.NewPostgresAchievementStore(db, logger)

	// Services; the XP ledger sits underneath everything that pays rewards.
	app.xpService = xp.NewService(db, app.progressionStore, app.xpEventStore, app.clock, app.metrics, logger)
	app.streakService = streak.NewService(db, app.streakStore, app.clock, logger)
	app.challengeService = challenge.NewService(
		db,
		app.challengeStore,
		app.completionStore,
		app.xpService,
		app.clock,
		app.metrics,
		logger,
	)
	app.questService = quests.NewService(
		db,
		app.taskStore,
		app.completionStore,
		app.progressionStore,
		app.xpEventStore,
		app.xpService,
		app.streakService,
		app.challengeService,
		app.clock,
		app.metrics,
		logger,
	)
	app.reviewService = review.NewService(
		db,
		app.reviewItemStore,
		app.xpService,
		app.challengeService,
		app.clock,
		app.metrics,
		logger,
	)
	app.achievementService = achievement.NewService(db, app.achievementStore, app.xpService, app.clock, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
