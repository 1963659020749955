package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ascendapp/ascend-api/internal/api"
	apiMiddleware "github.com/ascendapp/ascend-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	progressionHandler := api.NewProgressionHandler(app.xpService, app.logger)
	xpHandler := api.NewXPHandler(app.xpService, app.logger)
	streakHandler := api.NewStreakHandler(app.streakService, app.xpService, app.logger)
	questHandler := api.NewQuestHandler(app.questService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	challengeHandler := api.NewChallengeHandler(app.challengeService, app.xpService, app.logger)
	achievementHandler := api.NewAchievementHandler(app.achievementService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Progression and XP ledger. Direct awards mutate the ledger
			// and are reserved for service-scoped tokens.
			r.Get("/progression", progressionHandler.GetProgression)
			r.With(apiMiddleware.RequireServiceScope).Post("/xp/award", xpHandler.AwardXP)
			r.Get("/xp/effective", xpHandler.EffectiveXP)

			// Streak
			r.Get("/streak", streakHandler.GetStreak)
			r.Post("/streak", streakHandler.UpdateStreak)

			// Daily quests
			r.Get("/quests/daily", questHandler.GetDailyQuests)
			r.Post("/quests/validate", questHandler.ValidateCompletion)
			r.Post("/quests/{taskId}/complete", questHandler.CompleteQuest)

			// Spaced repetition
			r.Get("/reviews/due", reviewHandler.GetDueReviews)
			r.Get("/reviews/mastery", reviewHandler.GetSkillMastery)
			r.Post("/reviews", reviewHandler.CreateReviewItem)
			r.Post("/reviews/{skillId}", reviewHandler.SubmitReview)

			// Weekly challenges
			r.Get("/challenges/weekly", challengeHandler.GetWeeklyChallenges)

			// Achievements
			r.Post("/achievements/sync", achievementHandler.SyncAchievements)
			r.Post("/achievements/{id}/unlock", achievementHandler.UnlockAchievement)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Prometheus metrics
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
