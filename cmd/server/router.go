package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cihanisildar/dailingo-api/internal/api"
	apiMiddleware "github.com/cihanisildar/dailingo-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.accessTokenTTL(),
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	streakHandler := api.NewStreakHandler(app.streakService, app.logger)
	scheduleHandler := api.NewScheduleHandler(app.scheduleService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Card management
			r.Post("/cards", cardHandler.CreateCard)
			r.Get("/cards/{id}", cardHandler.GetCard)
			r.Delete("/cards/{id}", cardHandler.DeleteCard)

			// Review operations
			r.Post("/cards/{id}/review", reviewHandler.SubmitReview)
			r.Post("/cards/{id}/test-result", reviewHandler.RecordTestResult)
			r.Post("/cards/{id}/reactivate", reviewHandler.Reactivate)
			r.Get("/cards/{id}/review-logs", reviewHandler.GetHistory)
			r.Get("/reviews/upcoming", reviewHandler.GetUpcoming)

			// Streak and schedule
			r.Get("/streak", streakHandler.GetStreak)
			r.Post("/streak", streakHandler.RecordStreak)
			r.Get("/review-schedule", scheduleHandler.GetSchedule)
			r.Put("/review-schedule", scheduleHandler.UpdateSchedule)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
