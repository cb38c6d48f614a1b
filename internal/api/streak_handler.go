package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cihanisildar/dailingo-api/internal/api/shared"
	"github.com/cihanisildar/dailingo-api/internal/platform/logger"
	"github.com/cihanisildar/dailingo-api/internal/service/streak"
)

// StreakHandler handles streak HTTP requests.
type StreakHandler struct {
	streakService streak.Service
	logger        *slog.Logger
}

// NewStreakHandler creates a new StreakHandler.
func NewStreakHandler(streakService streak.Service, logger *slog.Logger) *StreakHandler {
	if streakService == nil {
		panic("streakService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StreakHandler{
		streakService: streakService,
		logger:        logger.With(slog.String("component", "streak_handler")),
	}
}

// GetStreak handles GET /streak requests. Users with no review activity get
// a zeroed streak rather than a 404.
func (h *StreakHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	s, err := h.streakService.Get(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err, "Failed to get streak")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StreakResponse{
		CurrentStreak:  s.CurrentStreak,
		LongestStreak:  s.LongestStreak,
		LastReviewDate: s.LastReviewDate,
	})
}

// RecordStreak handles POST /streak requests, folding one qualifying
// activity into the caller's streak. Idempotent within a calendar day, so
// clients may safely retry.
func (h *StreakHandler) RecordStreak(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	s, err := h.streakService.Record(r.Context(), userID, time.Now().UTC())
	if err != nil {
		HandleServiceError(w, r, err, "Failed to record streak activity")
		return
	}

	log.Debug("streak activity recorded",
		slog.String("user_id", userID.String()),
		slog.Int("current_streak", s.CurrentStreak))
	shared.RespondWithJSON(w, r, http.StatusOK, StreakResponse{
		CurrentStreak:  s.CurrentStreak,
		LongestStreak:  s.LongestStreak,
		LastReviewDate: s.LastReviewDate,
	})
}
